// Package fiber exposes the donor-platform core over HTTP.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/givplus/givlocal"
)

type Adapter struct {
	app  *fiber.App
	core *givlocal.App
}

func New(app *fiber.App, core *givlocal.App) *Adapter {
	return &Adapter{app: app, core: core}
}

// RegisterRoutes mounts the auth and domain endpoints.
func (a *Adapter) RegisterRoutes() {
	auth := a.app.Group("/api/auth")
	auth.Post("/sign-up", a.signUp)
	auth.Post("/sign-in", a.signIn)
	auth.Post("/sign-out", a.signOut)
	auth.Get("/session", a.session)

	api := a.app.Group("/api")
	api.Get("/campaigns", a.listCampaigns)
	api.Get("/campaigns/:id", a.getCampaign)
	api.Get("/campaigns/:id/donations", a.listCampaignDonations)
	// In fiber v3 the route handler comes first and middleware after;
	// the middleware still executes before the handler.
	api.Post("/campaigns", a.createCampaign, a.requireRole(givlocal.RoleAssociation, givlocal.RoleAdmin))
	api.Post("/donations/confirm", a.confirmDonation, a.requireRole(givlocal.RoleDonor, givlocal.RoleAdmin))
	api.Get("/donors/:id/donations", a.listDonorDonations, a.requireRole(givlocal.RoleDonor, givlocal.RoleAdmin))
}
