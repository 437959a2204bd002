package fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/givplus/givlocal/core"
)

// requireRole builds a middleware that runs the route guard before the
// handler. The guard's decisions map onto HTTP statuses: a pending
// verification is retryable, a missing session is unauthorized (with the
// requested path echoed back for post-login resume), a role mismatch is
// forbidden.
func (a *Adapter) requireRole(roles ...core.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		decision := a.core.Guard.Check(roles, c.Path())
		switch decision.Kind {
		case core.DecisionPending:
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "session verification in progress",
			})
		case core.DecisionRedirectLogin:
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"error": core.ErrNoSession.Error(),
				"from":  decision.From,
			})
		case core.DecisionUnauthorized:
			return c.Status(http.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient role",
			})
		}
		return c.Next()
	}
}
