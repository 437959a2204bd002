package fiber

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/givplus/givlocal"
	"github.com/givplus/givlocal/core"
)

func (a *Adapter) signUp(c fiber.Ctx) error {
	var input givlocal.RegisterInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	result, err := a.core.Auth.Register(input)
	if err != nil {
		return authFailure(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"account": result.Account,
		"token":   result.Token,
	})
}

func (a *Adapter) signIn(c fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	result, err := a.core.Auth.Login(input.Email, input.Password)
	if err != nil {
		return authFailure(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"account": result.Account,
		"token":   result.Token,
	})
}

func (a *Adapter) signOut(c fiber.Ctx) error {
	if err := a.core.Auth.Logout(); err != nil {
		return authFailure(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "signed out",
	})
}

func (a *Adapter) session(c fiber.Ctx) error {
	identity := a.core.Auth.CurrentIdentity()
	if identity == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": core.ErrNoSession.Error(),
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account": identity,
	})
}

func (a *Adapter) listCampaigns(c fiber.Ctx) error {
	campaigns, err := a.core.Store.ListActiveCampaigns()
	if err != nil {
		return storeFailure(c, err)
	}
	return c.Status(http.StatusOK).JSON(campaigns)
}

func (a *Adapter) getCampaign(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	campaign, err := a.core.Store.GetCampaignByID(id)
	if err != nil {
		return storeFailure(c, err)
	}
	return c.Status(http.StatusOK).JSON(campaign)
}

func (a *Adapter) createCampaign(c fiber.Ctx) error {
	var input givlocal.NewCampaign
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	campaign, err := a.core.Store.CreateCampaign(input)
	if err != nil {
		return storeFailure(c, err)
	}
	return c.Status(http.StatusCreated).JSON(campaign)
}

func (a *Adapter) listCampaignDonations(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	contributions, err := a.core.Store.ListContributionsByCampaign(id)
	if err != nil {
		return storeFailure(c, err)
	}
	return c.Status(http.StatusOK).JSON(contributions)
}

func (a *Adapter) confirmDonation(c fiber.Ctx) error {
	var confirmation givlocal.PaymentConfirmation
	if err := c.Bind().Body(&confirmation); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	contribution, err := a.core.Payments.Confirm(confirmation)
	if err != nil {
		return storeFailure(c, err)
	}
	return c.Status(http.StatusCreated).JSON(contribution)
}

func (a *Adapter) listDonorDonations(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	contributions, err := a.core.Store.ListContributionsByDonor(id)
	if err != nil {
		return storeFailure(c, err)
	}
	return c.Status(http.StatusOK).JSON(contributions)
}

func paramID(c fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid identifier")
	}
	return uint(id), nil
}

// authFailure renders auth errors in the {success, message} shape the
// registration and login forms consume inline.
func authFailure(c fiber.Ctx, err error) error {
	return c.Status(mapErrorToStatus(err)).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

func storeFailure(c fiber.Ctx, err error) error {
	return c.Status(mapErrorToStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// mapErrorToStatus maps core error types to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrNoSession):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrDuplicateEmail):
		return http.StatusConflict

	case errors.Is(err, core.ErrAccountNotFound),
		errors.Is(err, core.ErrCampaignNotFound),
		errors.Is(err, core.ErrContributionNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrEmailRequired),
		errors.Is(err, core.ErrPasswordRequired),
		errors.Is(err, core.ErrInvalidEmail),
		errors.Is(err, core.ErrNameRequired),
		errors.Is(err, core.ErrInvalidRole),
		errors.Is(err, core.ErrTitleRequired),
		errors.Is(err, core.ErrTargetNotPositive),
		errors.Is(err, core.ErrAmountNotPositive),
		errors.Is(err, core.ErrCurrencyRequired),
		errors.Is(err, core.ErrMethodRequired),
		errors.Is(err, core.ErrPaymentRefMissing),
		errors.Is(err, core.ErrInvalidOwner):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
