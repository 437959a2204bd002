package core

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldError maps a validator field error to the matching sentinel so
// callers can test with errors.Is instead of parsing messages.
func fieldError(fe validator.FieldError, fields map[string]error) error {
	if err, ok := fields[fe.Field()]; ok {
		return err
	}
	return fe
}

func structError(err error, fields map[string]error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fieldError(verrs[0], fields)
	}
	return err
}

// Validate rejects malformed registration input with a typed error.
func (in RegisterInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return structError(err, map[string]error{
			"Email":     emailError(in.Email),
			"Password":  ErrPasswordRequired,
			"FirstName": ErrNameRequired,
			"LastName":  ErrNameRequired,
			"Role":      ErrInvalidRole,
		})
	}
	if !in.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

func emailError(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	return ErrInvalidEmail
}

// Validate rejects malformed campaign input with a typed error.
func (in NewCampaign) Validate() error {
	if err := validate.Struct(in); err != nil {
		return structError(err, map[string]error{
			"Title":         ErrTitleRequired,
			"AssociationID": ErrInvalidOwner,
		})
	}
	if !in.TargetAmount.IsPositive() {
		return ErrTargetNotPositive
	}
	return nil
}

// Validate rejects malformed contribution input with a typed error.
func (in NewContribution) Validate() error {
	if err := validate.Struct(in); err != nil {
		return structError(err, map[string]error{
			"Currency":      ErrCurrencyRequired,
			"CampaignID":    ErrCampaignNotFound,
			"DonorID":       ErrAccountNotFound,
			"PaymentMethod": ErrMethodRequired,
		})
	}
	if !in.Amount.IsPositive() {
		return ErrAmountNotPositive
	}
	return nil
}
