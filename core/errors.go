package core

import "errors"

// Store errors
var (
	ErrStoreUnavailable     = errors.New("local database could not be opened")
	ErrDuplicateEmail       = errors.New("account already exists")
	ErrAccountNotFound      = errors.New("account not found")
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrInvalidOwner         = errors.New("owning association does not exist")
	ErrAggregateUpdate      = errors.New("campaign aggregate update failed")
	ErrSchemaVersion        = errors.New("database schema version is newer than supported")
	ErrResetNotConfirmed    = errors.New("reset requires confirmation with the database name")
)

// Auth and session errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password") // same text for unknown email and wrong password
	ErrInvalidToken       = errors.New("invalid session token")
	ErrNoSession          = errors.New("no active session")
)

// Validation errors (client input)
var (
	ErrEmailRequired     = errors.New("email is required")
	ErrPasswordRequired  = errors.New("password is required")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrNameRequired      = errors.New("first and last name are required")
	ErrInvalidRole       = errors.New("invalid role")
	ErrTitleRequired     = errors.New("campaign title is required")
	ErrTargetNotPositive = errors.New("target amount must be positive")
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrCurrencyRequired  = errors.New("currency code is required")
	ErrMethodRequired    = errors.New("payment method is required")
	ErrPaymentRefMissing = errors.New("payment reference is required")
)

// Config errors (wiring mistakes, surface at construction time)
var (
	ErrStoreRequired = errors.New("storage adapter is required")
	ErrVaultRequired = errors.New("session vault is required")
)
