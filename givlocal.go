// Package givlocal wires the donor-platform local core: an embedded
// persistent store for accounts, campaigns and contributions, a session
// vault, and the auth manager and route guard built on top of them.
package givlocal

import (
	"log/slog"
	"time"

	"github.com/givplus/givlocal/core"
	"github.com/givplus/givlocal/pkg/crypto"
	"github.com/givplus/givlocal/services"
)

// interfaces
type (
	StorageAdapter = core.StorageAdapter
	SessionVault   = core.SessionVault

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	Account      = core.Account
	Campaign     = core.Campaign
	Contribution = core.Contribution
	Identity     = core.Identity
	Role         = core.Role

	RegisterInput   = core.RegisterInput
	NewCampaign     = core.NewCampaign
	NewContribution = core.NewContribution

	AuthManager = core.AuthManager
	AuthResult  = core.AuthResult
	Guard       = core.Guard
	Decision    = core.Decision

	PaymentService      = services.PaymentService
	PaymentConfirmation = services.PaymentConfirmation
)

const (
	RoleDonor       = core.RoleDonor
	RoleAssociation = core.RoleAssociation
	RoleAdmin       = core.RoleAdmin
)

type DecisionKind = core.DecisionKind

const (
	DecisionPending       = core.DecisionPending
	DecisionAllow         = core.DecisionAllow
	DecisionRedirectLogin = core.DecisionRedirectLogin
	DecisionUnauthorized  = core.DecisionUnauthorized
)

// Constructors & helpers (convenience re-exports)
var (
	NewPlaintext = crypto.NewPlaintext
	NewArgon2    = crypto.NewArgon2
)

var (
	ErrStoreUnavailable  = core.ErrStoreUnavailable
	ErrDuplicateEmail    = core.ErrDuplicateEmail
	ErrAccountNotFound   = core.ErrAccountNotFound
	ErrCampaignNotFound  = core.ErrCampaignNotFound
	ErrInvalidOwner      = core.ErrInvalidOwner
	ErrAggregateUpdate   = core.ErrAggregateUpdate
	ErrResetNotConfirmed = core.ErrResetNotConfirmed
)

var (
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrInvalidToken       = core.ErrInvalidToken
	ErrNoSession          = core.ErrNoSession
)

var (
	ErrStoreRequired = core.ErrStoreRequired
	ErrVaultRequired = core.ErrVaultRequired
)

// Config wires the application core. Store and Vault are required; the
// rest defaults to the demo-compatible behavior.
type Config struct {
	Store StorageAdapter
	Vault SessionVault

	// Optional config
	Passwords PasswordHandler
	TokenTTL  time.Duration
	Logger    *slog.Logger

	// DisableRoleChecks is a demo bypass where any
	// authenticated identity passes role-restricted routes. Leave it
	// off outside of demos.
	DisableRoleChecks bool
}

// App is the assembled core handed to transports and UIs.
type App struct {
	Auth     *AuthManager
	Guard    *Guard
	Payments *PaymentService
	Store    StorageAdapter
	Vault    SessionVault
}

// New validates the wiring, initializes the store and assembles the
// auth manager, route guard and payment boundary.
func New(config Config) (*App, error) {
	if config.Store == nil {
		return nil, ErrStoreRequired
	}
	if config.Vault == nil {
		return nil, ErrVaultRequired
	}

	if err := config.Store.Initialize(); err != nil {
		return nil, err
	}

	auth := core.NewAuthManager(config.Store, config.Vault, config.Passwords, core.AuthConfig{
		TokenTTL: config.TokenTTL,
		Logger:   config.Logger,
	})

	guard := core.NewGuard(auth)
	guard.EnforceRoles = !config.DisableRoleChecks

	return &App{
		Auth:     auth,
		Guard:    guard,
		Payments: services.NewPaymentService(config.Store, config.Logger),
		Store:    config.Store,
		Vault:    config.Vault,
	}, nil
}

// RestoreSession re-validates any persisted session at startup. It
// reports whether a session was restored; failures to restore leave the
// app anonymous rather than erroring.
func (a *App) RestoreSession() (bool, error) {
	return a.Auth.VerifySession()
}

// Close releases the store and vault handles.
func (a *App) Close() error {
	storeErr := a.Store.Close()
	vaultErr := a.Vault.Close()
	if storeErr != nil {
		return storeErr
	}
	return vaultErr
}
