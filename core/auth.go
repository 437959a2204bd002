package core

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/givplus/givlocal/pkg/crypto"
)

// AuthState tracks where a session is in its lifecycle.
type AuthState int

const (
	// StateAnonymous means no session is held.
	StateAnonymous AuthState = iota
	// StateVerifying means a persisted token was found and is being
	// re-checked against the store. Route guards render a neutral
	// state and perform no redirect while verifying.
	StateVerifying
	// StateAuthenticated means token and identity are present and verified.
	StateAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateVerifying:
		return "verifying"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// AuthConfig carries the optional knobs for the auth manager.
type AuthConfig struct {
	// TokenTTL sets the informational expiry embedded in minted tokens.
	// The expiry is never enforced; sessions end on logout or when the
	// referenced account disappears.
	TokenTTL time.Duration
	Logger   *slog.Logger
}

// AuthManager mediates registration, login, logout and session
// verification. It owns the session vault slots exclusively and answers
// "who is currently authenticated" for the rest of the application.
type AuthManager struct {
	store     StorageAdapter
	vault     SessionVault
	passwords crypto.PasswordHandler
	tokenTTL  time.Duration
	logger    *slog.Logger

	mu       sync.RWMutex
	state    AuthState
	identity *Identity
}

// AuthResult contains the authenticated identity and its bearer token.
type AuthResult struct {
	Account *Identity `json:"account"`
	Token   string    `json:"token"`
}

// NewAuthManager wires an auth manager over a store and a vault. The
// password handler defaults to plaintext comparison, matching the stored
// credential shape.
func NewAuthManager(store StorageAdapter, vault SessionVault, passwords crypto.PasswordHandler, cfg AuthConfig) *AuthManager {
	if passwords == nil {
		passwords = crypto.NewPlaintext()
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = crypto.DefaultTokenTTL
	}
	logger := cfg.Logger
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &AuthManager{
		store:     store,
		vault:     vault,
		passwords: passwords,
		tokenTTL:  ttl,
		logger:    logger,
		state:     StateAnonymous,
	}
}

// Register creates a new account and opens a session for it.
//
// On ErrDuplicateEmail the session state is untouched. A vault write
// failure clears the session slots so no half-created session survives.
func (m *AuthManager) Register(input RegisterInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	account, err := m.store.CreateAccount(input)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	result, err := m.openSession(account)
	if err != nil {
		return nil, err
	}

	m.logger.Info("account registered",
		"component", "auth",
		"accountId", account.ID,
		"role", account.Role,
	)
	return result, nil
}

// Login authenticates an email/password pair.
//
// Unknown email and wrong password both return ErrInvalidCredentials so
// callers cannot distinguish the two cases.
func (m *AuthManager) Login(email, password string) (*AuthResult, error) {
	account, err := m.store.GetAccountByEmail(email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	ok, err := m.passwords.Verify(password, account.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	result, err := m.openSession(account)
	if err != nil {
		return nil, err
	}

	m.logger.Info("login succeeded",
		"component", "auth",
		"accountId", account.ID,
	)
	return result, nil
}

// openSession mints a token, persists the session pair and transitions
// to Authenticated.
func (m *AuthManager) openSession(account *Account) (*AuthResult, error) {
	token, err := crypto.MintSessionToken(account.ID, account.Email, string(account.Role), m.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to mint session token: %w", err)
	}

	identity := account.Identity()
	if err := m.vault.SaveSession(token, identity); err != nil {
		// Don't leave a half-written session pair behind.
		if clearErr := m.vault.Clear(); clearErr != nil {
			m.logger.Error("failed to clear session vault after write failure",
				"component", "auth",
				"error", clearErr,
			)
		}
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.identity = identity
	m.mu.Unlock()

	return &AuthResult{Account: identity, Token: token}, nil
}

// Logout clears the persisted session unconditionally and transitions
// to Anonymous. Idempotent: logging out while anonymous is a no-op.
func (m *AuthManager) Logout() error {
	err := m.vault.Clear()

	m.mu.Lock()
	m.state = StateAnonymous
	m.identity = nil
	m.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to clear session vault: %w", err)
	}
	return nil
}

// VerifySession restores a persisted session at startup.
//
// It reports true only when both session slots are present and the
// referenced account still exists. A dangling or unreadable session is
// cleared and reported as false rather than as an error, so a corrupt
// vault never wedges startup.
func (m *AuthManager) VerifySession() (bool, error) {
	m.mu.Lock()
	m.state = StateVerifying
	m.mu.Unlock()

	token, identity, err := m.vault.LoadSession()
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			m.logger.Warn("failed to read persisted session",
				"component", "auth",
				"error", err,
			)
			m.clearPersisted()
		}
		m.toAnonymous()
		return false, nil
	}
	if token == "" || identity == nil {
		m.toAnonymous()
		return false, nil
	}

	// The cached identity is authoritative for display purposes; only
	// its continued existence is re-checked against the store.
	if _, err := m.store.GetAccountByID(identity.ID); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			m.logger.Info("clearing dangling session",
				"component", "auth",
				"accountId", identity.ID,
			)
		} else {
			m.logger.Warn("failed to verify persisted session",
				"component", "auth",
				"error", err,
			)
		}
		m.clearPersisted()
		m.toAnonymous()
		return false, nil
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.identity = identity
	m.mu.Unlock()
	return true, nil
}

// CurrentIdentity returns the cached authenticated identity, or nil when
// no session is active. Pure read, no I/O.
func (m *AuthManager) CurrentIdentity() *Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity
}

// State returns the current session lifecycle state.
func (m *AuthManager) State() AuthState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *AuthManager) toAnonymous() {
	m.mu.Lock()
	m.state = StateAnonymous
	m.identity = nil
	m.mu.Unlock()
}

func (m *AuthManager) clearPersisted() {
	if err := m.vault.Clear(); err != nil {
		m.logger.Error("failed to clear session vault",
			"component", "auth",
			"error", err,
		)
	}
}
