package badger

import (
	"errors"
	"testing"

	"github.com/givplus/givlocal/core"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	vault, err := New("", nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = vault.Close() })
	return vault
}

func sampleIdentity() *core.Identity {
	return &core.Identity{
		ID:        7,
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Martin",
		Role:      core.RoleDonor,
	}
}

// Requirement: the saved token and identity round-trip intact.
func TestVault_SaveAndLoadSession(t *testing.T) {
	vault := newTestVault(t)

	if err := vault.SaveSession("demo_payload_abcdefghijk", sampleIdentity()); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	token, identity, err := vault.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if token != "demo_payload_abcdefghijk" {
		t.Errorf("token = %q, want the saved token", token)
	}
	if identity.ID != 7 || identity.Email != "alice@example.com" || identity.Role != core.RoleDonor {
		t.Errorf("identity = %+v, want the saved identity", identity)
	}
}

// Requirement: an empty vault reports ErrNoSession, not an error.
func TestVault_LoadSession_Empty(t *testing.T) {
	vault := newTestVault(t)

	_, _, err := vault.LoadSession()
	if !errors.Is(err, core.ErrNoSession) {
		t.Fatalf("LoadSession() error = %v, want %v", err, core.ErrNoSession)
	}
}

// Requirement: saving again replaces the previous pair.
func TestVault_SaveSession_Overwrites(t *testing.T) {
	vault := newTestVault(t)

	if err := vault.SaveSession("token-one", sampleIdentity()); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}
	second := sampleIdentity()
	second.ID = 8
	second.Email = "bob@example.com"
	if err := vault.SaveSession("token-two", second); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	token, identity, err := vault.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if token != "token-two" || identity.Email != "bob@example.com" {
		t.Errorf("loaded %q/%q, want the second session", token, identity.Email)
	}
}

// Requirement: a save without a token or identity is rejected so a
// half-formed pair can never reach disk.
func TestVault_SaveSession_RejectsIncompletePair(t *testing.T) {
	vault := newTestVault(t)

	if err := vault.SaveSession("", sampleIdentity()); !errors.Is(err, core.ErrInvalidToken) {
		t.Errorf("SaveSession(empty token) error = %v, want %v", err, core.ErrInvalidToken)
	}
	if err := vault.SaveSession("demo_payload_abcdefghijk", nil); !errors.Is(err, core.ErrInvalidToken) {
		t.Errorf("SaveSession(nil identity) error = %v, want %v", err, core.ErrInvalidToken)
	}

	if _, _, err := vault.LoadSession(); !errors.Is(err, core.ErrNoSession) {
		t.Errorf("rejected saves must leave the vault empty, error = %v", err)
	}
}

// Requirement: Clear removes both slots and is a no-op when empty.
func TestVault_Clear(t *testing.T) {
	vault := newTestVault(t)

	if err := vault.Clear(); err != nil {
		t.Fatalf("Clear() on empty vault error = %v", err)
	}

	if err := vault.SaveSession("demo_payload_abcdefghijk", sampleIdentity()); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}
	if err := vault.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, _, err := vault.LoadSession(); !errors.Is(err, core.ErrNoSession) {
		t.Fatalf("LoadSession() after Clear error = %v, want %v", err, core.ErrNoSession)
	}
}

// Requirement: a session written to disk survives reopening the vault.
func TestVault_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	vault, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := vault.SaveSession("demo_payload_abcdefghijk", sampleIdentity()); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}
	if err := vault.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer reopened.Close()

	token, identity, err := reopened.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() after reopen error = %v", err)
	}
	if token != "demo_payload_abcdefghijk" || identity.ID != 7 {
		t.Errorf("loaded %q/%d, want the persisted session", token, identity.ID)
	}
}
