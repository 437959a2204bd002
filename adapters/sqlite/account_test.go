package sqlite

import (
	"errors"
	"testing"

	"github.com/givplus/givlocal/core"
)

func donorInput(email string) core.RegisterInput {
	return core.RegisterInput{
		Email:     email,
		Password:  "Secret123",
		FirstName: "Alice",
		LastName:  "Martin",
		Role:      core.RoleDonor,
	}
}

// Requirement: CreateAccount persists the account and enforces email
// uniqueness with a typed error.
func TestStore_CreateAccount(t *testing.T) {
	store := newTestStore(t)

	account, err := store.CreateAccount(donorInput("alice@example.com"))
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}
	if account.ID == 0 {
		t.Error("CreateAccount() should assign an id")
	}
	if account.CreatedAt.IsZero() {
		t.Error("CreateAccount() should stamp CreatedAt")
	}

	_, err = store.CreateAccount(donorInput("alice@example.com"))
	if !errors.Is(err, core.ErrDuplicateEmail) {
		t.Fatalf("duplicate CreateAccount() error = %v, want %v", err, core.ErrDuplicateEmail)
	}

	// The failed attempt must not leave a second row behind.
	count, err := store.CountAccounts()
	if err != nil {
		t.Fatalf("CountAccounts() error = %v", err)
	}
	if count != 3 { // 2 seeded + 1 created
		t.Errorf("CountAccounts() = %d, want 3", count)
	}
}

// Requirement: malformed registration input is rejected before any
// write happens.
func TestStore_CreateAccount_RejectsInvalidInput(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name    string
		mutate  func(*core.RegisterInput)
		wantErr error
	}{
		{
			name:    "missing email",
			mutate:  func(in *core.RegisterInput) { in.Email = "" },
			wantErr: core.ErrEmailRequired,
		},
		{
			name:    "malformed email",
			mutate:  func(in *core.RegisterInput) { in.Email = "nope" },
			wantErr: core.ErrInvalidEmail,
		},
		{
			name:    "missing password",
			mutate:  func(in *core.RegisterInput) { in.Password = "" },
			wantErr: core.ErrPasswordRequired,
		},
		{
			name:    "unknown role",
			mutate:  func(in *core.RegisterInput) { in.Role = core.Role("root") },
			wantErr: core.ErrInvalidRole,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			input := donorInput("bob@example.com")
			test.mutate(&input)

			_, err := store.CreateAccount(input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("CreateAccount() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

// Requirement: email lookup is exact and case-sensitive.
func TestStore_GetAccountByEmail(t *testing.T) {
	store := newTestStore(t)
	created, err := store.CreateAccount(donorInput("alice@example.com"))
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	found, err := store.GetAccountByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("GetAccountByEmail() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("found id = %d, want %d", found.ID, created.ID)
	}

	if _, err := store.GetAccountByEmail("Alice@Example.com"); !errors.Is(err, core.ErrAccountNotFound) {
		t.Errorf("case-variant lookup error = %v, want %v", err, core.ErrAccountNotFound)
	}
	if _, err := store.GetAccountByEmail("nobody@example.com"); !errors.Is(err, core.ErrAccountNotFound) {
		t.Errorf("unknown lookup error = %v, want %v", err, core.ErrAccountNotFound)
	}
}

func TestStore_GetAccountByID(t *testing.T) {
	store := newTestStore(t)
	created, err := store.CreateAccount(donorInput("alice@example.com"))
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	found, err := store.GetAccountByID(created.ID)
	if err != nil {
		t.Fatalf("GetAccountByID() error = %v", err)
	}
	if found.Email != "alice@example.com" {
		t.Errorf("found email = %q, want alice@example.com", found.Email)
	}

	if _, err := store.GetAccountByID(99999); !errors.Is(err, core.ErrAccountNotFound) {
		t.Errorf("unknown id error = %v, want %v", err, core.ErrAccountNotFound)
	}
}

// Requirement: role listing returns only accounts of that role.
func TestStore_ListAccountsByRole(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.CreateAccount(donorInput("alice@example.com")); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}
	if _, err := store.CreateAccount(donorInput("bob@example.com")); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	donors, err := store.ListAccountsByRole(core.RoleDonor)
	if err != nil {
		t.Fatalf("ListAccountsByRole(donor) error = %v", err)
	}
	if len(donors) != 2 {
		t.Errorf("donors = %d, want 2", len(donors))
	}

	admins, err := store.ListAccountsByRole(core.RoleAdmin)
	if err != nil {
		t.Fatalf("ListAccountsByRole(admin) error = %v", err)
	}
	if len(admins) != 1 {
		t.Errorf("admins = %d, want the 1 seeded admin", len(admins))
	}
}

func TestStore_UpdateAccount(t *testing.T) {
	store := newTestStore(t)
	account, err := store.CreateAccount(donorInput("alice@example.com"))
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	account.FirstName = "Alicia"
	if err := store.UpdateAccount(account); err != nil {
		t.Fatalf("UpdateAccount() error = %v", err)
	}
	found, err := store.GetAccountByID(account.ID)
	if err != nil {
		t.Fatalf("GetAccountByID() error = %v", err)
	}
	if found.FirstName != "Alicia" {
		t.Errorf("first name = %q, want Alicia", found.FirstName)
	}

	missing := *account
	missing.ID = 99999
	if err := store.UpdateAccount(&missing); !errors.Is(err, core.ErrAccountNotFound) {
		t.Errorf("UpdateAccount(missing) error = %v, want %v", err, core.ErrAccountNotFound)
	}
}

func TestStore_DeleteAccount(t *testing.T) {
	store := newTestStore(t)
	account, err := store.CreateAccount(donorInput("alice@example.com"))
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	if err := store.DeleteAccount(account.ID); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}
	if _, err := store.GetAccountByID(account.ID); !errors.Is(err, core.ErrAccountNotFound) {
		t.Errorf("GetAccountByID() after delete error = %v, want %v", err, core.ErrAccountNotFound)
	}
	if err := store.DeleteAccount(account.ID); !errors.Is(err, core.ErrAccountNotFound) {
		t.Errorf("second DeleteAccount() error = %v, want %v", err, core.ErrAccountNotFound)
	}
}
