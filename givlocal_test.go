package givlocal

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	badgervault "github.com/givplus/givlocal/adapters/badger"
	"github.com/givplus/givlocal/adapters/sqlite"
)

// newTestApp assembles the core over throwaway sqlite and badger
// directories, the same wiring the serve command uses.
func newTestApp(t *testing.T) *App {
	t.Helper()
	return openApp(t, t.TempDir())
}

func openApp(t *testing.T, dir string) *App {
	t.Helper()
	store, err := sqlite.New(dir, nil)
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	vault, err := badgervault.New(dir, nil)
	if err != nil {
		t.Fatalf("badger.New() error = %v", err)
	}
	app, err := New(Config{Store: store, Vault: vault})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNew_RequiresAdapters(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrStoreRequired) {
		t.Errorf("New(no store) error = %v, want %v", err, ErrStoreRequired)
	}

	store, err := sqlite.New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	defer store.Close()
	if _, err := New(Config{Store: store}); !errors.Is(err, ErrVaultRequired) {
		t.Errorf("New(no vault) error = %v, want %v", err, ErrVaultRequired)
	}
}

// Requirement: the full donation flow holds together end to end:
// register, reject the duplicate, log back in, open a campaign and
// watch two donations move its aggregates to 250/1 and then 350/2.
func TestApp_DonationFlow(t *testing.T) {
	app := newTestApp(t)

	// Register a new donor.
	result, err := app.Auth.Register(RegisterInput{
		Email:     "a@b.com",
		Password:  "Secret123",
		FirstName: "Ada",
		LastName:  "Byron",
		Role:      RoleDonor,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	donorID := result.Account.ID

	// The same email cannot register twice.
	_, err = app.Auth.Register(RegisterInput{
		Email:     "a@b.com",
		Password:  "Another123",
		FirstName: "Ada",
		LastName:  "Byron",
		Role:      RoleDonor,
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("duplicate Register() error = %v, want %v", err, ErrDuplicateEmail)
	}

	// Log out and back in with the original credentials.
	if err := app.Auth.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := app.Auth.Login("a@b.com", "Secret123"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// The seeded association opens a campaign with a 1000 target.
	association, err := app.Store.GetAccountByEmail(sqlite.SeedAssociationEmail)
	if err != nil {
		t.Fatalf("GetAccountByEmail(association) error = %v", err)
	}
	campaign, err := app.Store.CreateCampaign(NewCampaign{
		Title:         "Food Drive",
		TargetAmount:  decimal.NewFromInt(1000),
		AssociationID: association.ID,
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("CreateCampaign() error = %v", err)
	}

	// First donation: 250.
	if _, err := app.Payments.Confirm(PaymentConfirmation{
		PaymentRef: "pay_first",
		CampaignID: campaign.ID,
		DonorID:    donorID,
		Amount:     decimal.NewFromInt(250),
		Currency:   "EUR",
		Method:     "card",
	}); err != nil {
		t.Fatalf("Confirm(250) error = %v", err)
	}
	got, err := app.Store.GetCampaignByID(campaign.ID)
	if err != nil {
		t.Fatalf("GetCampaignByID() error = %v", err)
	}
	if got.CurrentAmount.IntPart() != 250 || got.DonationCount != 1 {
		t.Fatalf("aggregates = %s/%d, want 250/1", got.CurrentAmount, got.DonationCount)
	}

	// Second donation: 100.
	if _, err := app.Payments.Confirm(PaymentConfirmation{
		PaymentRef: "pay_second",
		CampaignID: campaign.ID,
		DonorID:    donorID,
		Amount:     decimal.NewFromInt(100),
		Currency:   "EUR",
		Method:     "card",
	}); err != nil {
		t.Fatalf("Confirm(100) error = %v", err)
	}
	got, err = app.Store.GetCampaignByID(campaign.ID)
	if err != nil {
		t.Fatalf("GetCampaignByID() error = %v", err)
	}
	if got.CurrentAmount.IntPart() != 350 || got.DonationCount != 2 {
		t.Fatalf("aggregates = %s/%d, want 350/2", got.CurrentAmount, got.DonationCount)
	}

	// Both donations show up under the donor.
	donations, err := app.Store.ListContributionsByDonor(donorID)
	if err != nil {
		t.Fatalf("ListContributionsByDonor() error = %v", err)
	}
	if len(donations) != 2 {
		t.Errorf("donor donations = %d, want 2", len(donations))
	}
}

// Requirement: the seeded demo credentials work out of the box.
func TestApp_SeededCredentials(t *testing.T) {
	app := newTestApp(t)

	result, err := app.Auth.Login(sqlite.SeedAdminEmail, sqlite.SeedAdminPassword)
	if err != nil {
		t.Fatalf("Login(admin) error = %v", err)
	}
	if result.Account.Role != RoleAdmin {
		t.Errorf("admin role = %q, want %q", result.Account.Role, RoleAdmin)
	}

	if _, err := app.Auth.Login(sqlite.SeedAssociationEmail, sqlite.SeedAssociationPassword); err != nil {
		t.Fatalf("Login(association) error = %v", err)
	}
}

// Requirement: a session persisted by one process restores in the next.
func TestApp_RestoreSessionAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	first := openApp(t, dir)
	if _, err := first.Auth.Register(RegisterInput{
		Email:     "a@b.com",
		Password:  "Secret123",
		FirstName: "Ada",
		LastName:  "Byron",
		Role:      RoleDonor,
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second := openApp(t, dir)
	restored, err := second.RestoreSession()
	if err != nil {
		t.Fatalf("RestoreSession() error = %v", err)
	}
	if !restored {
		t.Fatal("RestoreSession() = false, want the persisted session back")
	}
	identity := second.Auth.CurrentIdentity()
	if identity == nil || identity.Email != "a@b.com" {
		t.Errorf("CurrentIdentity() = %+v, want a@b.com", identity)
	}
}

// Requirement: the demo bypass config lets any authenticated identity
// through role-restricted routes.
func TestApp_DisableRoleChecks(t *testing.T) {
	dir := t.TempDir()
	store, err := sqlite.New(dir, nil)
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	vault, err := badgervault.New(dir, nil)
	if err != nil {
		t.Fatalf("badger.New() error = %v", err)
	}
	app, err := New(Config{Store: store, Vault: vault, DisableRoleChecks: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer app.Close()

	if _, err := app.Auth.Login(sqlite.SeedAdminEmail, sqlite.SeedAdminPassword); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	decision := app.Guard.Check([]Role{RoleAssociation}, "/association/campaigns")
	if decision.Kind != DecisionAllow {
		t.Errorf("Check() kind = %v, want allow with role checks disabled", decision.Kind)
	}
}
