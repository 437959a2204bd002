package core

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORTS (Local database operations)
// ============================================

// AccountStorage defines account-related database operations
type AccountStorage interface {
	CreateAccount(input RegisterInput) (*Account, error)
	GetAccountByID(id uint) (*Account, error)
	GetAccountByEmail(email string) (*Account, error)
	ListAccountsByRole(role Role) ([]*Account, error)
	CountAccounts() (int64, error)
	UpdateAccount(a *Account) error
	DeleteAccount(id uint) error
}

// CampaignStorage defines campaign-related database operations
type CampaignStorage interface {
	CreateCampaign(input NewCampaign) (*Campaign, error)
	GetCampaignByID(id uint) (*Campaign, error)
	ListCampaignsByAssociation(associationID uint) ([]*Campaign, error)
	ListActiveCampaigns() ([]*Campaign, error)
	UpdateCampaign(c *Campaign) error
}

// ContributionStorage defines donation-related database operations.
// CreateContribution is the one cross-entity write: the contribution
// insert and the campaign aggregate update commit as a single unit.
type ContributionStorage interface {
	CreateContribution(input NewContribution) (*Contribution, error)
	GetContributionByID(id uint) (*Contribution, error)
	ListContributionsByDonor(donorID uint) ([]*Contribution, error)
	ListContributionsByCampaign(campaignID uint) ([]*Contribution, error)
}

// StorageAdapter is the full persistent store port.
type StorageAdapter interface {
	AccountStorage
	CampaignStorage
	ContributionStorage

	// Initialize opens the database, migrates the schema and seeds the
	// demo data on first run. Idempotent.
	Initialize() error

	// Reset destroys all stored data. The confirm argument must equal
	// the database name; anything else fails with ErrResetNotConfirmed.
	Reset(confirm string) error

	Close() error
}

// ============================================
// SESSION VAULT PORT
// ============================================

// SessionVault is the local key-value slot holding the bearer token and
// the cached identity across reloads. The auth manager is its only
// writer. Save persists both entries as a unit; Load reports ErrNoSession
// when either entry is missing.
type SessionVault interface {
	SaveSession(token string, identity *Identity) error
	LoadSession() (token string, identity *Identity, err error)
	Clear() error
	Close() error
}
