package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role classifies what kind of identity an account is.
type Role string

const (
	RoleDonor       Role = "donor"
	RoleAssociation Role = "association"
	RoleAdmin       Role = "admin"
)

// Valid returns true if the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleAssociation, RoleAdmin:
		return true
	default:
		return false
	}
}

// In returns true if the role appears in the given set.
func (r Role) In(set []Role) bool {
	for _, s := range set {
		if r == s {
			return true
		}
	}
	return false
}

// Account represents a registered identity (donor, association or admin).
//
// The password is stored in plain form for compatibility with the demo
// data shape. Verification goes through crypto.PasswordHandler so a move
// to hashed storage is a one-point change.
type Account struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // Never expose in JSON
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is the cached session copy of an Account, password excluded.
// It is what gets persisted to the session vault and handed to callers.
type Identity struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

// Identity strips the account down to its session-safe projection.
func (a *Account) Identity() *Identity {
	return &Identity{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      a.Role,
	}
}

// Campaign is a fundraising initiative owned by an association account.
//
// CurrentAmount and DonationCount are cached aggregates over the
// campaign's contributions. They are only ever updated together with the
// contribution that changes them.
type Campaign struct {
	ID            uint            `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	AssociationID uint            `json:"associationId"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       *time.Time      `json:"endDate,omitempty"`
	IsActive      bool            `json:"isActive"`
	DonationCount int             `json:"donationCount"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Contribution is a single recorded donation transaction. Contributions
// are append-only; there is no update or delete path.
type Contribution struct {
	ID            uint            `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	CampaignID    uint            `json:"campaignId"`
	DonorID       uint            `json:"donorId"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	Message       *string         `json:"message,omitempty"`
	IsAnonymous   bool            `json:"isAnonymous"`
	PaymentRef    string          `json:"paymentRef,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// RegisterInput contains the data needed to register a new account.
type RegisterInput struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6,max=72"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Role      Role   `json:"role"      validate:"required"`
}

// NewCampaign contains the caller-supplied fields for campaign creation.
// CurrentAmount and DonationCount are not accepted from callers; the
// store zeroes them unconditionally.
type NewCampaign struct {
	Title         string          `json:"title"         validate:"required"`
	Description   string          `json:"description"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	AssociationID uint            `json:"associationId" validate:"required"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       *time.Time      `json:"endDate,omitempty"`
	IsActive      bool            `json:"isActive"`
}

// NewContribution contains the caller-supplied fields for recording a
// donation.
type NewContribution struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"      validate:"required,len=3"`
	CampaignID    uint            `json:"campaignId"    validate:"required"`
	DonorID       uint            `json:"donorId"       validate:"required"`
	PaymentMethod string          `json:"paymentMethod" validate:"required"`
	Status        string          `json:"status"`
	Message       *string         `json:"message,omitempty"`
	IsAnonymous   bool            `json:"isAnonymous"`
	PaymentRef    string          `json:"paymentRef,omitempty"`
}
