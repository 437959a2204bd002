package sqlite

import (
	"time"

	"github.com/givplus/givlocal/core"
	"github.com/shopspring/decimal"
)

// Storage models for the embedded database. Kept separate from the core
// domain structs so schema concerns (tags, table names) stay out of the
// domain layer.

type accountModel struct {
	ID        uint      `gorm:"primarykey"`
	Email     string    `gorm:"uniqueIndex"`
	Password  string
	FirstName string
	LastName  string
	Role      string    `gorm:"index"`
	CreatedAt time.Time `gorm:"index"`
}

func (accountModel) TableName() string {
	return "accounts"
}

func (m *accountModel) toCore() *core.Account {
	return &core.Account{
		ID:        m.ID,
		Email:     m.Email,
		Password:  m.Password,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Role:      core.Role(m.Role),
		CreatedAt: m.CreatedAt,
	}
}

type campaignModel struct {
	ID            uint            `gorm:"primarykey"`
	Title         string          `gorm:"index"`
	Description   string
	TargetAmount  decimal.Decimal `gorm:"type:decimal(20,2)"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(20,2)"`
	AssociationID uint            `gorm:"index"`
	ImageURL      *string
	StartDate     time.Time `gorm:"index"`
	EndDate       *time.Time
	IsActive      bool `gorm:"index"`
	DonationCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (campaignModel) TableName() string {
	return "campaigns"
}

func (m *campaignModel) toCore() *core.Campaign {
	return &core.Campaign{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		AssociationID: m.AssociationID,
		ImageURL:      m.ImageURL,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		IsActive:      m.IsActive,
		DonationCount: m.DonationCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type contributionModel struct {
	ID            uint            `gorm:"primarykey"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);index"`
	Currency      string
	CampaignID    uint `gorm:"index"`
	DonorID       uint `gorm:"index"`
	PaymentMethod string
	Status        string
	Message       *string
	IsAnonymous   bool
	PaymentRef    string
	CreatedAt     time.Time `gorm:"index"`
}

func (contributionModel) TableName() string {
	return "contributions"
}

func (m *contributionModel) toCore() *core.Contribution {
	return &core.Contribution{
		ID:            m.ID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		CampaignID:    m.CampaignID,
		DonorID:       m.DonorID,
		PaymentMethod: m.PaymentMethod,
		Status:        m.Status,
		Message:       m.Message,
		IsAnonymous:   m.IsAnonymous,
		PaymentRef:    m.PaymentRef,
		CreatedAt:     m.CreatedAt,
	}
}

// schemaInfo records the structural version of the stored data so future
// layout changes can migrate instead of discarding existing records.
type schemaInfo struct {
	ID        uint `gorm:"primarykey"`
	Version   uint
	UpdatedAt time.Time
}

func (schemaInfo) TableName() string {
	return "schema_info"
}

// migrateModels lists every model auto-migrated at initialization.
var migrateModels = []any{
	&schemaInfo{},
	&accountModel{},
	&campaignModel{},
	&contributionModel{},
}
