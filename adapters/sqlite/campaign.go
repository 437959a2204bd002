package sqlite

import (
	"errors"
	"fmt"
	"time"

	"github.com/givplus/givlocal/core"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateCampaign inserts a new campaign. CurrentAmount and DonationCount
// start at zero regardless of caller-supplied values, and the owning
// association must resolve to an existing account.
func (s *Store) CreateCampaign(input core.NewCampaign) (*core.Campaign, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.GetAccountByID(input.AssociationID); err != nil {
		if errors.Is(err, core.ErrAccountNotFound) {
			return nil, core.ErrInvalidOwner
		}
		return nil, fmt.Errorf("failed to resolve campaign owner: %w", err)
	}

	now := time.Now()
	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = now
	}
	model := campaignModel{
		Title:         input.Title,
		Description:   input.Description,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: decimal.Zero,
		AssociationID: input.AssociationID,
		ImageURL:      input.ImageURL,
		StartDate:     startDate,
		EndDate:       input.EndDate,
		IsActive:      input.IsActive,
		DonationCount: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.db.Create(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return model.toCore(), nil
}

// GetCampaignByID returns the campaign or core.ErrCampaignNotFound.
// Point lookups go through the read cache.
func (s *Store) GetCampaignByID(id uint) (*core.Campaign, error) {
	if cached, err := s.cache.Get(id); err == nil {
		return cached, nil
	}

	var model campaignModel
	err := s.db.First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	campaign := model.toCore()
	// Cache failures never fail the read
	_ = s.cache.Set(id, campaign)
	return campaign, nil
}

// ListCampaignsByAssociation returns an association's campaigns. Read
// failures degrade to an empty list.
func (s *Store) ListCampaignsByAssociation(associationID uint) ([]*core.Campaign, error) {
	var models []campaignModel
	if err := s.db.Where("association_id = ?", associationID).Find(&models).Error; err != nil {
		s.logger.Error("failed to list campaigns by association",
			"component", "store",
			"associationId", associationID,
			"error", err,
		)
		return []*core.Campaign{}, nil
	}
	return campaignsToCore(models), nil
}

// ListActiveCampaigns returns every campaign with the active flag set.
// Read failures degrade to an empty list.
func (s *Store) ListActiveCampaigns() ([]*core.Campaign, error) {
	var models []campaignModel
	if err := s.db.Where("is_active = ?", true).Find(&models).Error; err != nil {
		s.logger.Error("failed to list active campaigns",
			"component", "store",
			"error", err,
		)
		return []*core.Campaign{}, nil
	}
	return campaignsToCore(models), nil
}

// UpdateCampaign persists an explicit edit and refreshes UpdatedAt. The
// aggregate fields are callers' responsibility only through
// CreateContribution; explicit edits should not touch them.
func (s *Store) UpdateCampaign(c *core.Campaign) error {
	c.UpdatedAt = time.Now()
	res := s.db.Model(&campaignModel{}).Where("id = ?", c.ID).Updates(map[string]any{
		"title":       c.Title,
		"description": c.Description,
		"target_amount": c.TargetAmount,
		"image_url":   c.ImageURL,
		"start_date":  c.StartDate,
		"end_date":    c.EndDate,
		"is_active":   c.IsActive,
		"updated_at":  c.UpdatedAt,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update campaign: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return core.ErrCampaignNotFound
	}
	_ = s.cache.Delete(c.ID)
	return nil
}

func campaignsToCore(models []campaignModel) []*core.Campaign {
	campaigns := make([]*core.Campaign, 0, len(models))
	for i := range models {
		campaigns = append(campaigns, models[i].toCore())
	}
	return campaigns
}
