package sqlite

import (
	"errors"
	"fmt"
	"time"

	"github.com/givplus/givlocal/core"
	"gorm.io/gorm"
)

const defaultContributionStatus = "completed"

// CreateContribution records a donation and updates the campaign's
// cached aggregates as a single unit: the contribution insert and the
// currentAmount/donationCount increment commit or roll back together.
// Commits against the same campaign are serialized, so two donations
// submitted back-to-back cannot interleave between the verify, insert
// and increment steps.
func (s *Store) CreateContribution(input core.NewContribution) (*core.Contribution, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	lock := s.campaignLock(input.CampaignID)
	lock.Lock()
	defer lock.Unlock()

	var created *core.Contribution
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var campaign campaignModel
		err := tx.First(&campaign, input.CampaignID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.ErrCampaignNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to verify campaign: %w", err)
		}

		status := input.Status
		if status == "" {
			status = defaultContributionStatus
		}
		now := time.Now()
		model := contributionModel{
			Amount:        input.Amount,
			Currency:      input.Currency,
			CampaignID:    input.CampaignID,
			DonorID:       input.DonorID,
			PaymentMethod: input.PaymentMethod,
			Status:        status,
			Message:       input.Message,
			IsAnonymous:   input.IsAnonymous,
			PaymentRef:    input.PaymentRef,
			CreatedAt:     now,
		}
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to create contribution: %w", err)
		}

		if s.testHookBeforeAggregate != nil {
			if err := s.testHookBeforeAggregate(); err != nil {
				return fmt.Errorf("%w: %v", core.ErrAggregateUpdate, err)
			}
		}

		res := tx.Model(&campaignModel{}).Where("id = ?", campaign.ID).Updates(map[string]any{
			"current_amount": campaign.CurrentAmount.Add(input.Amount),
			"donation_count": campaign.DonationCount + 1,
			"updated_at":     now,
		})
		if res.Error != nil {
			return fmt.Errorf("%w: %v", core.ErrAggregateUpdate, res.Error)
		}
		if res.RowsAffected != 1 {
			return core.ErrAggregateUpdate
		}

		created = model.toCore()
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(input.CampaignID)
	return created, nil
}

// GetContributionByID returns the contribution or
// core.ErrContributionNotFound.
func (s *Store) GetContributionByID(id uint) (*core.Contribution, error) {
	var model contributionModel
	err := s.db.First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrContributionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contribution: %w", err)
	}
	return model.toCore(), nil
}

// ListContributionsByDonor returns a donor's contributions. Read
// failures degrade to an empty list.
func (s *Store) ListContributionsByDonor(donorID uint) ([]*core.Contribution, error) {
	var models []contributionModel
	if err := s.db.Where("donor_id = ?", donorID).Find(&models).Error; err != nil {
		s.logger.Error("failed to list contributions by donor",
			"component", "store",
			"donorId", donorID,
			"error", err,
		)
		return []*core.Contribution{}, nil
	}
	return contributionsToCore(models), nil
}

// ListContributionsByCampaign returns a campaign's contributions. Read
// failures degrade to an empty list.
func (s *Store) ListContributionsByCampaign(campaignID uint) ([]*core.Contribution, error) {
	var models []contributionModel
	if err := s.db.Where("campaign_id = ?", campaignID).Find(&models).Error; err != nil {
		s.logger.Error("failed to list contributions by campaign",
			"component", "store",
			"campaignId", campaignID,
			"error", err,
		)
		return []*core.Contribution{}, nil
	}
	return contributionsToCore(models), nil
}

func contributionsToCore(models []contributionModel) []*core.Contribution {
	contributions := make([]*core.Contribution, 0, len(models))
	for i := range models {
		contributions = append(contributions, models[i].toCore())
	}
	return contributions
}
