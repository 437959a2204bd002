package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/givplus/givlocal/core"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func (a *Adapter) CreateCampaign(input core.NewCampaign) (*core.Campaign, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := a.GetAccountByID(input.AssociationID); err != nil {
		if errors.Is(err, core.ErrAccountNotFound) {
			return nil, core.ErrInvalidOwner
		}
		return nil, fmt.Errorf("failed to resolve campaign owner: %w", err)
	}

	ctx := context.Background()
	q := `INSERT INTO public.campaigns
	      (title, description, target_amount, current_amount, association_id,
	       image_url, start_date, end_date, is_active, donation_count)
	      VALUES ($1, $2, $3::numeric, 0, $4, $5, COALESCE($6, now()), $7, $8, 0)
	      RETURNING id`
	var startDate any
	if !input.StartDate.IsZero() {
		startDate = input.StartDate
	}
	var id uint
	err := a.pool.QueryRow(ctx, q,
		input.Title, input.Description, input.TargetAmount.String(),
		input.AssociationID, input.ImageURL, startDate, input.EndDate, input.IsActive,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return a.GetCampaignByID(id)
}

func (a *Adapter) GetCampaignByID(id uint) (*core.Campaign, error) {
	ctx := context.Background()
	q := `SELECT id, title, description, target_amount::text, current_amount::text,
	             association_id, image_url, start_date, end_date, is_active,
	             donation_count, created_at, updated_at
	      FROM public.campaigns WHERE id = $1`
	return scanCampaign(a.pool.QueryRow(ctx, q, id))
}

func scanCampaign(row pgx.Row) (*core.Campaign, error) {
	campaign := &core.Campaign{}
	var target, current string
	err := row.Scan(
		&campaign.ID, &campaign.Title, &campaign.Description, &target, &current,
		&campaign.AssociationID, &campaign.ImageURL, &campaign.StartDate,
		&campaign.EndDate, &campaign.IsActive, &campaign.DonationCount,
		&campaign.CreatedAt, &campaign.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrCampaignNotFound
		}
		return nil, err
	}
	if campaign.TargetAmount, err = decimal.NewFromString(target); err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	if campaign.CurrentAmount, err = decimal.NewFromString(current); err != nil {
		return nil, fmt.Errorf("invalid current amount: %w", err)
	}
	return campaign, nil
}

func (a *Adapter) ListCampaignsByAssociation(associationID uint) ([]*core.Campaign, error) {
	return a.listCampaigns(`association_id = $1`, associationID)
}

func (a *Adapter) ListActiveCampaigns() ([]*core.Campaign, error) {
	return a.listCampaigns(`is_active = $1`, true)
}

func (a *Adapter) listCampaigns(where string, arg any) ([]*core.Campaign, error) {
	ctx := context.Background()
	q := `SELECT id, title, description, target_amount::text, current_amount::text,
	             association_id, image_url, start_date, end_date, is_active,
	             donation_count, created_at, updated_at
	      FROM public.campaigns WHERE ` + where + ` ORDER BY id`
	rows, err := a.pool.Query(ctx, q, arg)
	if err != nil {
		a.logger.Error("failed to list campaigns",
			"component", "store",
			"error", err,
		)
		return []*core.Campaign{}, nil
	}
	defer rows.Close()

	campaigns := []*core.Campaign{}
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, rows.Err()
}

func (a *Adapter) UpdateCampaign(c *core.Campaign) error {
	ctx := context.Background()
	q := `UPDATE public.campaigns
	      SET title = $1, description = $2, target_amount = $3::numeric,
	          image_url = $4, start_date = $5, end_date = $6, is_active = $7,
	          updated_at = now()
	      WHERE id = $8`
	tag, err := a.pool.Exec(ctx, q,
		c.Title, c.Description, c.TargetAmount.String(),
		c.ImageURL, c.StartDate, c.EndDate, c.IsActive, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrCampaignNotFound
	}
	return nil
}
