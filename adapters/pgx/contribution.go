package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/givplus/givlocal/core"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CreateContribution records a donation and updates the campaign's
// cached aggregates inside one SQL transaction. The campaign row is
// locked for the duration, which serializes concurrent donations to the
// same campaign.
func (a *Adapter) CreateContribution(input core.NewContribution) (*core.Contribution, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var campaignID uint
	err = tx.QueryRow(ctx,
		`SELECT id FROM public.campaigns WHERE id = $1 FOR UPDATE`,
		input.CampaignID,
	).Scan(&campaignID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to verify campaign: %w", err)
	}

	status := input.Status
	if status == "" {
		status = "completed"
	}
	contribution := &core.Contribution{
		Amount:        input.Amount,
		Currency:      input.Currency,
		CampaignID:    input.CampaignID,
		DonorID:       input.DonorID,
		PaymentMethod: input.PaymentMethod,
		Status:        status,
		Message:       input.Message,
		IsAnonymous:   input.IsAnonymous,
		PaymentRef:    input.PaymentRef,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO public.contributions
		 (amount, currency, campaign_id, donor_id, payment_method, status,
		  message, is_anonymous, payment_ref)
		 VALUES ($1::numeric, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		input.Amount.String(), input.Currency, input.CampaignID, input.DonorID,
		input.PaymentMethod, status, input.Message, input.IsAnonymous, input.PaymentRef,
	).Scan(&contribution.ID, &contribution.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create contribution: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE public.campaigns
		 SET current_amount = current_amount + $1::numeric,
		     donation_count = donation_count + 1,
		     updated_at = now()
		 WHERE id = $2`,
		input.Amount.String(), input.CampaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrAggregateUpdate, err)
	}
	if tag.RowsAffected() != 1 {
		return nil, core.ErrAggregateUpdate
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrAggregateUpdate, err)
	}
	return contribution, nil
}

func (a *Adapter) GetContributionByID(id uint) (*core.Contribution, error) {
	ctx := context.Background()
	q := `SELECT id, amount::text, currency, campaign_id, donor_id, payment_method,
	             status, message, is_anonymous, payment_ref, created_at
	      FROM public.contributions WHERE id = $1`
	return scanContribution(a.pool.QueryRow(ctx, q, id))
}

func scanContribution(row pgx.Row) (*core.Contribution, error) {
	contribution := &core.Contribution{}
	var amount string
	err := row.Scan(
		&contribution.ID, &amount, &contribution.Currency,
		&contribution.CampaignID, &contribution.DonorID,
		&contribution.PaymentMethod, &contribution.Status,
		&contribution.Message, &contribution.IsAnonymous,
		&contribution.PaymentRef, &contribution.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrContributionNotFound
		}
		return nil, err
	}
	if contribution.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("invalid contribution amount: %w", err)
	}
	return contribution, nil
}

func (a *Adapter) ListContributionsByDonor(donorID uint) ([]*core.Contribution, error) {
	return a.listContributions(`donor_id = $1`, donorID)
}

func (a *Adapter) ListContributionsByCampaign(campaignID uint) ([]*core.Contribution, error) {
	return a.listContributions(`campaign_id = $1`, campaignID)
}

func (a *Adapter) listContributions(where string, arg any) ([]*core.Contribution, error) {
	ctx := context.Background()
	q := `SELECT id, amount::text, currency, campaign_id, donor_id, payment_method,
	             status, message, is_anonymous, payment_ref, created_at
	      FROM public.contributions WHERE ` + where + ` ORDER BY id`
	rows, err := a.pool.Query(ctx, q, arg)
	if err != nil {
		a.logger.Error("failed to list contributions",
			"component", "store",
			"error", err,
		)
		return []*core.Contribution{}, nil
	}
	defer rows.Close()

	contributions := []*core.Contribution{}
	for rows.Next() {
		contribution, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, contribution)
	}
	return contributions, rows.Err()
}
