package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/givplus/givlocal/core"
	"github.com/shopspring/decimal"
)

// PaymentConfirmation is what the external payment collaborator reports
// after a successful collection: an opaque reference plus the
// (campaign, donor, amount) triple to record.
type PaymentConfirmation struct {
	PaymentRef  string          `json:"paymentRef"`
	CampaignID  uint            `json:"campaignId"`
	DonorID     uint            `json:"donorId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Method      string          `json:"method"`
	Message     *string         `json:"message,omitempty"`
	IsAnonymous bool            `json:"isAnonymous"`
}

// PaymentService turns confirmed external payments into committed
// contributions. It does not collect payments itself; only the
// collaborator's success callback reaches this boundary.
type PaymentService struct {
	store  core.StorageAdapter
	logger *slog.Logger
}

func NewPaymentService(store core.StorageAdapter, logger *slog.Logger) *PaymentService {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &PaymentService{store: store, logger: logger}
}

// Confirm records a contribution for a confirmed payment and treats it
// as committed. The donor must resolve before anything is written.
func (p *PaymentService) Confirm(confirmation PaymentConfirmation) (*core.Contribution, error) {
	if confirmation.PaymentRef == "" {
		return nil, core.ErrPaymentRefMissing
	}
	if !confirmation.Amount.IsPositive() {
		return nil, core.ErrAmountNotPositive
	}

	if _, err := p.store.GetAccountByID(confirmation.DonorID); err != nil {
		if errors.Is(err, core.ErrAccountNotFound) {
			return nil, core.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to resolve donor: %w", err)
	}

	contribution, err := p.store.CreateContribution(core.NewContribution{
		Amount:        confirmation.Amount,
		Currency:      confirmation.Currency,
		CampaignID:    confirmation.CampaignID,
		DonorID:       confirmation.DonorID,
		PaymentMethod: confirmation.Method,
		Status:        "completed",
		Message:       confirmation.Message,
		IsAnonymous:   confirmation.IsAnonymous,
		PaymentRef:    confirmation.PaymentRef,
	})
	if err != nil {
		return nil, err
	}

	p.logger.Info("payment confirmed",
		"component", "payments",
		"paymentRef", confirmation.PaymentRef,
		"campaignId", confirmation.CampaignID,
		"contributionId", contribution.ID,
	)
	return contribution, nil
}
