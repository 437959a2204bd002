// Package pgx provides a PostgreSQL storage adapter for deployments
// that outgrow the embedded store. The schema lives in schema.sql.
package pgx

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"

	"github.com/givplus/givlocal/core"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

type Adapter struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

var _ core.StorageAdapter = (*Adapter)(nil)

func New(pool *pgxpool.Pool, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Adapter{
		pool:   pool,
		logger: logger,
	}
}

// Initialize applies the schema and seeds the demo bootstrap data when
// the accounts table is empty. Idempotent.
func (a *Adapter) Initialize() error {
	ctx := context.Background()

	if _, err := a.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	count, err := a.CountAccounts()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return a.seedDemoData(ctx)
}

// Reset truncates all tables. The confirm argument must equal the
// database identifier used by the embedded store.
func (a *Adapter) Reset(confirm string) error {
	if confirm != "givplus.sqlite" {
		return core.ErrResetNotConfirmed
	}
	ctx := context.Background()
	_, err := a.pool.Exec(ctx,
		`TRUNCATE public.contributions, public.campaigns, public.accounts RESTART IDENTITY`)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	a.logger.Warn("database reset", "component", "store")
	return nil
}

func (a *Adapter) Close() error {
	a.pool.Close()
	return nil
}

func (a *Adapter) seedDemoData(ctx context.Context) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var associationID uint
	_, err = tx.Exec(ctx,
		`INSERT INTO public.accounts (email, password, first_name, last_name, role)
		 VALUES ($1, $2, 'Admin', 'System', 'admin')`,
		"admin@givplus.com", "Admin123")
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO public.accounts (email, password, first_name, last_name, role)
		 VALUES ($1, $2, 'ZAKA', 'Association', 'association') RETURNING id`,
		"contact@zaka.org", "Zaka2023").Scan(&associationID)
	if err != nil {
		return fmt.Errorf("failed to seed association account: %w", err)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO public.campaigns
		 (title, description, target_amount, current_amount, association_id, is_active, donation_count)
		 VALUES ($1, $2, 10000, 0, $3, TRUE, 0)`,
		"ZAKA - Disaster Relief", "Support for victims of natural disasters", associationID)
	if err != nil {
		return fmt.Errorf("failed to seed campaign: %w", err)
	}
	return tx.Commit(ctx)
}
