package pgx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/givplus/givlocal/core"
	"github.com/jackc/pgx/v5"
)

func (a *Adapter) CreateAccount(input core.RegisterInput) (*core.Account, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	query := `INSERT INTO public.accounts (email, password, first_name, last_name, role)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`

	var id uint
	var createdAt time.Time
	err := a.pool.QueryRow(ctx, query,
		input.Email, input.Password, input.FirstName, input.LastName, string(input.Role),
	).Scan(&id, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, core.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &core.Account{
		ID:        id,
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		CreatedAt: createdAt,
	}, nil
}

func (a *Adapter) GetAccountByID(id uint) (*core.Account, error) {
	ctx := context.Background()
	q := `SELECT id, email, password, first_name, last_name, role, created_at
	      FROM public.accounts WHERE id = $1`
	return a.scanAccount(a.pool.QueryRow(ctx, q, id))
}

func (a *Adapter) GetAccountByEmail(email string) (*core.Account, error) {
	ctx := context.Background()
	q := `SELECT id, email, password, first_name, last_name, role, created_at
	      FROM public.accounts WHERE email = $1`
	return a.scanAccount(a.pool.QueryRow(ctx, q, email))
}

func (a *Adapter) scanAccount(row pgx.Row) (*core.Account, error) {
	account := &core.Account{}
	var role string
	err := row.Scan(
		&account.ID, &account.Email, &account.Password,
		&account.FirstName, &account.LastName, &role, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrAccountNotFound
		}
		return nil, err
	}
	account.Role = core.Role(role)
	return account, nil
}

func (a *Adapter) ListAccountsByRole(role core.Role) ([]*core.Account, error) {
	ctx := context.Background()
	q := `SELECT id, email, password, first_name, last_name, role, created_at
	      FROM public.accounts WHERE role = $1 ORDER BY id`
	rows, err := a.pool.Query(ctx, q, string(role))
	if err != nil {
		a.logger.Error("failed to list accounts by role",
			"component", "store",
			"role", role,
			"error", err,
		)
		return []*core.Account{}, nil
	}
	defer rows.Close()

	accounts := []*core.Account{}
	for rows.Next() {
		account := &core.Account{}
		var roleVal string
		if err := rows.Scan(
			&account.ID, &account.Email, &account.Password,
			&account.FirstName, &account.LastName, &roleVal, &account.CreatedAt,
		); err != nil {
			return nil, err
		}
		account.Role = core.Role(roleVal)
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (a *Adapter) CountAccounts() (int64, error) {
	ctx := context.Background()
	var count int64
	err := a.pool.QueryRow(ctx, `SELECT count(*) FROM public.accounts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

func (a *Adapter) UpdateAccount(account *core.Account) error {
	ctx := context.Background()
	q := `UPDATE public.accounts
	      SET email = $1, password = $2, first_name = $3, last_name = $4, role = $5
	      WHERE id = $6`
	tag, err := a.pool.Exec(ctx, q,
		account.Email, account.Password, account.FirstName, account.LastName,
		string(account.Role), account.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrAccountNotFound
	}
	return nil
}

func (a *Adapter) DeleteAccount(id uint) error {
	ctx := context.Background()
	tag, err := a.pool.Exec(ctx, `DELETE FROM public.accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrAccountNotFound
	}
	return nil
}

// isUniqueViolation matches the PostgreSQL unique_violation SQLSTATE.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "23505")
}
