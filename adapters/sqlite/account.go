package sqlite

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/givplus/givlocal/core"
	"gorm.io/gorm"
)

// CreateAccount inserts a new account after enforcing email uniqueness.
// The uniqueness check and the insert run against the same handle, and
// the unique index on email backstops the check.
func (s *Store) CreateAccount(input core.RegisterInput) (*core.Account, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	_, err := s.GetAccountByEmail(input.Email)
	if err == nil {
		return nil, core.ErrDuplicateEmail
	}
	if !errors.Is(err, core.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	model := accountModel{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      string(input.Role),
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, core.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return model.toCore(), nil
}

// GetAccountByID returns the account or core.ErrAccountNotFound.
func (s *Store) GetAccountByID(id uint) (*core.Account, error) {
	var model accountModel
	err := s.db.First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return model.toCore(), nil
}

// GetAccountByEmail matches the email exactly (case-sensitive), which
// keeps registration and login consistent with each other.
func (s *Store) GetAccountByEmail(email string) (*core.Account, error) {
	var model accountModel
	err := s.db.Where("email = ?", email).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return model.toCore(), nil
}

// ListAccountsByRole returns all accounts with the given role. Read
// failures degrade to an empty list so dashboards stay usable.
func (s *Store) ListAccountsByRole(role core.Role) ([]*core.Account, error) {
	var models []accountModel
	if err := s.db.Where("role = ?", string(role)).Find(&models).Error; err != nil {
		s.logger.Error("failed to list accounts by role",
			"component", "store",
			"role", role,
			"error", err,
		)
		return []*core.Account{}, nil
	}
	accounts := make([]*core.Account, 0, len(models))
	for i := range models {
		accounts = append(accounts, models[i].toCore())
	}
	return accounts, nil
}

// CountAccounts returns the number of stored accounts.
func (s *Store) CountAccounts() (int64, error) {
	var count int64
	if err := s.db.Model(&accountModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

// UpdateAccount persists profile changes. Email uniqueness still applies.
func (s *Store) UpdateAccount(a *core.Account) error {
	model := accountModel{
		ID:        a.ID,
		Email:     a.Email,
		Password:  a.Password,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
	res := s.db.Model(&accountModel{}).Where("id = ?", a.ID).Updates(&model)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return core.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return core.ErrAccountNotFound
	}
	return nil
}

// DeleteAccount removes an account. Exposed for administrative cleanup;
// the normal lifecycle never deletes accounts.
func (s *Store) DeleteAccount(id uint) error {
	res := s.db.Delete(&accountModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return core.ErrAccountNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
