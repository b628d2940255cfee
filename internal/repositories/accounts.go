package repositories

import (
	"context"
	"errors"

	"github.com/loftchat/loft-server/internal/account"
	"github.com/loftchat/loft-server/internal/models"
	"gorm.io/gorm"
)

// AccountRepository is the user record store adapter over the "users" table.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByID does a point lookup by primary key. A missing row is (nil, nil),
// not an error.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var acct models.Account
	err := r.db.WithContext(ctx).First(&acct, "id = ?", id).Error
	switch {
	case err == nil:
		return &acct, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, &account.StoreError{Op: "find account", Err: err}
	}
}

// Insert creates the row and returns it with store-assigned fields populated.
// A primary-key or unique-email collision surfaces as account.ErrConflict so
// the caller can decide whether the race is benign.
func (r *AccountRepository) Insert(ctx context.Context, acct *models.Account) (*models.Account, error) {
	err := r.db.WithContext(ctx).Create(acct).Error
	switch {
	case err == nil:
		return acct, nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, account.ErrConflict
	default:
		return nil, &account.StoreError{Op: "insert account", Err: err}
	}
}

// Update applies a partial field patch to the row matched by id. An empty
// patch is a no-op.
func (r *AccountRepository) Update(ctx context.Context, id string, patch models.ProfilePatch) error {
	cols := patch.Columns()
	if len(cols) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return &account.StoreError{Op: "update account", Err: res.Error}
	}
	return nil
}
