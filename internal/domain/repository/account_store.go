package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no account matches the lookup key.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateKey is returned by Insert when the email or mobile is
	// already registered. The backing store enforces this atomically:
	// two concurrent inserts for the same key cannot both succeed.
	ErrDuplicateKey = errors.New("email or mobile already registered")
)

// AccountStore defines the persistence contract for accounts.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindByMobile(ctx context.Context, mobile string) (*entity.Account, error)
	FindByID(ctx context.Context, id string) (*entity.Account, error)
	Insert(ctx context.Context, a *entity.Account) error
	// UpdateByID applies the partial field set and returns the updated
	// account, or ErrNotFound.
	UpdateByID(ctx context.Context, id string, fields map[string]interface{}) (*entity.Account, error)
	// Save persists in-place mutation of an existing account
	// (last-write-wins; no version check).
	Save(ctx context.Context, a *entity.Account) error
}
