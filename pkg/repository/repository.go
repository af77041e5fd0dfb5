// Package repository defines the storage contracts consumed by the
// service and ledger layers. Implementations live under infra/; tests
// use the in-memory fixtures. All methods take a context and return
// domain sentinel errors for missing rows, never driver errors.
package repository

import (
	"context"

	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/google/uuid"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, create dto.AccountCreate) error
	// Get retrieves an account by ID regardless of owner. Used by the
	// ledger processor, which trusts the ownership check done at intake.
	Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)
	// GetByUser retrieves an account only if userID owns it. A foreign
	// account is indistinguishable from a missing one.
	GetByUser(ctx context.Context, userID, id uuid.UUID) (*dto.AccountRead, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error)
	Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository defines data access for transactions.
// List methods return rows in creation order.
type TransactionRepository interface {
	Create(ctx context.Context, create dto.TransactionCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)
	// GetByUser retrieves a transaction scoped to its owner and account.
	GetByUser(ctx context.Context, userID, accountID, id uuid.UUID) (*dto.TransactionRead, error)
	// GetByIdempotencyKey resolves a prior submission with the same
	// caller-supplied key, or ErrTransactionNotFound.
	GetByIdempotencyKey(ctx context.Context, userID, accountID uuid.UUID, key string) (*dto.TransactionRead, error)
	ListByAccount(ctx context.Context, userID, accountID uuid.UUID) ([]*dto.TransactionRead, error)
	// ListCompletedByAccount returns the account's completed transactions
	// in creation order; this is the balance calculator's input.
	ListCompletedByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error)
	Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, create dto.UserCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)
	GetByEmail(ctx context.Context, email string) (*dto.UserRead, error)
	// GetPasswordHash returns the stored bcrypt hash for a user. Kept off
	// UserRead so the hash never travels with profile reads.
	GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error)
	Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
