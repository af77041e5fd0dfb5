// Package account holds the account and transaction aggregates. Both are
// constructed through builders that enforce the creation-time invariants;
// once persisted, a transaction's financial fields are never mutated and
// its status moves pending -> completed|failed exactly once.
package account

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/amirasaad/ledger/pkg/currency"
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/google/uuid"
)

// Type classifies an account.
type Type string

// TypePersonal is the only account type currently issued.
const TypePersonal Type = "personal"

// Account represents a user's bank account.
//
// Balance is a cache: whenever no processing is in flight it equals the
// fold of the account's completed transactions in creation order. Only
// the ledger processor writes it.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Number    string
	SortCode  string
	Type      Type
	Currency  currency.Code
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Builder constructs Account instances, validating invariants in Build.
type Builder struct {
	id        uuid.UUID
	userID    uuid.UUID
	name      string
	currency  currency.Code
	createdAt time.Time
}

// New returns a Builder with a fresh UUID and the default currency.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		currency:  currency.DefaultCurrency,
		createdAt: time.Now(),
	}
}

// WithUserID sets the owning user. Mandatory.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithName sets the display name, e.g. "Savings". Mandatory.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithCurrency sets the account currency. Defaults to the system currency.
func (b *Builder) WithCurrency(code currency.Code) *Builder {
	b.currency = code
	return b
}

// Build validates the invariants and returns the new Account with a
// generated account number and sort code and a zero balance.
func (b *Builder) Build() (*Account, error) {
	if !currency.IsValidFormat(string(b.currency)) || !currency.IsSupported(b.currency) {
		return nil, domain.ErrUnsupportedCurrency
	}
	if b.userID == uuid.Nil {
		return nil, errors.New("userID is required")
	}
	if b.name == "" {
		return nil, errors.New("name is required")
	}
	return &Account{
		ID:        b.id,
		UserID:    b.userID,
		Name:      b.name,
		Number:    generateAccountNumber(),
		SortCode:  generateSortCode(),
		Type:      TypePersonal,
		Currency:  b.currency,
		Balance:   0,
		CreatedAt: b.createdAt,
	}, nil
}

// generateAccountNumber returns an 8-digit account number.
func generateAccountNumber() string {
	return fmt.Sprintf("%08d", rand.Intn(100000000))
}

// generateSortCode returns a 6-digit sort code.
func generateSortCode() string {
	return fmt.Sprintf("%02d-%02d-%02d", rand.Intn(100), rand.Intn(100), rand.Intn(100))
}
