package account

import (
	"errors"
	"time"

	"github.com/amirasaad/ledger/pkg/currency"
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/google/uuid"
)

// TransactionType is the financial direction of a transaction.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
)

// Valid reports whether t is a recognised transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeDeposit || t == TypeWithdrawal
}

// TransactionStatus is the lifecycle state of a transaction.
// pending is the only non-terminal state.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s TransactionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Transaction is one financial movement against an account. Amount is in
// the smallest currency unit and is non-negative; the type carries the
// sign. Financial fields are immutable after creation.
type Transaction struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	AccountID      uuid.UUID
	Amount         int64
	Currency       currency.Code
	Type           TransactionType
	Status         TransactionStatus
	Reference      string
	IdempotencyKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TransactionBuilder constructs Transaction instances in pending state.
type TransactionBuilder struct {
	id             uuid.UUID
	userID         uuid.UUID
	accountID      uuid.UUID
	amount         int64
	currency       currency.Code
	txType         TransactionType
	reference      string
	idempotencyKey string
	createdAt      time.Time
}

// NewTransaction returns a TransactionBuilder with a fresh UUID.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		id:        uuid.New(),
		createdAt: time.Now(),
	}
}

func (b *TransactionBuilder) WithUserID(userID uuid.UUID) *TransactionBuilder {
	b.userID = userID
	return b
}

func (b *TransactionBuilder) WithAccountID(accountID uuid.UUID) *TransactionBuilder {
	b.accountID = accountID
	return b
}

func (b *TransactionBuilder) WithAmount(amount int64) *TransactionBuilder {
	b.amount = amount
	return b
}

func (b *TransactionBuilder) WithCurrency(code currency.Code) *TransactionBuilder {
	b.currency = code
	return b
}

func (b *TransactionBuilder) WithType(t TransactionType) *TransactionBuilder {
	b.txType = t
	return b
}

func (b *TransactionBuilder) WithReference(ref string) *TransactionBuilder {
	b.reference = ref
	return b
}

// WithIdempotencyKey sets the caller-supplied dedup token. Optional; when
// set it must be a well-formed UUID.
func (b *TransactionBuilder) WithIdempotencyKey(key string) *TransactionBuilder {
	b.idempotencyKey = key
	return b
}

// Build validates the creation-time invariants and returns the new
// Transaction in pending state.
func (b *TransactionBuilder) Build() (*Transaction, error) {
	if b.userID == uuid.Nil {
		return nil, errors.New("userID is required")
	}
	if b.accountID == uuid.Nil {
		return nil, errors.New("accountID is required")
	}
	if b.amount < 0 {
		return nil, domain.ErrAmountMustBeNonNegative
	}
	if !currency.IsValidFormat(string(b.currency)) || !currency.IsSupported(b.currency) {
		return nil, domain.ErrUnsupportedCurrency
	}
	if !b.txType.Valid() {
		return nil, errors.New("type must be deposit or withdrawal")
	}
	if b.idempotencyKey != "" {
		if _, err := uuid.Parse(b.idempotencyKey); err != nil {
			return nil, domain.ErrInvalidIdempotencyKey
		}
	}
	return &Transaction{
		ID:             b.id,
		UserID:         b.userID,
		AccountID:      b.accountID,
		Amount:         b.amount,
		Currency:       b.currency,
		Type:           b.txType,
		Status:         StatusPending,
		Reference:      b.reference,
		IdempotencyKey: b.idempotencyKey,
		CreatedAt:      b.createdAt,
	}, nil
}
