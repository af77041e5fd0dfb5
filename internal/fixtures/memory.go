// Package fixtures provides an in-memory UnitOfWork for service and
// ledger tests. Rows live in mutex-guarded slices so list methods keep
// creation order, and Do snapshots the tables so a failed closure rolls
// back like a real storage transaction.
package fixtures

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
)

// MemoryUoW is an in-memory repository.UnitOfWork. The zero value is
// not usable; construct with NewMemoryUoW.
type MemoryUoW struct {
	txMu sync.Mutex // serializes Do blocks, like conflicting DB transactions
	mu   sync.Mutex // guards the tables

	accounts     []dto.AccountRead
	transactions []dto.TransactionRead
	users        []dto.UserRead
	passwords    map[uuid.UUID]string

	// Error injection for failure-path tests. When set, the matching
	// repository method returns the error instead of mutating state.
	TxUpdateErr      error
	AccountUpdateErr error

	// TxKeyLookupMisses makes the next n idempotency-key lookups report
	// not-found, simulating two submissions racing past the lookup.
	TxKeyLookupMisses int
}

// NewMemoryUoW creates an empty in-memory unit of work.
func NewMemoryUoW() *MemoryUoW {
	return &MemoryUoW{passwords: make(map[uuid.UUID]string)}
}

// Do runs fn holding the transaction mutex. On error every table is
// restored to its pre-fn snapshot.
func (m *MemoryUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	accounts := append([]dto.AccountRead(nil), m.accounts...)
	transactions := append([]dto.TransactionRead(nil), m.transactions...)
	users := append([]dto.UserRead(nil), m.users...)
	passwords := make(map[uuid.UUID]string, len(m.passwords))
	for id, hash := range m.passwords {
		passwords[id] = hash
	}
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.accounts = accounts
		m.transactions = transactions
		m.users = users
		m.passwords = passwords
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *MemoryUoW) AccountRepository() (repository.AccountRepository, error) {
	return &memoryAccountRepository{store: m}, nil
}

func (m *MemoryUoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &memoryTransactionRepository{store: m}, nil
}

func (m *MemoryUoW) UserRepository() (repository.UserRepository, error) {
	return &memoryUserRepository{store: m}, nil
}

// Transactions returns a copy of every transaction row in creation
// order. Test helper.
func (m *MemoryUoW) Transactions() []dto.TransactionRead {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dto.TransactionRead(nil), m.transactions...)
}

type memoryAccountRepository struct {
	store *MemoryUoW
}

func (r *memoryAccountRepository) Create(ctx context.Context, create dto.AccountCreate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	r.store.accounts = append(r.store.accounts, dto.AccountRead{
		ID:        create.ID,
		UserID:    create.UserID,
		Name:      create.Name,
		Number:    create.Number,
		SortCode:  create.SortCode,
		Type:      create.Type,
		Currency:  create.Currency,
		Balance:   create.Balance,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return nil
}

func (r *memoryAccountRepository) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.accounts {
		if r.store.accounts[i].ID == id {
			row := r.store.accounts[i]
			return &row, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memoryAccountRepository) GetByUser(ctx context.Context, userID, id uuid.UUID) (*dto.AccountRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.accounts {
		if r.store.accounts[i].ID == id && r.store.accounts[i].UserID == userID {
			row := r.store.accounts[i]
			return &row, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memoryAccountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*dto.AccountRead, 0)
	for i := range r.store.accounts {
		if r.store.accounts[i].UserID == userID {
			row := r.store.accounts[i]
			result = append(result, &row)
		}
	}
	return result, nil
}

func (r *memoryAccountRepository) Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.AccountUpdateErr != nil {
		return r.store.AccountUpdateErr
	}
	for i := range r.store.accounts {
		if r.store.accounts[i].ID != id {
			continue
		}
		if update.Name != nil {
			r.store.accounts[i].Name = *update.Name
		}
		if update.Balance != nil {
			r.store.accounts[i].Balance = *update.Balance
		}
		r.store.accounts[i].UpdatedAt = time.Now()
		return nil
	}
	return domain.ErrAccountNotFound
}

func (r *memoryAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.accounts {
		if r.store.accounts[i].ID == id {
			r.store.accounts = append(r.store.accounts[:i], r.store.accounts[i+1:]...)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

type memoryTransactionRepository struct {
	store *MemoryUoW
}

func (r *memoryTransactionRepository) Create(ctx context.Context, create dto.TransactionCreate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if create.IdempotencyKey != "" {
		for i := range r.store.transactions {
			row := &r.store.transactions[i]
			if row.UserID == create.UserID &&
				row.AccountID == create.AccountID &&
				row.IdempotencyKey == create.IdempotencyKey {
				return domain.ErrConflict
			}
		}
	}
	now := time.Now()
	r.store.transactions = append(r.store.transactions, dto.TransactionRead{
		ID:             create.ID,
		UserID:         create.UserID,
		AccountID:      create.AccountID,
		Amount:         create.Amount,
		Currency:       create.Currency,
		Type:           create.Type,
		Status:         create.Status,
		Reference:      create.Reference,
		IdempotencyKey: create.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	return nil
}

func (r *memoryTransactionRepository) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.transactions {
		if r.store.transactions[i].ID == id {
			row := r.store.transactions[i]
			return &row, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (r *memoryTransactionRepository) GetByUser(ctx context.Context, userID, accountID, id uuid.UUID) (*dto.TransactionRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.transactions {
		row := &r.store.transactions[i]
		if row.ID == id && row.UserID == userID && row.AccountID == accountID {
			copied := *row
			return &copied, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (r *memoryTransactionRepository) GetByIdempotencyKey(ctx context.Context, userID, accountID uuid.UUID, key string) (*dto.TransactionRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.TxKeyLookupMisses > 0 {
		r.store.TxKeyLookupMisses--
		return nil, domain.ErrTransactionNotFound
	}
	for i := range r.store.transactions {
		row := &r.store.transactions[i]
		if row.UserID == userID && row.AccountID == accountID && row.IdempotencyKey == key {
			copied := *row
			return &copied, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (r *memoryTransactionRepository) ListByAccount(ctx context.Context, userID, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*dto.TransactionRead, 0)
	for i := range r.store.transactions {
		row := r.store.transactions[i]
		if row.UserID == userID && row.AccountID == accountID {
			result = append(result, &row)
		}
	}
	return result, nil
}

func (r *memoryTransactionRepository) ListCompletedByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*dto.TransactionRead, 0)
	for i := range r.store.transactions {
		row := r.store.transactions[i]
		if row.AccountID == accountID && row.Status == "completed" {
			result = append(result, &row)
		}
	}
	return result, nil
}

func (r *memoryTransactionRepository) Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.TxUpdateErr != nil {
		return r.store.TxUpdateErr
	}
	for i := range r.store.transactions {
		if r.store.transactions[i].ID != id {
			continue
		}
		if update.Status != nil {
			r.store.transactions[i].Status = *update.Status
		}
		r.store.transactions[i].UpdatedAt = time.Now()
		return nil
	}
	return domain.ErrTransactionNotFound
}

type memoryUserRepository struct {
	store *MemoryUoW
}

func (r *memoryUserRepository) Create(ctx context.Context, create dto.UserCreate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	r.store.users = append(r.store.users, dto.UserRead{
		ID:          create.ID,
		Email:       create.Email,
		Name:        create.Name,
		Address:     create.Address,
		PhoneNumber: create.PhoneNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	r.store.passwords[create.ID] = create.Password
	return nil
}

func (r *memoryUserRepository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].ID == id {
			row := r.store.users[i]
			return &row, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].Email == email {
			row := r.store.users[i]
			return &row, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepository) GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	hash, ok := r.store.passwords[id]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return hash, nil
}

func (r *memoryUserRepository) Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].ID != id {
			continue
		}
		if update.Name != nil {
			r.store.users[i].Name = *update.Name
		}
		if update.Address != nil {
			r.store.users[i].Address = *update.Address
		}
		if update.PhoneNumber != nil {
			r.store.users[i].PhoneNumber = *update.PhoneNumber
		}
		if update.Password != nil {
			r.store.passwords[id] = *update.Password
		}
		r.store.users[i].UpdatedAt = time.Now()
		return nil
	}
	return domain.ErrUserNotFound
}

func (r *memoryUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].ID == id {
			r.store.users = append(r.store.users[:i], r.store.users[i+1:]...)
			delete(r.store.passwords, id)
			return nil
		}
	}
	return domain.ErrUserNotFound
}
