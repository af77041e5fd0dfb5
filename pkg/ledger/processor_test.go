package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/ledger/internal/fixtures"
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProcessor(t *testing.T, uow *fixtures.MemoryUoW) Processor {
	t.Helper()
	return NewProcessor(uow, NewLockCoordinator(2*time.Second), testLogger())
}

func seedAccount(t *testing.T, uow *fixtures.MemoryUoW, userID uuid.UUID) uuid.UUID {
	t.Helper()
	accRepo, err := uow.AccountRepository()
	require.NoError(t, err)
	accountID := uuid.New()
	require.NoError(t, accRepo.Create(context.Background(), dto.AccountCreate{
		ID:       accountID,
		UserID:   userID,
		Name:     "Current Account",
		Currency: "GBP",
	}))
	return accountID
}

func seedTransaction(t *testing.T, uow *fixtures.MemoryUoW, userID, accountID uuid.UUID, txType string, amount int64, status string) uuid.UUID {
	t.Helper()
	txRepo, err := uow.TransactionRepository()
	require.NoError(t, err)
	id := uuid.New()
	require.NoError(t, txRepo.Create(context.Background(), dto.TransactionCreate{
		ID:        id,
		UserID:    userID,
		AccountID: accountID,
		Amount:    amount,
		Currency:  "GBP",
		Type:      txType,
		Status:    status,
		Reference: "seed",
	}))
	return id
}

// setBalance aligns the cached balance with transactions seeded
// directly through the repository, which bypasses the processor.
func setBalance(t *testing.T, uow *fixtures.MemoryUoW, accountID uuid.UUID, balance int64) {
	t.Helper()
	accRepo, err := uow.AccountRepository()
	require.NoError(t, err)
	require.NoError(t, accRepo.Update(context.Background(), accountID, dto.AccountUpdate{Balance: &balance}))
}

func accountBalance(t *testing.T, uow *fixtures.MemoryUoW, accountID uuid.UUID) int64 {
	t.Helper()
	accRepo, err := uow.AccountRepository()
	require.NoError(t, err)
	acct, err := accRepo.Get(context.Background(), accountID)
	require.NoError(t, err)
	return acct.Balance
}

func TestProcessCompletesDeposit(t *testing.T) {
	uow := fixtures.NewMemoryUoW()
	p := newTestProcessor(t, uow)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID)
	txID := seedTransaction(t, uow, userID, accountID, "deposit", 2500, "pending")

	result, err := p.Process(context.Background(), txID)
	require.NoError(t, err)
	assert.Equal(t, "completed", result.Status)
	assert.Equal(t, int64(2500), accountBalance(t, uow, accountID))
}

func TestProcessRejectsOverdraft(t *testing.T) {
	uow := fixtures.NewMemoryUoW()
	p := newTestProcessor(t, uow)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID)
	seedTransaction(t, uow, userID, accountID, "deposit", 100, "completed")
	setBalance(t, uow, accountID, 100)
	txID := seedTransaction(t, uow, userID, accountID, "withdrawal", 150, "pending")

	result, err := p.Process(context.Background(), txID)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.NotNil(t, result)
	assert.Equal(t, "failed", result.Status)

	// The failed status commits; the balance stays untouched.
	txRepo, err := uow.TransactionRepository()
	require.NoError(t, err)
	stored, err := txRepo.Get(context.Background(), txID)
	require.NoError(t, err)
	assert.Equal(t, "failed", stored.Status)
	assert.Equal(t, int64(100), accountBalance(t, uow, accountID))
}

func TestProcessConcurrentDeposits(t *testing.T) {
	uow := fixtures.NewMemoryUoW()
	p := newTestProcessor(t, uow)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID)

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = seedTransaction(t, uow, userID, accountID, "deposit", 100, "pending")
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			result, err := p.Process(context.Background(), id)
			assert.NoError(t, err)
			assert.Equal(t, "completed", result.Status)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int64(300), accountBalance(t, uow, accountID))
}

func TestProcessConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	uow := fixtures.NewMemoryUoW()
	p := newTestProcessor(t, uow)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID)
	seedTransaction(t, uow, userID, accountID, "deposit", 100, "completed")
	setBalance(t, uow, accountID, 100)

	first := seedTransaction(t, uow, userID, accountID, "withdrawal", 100, "pending")
	second := seedTransaction(t, uow, userID, accountID, "withdrawal", 100, "pending")

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		completed    int
		insufficient int
	)
	for _, id := range []uuid.UUID{first, second} {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			result, err := p.Process(context.Background(), id)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				assert.Equal(t, "completed", result.Status)
				completed++
			case errors.Is(err, domain.ErrInsufficientFunds):
				assert.Equal(t, "failed", result.Status)
				insufficient++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	// Exactly one withdrawal wins, the other fails, never a negative balance.
	assert.Equal(t, 1, completed)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(0), accountBalance(t, uow, accountID))
}

func TestProcessUnknownTransaction(t *testing.T) {
	uow := fixtures.NewMemoryUoW()
	p := newTestProcessor(t, uow)

	_, err := p.Process(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestProcessTerminalTransactionIsIdempotent(t *testing.T) {
	uow := fixtures.NewMemoryUoW()
	p := newTestProcessor(t, uow)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID)
	txID := seedTransaction(t, uow, userID, accountID, "deposit", 500, "pending")

	_, err := p.Process(context.Background(), txID)
	require.NoError(t, err)
	require.Equal(t, int64(500), accountBalance(t, uow, accountID))

	// A second attempt observes the terminal state and never re-applies.
	result, err := p.Process(context.Background(), txID)
	require.NoError(t, err)
	assert.Equal(t, "completed", result.Status)
	assert.Equal(t, int64(500), accountBalance(t, uow, accountID))
}

func TestProcessInfraErrorLeavesPending(t *testing.T) {
	uow := fixtures.NewMemoryUoW()
	p := newTestProcessor(t, uow)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID)
	txID := seedTransaction(t, uow, userID, accountID, "deposit", 100, "pending")

	storageErr := errors.New("write failed")
	uow.TxUpdateErr = storageErr

	_, err := p.Process(context.Background(), txID)
	require.ErrorIs(t, err, storageErr)

	// The storage transaction rolled back wholesale.
	uow.TxUpdateErr = nil
	txRepo, err := uow.TransactionRepository()
	require.NoError(t, err)
	stored, err := txRepo.Get(context.Background(), txID)
	require.NoError(t, err)
	assert.Equal(t, "pending", stored.Status)
	assert.Equal(t, int64(0), accountBalance(t, uow, accountID))
}
