package transaction

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/ledger/internal/fixtures"
	"github.com/amirasaad/ledger/pkg/currency"
	"github.com/amirasaad/ledger/pkg/domain"
	accountdomain "github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/ledger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *fixtures.MemoryUoW) {
	t.Helper()
	uow := fixtures.NewMemoryUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	processor := ledger.NewProcessor(uow, ledger.NewLockCoordinator(2*time.Second), logger)
	return NewService(uow, processor, logger), uow
}

func seedAccount(t *testing.T, uow *fixtures.MemoryUoW, userID uuid.UUID, currencyCode string) uuid.UUID {
	t.Helper()
	accRepo, err := uow.AccountRepository()
	require.NoError(t, err)
	accountID := uuid.New()
	require.NoError(t, accRepo.Create(context.Background(), dto.AccountCreate{
		ID:       accountID,
		UserID:   userID,
		Name:     "Current Account",
		Currency: currencyCode,
	}))
	return accountID
}

func TestCreateDeposit(t *testing.T) {
	svc, uow := newTestService(t)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID, "GBP")

	result, err := svc.Create(context.Background(), CreateCommand{
		UserID:    userID,
		AccountID: accountID,
		Amount:    1000,
		Currency:  currency.Code("GBP"),
		Type:      accountdomain.TypeDeposit,
		Reference: "salary",
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", result.Status)
	assert.Equal(t, int64(1000), result.Amount)
	assert.Equal(t, accountID, result.AccountID)
}

func TestCreateWithdrawalInsufficientFunds(t *testing.T) {
	svc, uow := newTestService(t)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID, "GBP")

	result, err := svc.Create(context.Background(), CreateCommand{
		UserID:    userID,
		AccountID: accountID,
		Amount:    500,
		Currency:  currency.Code("GBP"),
		Type:      accountdomain.TypeWithdrawal,
		Reference: "rent",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.NotNil(t, result)
	assert.Equal(t, "failed", result.Status)

	// The failed transaction is recorded, not discarded.
	rows := uow.Transactions()
	require.Len(t, rows, 1)
	assert.Equal(t, "failed", rows[0].Status)
}

func TestCreateUnknownAccount(t *testing.T) {
	svc, uow := newTestService(t)

	_, err := svc.Create(context.Background(), CreateCommand{
		UserID:    uuid.New(),
		AccountID: uuid.New(),
		Amount:    100,
		Currency:  currency.Code("GBP"),
		Type:      accountdomain.TypeDeposit,
		Reference: "test",
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Empty(t, uow.Transactions())
}

func TestCreateForeignAccountLooksAbsent(t *testing.T) {
	svc, uow := newTestService(t)
	ownerID := uuid.New()
	accountID := seedAccount(t, uow, ownerID, "GBP")

	// Another user targeting the account gets not-found, never forbidden.
	_, err := svc.Create(context.Background(), CreateCommand{
		UserID:    uuid.New(),
		AccountID: accountID,
		Amount:    100,
		Currency:  currency.Code("GBP"),
		Type:      accountdomain.TypeDeposit,
		Reference: "test",
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Empty(t, uow.Transactions())
}

func TestCreateCurrencyMismatch(t *testing.T) {
	svc, uow := newTestService(t)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID, "GBP")

	_, err := svc.Create(context.Background(), CreateCommand{
		UserID:    userID,
		AccountID: accountID,
		Amount:    100,
		Currency:  currency.Code("USD"),
		Type:      accountdomain.TypeDeposit,
		Reference: "test",
	})
	require.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	// Rejected before intake: no row of any status exists.
	assert.Empty(t, uow.Transactions())
}

func TestCreateNegativeAmountRejected(t *testing.T) {
	svc, uow := newTestService(t)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID, "GBP")

	_, err := svc.Create(context.Background(), CreateCommand{
		UserID:    userID,
		AccountID: accountID,
		Amount:    -1,
		Currency:  currency.Code("GBP"),
		Type:      accountdomain.TypeDeposit,
		Reference: "test",
	})
	require.ErrorIs(t, err, domain.ErrAmountMustBeNonNegative)
	assert.Empty(t, uow.Transactions())
}

func TestCreateIdempotentReplay(t *testing.T) {
	svc, uow := newTestService(t)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID, "GBP")
	key := uuid.NewString()

	cmd := CreateCommand{
		UserID:         userID,
		AccountID:      accountID,
		Amount:         1000,
		Currency:       currency.Code("GBP"),
		Type:           accountdomain.TypeDeposit,
		Reference:      "salary",
		IdempotencyKey: key,
	}
	first, err := svc.Create(context.Background(), cmd)
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "completed", second.Status)

	// One row, applied once.
	require.Len(t, uow.Transactions(), 1)
	accRepo, err := uow.AccountRepository()
	require.NoError(t, err)
	acct, err := accRepo.Get(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), acct.Balance)
}

func TestCreateIdempotentReplayOfFailed(t *testing.T) {
	svc, uow := newTestService(t)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID, "GBP")
	key := uuid.NewString()

	cmd := CreateCommand{
		UserID:         userID,
		AccountID:      accountID,
		Amount:         500,
		Currency:       currency.Code("GBP"),
		Type:           accountdomain.TypeWithdrawal,
		Reference:      "rent",
		IdempotencyKey: key,
	}
	first, err := svc.Create(context.Background(), cmd)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.NotNil(t, first)
	assert.Equal(t, "failed", first.Status)

	// Resubmitting the failed transaction reports the same outcome.
	second, err := svc.Create(context.Background(), cmd)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "failed", second.Status)
	require.Len(t, uow.Transactions(), 1)
}

func TestCreateDuplicateKeyRaceReplays(t *testing.T) {
	svc, uow := newTestService(t)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID, "GBP")
	key := uuid.NewString()

	cmd := CreateCommand{
		UserID:         userID,
		AccountID:      accountID,
		Amount:         1000,
		Currency:       currency.Code("GBP"),
		Type:           accountdomain.TypeDeposit,
		Reference:      "salary",
		IdempotencyKey: key,
	}
	first, err := svc.Create(context.Background(), cmd)
	require.NoError(t, err)

	// Force the lookup to miss so the create hits the unique index, as a
	// second submission racing the first would.
	uow.TxKeyLookupMisses = 1
	second, err := svc.Create(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, uow.Transactions(), 1)
}

func TestCreateMalformedIdempotencyKey(t *testing.T) {
	svc, uow := newTestService(t)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID, "GBP")

	_, err := svc.Create(context.Background(), CreateCommand{
		UserID:         userID,
		AccountID:      accountID,
		Amount:         100,
		Currency:       currency.Code("GBP"),
		Type:           accountdomain.TypeDeposit,
		Reference:      "test",
		IdempotencyKey: "not-a-uuid",
	})
	require.ErrorIs(t, err, domain.ErrInvalidIdempotencyKey)
	assert.Empty(t, uow.Transactions())
}

func TestGetScopedToOwnerAndAccount(t *testing.T) {
	svc, uow := newTestService(t)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID, "GBP")

	created, err := svc.Create(context.Background(), CreateCommand{
		UserID:    userID,
		AccountID: accountID,
		Amount:    100,
		Currency:  currency.Code("GBP"),
		Type:      accountdomain.TypeDeposit,
		Reference: "test",
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), userID, accountID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Another user sees not-found for the same transaction.
	_, err = svc.Get(context.Background(), uuid.New(), accountID, created.ID)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)

	// Wrong account in the path sees not-found too.
	_, err = svc.Get(context.Background(), userID, uuid.New(), created.ID)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestListKeepsCreationOrder(t *testing.T) {
	svc, uow := newTestService(t)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID, "GBP")

	references := []string{"first", "second", "third"}
	for _, ref := range references {
		_, err := svc.Create(context.Background(), CreateCommand{
			UserID:    userID,
			AccountID: accountID,
			Amount:    100,
			Currency:  currency.Code("GBP"),
			Type:      accountdomain.TypeDeposit,
			Reference: ref,
		})
		require.NoError(t, err)
	}

	rows, err := svc.List(context.Background(), userID, accountID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, ref := range references {
		assert.Equal(t, ref, rows[i].Reference)
	}
}

func TestListForeignAccountIsEmpty(t *testing.T) {
	svc, uow := newTestService(t)
	userID := uuid.New()
	accountID := seedAccount(t, uow, userID, "GBP")
	_, err := svc.Create(context.Background(), CreateCommand{
		UserID:    userID,
		AccountID: accountID,
		Amount:    100,
		Currency:  currency.Code("GBP"),
		Type:      accountdomain.TypeDeposit,
		Reference: "test",
	})
	require.NoError(t, err)

	rows, err := svc.List(context.Background(), uuid.New(), accountID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
