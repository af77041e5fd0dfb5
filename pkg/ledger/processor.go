package ledger

import (
	"context"
	"log/slog"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
)

// Processor moves a pending transaction to its terminal state. Intake
// calls it synchronously today; the interface exists so an asynchronous
// worker could consume the same entry point unchanged.
type Processor interface {
	Process(ctx context.Context, transactionID uuid.UUID) (*dto.TransactionRead, error)
}

// processor serializes all balance processing per account: it acquires
// exclusive processing rights for the transaction's account, recomputes
// the balance from the completed transaction history, decides
// accept/reject, and persists the outcome in a single storage
// transaction.
type processor struct {
	uow    repository.UnitOfWork
	locks  *LockCoordinator
	logger *slog.Logger
}

// NewProcessor returns the production Processor.
func NewProcessor(uow repository.UnitOfWork, locks *LockCoordinator, logger *slog.Logger) Processor {
	return &processor{uow: uow, locks: locks, logger: logger}
}

// Process handles one pending transaction:
//
//  1. Fetch the transaction (unlocked) to learn its account.
//  2. Acquire the account lock; released unconditionally on return.
//  3. In one storage transaction: re-fetch the transaction and account,
//     fold the completed set into the current balance, apply this
//     transaction, and persist either failed (balance untouched) or
//     completed plus the new balance.
//
// A would-be negative balance is a business outcome: the failed status
// commits and ErrInsufficientFunds is returned alongside the final
// representation. Any infrastructure error aborts the storage
// transaction wholesale, leaving the transaction pending; there is no
// automatic retry, reconciliation is out of band.
func (p *processor) Process(ctx context.Context, transactionID uuid.UUID) (*dto.TransactionRead, error) {
	logger := p.logger.With("context", "Process", "transactionID", transactionID)

	txRepo, err := p.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	tx, err := txRepo.Get(ctx, transactionID)
	if err != nil {
		logger.Error("transaction lookup failed", "error", err)
		return nil, err
	}

	release, err := p.locks.Acquire(ctx, tx.AccountID)
	if err != nil {
		logger.Error("could not acquire account lock", "accountID", tx.AccountID, "error", err)
		return nil, err
	}
	defer release()

	var (
		result       *dto.TransactionRead
		insufficient bool
	)
	err = p.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}

		// Re-fetch inside the lock: the first read raced other attempts.
		tx, err := txRepo.Get(ctx, transactionID)
		if err != nil {
			return err
		}
		if account.TransactionStatus(tx.Status).Terminal() {
			// Already transitioned by an earlier attempt.
			result = tx
			return nil
		}

		acct, err := accRepo.Get(ctx, tx.AccountID)
		if err != nil {
			return err
		}

		completed, err := txRepo.ListCompletedByAccount(ctx, acct.ID)
		if err != nil {
			return err
		}

		// Never trust the cached account balance; fold the history.
		currentBalance := Balance(completed)
		candidateBalance := Apply(currentBalance, tx)

		status := string(account.StatusCompleted)
		if candidateBalance < 0 {
			status = string(account.StatusFailed)
			insufficient = true
		} else {
			if err := accRepo.Update(ctx, acct.ID, dto.AccountUpdate{Balance: &candidateBalance}); err != nil {
				return err
			}
		}
		if err := txRepo.Update(ctx, tx.ID, dto.TransactionUpdate{Status: &status}); err != nil {
			return err
		}

		tx.Status = status
		result = tx
		logger.Info("transaction processed",
			"accountID", acct.ID,
			"status", status,
			"balance", currentBalance,
			"candidateBalance", candidateBalance,
		)
		return nil
	})
	if err != nil {
		logger.Error("processing aborted, transaction stays pending", "error", err)
		return nil, err
	}
	if insufficient {
		return result, domain.ErrInsufficientFunds
	}
	return result, nil
}
