// Package transaction provides the intake service for the ledger:
// validating a creation request against its target account, persisting
// the transaction in pending state, and handing it to the ledger
// processor inline so the caller observes the final status.
package transaction

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/ledger/pkg/currency"
	"github.com/amirasaad/ledger/pkg/domain"
	accountdomain "github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/ledger"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
)

// CreateCommand carries one transaction creation request. Amount is in
// the smallest currency unit and must be non-negative. IdempotencyKey is
// optional; when set it must be a well-formed UUID.
type CreateCommand struct {
	UserID         uuid.UUID
	AccountID      uuid.UUID
	Amount         int64
	Currency       currency.Code
	Type           accountdomain.TransactionType
	Reference      string
	IdempotencyKey string
}

// Service is the transaction intake.
type Service struct {
	uow       repository.UnitOfWork
	processor ledger.Processor
	logger    *slog.Logger
}

// NewService creates a transaction Service.
func NewService(uow repository.UnitOfWork, processor ledger.Processor, logger *slog.Logger) *Service {
	return &Service{uow: uow, processor: processor, logger: logger}
}

// Create validates cmd against its target account, persists a pending
// transaction and processes it inline, returning the final
// representation. A repeated idempotency key returns the previously
// created transaction without creating or reprocessing anything; if
// that transaction failed, the replay carries ErrInsufficientFunds so
// repeated submissions observe the same outcome.
//
// Errors: domain.ErrAccountNotFound when the account is absent or owned
// by someone else, domain.ErrCurrencyMismatch when the currency differs
// from the account's, domain.ErrInsufficientFunds (with the failed
// representation) when processing rejects the withdrawal.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*dto.TransactionRead, error) {
	logger := s.logger.With("context", "Create", "userID", cmd.UserID, "accountID", cmd.AccountID)

	var (
		created  *accountdomain.Transaction
		replayed *dto.TransactionRead
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}

		acct, err := accRepo.GetByUser(ctx, cmd.UserID, cmd.AccountID)
		if err != nil {
			return err
		}
		if acct.Currency != string(cmd.Currency) {
			return domain.ErrCurrencyMismatch
		}

		if cmd.IdempotencyKey != "" {
			prior, err := txRepo.GetByIdempotencyKey(ctx, cmd.UserID, cmd.AccountID, cmd.IdempotencyKey)
			if err == nil {
				replayed = prior
				return nil
			}
			if !errors.Is(err, domain.ErrTransactionNotFound) {
				return err
			}
		}

		created, err = accountdomain.NewTransaction().
			WithUserID(cmd.UserID).
			WithAccountID(acct.ID).
			WithAmount(cmd.Amount).
			WithCurrency(cmd.Currency).
			WithType(cmd.Type).
			WithReference(cmd.Reference).
			WithIdempotencyKey(cmd.IdempotencyKey).
			Build()
		if err != nil {
			return err
		}
		return txRepo.Create(ctx, dto.TransactionCreate{
			ID:             created.ID,
			UserID:         created.UserID,
			AccountID:      created.AccountID,
			Amount:         created.Amount,
			Currency:       string(created.Currency),
			Type:           string(created.Type),
			Status:         string(created.Status),
			Reference:      created.Reference,
			IdempotencyKey: created.IdempotencyKey,
		})
	})
	if err != nil {
		// Two submissions with the same key can both miss the lookup; the
		// loser hits the unique index and replays the winner's row instead
		// of surfacing the conflict.
		if cmd.IdempotencyKey != "" && errors.Is(err, domain.ErrConflict) {
			txRepo, repoErr := s.uow.TransactionRepository()
			if repoErr != nil {
				return nil, repoErr
			}
			prior, lookupErr := txRepo.GetByIdempotencyKey(ctx, cmd.UserID, cmd.AccountID, cmd.IdempotencyKey)
			if lookupErr == nil {
				return s.replay(prior, logger)
			}
		}
		logger.Error("intake failed", "error", err)
		return nil, err
	}
	if replayed != nil {
		return s.replay(replayed, logger)
	}

	// Processing runs inline, after the pending row has committed, so the
	// response carries the terminal status.
	return s.processor.Process(ctx, created.ID)
}

// replay returns a previously stored transaction for a repeated
// idempotency key. A failed row carries ErrInsufficientFunds so the
// caller observes the same outcome as the original submission.
func (s *Service) replay(prior *dto.TransactionRead, logger *slog.Logger) (*dto.TransactionRead, error) {
	logger.Info("idempotent replay, returning prior transaction",
		"transactionID", prior.ID, "status", prior.Status)
	if accountdomain.TransactionStatus(prior.Status) == accountdomain.StatusFailed {
		return prior, domain.ErrInsufficientFunds
	}
	return prior, nil
}

// Get fetches one transaction scoped to its owner and account.
func (s *Service) Get(ctx context.Context, userID, accountID, transactionID uuid.UUID) (*dto.TransactionRead, error) {
	txRepo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return txRepo.GetByUser(ctx, userID, accountID, transactionID)
}

// List returns the caller's transactions against one account in
// creation order. A foreign or unknown account yields an empty list.
func (s *Service) List(ctx context.Context, userID, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	txRepo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return txRepo.ListByAccount(ctx, userID, accountID)
}
