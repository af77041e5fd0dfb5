// Package account provides CRUD for bank accounts. Balance mutation is
// not here: only the ledger processor writes the balance field.
package account

import (
	"context"
	"log/slog"

	"github.com/amirasaad/ledger/pkg/currency"
	"github.com/amirasaad/ledger/pkg/domain"
	accountdomain "github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
)

// Service provides business logic for account CRUD.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates an account Service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create opens a new account for userID. Duplicate (user, name) pairs
// are rejected with domain.ErrConflict.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, name string, code currency.Code) (acct *dto.AccountRead, err error) {
	logger := s.logger.With("context", "Create", "userID", userID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		existing, err := repo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, a := range existing {
			if a.Name == name {
				return domain.ErrConflict
			}
		}
		built, err := accountdomain.New().
			WithUserID(userID).
			WithName(name).
			WithCurrency(code).
			Build()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, dto.AccountCreate{
			ID:       built.ID,
			UserID:   built.UserID,
			Name:     built.Name,
			Number:   built.Number,
			SortCode: built.SortCode,
			Type:     string(built.Type),
			Currency: string(built.Currency),
			Balance:  built.Balance,
		}); err != nil {
			return err
		}
		acct, err = repo.Get(ctx, built.ID)
		return err
	})
	if err != nil {
		acct = nil
		logger.Error("account creation failed", "error", err)
		return
	}
	logger.Info("account created", "accountID", acct.ID)
	return
}

// Get returns one of the caller's accounts, or ErrAccountNotFound.
func (s *Service) Get(ctx context.Context, userID, accountID uuid.UUID) (*dto.AccountRead, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return repo.GetByUser(ctx, userID, accountID)
}

// List returns all accounts owned by userID.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, userID)
}

// Rename changes an account's display name.
func (s *Service) Rename(ctx context.Context, userID, accountID uuid.UUID, name string) (acct *dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := repo.GetByUser(ctx, userID, accountID); err != nil {
			return err
		}
		siblings, err := repo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, a := range siblings {
			if a.Name == name && a.ID != accountID {
				return domain.ErrConflict
			}
		}
		if err := repo.Update(ctx, accountID, dto.AccountUpdate{Name: &name}); err != nil {
			return err
		}
		acct, err = repo.Get(ctx, accountID)
		return err
	})
	if err != nil {
		acct = nil
	}
	return
}

// Delete removes one of the caller's accounts.
func (s *Service) Delete(ctx context.Context, userID, accountID uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := repo.GetByUser(ctx, userID, accountID); err != nil {
			return err
		}
		return repo.Delete(ctx, accountID)
	})
}
