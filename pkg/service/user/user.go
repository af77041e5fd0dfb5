// Package user provides CRUD for user profiles.
package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/ledger/pkg/domain"
	userdomain "github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/amirasaad/ledger/pkg/utils"
	"github.com/google/uuid"
)

// RegisterCommand carries a registration request. Password is plain
// text here and hashed before it reaches storage.
type RegisterCommand struct {
	Email       string
	Password    string
	Name        string
	Address     userdomain.Address
	PhoneNumber string
}

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a user Service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Register creates a new user. A duplicate email is rejected with
// domain.ErrConflict.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (u *dto.UserRead, err error) {
	logger := s.logger.With("context", "Register", "email", cmd.Email)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err := repo.GetByEmail(ctx, cmd.Email); err == nil {
			return domain.ErrConflict
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		hash, err := utils.HashPassword(cmd.Password)
		if err != nil {
			return err
		}
		built, err := userdomain.New(cmd.Email, hash, cmd.Name, cmd.Address, cmd.PhoneNumber)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, dto.UserCreate{
			ID:          built.ID,
			Email:       built.Email,
			Password:    built.Password,
			Name:        built.Name,
			Address:     built.Address,
			PhoneNumber: built.PhoneNumber,
		}); err != nil {
			return err
		}
		u, err = repo.Get(ctx, built.ID)
		return err
	})
	if err != nil {
		u = nil
		logger.Error("registration failed", "error", err)
		return
	}
	logger.Info("user registered", "userID", u.ID)
	return
}

// Get returns a user's profile.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*dto.UserRead, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, userID)
}

// Update patches a user's profile. A new password is re-hashed.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, update dto.UserUpdate) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, userID); err != nil {
			return err
		}
		if update.Password != nil {
			hash, err := utils.HashPassword(*update.Password)
			if err != nil {
				return err
			}
			update.Password = &hash
		}
		if err := repo.Update(ctx, userID, update); err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, userID); err != nil {
			return err
		}
		return repo.Delete(ctx, userID)
	})
}
