// Package auth provides credential verification and JWT issuance.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/ledger/config"
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/amirasaad/ledger/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Service verifies credentials and mints access tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    config.JwtConfig
	logger *slog.Logger
}

// NewService creates an auth Service.
func NewService(uow repository.UnitOfWork, cfg config.JwtConfig, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login verifies email+password and returns the user on success, or
// domain.ErrUserUnauthorized. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*dto.UserRead, error) {
	logger := s.logger.With("context", "Login")
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	u, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserUnauthorized
		}
		return nil, err
	}
	hash, err := repo.GetPasswordHash(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, hash) {
		logger.Warn("password check failed", "userID", u.ID)
		return nil, domain.ErrUserUnauthorized
	}
	logger.Info("login successful", "userID", u.ID)
	return u, nil
}

// GenerateToken mints a signed JWT for u.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID.String(),
		"email": u.Email,
		"exp":   time.Now().Add(s.cfg.Expiry).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// CurrentUserID extracts the authenticated user's ID from a verified
// token, as placed in the request context by the JWT middleware.
func (s *Service) CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	return id, nil
}
