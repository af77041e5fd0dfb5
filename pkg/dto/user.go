package dto

import (
	"time"

	"github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/google/uuid"
)

// UserRead is a read-optimized DTO for user queries and API responses.
// It never carries the password hash.
type UserRead struct {
	ID          uuid.UUID
	Email       string
	Name        string
	Address     user.Address
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserCreate is a DTO for creating a new user row. Password is the
// bcrypt hash.
type UserCreate struct {
	ID          uuid.UUID
	Email       string
	Password    string
	Name        string
	Address     user.Address
	PhoneNumber string
}

// UserUpdate is a DTO for updating one or more fields of a user.
type UserUpdate struct {
	Name        *string
	Address     *user.Address
	PhoneNumber *string
	Password    *string
}
