package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountRead is a read-optimized DTO for account queries and API
// responses. Balance is in the smallest currency unit.
type AccountRead struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Number    string
	SortCode  string
	Type      string
	Currency  string
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountCreate is a DTO for creating a new account row.
type AccountCreate struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Number   string
	SortCode string
	Type     string
	Currency string
	Balance  int64
}

// AccountUpdate is a DTO for updating one or more fields of an account.
// Only the ledger processor sets Balance.
type AccountUpdate struct {
	Name    *string
	Balance *int64
}
