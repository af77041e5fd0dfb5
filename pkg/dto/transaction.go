package dto

import (
	"time"

	"github.com/google/uuid"
)

// TransactionRead is a read-optimized DTO for transaction queries and
// API responses. Amount is in the smallest currency unit.
type TransactionRead struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	AccountID      uuid.UUID
	Amount         int64
	Currency       string
	Type           string
	Status         string
	Reference      string
	IdempotencyKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TransactionCreate is a DTO for creating a new transaction row.
type TransactionCreate struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	AccountID      uuid.UUID
	Amount         int64
	Currency       string
	Type           string
	Status         string
	Reference      string
	IdempotencyKey string
}

// TransactionUpdate is a DTO for updating a transaction. Status is the
// only mutable field; financial fields are immutable after creation.
type TransactionUpdate struct {
	Status *string
}
