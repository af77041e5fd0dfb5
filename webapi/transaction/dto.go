package transaction

import (
	"time"

	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/google/uuid"
)

// CreateTransactionRequest is the body of POST
// /accounts/:accountId/transactions. Amount is in the smallest currency
// unit and must be non-negative.
type CreateTransactionRequest struct {
	Amount    int64  `json:"amount" validate:"min=0"`
	Currency  string `json:"currency" validate:"required,len=3"`
	Type      string `json:"type" validate:"required,oneof=deposit withdrawal"`
	Reference string `json:"reference" validate:"required"`
}

// TransactionResponse is the external representation of a transaction.
// The internal storage key is never exposed.
type TransactionResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	AccountID        uuid.UUID `json:"accountId"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	Reference        string    `json:"reference"`
	CreatedTimestamp time.Time `json:"createdTimestamp"`
	UpdatedTimestamp time.Time `json:"updatedTimestamp"`
}

// ListTransactionResponse wraps a transaction listing.
type ListTransactionResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

func mapTransactionRead(tx *dto.TransactionRead) TransactionResponse {
	return TransactionResponse{
		ID:               tx.ID,
		UserID:           tx.UserID,
		AccountID:        tx.AccountID,
		Amount:           tx.Amount,
		Currency:         tx.Currency,
		Type:             tx.Type,
		Status:           tx.Status,
		Reference:        tx.Reference,
		CreatedTimestamp: tx.CreatedAt,
		UpdatedTimestamp: tx.UpdatedAt,
	}
}
