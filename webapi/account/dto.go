package account

import (
	"time"

	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/google/uuid"
)

// CreateAccountRequest is the body of POST /accounts.
type CreateAccountRequest struct {
	Name     string `json:"name" validate:"required"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

// PatchAccountRequest is the body of PATCH /accounts/:accountId.
type PatchAccountRequest struct {
	Name string `json:"name" validate:"required"`
}

// AccountResponse is the external representation of an account.
type AccountResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	Name             string    `json:"name"`
	AccountNumber    string    `json:"accountNumber"`
	SortCode         string    `json:"sortCode"`
	AccountType      string    `json:"accountType"`
	Currency         string    `json:"currency"`
	Balance          int64     `json:"balance"`
	CreatedTimestamp time.Time `json:"createdTimestamp"`
	UpdatedTimestamp time.Time `json:"updatedTimestamp"`
}

// ListAccountResponse wraps an account listing.
type ListAccountResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

func mapAccountRead(a *dto.AccountRead) AccountResponse {
	return AccountResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		Name:             a.Name,
		AccountNumber:    a.Number,
		SortCode:         a.SortCode,
		AccountType:      a.Type,
		Currency:         a.Currency,
		Balance:          a.Balance,
		CreatedTimestamp: a.CreatedAt,
		UpdatedTimestamp: a.UpdatedAt,
	}
}
