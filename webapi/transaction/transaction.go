// Package transaction exposes the ledger's transaction endpoints.
package transaction

import (
	"errors"

	"github.com/amirasaad/ledger/config"
	"github.com/amirasaad/ledger/pkg/currency"
	"github.com/amirasaad/ledger/pkg/domain"
	accountdomain "github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/middleware"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	txsvc "github.com/amirasaad/ledger/pkg/service/transaction"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const idempotencyHeader = "Idempotency-Key"

// Routes registers the transaction endpoints:
//
//   - POST /accounts/:accountId/transactions : create and process a transaction
//   - GET  /accounts/:accountId/transactions : list the caller's transactions
//   - GET  /accounts/:accountId/transactions/:transactionId : fetch one
func Routes(app *fiber.App, txSvc *txsvc.Service, authSvc *authsvc.Service, cfg *config.AppConfig) {
	app.Post("/accounts/:accountId/transactions", middleware.JwtProtected(cfg.Jwt), CreateTransaction(txSvc, authSvc))
	app.Get("/accounts/:accountId/transactions", middleware.JwtProtected(cfg.Jwt), ListTransactions(txSvc, authSvc))
	app.Get("/accounts/:accountId/transactions/:transactionId", middleware.JwtProtected(cfg.Jwt), GetTransaction(txSvc, authSvc))
}

// CreateTransaction handles transaction creation. Processing runs inline
// before the response, so a 201 carries the terminal status; a rejection
// for insufficient funds is a 422 with the transaction durably failed.
func CreateTransaction(txSvc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
		}
		userID, err := authSvc.CurrentUserID(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		accountID, err := uuid.Parse(c.Params("accountId"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", "account ID must be a valid UUID")
		}

		idempotencyKey := c.Get(idempotencyHeader)
		if idempotencyKey != "" {
			if _, err := uuid.Parse(idempotencyKey); err != nil {
				return common.ProblemDetailsJSON(c, "Invalid idempotency key", domain.ErrInvalidIdempotencyKey)
			}
		}

		input, err := common.BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err
		}

		tx, err := txSvc.Create(c.Context(), txsvc.CreateCommand{
			UserID:         userID,
			AccountID:      accountID,
			Amount:         input.Amount,
			Currency:       currency.Code(input.Currency),
			Type:           accountdomain.TransactionType(input.Type),
			Reference:      input.Reference,
			IdempotencyKey: idempotencyKey,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return common.ProblemDetailsJSON(c, "Insufficient funds", err)
			}
			return common.ProblemDetailsJSON(c, "Failed to create transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction created", mapTransactionRead(tx))
	}
}

// ListTransactions lists the caller's transactions for one account in
// creation order.
func ListTransactions(txSvc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
		}
		userID, err := authSvc.CurrentUserID(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		accountID, err := uuid.Parse(c.Params("accountId"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", "account ID must be a valid UUID")
		}
		txs, err := txSvc.List(c.Context(), userID, accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		resp := ListTransactionResponse{Transactions: make([]TransactionResponse, 0, len(txs))}
		for _, tx := range txs {
			resp.Transactions = append(resp.Transactions, mapTransactionRead(tx))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", resp)
	}
}

// GetTransaction fetches one of the caller's transactions. Absent and
// foreign are both 404.
func GetTransaction(txSvc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
		}
		userID, err := authSvc.CurrentUserID(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		accountID, err := uuid.Parse(c.Params("accountId"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", "account ID must be a valid UUID")
		}
		transactionID, err := uuid.Parse(c.Params("transactionId"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid transaction ID", "transaction ID must be a valid UUID")
		}
		tx, err := txSvc.Get(c.Context(), userID, accountID, transactionID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transaction not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction", mapTransactionRead(tx))
	}
}
