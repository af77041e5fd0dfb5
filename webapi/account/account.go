// Package account exposes the account CRUD endpoints.
package account

import (
	"github.com/amirasaad/ledger/config"
	"github.com/amirasaad/ledger/pkg/currency"
	"github.com/amirasaad/ledger/pkg/middleware"
	accountsvc "github.com/amirasaad/ledger/pkg/service/account"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Routes registers the account endpoints:
//
//   - POST   /accounts            : open a new account
//   - GET    /accounts            : list the caller's accounts
//   - GET    /accounts/:accountId : fetch one account
//   - PATCH  /accounts/:accountId : rename an account
//   - DELETE /accounts/:accountId : close an account
func Routes(app *fiber.App, accountSvc *accountsvc.Service, authSvc *authsvc.Service, cfg *config.AppConfig) {
	app.Post("/accounts", middleware.JwtProtected(cfg.Jwt), CreateAccount(accountSvc, authSvc))
	app.Get("/accounts", middleware.JwtProtected(cfg.Jwt), ListAccounts(accountSvc, authSvc))
	app.Get("/accounts/:accountId", middleware.JwtProtected(cfg.Jwt), GetAccount(accountSvc, authSvc))
	app.Patch("/accounts/:accountId", middleware.JwtProtected(cfg.Jwt), PatchAccount(accountSvc, authSvc))
	app.Delete("/accounts/:accountId", middleware.JwtProtected(cfg.Jwt), DeleteAccount(accountSvc, authSvc))
}

func currentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
	}
	userID, err := authSvc.CurrentUserID(token)
	if err != nil {
		return uuid.Nil, common.ProblemDetailsJSON(c, "Unauthorized", err)
	}
	return userID, nil
}

// CreateAccount opens a new account for the authenticated user.
func CreateAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if userID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		code := currency.DefaultCurrency
		if input.Currency != "" {
			code = currency.Code(input.Currency)
		}
		a, err := accountSvc.Create(c.Context(), userID, input.Name, code)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", mapAccountRead(a))
	}
}

// ListAccounts lists the caller's accounts.
func ListAccounts(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if userID == uuid.Nil {
			return err
		}
		accounts, err := accountSvc.List(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		resp := ListAccountResponse{Accounts: make([]AccountResponse, 0, len(accounts))}
		for _, a := range accounts {
			resp.Accounts = append(resp.Accounts, mapAccountRead(a))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", resp)
	}
}

// GetAccount fetches one of the caller's accounts. Absent and foreign
// are both 404.
func GetAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if userID == uuid.Nil {
			return err
		}
		accountID, err := uuid.Parse(c.Params("accountId"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", "account ID must be a valid UUID")
		}
		a, err := accountSvc.Get(c.Context(), userID, accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Account not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account", mapAccountRead(a))
	}
}

// PatchAccount renames one of the caller's accounts.
func PatchAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if userID == uuid.Nil {
			return err
		}
		accountID, err := uuid.Parse(c.Params("accountId"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", "account ID must be a valid UUID")
		}
		input, err := common.BindAndValidate[PatchAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.Rename(c.Context(), userID, accountID, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", mapAccountRead(a))
	}
}

// DeleteAccount closes one of the caller's accounts.
func DeleteAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if userID == uuid.Nil {
			return err
		}
		accountID, err := uuid.Parse(c.Params("accountId"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", "account ID must be a valid UUID")
		}
		if err := accountSvc.Delete(c.Context(), userID, accountID); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete account", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
