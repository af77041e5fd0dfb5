// Package user exposes the user registration and profile endpoints.
package user

import (
	"github.com/amirasaad/ledger/config"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/middleware"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	usersvc "github.com/amirasaad/ledger/pkg/service/user"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Routes registers the user endpoints. Registration is public; profile
// operations act on the authenticated user only.
func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.AppConfig) {
	app.Post("/users", Register(userSvc))
	app.Get("/users/me", middleware.JwtProtected(cfg.Jwt), GetMe(userSvc, authSvc))
	app.Patch("/users/me", middleware.JwtProtected(cfg.Jwt), PatchMe(userSvc, authSvc))
	app.Delete("/users/me", middleware.JwtProtected(cfg.Jwt), DeleteMe(userSvc, authSvc))
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

// Register creates a new user.
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateUserRequest](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Register(c.Context(), usersvc.RegisterCommand{
			Email:       input.Email,
			Password:    input.Password,
			Name:        input.Name,
			Address:     input.Address,
			PhoneNumber: input.PhoneNumber,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to register user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", mapUserRead(u))
	}
}

// GetMe returns the authenticated user's profile.
func GetMe(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if userID == uuid.Nil {
			return err
		}
		u, err := userSvc.Get(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User", mapUserRead(u))
	}
}

// PatchMe updates the authenticated user's profile.
func PatchMe(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if userID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[PatchUserRequest](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Update(c.Context(), userID, dto.UserUpdate{
			Name:        input.Name,
			Address:     input.Address,
			PhoneNumber: input.PhoneNumber,
			Password:    input.Password,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated", mapUserRead(u))
	}
}

// DeleteMe removes the authenticated user.
func DeleteMe(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if userID == uuid.Nil {
			return err
		}
		if err := userSvc.Delete(c.Context(), userID); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete user", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
