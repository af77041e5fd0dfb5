// Package webapi assembles the Fiber application: services, middleware,
// and routes.
package webapi

import (
	"log/slog"

	"github.com/amirasaad/ledger/config"
	"github.com/amirasaad/ledger/pkg/ledger"
	"github.com/amirasaad/ledger/pkg/repository"
	accountsvc "github.com/amirasaad/ledger/pkg/service/account"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	txsvc "github.com/amirasaad/ledger/pkg/service/transaction"
	usersvc "github.com/amirasaad/ledger/pkg/service/user"
	"github.com/amirasaad/ledger/webapi/account"
	"github.com/amirasaad/ledger/webapi/auth"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/amirasaad/ledger/webapi/transaction"
	"github.com/amirasaad/ledger/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps carries everything the web API needs to run.
type Deps struct {
	Uow    repository.UnitOfWork
	Cfg    *config.AppConfig
	Logger *slog.Logger
}

// SetupApp builds all services and returns the Fiber app with every
// route registered.
func SetupApp(deps Deps) *fiber.App {
	locks := ledger.NewLockCoordinator(deps.Cfg.Ledger.LockWait)
	processor := ledger.NewProcessor(deps.Uow, locks, deps.Logger)

	transactionSvc := txsvc.NewService(deps.Uow, processor, deps.Logger)
	accountSvc := accountsvc.NewService(deps.Uow, deps.Logger)
	userSvc := usersvc.NewService(deps.Uow, deps.Logger)
	authSvc := authsvc.NewService(deps.Uow, deps.Cfg.Jwt, deps.Logger)

	app := fiber.New(fiber.Config{
		AppName: "ledger",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
		},
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth.Routes(app, authSvc)
	user.Routes(app, userSvc, authSvc, deps.Cfg)
	account.Routes(app, accountSvc, authSvc, deps.Cfg)
	transaction.Routes(app, transactionSvc, authSvc, deps.Cfg)

	return app
}
