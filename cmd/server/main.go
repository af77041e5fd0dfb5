package main

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/ledger/config"
	"github.com/amirasaad/ledger/infra"
	"github.com/amirasaad/ledger/infra/repository"
	"github.com/amirasaad/ledger/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()

	cfg, err := config.Load(".env", logger)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := repository.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	uow := repository.NewUoW(db)

	fiberApp := webapi.SetupApp(webapi.Deps{
		Uow:    uow,
		Cfg:    cfg,
		Logger: logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)

	return fiberApp.Listen(addr)
}
