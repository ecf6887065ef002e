// Command alerts corre el Alert Runner una vez y termina.
// Exit 0 si todo salió bien; 1 ante cualquier error (detalle en stderr).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pet-care-reminders/internal/adapters/storage"
	pg "pet-care-reminders/internal/adapters/storage/postgres"
	"pet-care-reminders/internal/app"
	"pet-care-reminders/internal/config"
	"pet-care-reminders/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "alerts:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// Antes de tocar la DB: si falta algo, se informa todo junto.
	if err := cfg.ValidateRunner(); err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := pg.Open(cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := pg.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	r, cleanup, err := app.NewAlertRunner(cfg, storage.New(db), log)
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	_, err = r.Run(ctx)
	return err
}
