// Command seed carga mascotas, miembros, tratamientos e historial desde YAML.
//
//	seed pets.yaml
//	SEED_FILE=pets.yaml seed
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"pet-care-reminders/internal/adapters/storage"
	pg "pet-care-reminders/internal/adapters/storage/postgres"
	"pet-care-reminders/internal/config"
	"pet-care-reminders/internal/domain/applications"
	"pet-care-reminders/internal/domain/members"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/domain/treatments"
	"pet-care-reminders/internal/onboarding"
	"pet-care-reminders/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run() error {
	path := strings.TrimSpace(os.Getenv("SEED_FILE"))
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		return fmt.Errorf("usage: seed <file.yaml> (or SEED_FILE)")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DBDSN == "" {
		return fmt.Errorf("missing required configuration: DB_DSN")
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer func() { _ = log.Sync() }()

	seed, err := onboarding.Load(path)
	if err != nil {
		return err
	}

	db, err := pg.Open(cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if cfg.RunMigrations {
		if err := pg.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	repos := storage.New(db)
	res, err := onboarding.Apply(ctx, seed, onboarding.Services{
		Pets:         pets.NewService(repos.Pets),
		Members:      members.NewService(repos.Members),
		Treatments:   treatments.NewService(repos.Treatments),
		Applications: applications.NewService(repos.Applications, cfg.Location),
	})
	log.Info("seed applied", map[string]any{
		"file":         path,
		"pets":         res.Pets,
		"members":      res.Members,
		"treatments":   res.Treatments,
		"applications": res.Applications,
	})
	return err
}
