package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-care-reminders/internal/adapters/auth/jwtauth"
	"pet-care-reminders/internal/adapters/storage"
	pg "pet-care-reminders/internal/adapters/storage/postgres"
	"pet-care-reminders/internal/app"
	"pet-care-reminders/internal/config"
	"pet-care-reminders/internal/platform/logger"
	"pet-care-reminders/internal/ports/auth"
	"pet-care-reminders/internal/router"
	"pet-care-reminders/internal/scheduler"
)

// @title Pet Care Reminders API
// @version 1.0
// @description Mascotas, tratamientos recurrentes y recordatorios.
// @BasePath /
func main() {
	cfg, err := config.Load()
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer func() { _ = log.Sync() }()

	if err != nil {
		log.Error("invalid configuration", map[string]any{"error": err})
		os.Exit(1)
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("database connection failed", map[string]any{"error": err})
			os.Exit(1)
		}
		defer db.Close()

		if cfg.RunMigrations {
			if err := pg.Migrate(context.Background(), db); err != nil {
				log.Error("migrations failed", map[string]any{"error": err})
				os.Exit(1)
			}
		}
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}
	repos := storage.New(db)

	var verifier auth.AuthVerifier // sin verifier => modo dev (X-Debug-User-ID)
	if cfg.JWTSecret != "" {
		verifier = jwtauth.NewVerifier(cfg.JWTSecret)
	} else {
		log.Warn("JWT_SECRET not set, accepting X-Debug-User-ID", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:   verifier,
		Repos:          &repos,
		Logger:         log,
		Location:       cfg.Location,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SchedulerEnabled {
		if err := cfg.ValidateRunner(); err != nil {
			log.Error("scheduler disabled", map[string]any{"error": err})
		} else {
			alertRunner, cleanup, err := app.NewAlertRunner(cfg, repos, log)
			if err != nil {
				log.Error("alert runner setup failed", map[string]any{"error": err})
				os.Exit(1)
			}
			defer func() { _ = cleanup() }()

			daily := &scheduler.Daily{
				At:       cfg.SchedulerRunAt,
				Location: cfg.Location,
				Logger:   log,
				Job: func(ctx context.Context) error {
					_, err := alertRunner.Run(ctx)
					return err
				},
			}
			go daily.Start(ctx)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("shutting down", nil)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", map[string]any{"error": err})
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err})
			os.Exit(1)
		}
	}
}
