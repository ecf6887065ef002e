package app

import (
	"fmt"

	"pet-care-reminders/internal/adapters/messaging/telegram"
	"pet-care-reminders/internal/adapters/storage"
	"pet-care-reminders/internal/adapters/storage/redisclaims"
	"pet-care-reminders/internal/config"
	"pet-care-reminders/internal/domain/alerts"
	"pet-care-reminders/internal/domain/applications"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/domain/treatments"
	"pet-care-reminders/internal/notify"
	"pet-care-reminders/internal/platform/logger"
	"pet-care-reminders/internal/runner"
)

// NewAlertRunner arma el runner con los repos dados, Telegram como canal y
// el backend de claims configurado. cleanup libera recursos propios (Redis).
func NewAlertRunner(cfg config.Config, repos storage.Repos, log logger.Logger) (r *runner.Runner, cleanup func() error, err error) {
	cleanup = func() error { return nil }

	claims := repos.AlertLog
	if cfg.AlertClaimsBackend == config.ClaimsBackendRedis {
		rs, err := redisclaims.Open(redisclaims.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Lease:    cfg.AlertClaimLease,
		})
		if err != nil {
			return nil, cleanup, fmt.Errorf("claims store: %w", err)
		}
		claims = rs
		cleanup = rs.Close
	}

	sender, err := telegram.NewSender(telegram.Options{
		Token:   cfg.TelegramBotToken,
		APIBase: cfg.TelegramAPIBase,
		Timeout: cfg.NotifyTimeout,
	})
	if err != nil {
		_ = cleanup()
		return nil, func() error { return nil }, err
	}

	r = runner.New(
		pets.NewService(repos.Pets),
		treatments.NewService(repos.Treatments),
		applications.NewService(repos.Applications, cfg.Location),
		alerts.NewDeduplicator(claims, cfg.AlertClaimLease),
		notify.New(sender, cfg.TelegramChatID, cfg.NotifyTimeout),
		runner.Options{
			Workers:  cfg.AlertWorkers,
			Location: cfg.Location,
			Logger:   log.With(map[string]any{"component": "alert_runner"}),
		},
	)
	return r, cleanup, nil
}
