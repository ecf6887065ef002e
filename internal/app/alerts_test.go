package app

import (
	"context"
	"testing"
	"time"

	"pet-care-reminders/internal/adapters/storage"
	"pet-care-reminders/internal/config"
	"pet-care-reminders/internal/platform/logger"
)

func TestNewAlertRunner_RequiresTelegramToken(t *testing.T) {
	cfg := config.Config{
		Location:           time.UTC,
		AlertWorkers:       2,
		AlertClaimsBackend: config.ClaimsBackendPostgres,
	}
	_, closeFn, err := NewAlertRunner(cfg, storage.NewMemory(), logger.NewNop())
	if err == nil {
		t.Fatal("expected error without telegram token")
	}
	if closeFn == nil || closeFn() != nil {
		t.Fatal("expected no-op close")
	}
}

func TestNewAlertRunner_EmptyStoreRuns(t *testing.T) {
	cfg := config.Config{
		Location:           time.UTC,
		TelegramBotToken:   "token",
		TelegramChatID:     "chat",
		AlertWorkers:       2,
		AlertClaimLease:    time.Minute,
		AlertClaimsBackend: config.ClaimsBackendPostgres,
	}
	r, closeFn, err := NewAlertRunner(cfg, storage.NewMemory(), logger.NewNop())
	if err != nil {
		t.Fatalf("NewAlertRunner error: %v", err)
	}
	defer closeFn()

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if sum.Pets != 0 || sum.Sent != 0 {
		t.Fatalf("unexpected summary %#v", sum)
	}
}
