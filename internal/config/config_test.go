package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DB_DSN", "RUN_MIGRATIONS", "APP_TIMEZONE",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "NOTIFY_TIMEOUT",
		"ALERT_WORKERS", "ALERT_CLAIM_LEASE", "ALERT_CLAIMS_BACKEND", "REDIS_ADDR",
		"ALLOWED_ORIGINS", "SCHEDULER_ENABLED", "SCHEDULER_RUN_AT",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		if strings.Contains(err.Error(), "APP_TIMEZONE") {
			t.Skipf("tzdata not available: %v", err)
		}
		t.Fatalf("FromEnv error: %v", err)
	}
	if cfg.Port != "8080" || cfg.AlertWorkers != 4 || cfg.AlertClaimLease != 15*time.Minute {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if cfg.NotifyTimeout != 10*time.Second || cfg.AlertClaimsBackend != ClaimsBackendPostgres {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if cfg.Location.String() != DefaultTimezone {
		t.Fatalf("expected default timezone, got %s", cfg.Location)
	}
	if cfg.SchedulerRunAt != 9*time.Hour {
		t.Fatalf("expected 09:00, got %s", cfg.SchedulerRunAt)
	}
}

func TestFromEnv_ParsesValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("ALERT_WORKERS", "8")
	t.Setenv("NOTIFY_TIMEOUT", "3s")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://app.example.com,")
	t.Setenv("SCHEDULER_ENABLED", "true")
	t.Setenv("SCHEDULER_RUN_AT", "07:30")
	t.Setenv("ALERT_CLAIMS_BACKEND", "Redis")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if cfg.AlertWorkers != 8 || cfg.NotifyTimeout != 3*time.Second || !cfg.SchedulerEnabled {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://app.example.com" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.SchedulerRunAt != 7*time.Hour+30*time.Minute {
		t.Fatalf("unexpected run at %s", cfg.SchedulerRunAt)
	}
	if cfg.AlertClaimsBackend != ClaimsBackendRedis {
		t.Fatalf("expected redis backend, got %s", cfg.AlertClaimsBackend)
	}
}

func TestFromEnv_CollectsFormatErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("ALERT_WORKERS", "many")
	t.Setenv("NOTIFY_TIMEOUT", "soon")
	t.Setenv("ALERT_CLAIMS_BACKEND", "etcd")

	_, err := FromEnv()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"ALERT_WORKERS", "NOTIFY_TIMEOUT", "ALERT_CLAIMS_BACKEND"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in error: %v", want, err)
		}
	}
}

func TestValidateRunner_ListsAllMissing(t *testing.T) {
	err := Config{AlertClaimsBackend: ClaimsBackendRedis}.ValidateRunner()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"DB_DSN", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "REDIS_ADDR"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in error: %v", want, err)
		}
	}

	ok := Config{
		DBDSN:              "postgres://x",
		TelegramBotToken:   "t",
		TelegramChatID:     "1",
		AlertClaimsBackend: ClaimsBackendPostgres,
	}
	if err := ok.ValidateRunner(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseClock(t *testing.T) {
	if _, err := ParseClock("25:00"); err == nil {
		t.Fatalf("expected error for 25:00")
	}
	d, err := ParseClock("00:05")
	if err != nil || d != 5*time.Minute {
		t.Fatalf("unexpected %s %v", d, err)
	}
}
