package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultTimezone    = "America/Argentina/Buenos_Aires"
	DefaultPort        = "8080"
	DefaultSchedulerAt = "09:00"

	ClaimsBackendPostgres = "postgres"
	ClaimsBackendRedis    = "redis"
)

type Config struct {
	Port          string
	DBDSN         string
	RunMigrations bool

	LogLevel  string
	LogFormat string
	AppName   string

	Location *time.Location

	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIBase  string
	NotifyTimeout    time.Duration

	AlertWorkers       int
	AlertClaimLease    time.Duration
	AlertClaimsBackend string
	RedisAddr          string
	RedisPassword      string

	JWTSecret      string
	AllowedOrigins []string

	SchedulerEnabled bool
	// SchedulerRunAt: minutos desde medianoche (zona de Location).
	SchedulerRunAt time.Duration
}

// Load lee .env (si existe) y después el entorno.
func Load() (Config, error) {
	// Sin .env seguimos con las variables del sistema.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv arma la config solo desde variables de entorno. Junta todos los
// errores de formato en uno.
func FromEnv() (Config, error) {
	var errs []error

	tzName := getEnv("APP_TIMEZONE", DefaultTimezone)
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE: %w", err))
		loc = time.UTC
	}

	cfg := Config{
		Port:          getEnv("PORT", DefaultPort),
		DBDSN:         strings.TrimSpace(os.Getenv("DB_DSN")),
		RunMigrations: getBool("RUN_MIGRATIONS", false, &errs),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		AppName:   getEnv("APP_NAME", "pet-care-reminders"),

		Location: loc,

		TelegramBotToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TelegramChatID:   strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
		TelegramAPIBase:  getEnv("TELEGRAM_API_BASE", "https://api.telegram.org"),
		NotifyTimeout:    getDuration("NOTIFY_TIMEOUT", 10*time.Second, &errs),

		AlertWorkers:       getInt("ALERT_WORKERS", 4, &errs),
		AlertClaimLease:    getDuration("ALERT_CLAIM_LEASE", 15*time.Minute, &errs),
		AlertClaimsBackend: strings.ToLower(getEnv("ALERT_CLAIMS_BACKEND", ClaimsBackendPostgres)),
		RedisAddr:          strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),

		JWTSecret:      strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),

		SchedulerEnabled: getBool("SCHEDULER_ENABLED", false, &errs),
	}

	runAt, err := ParseClock(getEnv("SCHEDULER_RUN_AT", DefaultSchedulerAt))
	if err != nil {
		errs = append(errs, fmt.Errorf("SCHEDULER_RUN_AT: %w", err))
	}
	cfg.SchedulerRunAt = runAt

	switch cfg.AlertClaimsBackend {
	case ClaimsBackendPostgres, ClaimsBackendRedis:
	default:
		errs = append(errs, fmt.Errorf("ALERT_CLAIMS_BACKEND: unknown backend %q", cfg.AlertClaimsBackend))
	}
	if cfg.AlertWorkers <= 0 {
		errs = append(errs, errors.New("ALERT_WORKERS: must be > 0"))
	}

	return cfg, errors.Join(errs...)
}

// ValidateRunner verifica credenciales del runner. Lista todas las faltantes.
func (c Config) ValidateRunner() error {
	missing := make([]string, 0)
	if c.DBDSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if c.TelegramBotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if c.TelegramChatID == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if c.AlertClaimsBackend == ClaimsBackendRedis && c.RedisAddr == "" {
		missing = append(missing, "REDIS_ADDR")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ParseClock parsea "HH:MM" como offset desde medianoche.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool, errs *[]error) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func getInt(key string, fallback int, errs *[]error) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
