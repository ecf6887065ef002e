package redisclaims

import (
	"context"
	"fmt"
	"time"

	"pet-care-reminders/internal/domain/alerts"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "petcare:alert:"

	valuePending = "pending"
	valueSent    = "sent"

	// DefaultSentTTL cubre el día de la alerta con margen de zona horaria.
	DefaultSentTTL = 48 * time.Hour
)

// releaseScript borra solo si sigue pending (un sent nunca se libera).
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Store implementa alerts.ClaimStore con SET NX. El lease es el TTL del
// claim pending: si el proceso muere, la clave expira sola.
type Store struct {
	client  *redis.Client
	lease   time.Duration
	sentTTL time.Duration
}

type Options struct {
	Addr     string
	Password string
	DB       int
	Lease    time.Duration
	SentTTL  time.Duration
}

// Open conecta y hace ping.
func Open(opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            opts.Addr,
		Password:        opts.Password,
		DB:              opts.DB,
		PoolSize:        10,
		MinIdleConns:    1,
		PoolTimeout:     4 * time.Second,
		ConnMaxIdleTime: 5 * time.Minute,
		MaxRetries:      3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return New(client, opts.Lease, opts.SentTTL), nil
}

func New(client *redis.Client, lease, sentTTL time.Duration) *Store {
	if lease <= 0 {
		lease = alerts.DefaultClaimLease
	}
	if sentTTL <= 0 {
		sentTTL = DefaultSentTTL
	}
	return &Store{client: client, lease: lease, sentTTL: sentTTL}
}

func (s *Store) Close() error {
	return s.client.Close()
}

func key(k alerts.Key) string {
	return keyPrefix + k.String()
}

func (s *Store) TryClaim(ctx context.Context, k alerts.Key, claimedAt time.Time) (bool, error) {
	ok, err := s.client.SetNX(ctx, key(k), valuePending, s.lease).Result()
	if err != nil {
		return false, fmt.Errorf("claim alert: %w", err)
	}
	return ok, nil
}

func (s *Store) MarkSent(ctx context.Context, k alerts.Key, sentAt time.Time) error {
	if err := s.client.Set(ctx, key(k), valueSent, s.sentTTL).Err(); err != nil {
		return fmt.Errorf("mark alert sent: %w", err)
	}
	return nil
}

func (s *Store) Release(ctx context.Context, k alerts.Key) error {
	n, err := releaseScript.Run(ctx, s.client, []string{key(k)}, valuePending).Int()
	if err != nil {
		return fmt.Errorf("release alert claim: %w", err)
	}
	if n == 0 {
		return alerts.ErrClaimNotFound
	}
	return nil
}

// ReapStale no hace nada: el TTL del pending ya cumple ese rol.
func (s *Store) ReapStale(ctx context.Context, olderThan time.Time) (int, error) {
	return 0, nil
}
