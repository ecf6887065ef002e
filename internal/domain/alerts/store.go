package alerts

import (
	"context"
	"errors"
	"time"
)

var ErrClaimNotFound = errors.New("alert claim not found")

// ClaimStore persiste el alert log.
//
// TryClaim inserta la tripla como pending. Si ya existe (pending o sent)
// devuelve false, nil: el conflicto es la señal, no un error.
// Cualquier otro error se propaga.
type ClaimStore interface {
	TryClaim(ctx context.Context, k Key, claimedAt time.Time) (bool, error)
	// MarkSent promueve pending -> sent.
	MarkSent(ctx context.Context, k Key, sentAt time.Time) error
	// Release borra un claim pending para que la próxima corrida reintente.
	Release(ctx context.Context, k Key) error
	// ReapStale borra claims pending con claimed_at anterior a olderThan.
	ReapStale(ctx context.Context, olderThan time.Time) (int, error)
}
