package alerts

import (
	"context"
	"errors"
	"strings"
	"time"
)

const DefaultClaimLease = 15 * time.Minute

var ErrInvalidKey = errors.New("invalid alert key")

// Deduplicator garantiza como máximo una notificación por tripla.
// Ciclo de vida: Claim (pending) -> Confirm (sent) | Release (borrado).
type Deduplicator struct {
	store ClaimStore
	lease time.Duration
	now   func() time.Time
}

func NewDeduplicator(store ClaimStore, lease time.Duration) *Deduplicator {
	if lease <= 0 {
		lease = DefaultClaimLease
	}
	return &Deduplicator{
		store: store,
		lease: lease,
		now:   time.Now,
	}
}

// Claim intenta registrar la tripla. true => el caller debe notificar
// y después llamar Confirm o Release.
func (d *Deduplicator) Claim(ctx context.Context, treatmentID string, t Type, date time.Time) (Key, bool, error) {
	k := Key{
		TreatmentID: strings.TrimSpace(treatmentID),
		Type:        t,
		Date:        date,
	}
	if k.TreatmentID == "" || strings.TrimSpace(string(t)) == "" || date.IsZero() {
		return k, false, ErrInvalidKey
	}

	ok, err := d.store.TryClaim(ctx, k, d.now())
	if err != nil {
		return k, false, err
	}
	return k, ok, nil
}

// Confirm marca el claim como enviado; a partir de acá es permanente.
func (d *Deduplicator) Confirm(ctx context.Context, k Key) error {
	return d.store.MarkSent(ctx, k, d.now())
}

// Release libera el claim tras un fallo de entrega.
func (d *Deduplicator) Release(ctx context.Context, k Key) error {
	err := d.store.Release(ctx, k)
	if errors.Is(err, ErrClaimNotFound) {
		return nil
	}
	return err
}

// ReapStale borra claims pending más viejos que el lease
// (p.ej. un proceso que murió entre el claim y la entrega).
func (d *Deduplicator) ReapStale(ctx context.Context) (int, error) {
	return d.store.ReapStale(ctx, d.now().Add(-d.lease))
}
