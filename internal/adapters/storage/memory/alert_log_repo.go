package memory

import (
	"context"
	"sync"
	"time"

	"pet-care-reminders/internal/domain/alerts"

	"github.com/google/uuid"
)

// AlertLog es el alert log en memoria. El mutex cumple el rol de la
// constraint UNIQUE(treatment_id, alert_type, alert_date).
type AlertLog struct {
	mu      sync.Mutex
	entries map[string]alerts.Entry
}

func NewAlertLog() *AlertLog {
	return &AlertLog{
		entries: make(map[string]alerts.Entry),
	}
}

func (l *AlertLog) TryClaim(ctx context.Context, k alerts.Key, claimedAt time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.entries[k.String()]; exists {
		return false, nil
	}
	l.entries[k.String()] = alerts.Entry{
		ID:        uuid.NewString(),
		Key:       k,
		Status:    alerts.StatusPending,
		ClaimedAt: claimedAt,
	}
	return true, nil
}

func (l *AlertLog) MarkSent(ctx context.Context, k alerts.Key, sentAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[k.String()]
	if !ok {
		return alerts.ErrClaimNotFound
	}
	e.Status = alerts.StatusSent
	e.SentAt = &sentAt
	l.entries[k.String()] = e
	return nil
}

func (l *AlertLog) Release(ctx context.Context, k alerts.Key) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[k.String()]
	if !ok || e.Status != alerts.StatusPending {
		return alerts.ErrClaimNotFound
	}
	delete(l.entries, k.String())
	return nil
}

func (l *AlertLog) ReapStale(ctx context.Context, olderThan time.Time) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for key, e := range l.entries {
		if e.Status == alerts.StatusPending && e.ClaimedAt.Before(olderThan) {
			delete(l.entries, key)
			n++
		}
	}
	return n, nil
}

// Entries devuelve una copia del log (tests y debug).
func (l *AlertLog) Entries() []alerts.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]alerts.Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	return out
}

func (l *AlertLog) deleteTreatment(treatmentID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if e.Key.TreatmentID == treatmentID {
			delete(l.entries, key)
		}
	}
}
