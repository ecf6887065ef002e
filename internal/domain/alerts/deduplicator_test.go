package alerts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// -------------------------
// Test store (in-memory)
// -------------------------

type testStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func newTestStore() *testStore {
	return &testStore{entries: map[string]Entry{}}
}

func (s *testStore) TryClaim(ctx context.Context, k Key, claimedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[k.String()]; ok {
		return false, nil
	}
	s.entries[k.String()] = Entry{Key: k, Status: StatusPending, ClaimedAt: claimedAt}
	return true, nil
}

func (s *testStore) MarkSent(ctx context.Context, k Key, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[k.String()]
	if !ok {
		return ErrClaimNotFound
	}
	e.Status = StatusSent
	e.SentAt = &sentAt
	s.entries[k.String()] = e
	return nil
}

func (s *testStore) Release(ctx context.Context, k Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[k.String()]
	if !ok || e.Status != StatusPending {
		return ErrClaimNotFound
	}
	delete(s.entries, k.String())
	return nil
}

func (s *testStore) ReapStale(ctx context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key, e := range s.entries {
		if e.Status == StatusPending && e.ClaimedAt.Before(olderThan) {
			delete(s.entries, key)
			n++
		}
	}
	return n, nil
}

// -------------------------
// Tests
// -------------------------

var day = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestUpcomingTypeAndKind(t *testing.T) {
	if got := UpcomingType(30); got != "upcoming_30" {
		t.Fatalf("expected upcoming_30, got %s", got)
	}
	if UpcomingType(0).Kind() != "upcoming" || TypeOverdueDaily.Kind() != "overdue" {
		t.Fatalf("unexpected kinds")
	}
	if Type("weird").Kind() != "unknown" {
		t.Fatalf("expected unknown kind")
	}
}

func TestDeduplicator_ClaimOnlyOnce(t *testing.T) {
	d := NewDeduplicator(newTestStore(), 0)
	ctx := context.Background()

	_, ok, err := d.Claim(ctx, "t-1", TypeOverdueDaily, day)
	if err != nil || !ok {
		t.Fatalf("first claim: ok=%v err=%v", ok, err)
	}
	_, ok, err = d.Claim(ctx, "t-1", TypeOverdueDaily, day)
	if err != nil || ok {
		t.Fatalf("second claim should be a no-op: ok=%v err=%v", ok, err)
	}

	// Otra fecha u otro tipo es otra tripla.
	if _, ok, _ := d.Claim(ctx, "t-1", TypeOverdueDaily, day.AddDate(0, 0, 1)); !ok {
		t.Fatalf("expected claim for the next day")
	}
	if _, ok, _ := d.Claim(ctx, "t-1", UpcomingType(5), day); !ok {
		t.Fatalf("expected claim for another type")
	}
}

func TestDeduplicator_ReleaseAllowsRetry(t *testing.T) {
	d := NewDeduplicator(newTestStore(), 0)
	ctx := context.Background()

	k, ok, _ := d.Claim(ctx, "t-1", UpcomingType(30), day)
	if !ok {
		t.Fatalf("expected claim")
	}
	if err := d.Release(ctx, k); err != nil {
		t.Fatalf("Release error: %v", err)
	}
	// Release de algo inexistente no es error.
	if err := d.Release(ctx, k); err != nil {
		t.Fatalf("second Release error: %v", err)
	}

	k, ok, _ = d.Claim(ctx, "t-1", UpcomingType(30), day)
	if !ok {
		t.Fatalf("expected retry claim after release")
	}
	if err := d.Confirm(ctx, k); err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if _, ok, _ := d.Claim(ctx, "t-1", UpcomingType(30), day); ok {
		t.Fatalf("sent claim must be permanent")
	}
}

func TestDeduplicator_ReapStaleOnlyPending(t *testing.T) {
	store := newTestStore()
	d := NewDeduplicator(store, 15*time.Minute)
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return start }

	_, _, _ = d.Claim(ctx, "stale", TypeOverdueDaily, day)
	sent, _, _ := d.Claim(ctx, "sent", TypeOverdueDaily, day)
	_ = d.Confirm(ctx, sent)

	d.now = func() time.Time { return start.Add(10 * time.Minute) }
	_, _, _ = d.Claim(ctx, "fresh", TypeOverdueDaily, day)

	d.now = func() time.Time { return start.Add(20 * time.Minute) }
	n, err := d.ReapStale(ctx)
	if err != nil {
		t.Fatalf("ReapStale error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 reaped, got %d", n)
	}
	if _, ok, _ := d.Claim(ctx, "stale", TypeOverdueDaily, day); !ok {
		t.Fatalf("expected stale claim to be re-claimable")
	}
	if _, ok, _ := d.Claim(ctx, "fresh", TypeOverdueDaily, day); ok {
		t.Fatalf("fresh pending claim must survive")
	}
}

func TestDeduplicator_InvalidKey(t *testing.T) {
	d := NewDeduplicator(newTestStore(), 0)
	if _, _, err := d.Claim(context.Background(), "", TypeOverdueDaily, day); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if _, _, err := d.Claim(context.Background(), "t-1", TypeOverdueDaily, time.Time{}); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

type failingStore struct{ testStore }

func (f *failingStore) TryClaim(ctx context.Context, k Key, claimedAt time.Time) (bool, error) {
	return false, errors.New("connection refused")
}

func TestDeduplicator_PropagatesStoreErrors(t *testing.T) {
	d := NewDeduplicator(&failingStore{}, 0)
	_, ok, err := d.Claim(context.Background(), "t-1", TypeOverdueDaily, day)
	if err == nil || ok {
		t.Fatalf("expected propagated error, got ok=%v err=%v", ok, err)
	}
}
