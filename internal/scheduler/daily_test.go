package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestNextRun(t *testing.T) {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	at := 9 * time.Hour

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"antes de la hora", time.Date(2024, 6, 1, 8, 0, 0, 0, loc), time.Date(2024, 6, 1, 9, 0, 0, 0, loc)},
		{"justo a la hora", time.Date(2024, 6, 1, 9, 0, 0, 0, loc), time.Date(2024, 6, 2, 9, 0, 0, 0, loc)},
		{"después de la hora", time.Date(2024, 6, 1, 21, 0, 0, 0, loc), time.Date(2024, 6, 2, 9, 0, 0, 0, loc)},
		// 02:00 UTC del 1/6 son las 23:00 del 31/5 en Buenos Aires.
		{"now en UTC", time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 9, 0, 0, 0, loc)},
		{"fin de mes", time.Date(2024, 1, 31, 10, 0, 0, 0, loc), time.Date(2024, 2, 1, 9, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		got := NextRun(tc.now, at, loc)
		if !got.Equal(tc.want) {
			t.Fatalf("%s: NextRun = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestDaily_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Daily{
		At:  time.Hour,
		Job: func(context.Context) error { t.Fatal("job should not run"); return nil },
	}

	done := make(chan struct{})
	go func() {
		d.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
