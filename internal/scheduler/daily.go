package scheduler

import (
	"context"
	"time"

	"pet-care-reminders/internal/platform/logger"
)

// NextRun devuelve el próximo instante estrictamente posterior a now en que
// el reloj de loc marca at (offset desde medianoche).
func NextRun(now time.Time, at time.Duration, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	h := int(at / time.Hour)
	m := int((at % time.Hour) / time.Minute)

	next := time.Date(local.Year(), local.Month(), local.Day(), h, m, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, h, m, 0, 0, loc)
	}
	return next
}

// Daily corre Job una vez por día a la hora At de Location.
type Daily struct {
	At       time.Duration
	Location *time.Location
	Job      func(ctx context.Context) error
	Logger   logger.Logger

	now func() time.Time
}

// Start bloquea hasta que ctx se cancela. Un error del job se loguea y
// la próxima corrida sigue programada.
func (d *Daily) Start(ctx context.Context) {
	log := d.Logger
	if log == nil {
		log = logger.NewNop()
	}
	now := d.now
	if now == nil {
		now = time.Now
	}

	for {
		next := NextRun(now(), d.At, d.Location)
		log.Info("scheduler: next run", map[string]any{"at": next.Format(time.RFC3339)})

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info("scheduler: stopped", nil)
			return
		case <-timer.C:
			if err := d.Job(ctx); err != nil {
				log.Error("scheduler: run failed", map[string]any{"error": err})
			}
		}
	}
}
