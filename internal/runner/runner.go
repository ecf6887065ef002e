package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pet-care-reminders/internal/domain/alerts"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/domain/schedule"
	"pet-care-reminders/internal/domain/treatments"
	"pet-care-reminders/internal/metrics"
	"pet-care-reminders/internal/notify"
	"pet-care-reminders/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

const DefaultWorkers = 4

type PetSource interface {
	ListActive(ctx context.Context) ([]pets.Pet, error)
}

type TreatmentSource interface {
	ListByPet(ctx context.Context, petID string) ([]treatments.Treatment, error)
}

type HistorySource interface {
	LastAppliedOn(ctx context.Context, treatmentID string) (time.Time, bool, error)
}

type Notifier interface {
	NotifyUpcoming(ctx context.Context, r notify.Reminder) error
	NotifyOverdue(ctx context.Context, r notify.Reminder) error
}

type Options struct {
	Workers  int
	Location *time.Location
	Logger   logger.Logger
	Now      func() time.Time
}

// Runner evalúa todas las mascotas activas y dispara las alertas del día.
type Runner struct {
	pets       PetSource
	treatments TreatmentSource
	history    HistorySource
	dedup      *alerts.Deduplicator
	notifier   Notifier

	workers int
	loc     *time.Location
	log     logger.Logger
	now     func() time.Time
}

func New(p PetSource, t TreatmentSource, h HistorySource, d *alerts.Deduplicator, n Notifier, opts Options) *Runner {
	r := &Runner{
		pets:       p,
		treatments: t,
		history:    h,
		dedup:      d,
		notifier:   n,
		workers:    opts.Workers,
		loc:        opts.Location,
		log:        opts.Logger,
		now:        opts.Now,
	}
	if r.workers <= 0 {
		r.workers = DefaultWorkers
	}
	if r.loc == nil {
		r.loc = time.UTC
	}
	if r.log == nil {
		r.log = logger.NewNop()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Summary es el resumen que se loguea al final de cada corrida.
type Summary struct {
	Today            string
	Pets             int
	Treatments       int
	SkippedNoHistory int
	Sent             int
	AlreadyClaimed   int
	Failed           int
	Reaped           int
}

func (s Summary) fields() map[string]any {
	return map[string]any{
		"today":              s.Today,
		"pets":               s.Pets,
		"treatments":         s.Treatments,
		"skipped_no_history": s.SkippedNoHistory,
		"sent":               s.Sent,
		"already_claimed":    s.AlreadyClaimed,
		"failed":             s.Failed,
		"reaped":             s.Reaped,
	}
}

type job struct {
	pet       pets.Pet
	treatment treatments.Treatment
}

// Run hace una corrida completa. Un error en un tratamiento no frena a los
// demás; todos los errores se devuelven juntos al final.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	defer func() { metrics.AlertRunDuration.Observe(time.Since(start).Seconds()) }()

	today := schedule.Today(r.now(), r.loc)
	sum := Summary{Today: today.Format(schedule.DateLayout)}
	log := r.log.With(map[string]any{"today": sum.Today})

	reaped, err := r.dedup.ReapStale(ctx)
	if err != nil {
		return sum, fmt.Errorf("reap stale claims: %w", err)
	}
	sum.Reaped = reaped
	if reaped > 0 {
		metrics.ClaimsReaped.Add(float64(reaped))
		log.Warn("reaped stale alert claims", map[string]any{"count": reaped})
	}

	activePets, err := r.pets.ListActive(ctx)
	if err != nil {
		return sum, fmt.Errorf("list active pets: %w", err)
	}
	sum.Pets = len(activePets)
	log.Info("alert run started", map[string]any{"pets": len(activePets)})

	var (
		mu   sync.Mutex
		errs []error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		errs = append(errs, err)
		sum.Failed++
	}

	jobs := make([]job, 0)
	for _, p := range activePets {
		ts, err := r.treatments.ListByPet(ctx, p.ID)
		if err != nil {
			log.Error("list treatments failed", map[string]any{"pet_id": p.ID, "error": err})
			fail(fmt.Errorf("pet %s: list treatments: %w", p.ID, err))
			continue
		}
		for _, t := range ts {
			jobs = append(jobs, job{pet: p, treatment: t})
		}
	}
	sum.Treatments = len(jobs)

	// Sin WithContext: un fallo no cancela al resto.
	var g errgroup.Group
	g.SetLimit(r.workers)

	for _, j := range jobs {
		g.Go(func() error {
			out, err := r.evaluate(ctx, j, today)

			mu.Lock()
			sum.SkippedNoHistory += out.skipped
			sum.Sent += out.sent
			sum.AlreadyClaimed += out.alreadyClaimed
			mu.Unlock()

			if err != nil {
				log.Error("treatment evaluation failed", map[string]any{
					"pet_id":       j.pet.ID,
					"treatment_id": j.treatment.ID,
					"error":        err,
				})
				fail(fmt.Errorf("treatment %s: %w", j.treatment.ID, err))
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Info("alert run finished", sum.fields())
	return sum, errors.Join(errs...)
}

type outcome struct {
	skipped        int
	sent           int
	alreadyClaimed int
}

// evaluate aplica los pasos por tratamiento: historial, próxima fecha,
// umbrales, overdue.
func (r *Runner) evaluate(ctx context.Context, j job, today time.Time) (outcome, error) {
	var out outcome
	t := j.treatment

	last, ok, err := r.history.LastAppliedOn(ctx, t.ID)
	if err != nil {
		return out, fmt.Errorf("last applied: %w", err)
	}
	if !ok {
		out.skipped++
		metrics.TreatmentsSkipped.WithLabelValues(metrics.SkipNoHistory).Inc()
		return out, nil
	}

	next := t.NextDate(last)
	days := schedule.DaysToNext(next, today)

	reminder := notify.Reminder{
		PetName:       j.pet.Name,
		TreatmentName: t.Name,
		Category:      t.Category,
		NextDate:      next,
		LastApplied:   last,
		Days:          days,
	}

	var errs []error
	if t.AlertsOn(days) {
		sent, err := r.fire(ctx, t.ID, alerts.UpcomingType(days), today, func(ctx context.Context) error {
			return r.notifier.NotifyUpcoming(ctx, reminder)
		})
		out.add(sent, err)
		errs = append(errs, err)
	}
	if days < 0 {
		sent, err := r.fire(ctx, t.ID, alerts.TypeOverdueDaily, today, func(ctx context.Context) error {
			return r.notifier.NotifyOverdue(ctx, reminder)
		})
		out.add(sent, err)
		errs = append(errs, err)
	}
	return out, errors.Join(errs...)
}

func (o *outcome) add(sent bool, err error) {
	switch {
	case err != nil:
	case sent:
		o.sent++
	default:
		o.alreadyClaimed++
	}
}

// fire: claim -> notificar -> confirmar. Si la entrega falla se libera el
// claim para que la próxima corrida reintente.
func (r *Runner) fire(ctx context.Context, treatmentID string, typ alerts.Type, today time.Time, send func(context.Context) error) (bool, error) {
	fields := map[string]any{"treatment_id": treatmentID, "alert_type": string(typ)}

	key, claimed, err := r.dedup.Claim(ctx, treatmentID, typ, today)
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", typ, err)
	}
	if !claimed {
		metrics.AlertsAlreadyClaimed.Inc()
		r.log.Debug("alert already claimed", fields)
		return false, nil
	}

	if err := send(ctx); err != nil {
		metrics.AlertsFailed.WithLabelValues(typ.Kind()).Inc()
		if rerr := r.dedup.Release(ctx, key); rerr != nil {
			// Queda pending; ReapStale lo limpia al vencer el lease.
			r.log.Error("release alert claim failed", map[string]any{
				"treatment_id": treatmentID,
				"alert_type":   string(typ),
				"error":        rerr,
			})
		}
		return false, fmt.Errorf("notify %s: %w", typ, err)
	}

	if err := r.dedup.Confirm(ctx, key); err != nil {
		// El mensaje ya salió; no lo contamos como fallo de entrega.
		r.log.Error("confirm alert claim failed", map[string]any{
			"treatment_id": treatmentID,
			"alert_type":   string(typ),
			"error":        err,
		})
		return true, fmt.Errorf("confirm %s: %w", typ, err)
	}

	metrics.AlertsSent.WithLabelValues(typ.Kind()).Inc()
	r.log.Info("alert sent", fields)
	return true, nil
}
