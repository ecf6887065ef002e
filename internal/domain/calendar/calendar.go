package calendar

import (
	"context"
	"errors"
	"sort"
	"time"

	"pet-care-reminders/internal/domain/applications"
	"pet-care-reminders/internal/domain/schedule"
	"pet-care-reminders/internal/domain/treatments"
)

const (
	// StatusNoHistory complementa schedule.Status para tratamientos sin aplicaciones.
	StatusNoHistory = "no_history"

	maxRangeDays = 366
)

var ErrInvalidRange = errors.New("invalid date range")

type TreatmentLister interface {
	ListByPet(ctx context.Context, petID string) ([]treatments.Treatment, error)
}

type History interface {
	LastAppliedOn(ctx context.Context, treatmentID string) (time.Time, bool, error)
	ListByTreatment(ctx context.Context, treatmentID string, limit int) ([]applications.Application, error)
}

// Service calcula las vistas de la UI (tablero y calendario) con el mismo
// Schedule Calculator que usa el runner.
type Service struct {
	treatments TreatmentLister
	history    History
	loc        *time.Location
	now        func() time.Time
}

func NewService(t TreatmentLister, h History, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		treatments: t,
		history:    h,
		loc:        loc,
		now:        time.Now,
	}
}

// Location es la zona de referencia usada para "hoy".
func (s *Service) Location() *time.Location { return s.loc }

// Today según el reloj del servicio.
func (s *Service) Today() time.Time { return schedule.Today(s.now(), s.loc) }

// DueItem es el estado de un tratamiento respecto de hoy.
type DueItem struct {
	Treatment   treatments.Treatment
	LastApplied *time.Time
	NextDate    *time.Time
	Days        *int
	Status      string
}

// DueBoard devuelve el estado de cada tratamiento de la mascota, ordenado
// por próxima fecha asc; los sin historial van al final.
func (s *Service) DueBoard(ctx context.Context, petID string) ([]DueItem, error) {
	ts, err := s.treatments.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	out := make([]DueItem, 0, len(ts))
	for _, t := range ts {
		item, err := s.dueItem(ctx, t, today)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].NextDate, out[j].NextDate
		switch {
		case a == nil && b == nil:
			return out[i].Treatment.Name < out[j].Treatment.Name
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return out[i].Treatment.Name < out[j].Treatment.Name
		default:
			return a.Before(*b)
		}
	})
	return out, nil
}

func (s *Service) dueItem(ctx context.Context, t treatments.Treatment, today time.Time) (DueItem, error) {
	last, ok, err := s.history.LastAppliedOn(ctx, t.ID)
	if err != nil {
		return DueItem{}, err
	}
	if !ok {
		return DueItem{Treatment: t, Status: StatusNoHistory}, nil
	}

	next := t.NextDate(last)
	days := schedule.DaysToNext(next, today)
	return DueItem{
		Treatment:   t,
		LastApplied: &last,
		NextDate:    &next,
		Days:        &days,
		Status:      string(schedule.StatusFromDays(days)),
	}, nil
}

// Day agrupa lo que cae en una fecha del calendario.
type Day struct {
	Date    time.Time
	Due     []DueItem
	Applied []AppliedItem
}

type AppliedItem struct {
	Treatment   treatments.Treatment
	Application applications.Application
}

const rangeHistoryLimit = 200

// Range arma el calendario entre from y to (inclusive, fechas en la zona de
// referencia): vencimientos próximos y aplicaciones registradas.
func (s *Service) Range(ctx context.Context, petID string, from, to time.Time) ([]Day, error) {
	from = schedule.DateIn(from, s.loc)
	to = schedule.DateIn(to, s.loc)
	if to.Before(from) || schedule.DaysToNext(to, from) > maxRangeDays {
		return nil, ErrInvalidRange
	}

	ts, err := s.treatments.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	byDate := map[string]*Day{}
	get := func(d time.Time) *Day {
		k := d.Format(schedule.DateLayout)
		if day, ok := byDate[k]; ok {
			return day
		}
		day := &Day{Date: d}
		byDate[k] = day
		return day
	}
	inRange := func(d time.Time) bool {
		return !d.Before(from) && !d.After(to)
	}

	for _, t := range ts {
		item, err := s.dueItem(ctx, t, today)
		if err != nil {
			return nil, err
		}
		if item.NextDate != nil && inRange(*item.NextDate) {
			day := get(*item.NextDate)
			day.Due = append(day.Due, item)
		}

		apps, err := s.history.ListByTreatment(ctx, t.ID, rangeHistoryLimit)
		if err != nil {
			return nil, err
		}
		for _, a := range apps {
			d := schedule.DateIn(a.AppliedOn, s.loc)
			if inRange(d) {
				day := get(d)
				day.Applied = append(day.Applied, AppliedItem{Treatment: t, Application: a})
			}
		}
	}

	out := make([]Day, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// MonthBounds devuelve el primer y último día del mes de t.
func MonthBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return first, first.AddDate(0, 1, -1)
}
