package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pet-care-reminders/internal/domain/applications"
)

type applicationRepo struct {
	mu          sync.RWMutex
	byTreatment map[string][]applications.Application
}

func NewApplicationRepo() applications.Repository {
	return newApplicationRepo()
}

func newApplicationRepo() *applicationRepo {
	return &applicationRepo{
		byTreatment: make(map[string][]applications.Application),
	}
}

func (r *applicationRepo) Create(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" || a.TreatmentID == "" {
		return errors.New("application id and treatment id required")
	}
	r.byTreatment[a.TreatmentID] = append(r.byTreatment[a.TreatmentID], a)
	return nil
}

func (r *applicationRepo) ListByTreatment(ctx context.Context, treatmentID string, limit int) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]applications.Application(nil), r.byTreatment[treatmentID]...)

	// Orden por applied_on desc (más reciente primero)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppliedOn.After(out[j].AppliedOn)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = make([]applications.Application, 0)
	}
	return out, nil
}

func (r *applicationRepo) LastAppliedOn(ctx context.Context, treatmentID string) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var last time.Time
	found := false
	for _, a := range r.byTreatment[treatmentID] {
		if !found || a.AppliedOn.After(last) {
			last = a.AppliedOn
			found = true
		}
	}
	return last, found, nil
}

func (r *applicationRepo) deleteTreatment(treatmentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byTreatment, treatmentID)
}
