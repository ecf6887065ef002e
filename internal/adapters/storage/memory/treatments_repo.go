package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-care-reminders/internal/domain/treatments"
)

type treatmentRepo struct {
	mu   sync.RWMutex
	byID map[string]treatments.Treatment
	// onDelete permite borrar en cascada (aplicaciones y alert log).
	onDelete func(treatmentID string)
}

func NewTreatmentRepo() treatments.Repository {
	return &treatmentRepo{
		byID: make(map[string]treatments.Treatment),
	}
}

func (r *treatmentRepo) Create(ctx context.Context, t treatments.Treatment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		return errors.New("treatment id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("treatment already exists")
	}
	t.AlertDays = append([]int(nil), t.AlertDays...)
	r.byID[t.ID] = t
	return nil
}

func (r *treatmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.byID[id]; !ok {
		r.mu.Unlock()
		return treatments.ErrNotFound
	}
	delete(r.byID, id)
	onDelete := r.onDelete
	r.mu.Unlock()

	if onDelete != nil {
		onDelete(id)
	}
	return nil
}

func (r *treatmentRepo) GetByID(ctx context.Context, id string) (treatments.Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return treatments.Treatment{}, treatments.ErrNotFound
	}
	return t, nil
}

func (r *treatmentRepo) ListByPet(ctx context.Context, petID string) ([]treatments.Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]treatments.Treatment, 0)
	for _, t := range r.byID {
		if t.PetID == petID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
