package treatments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"pet-care-reminders/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("treatment not found")
)

// Límites de sanidad para la API (no son parte del cálculo).
const (
	maxIntervalDays   = 3650
	maxIntervalMonths = 120
	maxAlertDays      = 365
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Category      Category
	Name          string
	IntervalValue int
	IntervalUnit  schedule.Unit
	AlertDays     []int
	Notes         string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Treatment, error) {
	petID = strings.TrimSpace(petID)
	name := strings.TrimSpace(in.Name)
	if petID == "" || name == "" {
		return Treatment{}, ErrInvalidInput
	}
	if !in.Category.Valid() {
		return Treatment{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}
	if err := validateInterval(in.IntervalValue, in.IntervalUnit); err != nil {
		return Treatment{}, err
	}
	alertDays, err := NormalizeAlertDays(in.AlertDays)
	if err != nil {
		return Treatment{}, err
	}

	now := s.now()
	t := Treatment{
		ID:        uuid.NewString(),
		PetID:     petID,
		Category:  in.Category,
		Name:      name,
		Interval:  Interval{Value: in.IntervalValue, Unit: in.IntervalUnit},
		AlertDays: alertDays,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}

// GetForPet devuelve ErrNotFound si el tratamiento no pertenece a petID.
func (s *Service) GetForPet(ctx context.Context, petID, id string) (Treatment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Treatment{}, ErrNotFound
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Treatment{}, err
	}
	if t.PetID != petID {
		return Treatment{}, ErrNotFound
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, petID, id string) error {
	if _, err := s.GetForPet(ctx, petID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Treatment, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID)
}

// NormalizeAlertDays valida y deja los umbrales sin duplicados, en orden descendente.
// Vacío es válido (se usa DefaultAlertDays al evaluar).
func NormalizeAlertDays(in []int) ([]int, error) {
	if len(in) == 0 {
		return nil, nil
	}

	seen := map[int]struct{}{}
	out := make([]int, 0, len(in))
	for _, d := range in {
		if d < 0 || d > maxAlertDays {
			return nil, fmt.Errorf("%w: alert day %d out of range", ErrInvalidInput, d)
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out, nil
}

func validateInterval(value int, unit schedule.Unit) error {
	if value <= 0 {
		return fmt.Errorf("%w: interval value must be > 0", ErrInvalidInput)
	}
	switch unit {
	case schedule.UnitDays:
		if value > maxIntervalDays {
			return fmt.Errorf("%w: interval too long", ErrInvalidInput)
		}
	case schedule.UnitMonths:
		if value > maxIntervalMonths {
			return fmt.Errorf("%w: interval too long", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: interval unit must be days or months", ErrInvalidInput)
	}
	return nil
}
