package applications

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-reminders/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrFutureDate   = errors.New("applied_on cannot be in the future")
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService: loc es la zona de referencia para "hoy".
func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

type RecordInput struct {
	// AppliedOn nil => hoy.
	AppliedOn *time.Time
	Notes     string
}

func (s *Service) Record(ctx context.Context, treatmentID, recordedBy string, in RecordInput) (Application, error) {
	treatmentID = strings.TrimSpace(treatmentID)
	recordedBy = strings.TrimSpace(recordedBy)
	if treatmentID == "" || recordedBy == "" {
		return Application{}, ErrInvalidInput
	}

	now := s.now()
	today := schedule.Today(now, s.loc)

	appliedOn := today
	if in.AppliedOn != nil {
		appliedOn = schedule.DateIn(*in.AppliedOn, s.loc)
		if appliedOn.After(today) {
			return Application{}, ErrFutureDate
		}
	}

	a := Application{
		ID:          uuid.NewString(),
		TreatmentID: treatmentID,
		AppliedOn:   appliedOn,
		RecordedBy:  recordedBy,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *Service) ListByTreatment(ctx context.Context, treatmentID string, limit int) ([]Application, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListByTreatment(ctx, treatmentID, limit)
}

// LastAppliedOn normaliza la fecha a medianoche en la zona de la app.
func (s *Service) LastAppliedOn(ctx context.Context, treatmentID string) (time.Time, bool, error) {
	t, ok, err := s.repo.LastAppliedOn(ctx, treatmentID)
	if err != nil || !ok {
		return time.Time{}, ok, err
	}
	return schedule.DateIn(t, s.loc), true, nil
}
