package applications

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a Application) error
	// ListByTreatment ordena por applied_on desc.
	ListByTreatment(ctx context.Context, treatmentID string, limit int) ([]Application, error)
	// LastAppliedOn devuelve ok=false si el tratamiento no tiene historial.
	LastAppliedOn(ctx context.Context, treatmentID string) (time.Time, bool, error)
}
