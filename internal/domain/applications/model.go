package applications

import "time"

// Application es un hecho histórico: el tratamiento se aplicó en AppliedOn.
// Inmutable; solo la más reciente define la próxima fecha.
type Application struct {
	ID          string
	TreatmentID string

	// AppliedOn es una fecha de calendario (medianoche en la zona de la app).
	AppliedOn time.Time

	RecordedBy string
	Notes      string

	CreatedAt time.Time
}
