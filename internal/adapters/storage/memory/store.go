package memory

import (
	"pet-care-reminders/internal/domain/applications"
	"pet-care-reminders/internal/domain/members"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/domain/treatments"
)

// Store agrupa los repos en memoria (modo dev sin DB_DSN y tests).
// Borrar un tratamiento arrastra sus aplicaciones y su alert log,
// igual que ON DELETE CASCADE en Postgres.
type Store struct {
	Pets         pets.Repository
	Members      members.Repository
	Treatments   treatments.Repository
	Applications applications.Repository
	AlertLog     *AlertLog
}

func NewStore() *Store {
	apps := newApplicationRepo()
	log := NewAlertLog()

	tr := &treatmentRepo{
		byID: make(map[string]treatments.Treatment),
		onDelete: func(treatmentID string) {
			apps.deleteTreatment(treatmentID)
			log.deleteTreatment(treatmentID)
		},
	}

	return &Store{
		Pets:         NewPetRepo(),
		Members:      NewMemberRepo(),
		Treatments:   tr,
		Applications: apps,
		AlertLog:     log,
	}
}
