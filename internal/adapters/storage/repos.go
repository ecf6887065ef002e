package storage

import (
	"database/sql"

	"pet-care-reminders/internal/adapters/storage/memory"
	"pet-care-reminders/internal/adapters/storage/postgres"
	"pet-care-reminders/internal/domain/alerts"
	"pet-care-reminders/internal/domain/applications"
	"pet-care-reminders/internal/domain/members"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/domain/treatments"
)

// Repos es el set de repositorios que usan la API, el runner y el seed.
type Repos struct {
	Pets         pets.Repository
	Members      members.Repository
	Treatments   treatments.Repository
	Applications applications.Repository
	AlertLog     alerts.ClaimStore
}

// New usa Postgres si db != nil; si no, todo en memoria.
func New(db *sql.DB) Repos {
	if db == nil {
		return NewMemory()
	}
	return Repos{
		Pets:         postgres.NewPetsRepo(db),
		Members:      postgres.NewMembersRepo(db),
		Treatments:   postgres.NewTreatmentsRepo(db),
		Applications: postgres.NewApplicationsRepo(db),
		AlertLog:     postgres.NewAlertLogRepo(db),
	}
}

func NewMemory() Repos {
	s := memory.NewStore()
	return Repos{
		Pets:         s.Pets,
		Members:      s.Members,
		Treatments:   s.Treatments,
		Applications: s.Applications,
		AlertLog:     s.AlertLog,
	}
}
