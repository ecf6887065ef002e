package postgres

import (
	"context"
	"database/sql"
	"time"

	"pet-care-reminders/internal/domain/applications"
)

type ApplicationsRepo struct {
	db *sql.DB
}

func NewApplicationsRepo(db *sql.DB) *ApplicationsRepo {
	return &ApplicationsRepo{db: db}
}

func (r *ApplicationsRepo) Create(ctx context.Context, a applications.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO applications (id, treatment_id, applied_on, recorded_by, notes, created_at)
		VALUES ($1,$2,$3::date,$4,$5,$6)
	`,
		a.ID,
		a.TreatmentID,
		dateParam(a.AppliedOn),
		a.RecordedBy,
		a.Notes,
		a.CreatedAt,
	)
	return err
}

func (r *ApplicationsRepo) ListByTreatment(ctx context.Context, treatmentID string, limit int) ([]applications.Application, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, treatment_id, applied_on, recorded_by, notes, created_at
		FROM applications
		WHERE treatment_id::text = $1
		ORDER BY applied_on DESC, created_at DESC
		LIMIT $2
	`, treatmentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]applications.Application, 0)
	for rows.Next() {
		var a applications.Application
		if err := rows.Scan(
			&a.ID,
			&a.TreatmentID,
			&a.AppliedOn,
			&a.RecordedBy,
			&a.Notes,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// LastAppliedOn: applied_on es DATE; pgx lo devuelve como medianoche UTC.
func (r *ApplicationsRepo) LastAppliedOn(ctx context.Context, treatmentID string) (time.Time, bool, error) {
	var last sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT MAX(applied_on) FROM applications WHERE treatment_id::text = $1
	`, treatmentID).Scan(&last)
	if err != nil {
		return time.Time{}, false, err
	}
	if !last.Valid {
		return time.Time{}, false, nil
	}
	return last.Time, true, nil
}
