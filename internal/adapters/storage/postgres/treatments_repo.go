package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-care-reminders/internal/domain/schedule"
	"pet-care-reminders/internal/domain/treatments"
)

type TreatmentsRepo struct {
	db *sql.DB
}

func NewTreatmentsRepo(db *sql.DB) *TreatmentsRepo {
	return &TreatmentsRepo{db: db}
}

const treatmentSelect = `
	SELECT
		id, pet_id,
		category, name,
		interval_value, interval_unit,
		array_to_string(alerts_days, ','),
		notes,
		created_at, updated_at
	FROM treatments
`

func (r *TreatmentsRepo) Create(ctx context.Context, t treatments.Treatment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO treatments (
			id, pet_id,
			category, name,
			interval_value, interval_unit,
			alerts_days,
			notes,
			created_at, updated_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,
			COALESCE(string_to_array(NULLIF($7, ''), ',')::int[], '{}'),
			$8,$9,$10
		)
	`,
		t.ID,
		t.PetID,
		string(t.Category),
		t.Name,
		t.Interval.Value,
		string(t.Interval.Unit),
		intsParam(t.AlertDays),
		t.Notes,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *TreatmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM treatments WHERE id::text = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return treatments.ErrNotFound
	}
	return nil
}

func (r *TreatmentsRepo) GetByID(ctx context.Context, id string) (treatments.Treatment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return treatments.Treatment{}, treatments.ErrNotFound
	}

	t, err := scanTreatment(r.db.QueryRowContext(ctx, treatmentSelect+` WHERE id::text = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return treatments.Treatment{}, treatments.ErrNotFound
	}
	return t, err
}

func (r *TreatmentsRepo) ListByPet(ctx context.Context, petID string) ([]treatments.Treatment, error) {
	rows, err := r.db.QueryContext(ctx, treatmentSelect+`
		WHERE pet_id::text = $1
		ORDER BY created_at ASC, id ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]treatments.Treatment, 0)
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTreatment(s rowScanner) (treatments.Treatment, error) {
	var t treatments.Treatment
	var category, unit, days string
	if err := s.Scan(
		&t.ID,
		&t.PetID,
		&category,
		&t.Name,
		&t.Interval.Value,
		&unit,
		&days,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return treatments.Treatment{}, err
	}

	alertDays, err := parseInts(days)
	if err != nil {
		return treatments.Treatment{}, err
	}
	t.Category = treatments.Category(category)
	t.Interval.Unit = schedule.Unit(unit)
	t.AlertDays = alertDays
	return t, nil
}
