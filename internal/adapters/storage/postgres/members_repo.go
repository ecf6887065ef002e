package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-reminders/internal/domain/members"
)

type MembersRepo struct {
	db *sql.DB
}

func NewMembersRepo(db *sql.DB) *MembersRepo {
	return &MembersRepo{db: db}
}

func (r *MembersRepo) Create(ctx context.Context, m members.Membership) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_members (pet_id, user_id, role, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
	`, m.PetID, m.UserID, string(m.Role), m.CreatedAt, m.UpdatedAt)
	if uniqueViolation(err, "") {
		return members.ErrAlreadyMember
	}
	return err
}

func (r *MembersRepo) Update(ctx context.Context, m members.Membership) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pet_members
		SET role = $3, updated_at = $4
		WHERE pet_id::text = $1 AND user_id = $2
	`, m.PetID, m.UserID, string(m.Role), m.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return members.ErrNotFound
	}
	return nil
}

func (r *MembersRepo) Delete(ctx context.Context, petID, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM pet_members WHERE pet_id::text = $1 AND user_id = $2
	`, petID, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return members.ErrNotFound
	}
	return nil
}

func (r *MembersRepo) Get(ctx context.Context, petID, userID string) (members.Membership, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT pet_id, user_id, role, created_at, updated_at
		FROM pet_members
		WHERE pet_id::text = $1 AND user_id = $2
	`, petID, userID)

	m, err := scanMembership(row)
	if errors.Is(err, sql.ErrNoRows) {
		return members.Membership{}, members.ErrNotFound
	}
	return m, err
}

func (r *MembersRepo) ListByPet(ctx context.Context, petID string) ([]members.Membership, error) {
	return r.list(ctx, `WHERE pet_id::text = $1`, petID)
}

func (r *MembersRepo) ListByUser(ctx context.Context, userID string) ([]members.Membership, error) {
	return r.list(ctx, `WHERE user_id = $1`, userID)
}

func (r *MembersRepo) list(ctx context.Context, where string, arg string) ([]members.Membership, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pet_id, user_id, role, created_at, updated_at
		FROM pet_members
		`+where+`
		ORDER BY created_at ASC
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]members.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMembership(s rowScanner) (members.Membership, error) {
	var m members.Membership
	var role string
	if err := s.Scan(&m.PetID, &m.UserID, &role, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return members.Membership{}, err
	}
	m.Role = members.Role(role)
	return m, nil
}
