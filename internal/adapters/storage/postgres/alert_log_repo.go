package postgres

import (
	"context"
	"database/sql"
	"time"

	"pet-care-reminders/internal/domain/alerts"

	"github.com/google/uuid"
)

const alertLogTripleKey = "alert_log_triple_key"

// AlertLogRepo implementa alerts.ClaimStore sobre la tabla alert_log.
// La constraint UNIQUE es la única sincronización entre corridas.
type AlertLogRepo struct {
	db *sql.DB
}

func NewAlertLogRepo(db *sql.DB) *AlertLogRepo {
	return &AlertLogRepo{db: db}
}

func (r *AlertLogRepo) TryClaim(ctx context.Context, k alerts.Key, claimedAt time.Time) (bool, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO alert_log (id, treatment_id, alert_type, alert_date, status, claimed_at)
		VALUES ($1,$2,$3,$4::date,'pending',$5)
	`,
		uuid.NewString(),
		k.TreatmentID,
		string(k.Type),
		dateParam(k.Date),
		claimedAt,
	)
	if err == nil {
		return true, nil
	}
	if uniqueViolation(err, alertLogTripleKey) {
		return false, nil
	}
	return false, err
}

func (r *AlertLogRepo) MarkSent(ctx context.Context, k alerts.Key, sentAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE alert_log
		SET status = 'sent', sent_at = $4
		WHERE treatment_id::text = $1 AND alert_type = $2 AND alert_date = $3::date
	`, k.TreatmentID, string(k.Type), dateParam(k.Date), sentAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return alerts.ErrClaimNotFound
	}
	return nil
}

func (r *AlertLogRepo) Release(ctx context.Context, k alerts.Key) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM alert_log
		WHERE treatment_id::text = $1 AND alert_type = $2 AND alert_date = $3::date
		  AND status = 'pending'
	`, k.TreatmentID, string(k.Type), dateParam(k.Date))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return alerts.ErrClaimNotFound
	}
	return nil
}

func (r *AlertLogRepo) ReapStale(ctx context.Context, olderThan time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM alert_log
		WHERE status = 'pending' AND claimed_at < $1
	`, olderThan)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
