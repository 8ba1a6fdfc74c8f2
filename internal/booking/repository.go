package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrNotScheduled     = errors.New("schedule is not in scheduled state")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const listBase = `SELECT s.id, s.user_id, s.gym_id, s.membership_id, s.status,
	s.start_date, s.start_time, s.notes, s.cancellation_reason, s.reminder_sent, s.created_at,
	u.name AS member_name, u.email AS member_email,
	g.name AS gym_name
FROM schedules s
JOIN users u ON s.user_id = u.id
JOIN gyms g ON s.gym_id = g.id`

func (r *repository) List(ctx context.Context, q *listing.Query) ([]ScheduleDetail, error) {
	query, args := q.BuildSelect(listBase)

	items := []ScheduleDetail{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Count(ctx context.Context, q *listing.Query) (int, error) {
	query, args := q.BuildCount(`SELECT COUNT(*) FROM schedules s
JOIN users u ON s.user_id = u.id
JOIN gyms g ON s.gym_id = g.id`)

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*ScheduleDetail, error) {
	var s ScheduleDetail
	err := r.db.GetContext(ctx, &s, listBase+" WHERE s.id = $1", id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Complete(ctx context.Context, id int) error {
	return r.transition(ctx,
		`UPDATE schedules SET status = 'completed', updated_at = NOW() WHERE id = $1 AND status = 'scheduled'`, id)
}

func (r *repository) MarkMissed(ctx context.Context, id int) error {
	return r.transition(ctx,
		`UPDATE schedules SET status = 'missed', updated_at = NOW() WHERE id = $1 AND status = 'scheduled'`, id)
}

func (r *repository) Cancel(ctx context.Context, id int, reason string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE schedules SET status = 'cancelled', cancellation_reason = $2, updated_at = NOW() WHERE id = $1 AND status = 'scheduled'`,
		id, reason)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func (r *repository) MarkReminderSent(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE schedules SET reminder_sent = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// transition flips a visit out of the scheduled state. The status guard in
// the WHERE clause makes terminal states immutable without a prior read.
func (r *repository) transition(ctx context.Context, query string, id int) error {
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotScheduled
	}
	return nil
}
