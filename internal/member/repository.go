package member

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

var ErrMemberNotFound = errors.New("member not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const listBase = `
	SELECT
		u.id, u.name, u.email, u.phone, u.role, u.status, u.created_at,
		(SELECT p.tier FROM user_memberships um
		 JOIN gym_membership_plans p ON um.plan_id = p.plan_id
		 WHERE um.user_id = u.id AND um.status = 'active'
		 ORDER BY um.end_date DESC LIMIT 1) AS current_plan,
		(SELECT um.status FROM user_memberships um
		 WHERE um.user_id = u.id
		 ORDER BY um.end_date DESC LIMIT 1) AS membership_status,
		(SELECT COUNT(*) FROM schedules s WHERE s.user_id = u.id) AS total_bookings
	FROM users u`

func (r *repository) List(ctx context.Context, q *listing.Query) ([]MemberWithStats, error) {
	query, args := q.BuildSelect(listBase)

	members := []MemberWithStats{}
	err := r.db.SelectContext(ctx, &members, query, args...)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) Count(ctx context.Context, q *listing.Query) (int, error) {
	query, args := q.BuildCount(`SELECT COUNT(*) FROM users u`)

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Member, error) {
	query := `
		SELECT id, name, email, phone, role, status, created_at
		FROM users
		WHERE id = $1
	`

	var member Member
	err := r.db.GetContext(ctx, &member, query, id)
	if err != nil {
		return nil, err
	}

	return &member, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `
		UPDATE users
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND role = 'member'
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func (r *repository) CountActiveMemberships(ctx context.Context, memberID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM user_memberships
		WHERE user_id = $1 AND status = 'active'
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, memberID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) DeleteWithDependents(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	dependents := []string{
		`DELETE FROM gym_revenue WHERE schedule_id IN (SELECT id FROM schedules WHERE user_id = $1)`,
		`DELETE FROM schedules WHERE user_id = $1`,
		`DELETE FROM user_memberships WHERE user_id = $1`,
	}

	for _, query := range dependents {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1 AND role = 'member'`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return tx.Commit()
}
