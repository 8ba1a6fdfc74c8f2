package membership

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

var (
	ErrMembershipNotFound = errors.New("membership not found")
	ErrNotActive          = errors.New("membership is not active")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const listBase = `
	SELECT
		um.id, um.user_id, um.gym_id, um.plan_id, um.status, um.payment_status,
		um.start_date, um.end_date, um.amount, um.created_at,
		u.name AS member_name,
		u.email AS member_email,
		g.name AS gym_name,
		p.tier AS plan_tier,
		p.price AS plan_price,
		(SELECT COUNT(*) FROM schedules s
		 WHERE s.membership_id = um.id AND s.status = 'completed') AS visits_used
	FROM user_memberships um
	JOIN users u ON um.user_id = u.id
	JOIN gyms g ON um.gym_id = g.id
	JOIN gym_membership_plans p ON um.plan_id = p.plan_id`

const countBase = `
	SELECT COUNT(*)
	FROM user_memberships um
	JOIN users u ON um.user_id = u.id
	JOIN gyms g ON um.gym_id = g.id
	JOIN gym_membership_plans p ON um.plan_id = p.plan_id`

func (r *repository) List(ctx context.Context, q *listing.Query) ([]MembershipDetail, error) {
	query, args := q.BuildSelect(listBase)

	memberships := []MembershipDetail{}
	err := r.db.SelectContext(ctx, &memberships, query, args...)
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

func (r *repository) Count(ctx context.Context, q *listing.Query) (int, error) {
	query, args := q.BuildCount(countBase)

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Membership, error) {
	query := `
		SELECT id, user_id, gym_id, plan_id, status, payment_status,
		       start_date, end_date, amount, created_at
		FROM user_memberships
		WHERE id = $1
	`

	var m Membership
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) Cancel(ctx context.Context, id int) error {
	query := `
		UPDATE user_memberships
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'active'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotActive
	}

	return nil
}

// ExtendEndDate moves end_date forward by the given number of calendar
// days; start_date is untouched.
func (r *repository) ExtendEndDate(ctx context.Context, id, days int) error {
	query := `
		UPDATE user_memberships
		SET end_date = end_date + ($2 * INTERVAL '1 day'), updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, days)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id int, paymentStatus string) error {
	query := `
		UPDATE user_memberships
		SET payment_status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, paymentStatus)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

const plansBase = `
	SELECT p.plan_id, p.gym_id, g.name AS gym_name, p.tier, p.duration, p.price, p.inclusions
	FROM gym_membership_plans p
	JOIN gyms g ON p.gym_id = g.id`

func (r *repository) ListPlans(ctx context.Context, q *listing.Query) ([]Plan, error) {
	query, args := q.BuildSelect(plansBase)

	plans := []Plan{}
	err := r.db.SelectContext(ctx, &plans, query, args...)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *repository) CountPlans(ctx context.Context, q *listing.Query) (int, error) {
	query, args := q.BuildCount(`SELECT COUNT(*) FROM gym_membership_plans p JOIN gyms g ON p.gym_id = g.id`)

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}
