package revenue

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Summary runs the scalar dashboard counters in one round trip.
func (r *repository) Summary(ctx context.Context) (*DashboardSummary, error) {
	const query = `SELECT
	(SELECT COUNT(*) FROM gyms WHERE status != 'deleted') AS total_gyms,
	(SELECT COUNT(*) FROM gyms WHERE status = 'active') AS active_gyms,
	(SELECT COUNT(*) FROM gym_owners) AS total_owners,
	(SELECT COUNT(*) FROM users WHERE role = 'member') AS total_members,
	(SELECT COUNT(*) FROM user_memberships WHERE status = 'active') AS active_memberships,
	COALESCE((SELECT SUM(amount) FROM gym_revenue), 0) AS total_revenue,
	COALESCE((SELECT SUM(admin_cut) FROM gym_revenue), 0) AS admin_earnings`

	var s DashboardSummary
	if err := r.db.GetContext(ctx, &s, query); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) BookingsByStatus(ctx context.Context) ([]StatusCount, error) {
	return r.statusCounts(ctx,
		`SELECT status, COUNT(*) AS count FROM schedules GROUP BY status ORDER BY status`)
}

func (r *repository) MembershipsByPayment(ctx context.Context) ([]StatusCount, error) {
	return r.statusCounts(ctx,
		`SELECT payment_status AS status, COUNT(*) AS count FROM user_memberships GROUP BY payment_status ORDER BY payment_status`)
}

func (r *repository) statusCounts(ctx context.Context, query string) ([]StatusCount, error) {
	counts := []StatusCount{}
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, err
	}
	return counts, nil
}

// reportWhere renders the optional report filters against the gym_revenue
// alias rv. An empty filter yields an empty clause, which matches every row.
func reportWhere(f ReportFilter) (string, []interface{}) {
	conds := []string{}
	args := []interface{}{}

	if f.DateFrom != "" {
		args = append(args, f.DateFrom)
		conds = append(conds, fmt.Sprintf("rv.created_at >= $%d", len(args)))
	}
	if f.DateTo != "" {
		args = append(args, f.DateTo)
		conds = append(conds, fmt.Sprintf("rv.created_at < ($%d::date + INTERVAL '1 day')", len(args)))
	}
	if f.GymID != "" {
		args = append(args, f.GymID)
		conds = append(conds, fmt.Sprintf("rv.gym_id::text = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *repository) Totals(ctx context.Context, f ReportFilter) (*GymTotals, error) {
	where, args := reportWhere(f)
	query := `SELECT COALESCE(COUNT(*), 0) AS visits,
	COALESCE(SUM(rv.amount), 0) AS gross,
	COALESCE(SUM(rv.admin_cut), 0) AS admin_cut,
	COALESCE(SUM(rv.amount - rv.admin_cut), 0) AS owner_share
FROM gym_revenue rv` + where

	var t GymTotals
	if err := r.db.GetContext(ctx, &t, query, args...); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) ByGym(ctx context.Context, f ReportFilter) ([]GymTotals, error) {
	where, args := reportWhere(f)
	query := `SELECT g.id AS gym_id, g.name AS gym_name, g.city,
	COUNT(rv.id) AS visits,
	COALESCE(SUM(rv.amount), 0) AS gross,
	COALESCE(SUM(rv.admin_cut), 0) AS admin_cut,
	COALESCE(SUM(rv.amount - rv.admin_cut), 0) AS owner_share
FROM gym_revenue rv
JOIN gyms g ON rv.gym_id = g.id` + where + `
GROUP BY g.id, g.name, g.city
ORDER BY gross DESC`

	rows := []GymTotals{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Monthly(ctx context.Context, f ReportFilter) ([]MonthlyPoint, error) {
	where, args := reportWhere(f)
	query := `SELECT TO_CHAR(DATE_TRUNC('month', rv.created_at), 'YYYY-MM') AS month,
	COALESCE(SUM(rv.amount), 0) AS gross,
	COALESCE(SUM(rv.admin_cut), 0) AS admin_cut
FROM gym_revenue rv` + where + `
GROUP BY DATE_TRUNC('month', rv.created_at)
ORDER BY month`

	points := []MonthlyPoint{}
	if err := r.db.SelectContext(ctx, &points, query, args...); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *repository) TopGyms(ctx context.Context, limit int) ([]TopGym, error) {
	const query = `SELECT g.id AS gym_id, g.name AS gym_name, COALESCE(SUM(rv.amount), 0) AS total
FROM gym_revenue rv
JOIN gyms g ON rv.gym_id = g.id
GROUP BY g.id, g.name
ORDER BY total DESC
LIMIT $1`

	gyms := []TopGym{}
	if err := r.db.SelectContext(ctx, &gyms, query, limit); err != nil {
		return nil, err
	}
	return gyms, nil
}
