package gym

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/db"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

var ErrGymNotFound = errors.New("gym not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const listBase = `
	SELECT
		g.id, g.owner_id, g.name, g.address, g.city, g.state, g.status,
		g.capacity, g.current_occupancy, g.is_featured, g.cover_photo, g.created_at,
		o.name AS owner_name,
		o.email AS owner_email,
		(SELECT COUNT(*) FROM user_memberships um
		 WHERE um.gym_id = g.id AND um.status = 'active') AS active_members
	FROM gyms g
	JOIN gym_owners o ON g.owner_id = o.id`

const countBase = `
	SELECT COUNT(*)
	FROM gyms g
	JOIN gym_owners o ON g.owner_id = o.id`

func (r *repository) List(ctx context.Context, q *listing.Query) ([]GymWithOwner, error) {
	query, args := q.BuildSelect(listBase)

	gyms := []GymWithOwner{}
	err := r.db.SelectContext(ctx, &gyms, query, args...)
	if err != nil {
		return nil, err
	}

	return gyms, nil
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

func (r *repository) GetByID(ctx context.Context, id int) (*Gym, error) {
	query := `
		SELECT id, owner_id, name, address, city, state, status,
		       capacity, current_occupancy, is_featured, cover_photo, created_at
		FROM gyms
		WHERE id = $1
	`

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, id)
	if err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) ListCities(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT city
		FROM gyms
		WHERE status <> 'deleted' AND city <> ''
		ORDER BY city
	`

	cities := []string{}
	err := r.db.SelectContext(ctx, &cities, query)
	if err != nil {
		return nil, err
	}

	return cities, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `
		UPDATE gyms
		SET status = $2, updated_at = NOW()
		WHERE id = $1
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
		return ErrGymNotFound
	}

	return nil
}

func (r *repository) SetFeatured(ctx context.Context, id int, featured bool) error {
	query := `
		UPDATE gyms
		SET is_featured = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, featured)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrGymNotFound
	}

	return nil
}

func (r *repository) HasActiveMemberships(ctx context.Context, gymID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM user_memberships
			WHERE gym_id = $1 AND status = 'active'
		)
	`

	return db.Exists(ctx, r.db, query, gymID)
}

// DeleteWithDependents removes a gym and its child rows in one transaction.
// The caller is responsible for the active-membership guard.
func (r *repository) DeleteWithDependents(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	dependents := []string{
		`DELETE FROM gym_revenue WHERE gym_id = $1`,
		`DELETE FROM schedules WHERE gym_id = $1`,
		`DELETE FROM user_memberships WHERE gym_id = $1`,
		`DELETE FROM gym_equipment WHERE gym_id = $1`,
		`DELETE FROM gym_images WHERE gym_id = $1`,
		`DELETE FROM gym_membership_plans WHERE gym_id = $1`,
	}

	for _, query := range dependents {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM gyms WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrGymNotFound
	}

	return tx.Commit()
}
