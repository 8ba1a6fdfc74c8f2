package owner

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

var ErrOwnerNotFound = errors.New("gym owner not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const listBase = `
	SELECT
		o.id, o.name, o.email, o.phone, o.city, o.status, o.gym_limit,
		o.is_approved, o.is_verified, o.created_at,
		(SELECT COUNT(*) FROM gyms g
		 WHERE g.owner_id = o.id AND g.status <> 'deleted') AS gyms_count
	FROM gym_owners o`

func (r *repository) List(ctx context.Context, q *listing.Query) ([]OwnerWithStats, error) {
	query, args := q.BuildSelect(listBase)

	owners := []OwnerWithStats{}
	err := r.db.SelectContext(ctx, &owners, query, args...)
	if err != nil {
		return nil, err
	}

	return owners, nil
}

func (r *repository) Count(ctx context.Context, q *listing.Query) (int, error) {
	query, args := q.BuildCount(`SELECT COUNT(*) FROM gym_owners o`)

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Owner, error) {
	query := `
		SELECT id, name, email, phone, city, status, gym_limit,
		       is_approved, is_verified, created_at
		FROM gym_owners
		WHERE id = $1
	`

	var owner Owner
	err := r.db.GetContext(ctx, &owner, query, id)
	if err != nil {
		return nil, err
	}

	return &owner, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `
		UPDATE gym_owners
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
		return ErrOwnerNotFound
	}

	return nil
}

func (r *repository) SetApproved(ctx context.Context, id int, approved bool) error {
	query := `
		UPDATE gym_owners
		SET is_approved = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, approved)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrOwnerNotFound
	}

	return nil
}

func (r *repository) SetGymLimit(ctx context.Context, id int, limit int) error {
	query := `
		UPDATE gym_owners
		SET gym_limit = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, limit)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrOwnerNotFound
	}

	return nil
}

func (r *repository) CountActiveMembershipsAcrossGyms(ctx context.Context, ownerID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM user_memberships um
		JOIN gyms g ON um.gym_id = g.id
		WHERE g.owner_id = $1 AND um.status = 'active'
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, ownerID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// DeleteWithDependents removes the owner, their gyms and all gym child rows
// in one transaction. Caller checks the active-membership guard first.
func (r *repository) DeleteWithDependents(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	dependents := []string{
		`DELETE FROM gym_revenue WHERE gym_id IN (SELECT id FROM gyms WHERE owner_id = $1)`,
		`DELETE FROM schedules WHERE gym_id IN (SELECT id FROM gyms WHERE owner_id = $1)`,
		`DELETE FROM user_memberships WHERE gym_id IN (SELECT id FROM gyms WHERE owner_id = $1)`,
		`DELETE FROM gym_equipment WHERE gym_id IN (SELECT id FROM gyms WHERE owner_id = $1)`,
		`DELETE FROM gym_images WHERE gym_id IN (SELECT id FROM gyms WHERE owner_id = $1)`,
		`DELETE FROM gym_membership_plans WHERE gym_id IN (SELECT id FROM gyms WHERE owner_id = $1)`,
		`DELETE FROM gyms WHERE owner_id = $1`,
	}

	for _, query := range dependents {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM gym_owners WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrOwnerNotFound
	}

	return tx.Commit()
}
