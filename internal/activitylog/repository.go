package activitylog

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Record(ctx context.Context, entry Entry) error {
	query := `
		INSERT INTO activity_logs (user_id, user_type, action, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.UserID, entry.UserType, entry.Action, entry.Details, entry.IPAddress, entry.UserAgent)
	return err
}

const listBase = `
	SELECT id, user_id, user_type, action, details, ip_address, user_agent, created_at
	FROM activity_logs`

func (r *repository) List(ctx context.Context, q *listing.Query) ([]Entry, error) {
	query, args := q.BuildSelect(listBase)

	entries := []Entry{}
	err := r.db.SelectContext(ctx, &entries, query, args...)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *repository) Count(ctx context.Context, q *listing.Query) (int, error) {
	query, args := q.BuildCount(`SELECT COUNT(*) FROM activity_logs`)

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}
