package settings

import (
	"context"
	"sort"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetGroup(ctx context.Context, category string) (Values, error) {
	rows := []Setting{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, category, key, value, updated_at FROM site_settings WHERE category = $1`, category)
	if err != nil {
		return nil, err
	}

	values := Values{}
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

// UpsertGroup writes the whole group in one transaction so a page save is
// all-or-nothing. Keys are written in sorted order.
func (r *repository) UpsertGroup(ctx context.Context, category string, values Values) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	const query = `INSERT INTO site_settings (category, key, value, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (category, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, query, category, key, values[key]); err != nil {
			return err
		}
	}

	return tx.Commit()
}
