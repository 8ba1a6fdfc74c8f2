package auth

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Admin is a users row with the admin role. Admins and members share the
// users table; the role column separates them.
type Admin struct {
	ID           int       `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

type Repository interface {
	FindAdminByEmail(ctx context.Context, email string) (*Admin, error)
	TouchLastLogin(ctx context.Context, adminID int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	query := `
		SELECT id, name, email, password_hash, role, status, created_at
		FROM users
		WHERE email = $1 AND role = 'admin' AND status = 'active'
	`

	var admin Admin
	err := r.db.GetContext(ctx, &admin, query, email)
	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *repository) TouchLastLogin(ctx context.Context, adminID int) error {
	query := `
		UPDATE users
		SET last_login_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, adminID)
	return err
}
