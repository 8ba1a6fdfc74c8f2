package member

import (
	"database/sql"
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	RoleMember = "member"
	RoleAdmin  = "admin"
)

type Member struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Role      string    `db:"role" json:"role"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// MemberWithStats adds the current membership and booking totals shown on
// the members list page.
type MemberWithStats struct {
	Member
	CurrentPlan      sql.NullString `db:"current_plan" json:"current_plan"`
	MembershipStatus sql.NullString `db:"membership_status" json:"membership_status"`
	TotalBookings    int            `db:"total_bookings" json:"total_bookings"`
}

type Filter struct {
	Status    string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
}
