package gym

import (
	"database/sql"
	"time"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusPending   = "pending"
	StatusSuspended = "suspended"
	StatusDeleted   = "deleted"
)

type Gym struct {
	ID               int            `db:"id" json:"id"`
	OwnerID          int            `db:"owner_id" json:"owner_id"`
	Name             string         `db:"name" json:"name"`
	Address          string         `db:"address" json:"address"`
	City             string         `db:"city" json:"city"`
	State            string         `db:"state" json:"state"`
	Status           string         `db:"status" json:"status"`
	Capacity         int            `db:"capacity" json:"capacity"`
	CurrentOccupancy int            `db:"current_occupancy" json:"current_occupancy"`
	IsFeatured       bool           `db:"is_featured" json:"is_featured"`
	CoverPhoto       sql.NullString `db:"cover_photo" json:"cover_photo"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
}

// GymWithOwner is one row of the admin list page: the gym plus denormalized
// owner fields and the active-member count from a correlated subquery.
type GymWithOwner struct {
	Gym
	OwnerName     string `db:"owner_name" json:"owner_name"`
	OwnerEmail    string `db:"owner_email" json:"owner_email"`
	ActiveMembers int    `db:"active_members" json:"active_members"`
}

// Filter carries the raw, independently optional list-page parameters.
type Filter struct {
	Status    string
	City      string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
}
