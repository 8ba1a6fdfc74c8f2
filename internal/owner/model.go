package owner

import "time"

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// MaxGymLimit bounds the per-owner gym quota; 0 means unlimited.
const MaxGymLimit = 100

type Owner struct {
	ID         int       `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"phone"`
	City       string    `db:"city" json:"city"`
	Status     string    `db:"status" json:"status"`
	GymLimit   int       `db:"gym_limit" json:"gym_limit"`
	IsApproved bool      `db:"is_approved" json:"is_approved"`
	IsVerified bool      `db:"is_verified" json:"is_verified"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type OwnerWithStats struct {
	Owner
	GymsCount int `db:"gyms_count" json:"gyms_count"`
}

type Filter struct {
	Status    string
	Approved  string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
}
