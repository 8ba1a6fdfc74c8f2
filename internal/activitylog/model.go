package activitylog

import "time"

// Entry is one append-only audit row. Entries are never updated or deleted.
type Entry struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	UserType  string    `db:"user_type" json:"user_type"`
	Action    string    `db:"action" json:"action"`
	Details   string    `db:"details" json:"details"`
	IPAddress string    `db:"ip_address" json:"ip_address"`
	UserAgent string    `db:"user_agent" json:"user_agent"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	UserTypeAdmin  = "admin"
	UserTypeOwner  = "owner"
	UserTypeMember = "member"
)

// Actor identifies who performed a mutation; services use it to build the
// audit entry for the action.
type Actor struct {
	ID        int
	IPAddress string
	UserAgent string
}

func (a Actor) Entry(action, details string) Entry {
	return Entry{
		UserID:    a.ID,
		UserType:  UserTypeAdmin,
		Action:    action,
		Details:   details,
		IPAddress: a.IPAddress,
		UserAgent: a.UserAgent,
	}
}
