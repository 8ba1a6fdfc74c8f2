package booking

import (
	"database/sql"
	"time"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusMissed    = "missed"
)

// Schedule is one booked gym visit. Only scheduled visits may change
// state; completed, cancelled and missed are terminal.
type Schedule struct {
	ID                 int            `db:"id"`
	UserID             int            `db:"user_id"`
	GymID              int            `db:"gym_id"`
	MembershipID       int            `db:"membership_id"`
	Status             string         `db:"status"`
	StartDate          time.Time      `db:"start_date"`
	StartTime          string         `db:"start_time"`
	Notes              sql.NullString `db:"notes"`
	CancellationReason sql.NullString `db:"cancellation_reason"`
	ReminderSent       bool           `db:"reminder_sent"`
	CreatedAt          time.Time      `db:"created_at"`
}

type ScheduleDetail struct {
	Schedule
	MemberName  string `db:"member_name"`
	MemberEmail string `db:"member_email"`
	GymName     string `db:"gym_name"`
}

// VisitTime combines the visit date and the HH:MM slot into one timestamp.
func (s *Schedule) VisitTime() time.Time {
	t, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return s.StartDate
	}
	return time.Date(s.StartDate.Year(), s.StartDate.Month(), s.StartDate.Day(),
		t.Hour(), t.Minute(), 0, 0, s.StartDate.Location())
}

type Filter struct {
	Status    string
	GymID     string
	DateFrom  string
	DateTo    string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
}
