package membership

import "time"

const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"

	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentFailed  = "failed"
)

// MaxExtendDays bounds a single extension; the source system left this
// unbounded, one year is the documented maximum here.
const MaxExtendDays = 365

type Membership struct {
	ID            int       `db:"id" json:"id"`
	UserID        int       `db:"user_id" json:"user_id"`
	GymID         int       `db:"gym_id" json:"gym_id"`
	PlanID        int       `db:"plan_id" json:"plan_id"`
	Status        string    `db:"status" json:"status"`
	PaymentStatus string    `db:"payment_status" json:"payment_status"`
	StartDate     time.Time `db:"start_date" json:"start_date"`
	EndDate       time.Time `db:"end_date" json:"end_date"`
	Amount        float64   `db:"amount" json:"amount"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// MembershipDetail is one list-page row with joined member, gym and plan
// fields plus the visits-used correlated count.
type MembershipDetail struct {
	Membership
	MemberName  string  `db:"member_name" json:"member_name"`
	MemberEmail string  `db:"member_email" json:"member_email"`
	GymName     string  `db:"gym_name" json:"gym_name"`
	PlanTier    string  `db:"plan_tier" json:"plan_tier"`
	PlanPrice   float64 `db:"plan_price" json:"plan_price"`
	VisitsUsed  int     `db:"visits_used" json:"visits_used"`
}

// Plan rows are read-only on the admin side.
type Plan struct {
	PlanID     int     `db:"plan_id" json:"plan_id"`
	GymID      int     `db:"gym_id" json:"gym_id"`
	GymName    string  `db:"gym_name" json:"gym_name"`
	Tier       string  `db:"tier" json:"tier"`
	Duration   string  `db:"duration" json:"duration"`
	Price      float64 `db:"price" json:"price"`
	Inclusions string  `db:"inclusions" json:"inclusions"`
}

type Filter struct {
	Status        string
	PaymentStatus string
	GymID         string
	Search        string
	SortBy        string
	SortOrder     string
	Page          int
}
