package revenue

// StatusCount is one slice of a GROUP BY status breakdown.
type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

type DashboardSummary struct {
	TotalGyms            int     `db:"total_gyms"`
	ActiveGyms           int     `db:"active_gyms"`
	TotalOwners          int     `db:"total_owners"`
	TotalMembers         int     `db:"total_members"`
	ActiveMemberships    int     `db:"active_memberships"`
	TotalRevenue         float64 `db:"total_revenue"`
	AdminEarnings        float64 `db:"admin_earnings"`
	BookingsByStatus     []StatusCount
	MembershipsByPayment []StatusCount
}

// GymTotals is one row of the per-gym revenue report.
type GymTotals struct {
	GymID      int     `db:"gym_id"`
	GymName    string  `db:"gym_name"`
	City       string  `db:"city"`
	Visits     int     `db:"visits"`
	Gross      float64 `db:"gross"`
	AdminCut   float64 `db:"admin_cut"`
	OwnerShare float64 `db:"owner_share"`
}

// MonthlyPoint feeds the revenue chart, one point per calendar month.
type MonthlyPoint struct {
	Month    string  `db:"month"`
	Gross    float64 `db:"gross"`
	AdminCut float64 `db:"admin_cut"`
}

type TopGym struct {
	GymID   int     `db:"gym_id"`
	GymName string  `db:"gym_name"`
	Total   float64 `db:"total"`
}

type ReportFilter struct {
	DateFrom string
	DateTo   string
	GymID    string
}

type Report struct {
	Totals  GymTotals
	ByGym   []GymTotals
	Monthly []MonthlyPoint
	TopGyms []TopGym
	Filter  ReportFilter
}
