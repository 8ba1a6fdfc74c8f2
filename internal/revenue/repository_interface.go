package revenue

import "context"

type Repository interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
	BookingsByStatus(ctx context.Context) ([]StatusCount, error)
	MembershipsByPayment(ctx context.Context) ([]StatusCount, error)
	Totals(ctx context.Context, f ReportFilter) (*GymTotals, error)
	ByGym(ctx context.Context, f ReportFilter) ([]GymTotals, error)
	Monthly(ctx context.Context, f ReportFilter) ([]MonthlyPoint, error)
	TopGyms(ctx context.Context, limit int) ([]TopGym, error)
}
