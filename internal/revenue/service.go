package revenue

import (
	"context"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/metrics"
)

const (
	topGymsLimit      = 5
	recentActivityMax = 10
)

type Dashboard struct {
	Summary        *DashboardSummary
	TopGyms        []TopGym
	RecentActivity []activitylog.Entry
}

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Report(ctx context.Context, f ReportFilter) (*Report, error)
}

type service struct {
	repo        Repository
	activityLog activitylog.Repository
}

func NewService(repo Repository, activityLog activitylog.Repository) Service {
	return &service{
		repo:        repo,
		activityLog: activityLog,
	}
}

// Dashboard recomputes everything on each load. Nothing is cached, so the
// numbers always reflect the current rows.
func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}

	summary.BookingsByStatus, err = s.repo.BookingsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	summary.MembershipsByPayment, err = s.repo.MembershipsByPayment(ctx)
	if err != nil {
		return nil, err
	}

	top, err := s.repo.TopGyms(ctx, topGymsLimit)
	if err != nil {
		return nil, err
	}

	q := listing.NewQuery(recentActivityMax).OrderBy("created_at", listing.Desc).Page(1)
	recent, err := s.activityLog.List(ctx, q)
	if err != nil {
		return nil, err
	}

	metrics.RecordListQuery("dashboard")

	return &Dashboard{
		Summary:        summary,
		TopGyms:        top,
		RecentActivity: recent,
	}, nil
}

func (s *service) Report(ctx context.Context, f ReportFilter) (*Report, error) {
	totals, err := s.repo.Totals(ctx, f)
	if err != nil {
		return nil, err
	}

	byGym, err := s.repo.ByGym(ctx, f)
	if err != nil {
		return nil, err
	}

	monthly, err := s.repo.Monthly(ctx, f)
	if err != nil {
		return nil, err
	}

	top, err := s.repo.TopGyms(ctx, topGymsLimit)
	if err != nil {
		return nil, err
	}

	metrics.RecordListQuery("revenue")

	return &Report{
		Totals:  *totals,
		ByGym:   byGym,
		Monthly: monthly,
		TopGyms: top,
		Filter:  f,
	}, nil
}
