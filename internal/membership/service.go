package membership

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/logger"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/metrics"
)

var (
	ErrInvalidDays          = errors.New("extension days must be between 1 and 365")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

var validate = validator.New()

var sortable = listing.NewSortable("newest", "um.created_at", listing.Desc).
	Add("member", "u.name").
	Add("gym", "g.name").
	Add("status", "um.status").
	Add("end_date", "um.end_date").
	Add("amount", "um.amount")

var planSortable = listing.NewSortable("tier", "p.tier", listing.Asc).
	Add("gym", "g.name").
	Add("price", "p.price")

type ListResult struct {
	Items []MembershipDetail
	Meta  listing.Meta
}

type PlanListResult struct {
	Items []Plan
	Meta  listing.Meta
}

type Service interface {
	List(ctx context.Context, f Filter) (*ListResult, error)
	Cancel(ctx context.Context, actor activitylog.Actor, membershipID int) error
	Extend(ctx context.Context, actor activitylog.Actor, membershipID, days int) error
	UpdatePaymentStatus(ctx context.Context, actor activitylog.Actor, membershipID int, paymentStatus string) error
	ListPlans(ctx context.Context, sortBy, sortOrder string, page int) (*PlanListResult, error)
}

type service struct {
	repo        Repository
	activityLog activitylog.Recorder
	pageSize    int
}

func NewService(repo Repository, activityLog activitylog.Recorder, pageSize int) Service {
	return &service{
		repo:        repo,
		activityLog: activityLog,
		pageSize:    pageSize,
	}
}

func buildQuery(f Filter, pageSize int) *listing.Query {
	q := listing.NewQuery(pageSize).
		WhereEq("um.status", f.Status).
		WhereEq("um.payment_status", f.PaymentStatus).
		WhereEq("um.gym_id::text", f.GymID).
		WhereSearch(f.Search, "u.name", "u.email", "g.name", "p.tier").
		Page(f.Page)

	expr, order := sortable.Resolve(f.SortBy, f.SortOrder)
	q.OrderBy(expr, order)

	return q
}

func (s *service) List(ctx context.Context, f Filter) (*ListResult, error) {
	q := buildQuery(f, s.pageSize)

	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	metrics.RecordListQuery("memberships")

	return &ListResult{
		Items: items,
		Meta:  listing.NewMeta(total, q.PageNum(), q.PageSize()),
	}, nil
}

func (s *service) Cancel(ctx context.Context, actor activitylog.Actor, membershipID int) error {
	m, err := s.repo.GetByID(ctx, membershipID)
	if err != nil {
		return ErrMembershipNotFound
	}

	if err := s.repo.Cancel(ctx, membershipID); err != nil {
		return err
	}

	s.record(ctx, actor, "cancel_membership",
		fmt.Sprintf("Membership #%d (member #%d, gym #%d) cancelled", m.ID, m.UserID, m.GymID))
	metrics.RecordAdminAction("membership", "cancel")

	return nil
}

// Extend adds days to end_date. Days outside 1..MaxExtendDays are rejected
// before any write.
func (s *service) Extend(ctx context.Context, actor activitylog.Actor, membershipID, days int) error {
	if days < 1 || days > MaxExtendDays {
		metrics.RecordAdminActionFailure("membership", "invalid_days")
		return ErrInvalidDays
	}

	m, err := s.repo.GetByID(ctx, membershipID)
	if err != nil {
		return ErrMembershipNotFound
	}

	if err := s.repo.ExtendEndDate(ctx, membershipID, days); err != nil {
		return err
	}

	s.record(ctx, actor, "extend_membership",
		fmt.Sprintf("Membership #%d extended by %d days (end date was %s)",
			m.ID, days, m.EndDate.Format("2006-01-02")))
	metrics.RecordAdminAction("membership", "extend")

	return nil
}

func (s *service) UpdatePaymentStatus(ctx context.Context, actor activitylog.Actor, membershipID int, paymentStatus string) error {
	if err := validate.Var(paymentStatus, "required,oneof=paid pending failed"); err != nil {
		metrics.RecordAdminActionFailure("membership", "invalid_payment_status")
		return ErrInvalidPaymentStatus
	}

	m, err := s.repo.GetByID(ctx, membershipID)
	if err != nil {
		return ErrMembershipNotFound
	}

	if err := s.repo.UpdatePaymentStatus(ctx, membershipID, paymentStatus); err != nil {
		return err
	}

	s.record(ctx, actor, "update_membership_payment",
		fmt.Sprintf("Membership #%d: payment %s -> %s", m.ID, m.PaymentStatus, paymentStatus))
	metrics.RecordAdminAction("membership", "update_payment_status")

	return nil
}

func (s *service) ListPlans(ctx context.Context, sortBy, sortOrder string, page int) (*PlanListResult, error) {
	q := listing.NewQuery(s.pageSize).Page(page)
	expr, order := planSortable.Resolve(sortBy, sortOrder)
	q.OrderBy(expr, order)

	total, err := s.repo.CountPlans(ctx, q)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListPlans(ctx, q)
	if err != nil {
		return nil, err
	}

	metrics.RecordListQuery("plans")

	return &PlanListResult{
		Items: items,
		Meta:  listing.NewMeta(total, q.PageNum(), q.PageSize()),
	}, nil
}

func (s *service) record(ctx context.Context, actor activitylog.Actor, action, details string) {
	if err := s.activityLog.Record(ctx, actor.Entry(action, details)); err != nil {
		logger.Errorf("Failed to record %s activity: %v", action, err)
	}
}
