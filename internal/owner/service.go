package owner

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
	ErrInvalidStatus        = errors.New("invalid owner status")
	ErrInvalidGymLimit      = errors.New("gym limit must be between 0 and 100")
	ErrHasActiveMemberships = errors.New("owner's gyms have active memberships and cannot be deleted")
)

var validate = validator.New()

var sortable = listing.NewSortable("newest", "o.created_at", listing.Desc).
	Add("name", "o.name").
	Add("email", "o.email").
	Add("status", "o.status").
	Add("gyms_count", "gyms_count")

type ListResult struct {
	Items []OwnerWithStats
	Meta  listing.Meta
}

type Service interface {
	List(ctx context.Context, f Filter) (*ListResult, error)
	UpdateStatus(ctx context.Context, actor activitylog.Actor, ownerID int, newStatus string) error
	Approve(ctx context.Context, actor activitylog.Actor, ownerID int) error
	SetGymLimit(ctx context.Context, actor activitylog.Actor, ownerID, limit int) error
	Delete(ctx context.Context, actor activitylog.Actor, ownerID int) error
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
		WhereEq("o.status", f.Status).
		WhereSearch(f.Search, "o.name", "o.email", "o.phone", "o.city").
		Page(f.Page)

	switch f.Approved {
	case "yes":
		q.Where("o.is_approved = ?", true)
	case "no":
		q.Where("o.is_approved = ?", false)
	}

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

	metrics.RecordListQuery("owners")

	return &ListResult{
		Items: items,
		Meta:  listing.NewMeta(total, q.PageNum(), q.PageSize()),
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor activitylog.Actor, ownerID int, newStatus string) error {
	if err := validate.Var(newStatus, "required,oneof=active inactive suspended"); err != nil {
		metrics.RecordAdminActionFailure("owner", "invalid_status")
		return ErrInvalidStatus
	}

	owner, err := s.repo.GetByID(ctx, ownerID)
	if err != nil {
		return ErrOwnerNotFound
	}

	if err := s.repo.UpdateStatus(ctx, ownerID, newStatus); err != nil {
		return err
	}

	s.record(ctx, actor, "update_owner_status",
		fmt.Sprintf("Owner #%d (%s): %s -> %s", owner.ID, owner.Name, owner.Status, newStatus))
	metrics.RecordAdminAction("owner", "update_status")

	return nil
}

func (s *service) Approve(ctx context.Context, actor activitylog.Actor, ownerID int) error {
	owner, err := s.repo.GetByID(ctx, ownerID)
	if err != nil {
		return ErrOwnerNotFound
	}

	if err := s.repo.SetApproved(ctx, ownerID, true); err != nil {
		return err
	}

	s.record(ctx, actor, "approve_owner",
		fmt.Sprintf("Owner #%d (%s) approved", owner.ID, owner.Name))
	metrics.RecordAdminAction("owner", "approve")

	return nil
}

func (s *service) SetGymLimit(ctx context.Context, actor activitylog.Actor, ownerID, limit int) error {
	if limit < 0 || limit > MaxGymLimit {
		metrics.RecordAdminActionFailure("owner", "invalid_gym_limit")
		return ErrInvalidGymLimit
	}

	owner, err := s.repo.GetByID(ctx, ownerID)
	if err != nil {
		return ErrOwnerNotFound
	}

	if err := s.repo.SetGymLimit(ctx, ownerID, limit); err != nil {
		return err
	}

	s.record(ctx, actor, "set_owner_gym_limit",
		fmt.Sprintf("Owner #%d (%s): gym_limit %d -> %d", owner.ID, owner.Name, owner.GymLimit, limit))
	metrics.RecordAdminAction("owner", "set_gym_limit")

	return nil
}

func (s *service) Delete(ctx context.Context, actor activitylog.Actor, ownerID int) error {
	owner, err := s.repo.GetByID(ctx, ownerID)
	if err != nil {
		return ErrOwnerNotFound
	}

	active, err := s.repo.CountActiveMembershipsAcrossGyms(ctx, ownerID)
	if err != nil {
		return err
	}

	if active > 0 {
		metrics.RecordAdminActionFailure("owner", "active_memberships")
		return ErrHasActiveMemberships
	}

	if err := s.repo.DeleteWithDependents(ctx, ownerID); err != nil {
		return err
	}

	s.record(ctx, actor, "delete_owner",
		fmt.Sprintf("Owner #%d (%s) deleted with gyms and dependent rows", owner.ID, owner.Name))
	metrics.RecordAdminAction("owner", "delete")

	return nil
}

func (s *service) record(ctx context.Context, actor activitylog.Actor, action, details string) {
	if err := s.activityLog.Record(ctx, actor.Entry(action, details)); err != nil {
		logger.Errorf("Failed to record %s activity: %v", action, err)
	}
}
