package gym

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
	ErrInvalidStatus        = errors.New("invalid gym status")
	ErrHasActiveMemberships = errors.New("gym has active memberships and cannot be deleted")
)

var validate = validator.New()

// Allow-listed sort keys. Anything else falls back to the documented
// default order: featured gyms first, newest first.
var sortable = listing.NewSortable("newest", "g.is_featured DESC, g.created_at", listing.Desc).
	Add("name", "g.name").
	Add("city", "g.city").
	Add("status", "g.status").
	Add("capacity", "g.capacity")

type ListResult struct {
	Items  []GymWithOwner
	Meta   listing.Meta
	Cities []string
}

type Service interface {
	List(ctx context.Context, f Filter) (*ListResult, error)
	UpdateStatus(ctx context.Context, actor activitylog.Actor, gymID int, newStatus string) error
	ToggleFeatured(ctx context.Context, actor activitylog.Actor, gymID int) (bool, error)
	Delete(ctx context.Context, actor activitylog.Actor, gymID int) error
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
		WhereEq("g.status", f.Status).
		WhereEq("g.city", f.City).
		WhereSearch(f.Search, "g.name", "g.address", "g.city", "o.name").
		Page(f.Page)

	// soft-deleted gyms only show up when explicitly filtered for
	if f.Status == "" {
		q.Where("g.status <> ?", StatusDeleted)
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

	cities, err := s.repo.ListCities(ctx)
	if err != nil {
		return nil, err
	}

	metrics.RecordListQuery("gyms")

	return &ListResult{
		Items:  items,
		Meta:   listing.NewMeta(total, q.PageNum(), q.PageSize()),
		Cities: cities,
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor activitylog.Actor, gymID int, newStatus string) error {
	if err := validate.Var(newStatus, "required,oneof=active inactive pending suspended deleted"); err != nil {
		metrics.RecordAdminActionFailure("gym", "invalid_status")
		return ErrInvalidStatus
	}

	gym, err := s.repo.GetByID(ctx, gymID)
	if err != nil {
		return ErrGymNotFound
	}

	if err := s.repo.UpdateStatus(ctx, gymID, newStatus); err != nil {
		return err
	}

	s.record(ctx, actor, "update_gym_status",
		fmt.Sprintf("Gym #%d (%s): %s -> %s", gym.ID, gym.Name, gym.Status, newStatus))
	metrics.RecordAdminAction("gym", "update_status")

	return nil
}

func (s *service) ToggleFeatured(ctx context.Context, actor activitylog.Actor, gymID int) (bool, error) {
	gym, err := s.repo.GetByID(ctx, gymID)
	if err != nil {
		return false, ErrGymNotFound
	}

	featured := !gym.IsFeatured
	if err := s.repo.SetFeatured(ctx, gymID, featured); err != nil {
		return false, err
	}

	s.record(ctx, actor, "toggle_gym_featured",
		fmt.Sprintf("Gym #%d (%s): featured=%t", gym.ID, gym.Name, featured))
	metrics.RecordAdminAction("gym", "toggle_featured")

	return featured, nil
}

func (s *service) Delete(ctx context.Context, actor activitylog.Actor, gymID int) error {
	gym, err := s.repo.GetByID(ctx, gymID)
	if err != nil {
		return ErrGymNotFound
	}

	hasActive, err := s.repo.HasActiveMemberships(ctx, gymID)
	if err != nil {
		return err
	}

	if hasActive {
		metrics.RecordAdminActionFailure("gym", "active_memberships")
		return ErrHasActiveMemberships
	}

	if err := s.repo.DeleteWithDependents(ctx, gymID); err != nil {
		return err
	}

	s.record(ctx, actor, "delete_gym",
		fmt.Sprintf("Gym #%d (%s) deleted with dependent rows", gym.ID, gym.Name))
	metrics.RecordAdminAction("gym", "delete")

	return nil
}

// audit failures never fail the mutation
func (s *service) record(ctx context.Context, actor activitylog.Actor, action, details string) {
	if err := s.activityLog.Record(ctx, actor.Entry(action, details)); err != nil {
		logger.Errorf("Failed to record %s activity: %v", action, err)
	}
}
