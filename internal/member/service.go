package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/logger"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/metrics"
)

var ErrHasActiveMemberships = errors.New("member has active memberships and cannot be deleted")

var sortable = listing.NewSortable("newest", "u.created_at", listing.Desc).
	Add("name", "u.name").
	Add("email", "u.email").
	Add("status", "u.status").
	Add("bookings", "total_bookings")

type ListResult struct {
	Items []MemberWithStats
	Meta  listing.Meta
}

type Service interface {
	List(ctx context.Context, f Filter) (*ListResult, error)
	ToggleStatus(ctx context.Context, actor activitylog.Actor, memberID int) (string, error)
	Delete(ctx context.Context, actor activitylog.Actor, memberID int) error
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
		Where("u.role = ?", RoleMember).
		WhereEq("u.status", f.Status).
		WhereSearch(f.Search, "u.name", "u.email", "u.phone").
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

	metrics.RecordListQuery("members")

	return &ListResult{
		Items: items,
		Meta:  listing.NewMeta(total, q.PageNum(), q.PageSize()),
	}, nil
}

// ToggleStatus flips a member between active and inactive and returns the
// new status.
func (s *service) ToggleStatus(ctx context.Context, actor activitylog.Actor, memberID int) (string, error) {
	member, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return "", ErrMemberNotFound
	}

	newStatus := StatusActive
	if member.Status == StatusActive {
		newStatus = StatusInactive
	}

	if err := s.repo.UpdateStatus(ctx, memberID, newStatus); err != nil {
		return "", err
	}

	s.record(ctx, actor, "toggle_member_status",
		fmt.Sprintf("Member #%d (%s): %s -> %s", member.ID, member.Name, member.Status, newStatus))
	metrics.RecordAdminAction("member", "toggle_status")

	return newStatus, nil
}

func (s *service) Delete(ctx context.Context, actor activitylog.Actor, memberID int) error {
	member, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return ErrMemberNotFound
	}

	active, err := s.repo.CountActiveMemberships(ctx, memberID)
	if err != nil {
		return err
	}

	if active > 0 {
		metrics.RecordAdminActionFailure("member", "active_memberships")
		return ErrHasActiveMemberships
	}

	if err := s.repo.DeleteWithDependents(ctx, memberID); err != nil {
		return err
	}

	s.record(ctx, actor, "delete_member",
		fmt.Sprintf("Member #%d (%s) deleted", member.ID, member.Name))
	metrics.RecordAdminAction("member", "delete")

	return nil
}

func (s *service) record(ctx context.Context, actor activitylog.Actor, action, details string) {
	if err := s.activityLog.Record(ctx, actor.Entry(action, details)); err != nil {
		logger.Errorf("Failed to record %s activity: %v", action, err)
	}
}
