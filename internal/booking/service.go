package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/logger"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/metrics"
)

var (
	ErrEmptyReason         = errors.New("cancellation reason is required")
	ErrReminderAlreadySent = errors.New("reminder already sent")
)

var sortable = listing.NewSortable("date", "s.start_date", listing.Desc).
	Add("member", "u.name").
	Add("gym", "g.name").
	Add("status", "s.status").
	Add("created", "s.created_at")

type ListResult struct {
	Items []ScheduleDetail
	Meta  listing.Meta
}

// ReminderSender is the slice of the email service the bookings admin needs.
type ReminderSender interface {
	SendBookingReminder(ctx context.Context, to, name, gymName string, when time.Time) error
}

type Service interface {
	List(ctx context.Context, f Filter) (*ListResult, error)
	Complete(ctx context.Context, actor activitylog.Actor, scheduleID int) error
	MarkMissed(ctx context.Context, actor activitylog.Actor, scheduleID int) error
	Cancel(ctx context.Context, actor activitylog.Actor, scheduleID int, reason string) error
	SendReminder(ctx context.Context, actor activitylog.Actor, scheduleID int) error
}

type service struct {
	repo        Repository
	activityLog activitylog.Recorder
	reminders   ReminderSender
	pageSize    int
}

func NewService(repo Repository, activityLog activitylog.Recorder, reminders ReminderSender, pageSize int) Service {
	return &service{
		repo:        repo,
		activityLog: activityLog,
		reminders:   reminders,
		pageSize:    pageSize,
	}
}

func buildQuery(f Filter, pageSize int) *listing.Query {
	q := listing.NewQuery(pageSize).
		WhereEq("s.status", f.Status).
		WhereEq("s.gym_id::text", f.GymID).
		WhereSearch(f.Search, "u.name", "u.email", "g.name").
		Page(f.Page)

	if f.DateFrom != "" {
		q.Where("s.start_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Where("s.start_date <= ?", f.DateTo)
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

	metrics.RecordListQuery("bookings")

	return &ListResult{
		Items: items,
		Meta:  listing.NewMeta(total, q.PageNum(), q.PageSize()),
	}, nil
}

func (s *service) Complete(ctx context.Context, actor activitylog.Actor, scheduleID int) error {
	sch, err := s.repo.GetByID(ctx, scheduleID)
	if err != nil {
		return ErrScheduleNotFound
	}

	if err := s.repo.Complete(ctx, scheduleID); err != nil {
		return err
	}

	s.record(ctx, actor, "complete_booking",
		fmt.Sprintf("Booking #%d (%s at %s) marked completed", sch.ID, sch.MemberName, sch.GymName))
	metrics.RecordAdminAction("booking", "complete")

	return nil
}

func (s *service) MarkMissed(ctx context.Context, actor activitylog.Actor, scheduleID int) error {
	sch, err := s.repo.GetByID(ctx, scheduleID)
	if err != nil {
		return ErrScheduleNotFound
	}

	if err := s.repo.MarkMissed(ctx, scheduleID); err != nil {
		return err
	}

	s.record(ctx, actor, "mark_booking_missed",
		fmt.Sprintf("Booking #%d (%s at %s) marked missed", sch.ID, sch.MemberName, sch.GymName))
	metrics.RecordAdminAction("booking", "mark_missed")

	return nil
}

func (s *service) Cancel(ctx context.Context, actor activitylog.Actor, scheduleID int, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		metrics.RecordAdminActionFailure("booking", "empty_reason")
		return ErrEmptyReason
	}

	sch, err := s.repo.GetByID(ctx, scheduleID)
	if err != nil {
		return ErrScheduleNotFound
	}

	if err := s.repo.Cancel(ctx, scheduleID, reason); err != nil {
		return err
	}

	s.record(ctx, actor, "cancel_booking",
		fmt.Sprintf("Booking #%d (%s at %s) cancelled: %s", sch.ID, sch.MemberName, sch.GymName, reason))
	metrics.RecordAdminAction("booking", "cancel")

	return nil
}

// SendReminder queues the reminder mail and flips reminder_sent only after
// the queue accepted it, so a failed enqueue can be retried from the UI.
func (s *service) SendReminder(ctx context.Context, actor activitylog.Actor, scheduleID int) error {
	sch, err := s.repo.GetByID(ctx, scheduleID)
	if err != nil {
		return ErrScheduleNotFound
	}

	if sch.ReminderSent {
		return ErrReminderAlreadySent
	}
	if sch.Status != StatusScheduled {
		return ErrNotScheduled
	}

	if err := s.reminders.SendBookingReminder(ctx, sch.MemberEmail, sch.MemberName, sch.GymName, sch.VisitTime()); err != nil {
		metrics.RecordAdminActionFailure("booking", "reminder_enqueue")
		return err
	}

	if err := s.repo.MarkReminderSent(ctx, scheduleID); err != nil {
		return err
	}

	s.record(ctx, actor, "send_booking_reminder",
		fmt.Sprintf("Reminder sent for booking #%d to %s", sch.ID, sch.MemberEmail))
	metrics.RecordAdminAction("booking", "send_reminder")

	return nil
}

func (s *service) record(ctx context.Context, actor activitylog.Actor, action, details string) {
	if err := s.activityLog.Record(ctx, actor.Entry(action, details)); err != nil {
		logger.Errorf("Failed to record %s activity: %v", action, err)
	}
}
