package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/logger"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/metrics"
)

var ErrUnknownGroup = errors.New("unknown settings group")

type Service interface {
	Group(ctx context.Context, category string) (Values, error)
	UpdateGroup(ctx context.Context, actor activitylog.Actor, category string, posted map[string]string) error
}

type service struct {
	repo        Repository
	activityLog activitylog.Recorder
}

func NewService(repo Repository, activityLog activitylog.Recorder) Service {
	return &service{
		repo:        repo,
		activityLog: activityLog,
	}
}

// Group returns the stored values with group defaults filled in for any key
// that has never been saved.
func (s *service) Group(ctx context.Context, category string) (Values, error) {
	if !ValidGroup(category) {
		return nil, ErrUnknownGroup
	}

	stored, err := s.repo.GetGroup(ctx, category)
	if err != nil {
		return nil, err
	}

	values := Values{}
	for key, def := range groupDefaults[category] {
		values[key] = def
	}
	for key, val := range stored {
		values[key] = val
	}
	return values, nil
}

func (s *service) UpdateGroup(ctx context.Context, actor activitylog.Actor, category string, posted map[string]string) error {
	if !ValidGroup(category) {
		metrics.RecordAdminActionFailure("settings", "unknown_group")
		return ErrUnknownGroup
	}

	values := Values{}
	for _, key := range groupKeys[category] {
		if val, ok := posted[key]; ok {
			values[key] = val
		}
	}

	if err := s.repo.UpsertGroup(ctx, category, values); err != nil {
		return err
	}

	s.record(ctx, actor, "update_settings",
		fmt.Sprintf("Settings group %q updated (%d keys)", category, len(values)))
	metrics.RecordAdminAction("settings", "update_"+category)

	return nil
}

func (s *service) record(ctx context.Context, actor activitylog.Actor, action, details string) {
	if err := s.activityLog.Record(ctx, actor.Entry(action, details)); err != nil {
		logger.Errorf("Failed to record %s activity: %v", action, err)
	}
}
