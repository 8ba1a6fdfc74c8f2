package booking

import (
	"context"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

type Repository interface {
	List(ctx context.Context, q *listing.Query) ([]ScheduleDetail, error)
	Count(ctx context.Context, q *listing.Query) (int, error)
	GetByID(ctx context.Context, id int) (*ScheduleDetail, error)
	Complete(ctx context.Context, id int) error
	MarkMissed(ctx context.Context, id int) error
	Cancel(ctx context.Context, id int, reason string) error
	MarkReminderSent(ctx context.Context, id int) error
}
