package activitylog

import (
	"context"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

// Recorder is the write side used by every mutation handler.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

type Repository interface {
	Recorder
	List(ctx context.Context, q *listing.Query) ([]Entry, error)
	Count(ctx context.Context, q *listing.Query) (int, error)
}
