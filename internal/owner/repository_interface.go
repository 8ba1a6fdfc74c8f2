package owner

import (
	"context"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

type Repository interface {
	List(ctx context.Context, q *listing.Query) ([]OwnerWithStats, error)
	Count(ctx context.Context, q *listing.Query) (int, error)
	GetByID(ctx context.Context, id int) (*Owner, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	SetApproved(ctx context.Context, id int, approved bool) error
	SetGymLimit(ctx context.Context, id int, limit int) error
	CountActiveMembershipsAcrossGyms(ctx context.Context, ownerID int) (int, error)
	DeleteWithDependents(ctx context.Context, id int) error
}
