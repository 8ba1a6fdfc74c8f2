package gym

import (
	"context"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

type Repository interface {
	List(ctx context.Context, q *listing.Query) ([]GymWithOwner, error)
	Count(ctx context.Context, q *listing.Query) (int, error)
	GetByID(ctx context.Context, id int) (*Gym, error)
	ListCities(ctx context.Context) ([]string, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	SetFeatured(ctx context.Context, id int, featured bool) error
	HasActiveMemberships(ctx context.Context, gymID int) (bool, error)
	DeleteWithDependents(ctx context.Context, id int) error
}
