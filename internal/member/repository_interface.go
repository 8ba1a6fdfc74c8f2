package member

import (
	"context"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

type Repository interface {
	List(ctx context.Context, q *listing.Query) ([]MemberWithStats, error)
	Count(ctx context.Context, q *listing.Query) (int, error)
	GetByID(ctx context.Context, id int) (*Member, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	CountActiveMemberships(ctx context.Context, memberID int) (int, error)
	DeleteWithDependents(ctx context.Context, id int) error
}
