package membership

import (
	"context"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

type Repository interface {
	List(ctx context.Context, q *listing.Query) ([]MembershipDetail, error)
	Count(ctx context.Context, q *listing.Query) (int, error)
	GetByID(ctx context.Context, id int) (*Membership, error)
	Cancel(ctx context.Context, id int) error
	ExtendEndDate(ctx context.Context, id, days int) error
	UpdatePaymentStatus(ctx context.Context, id int, paymentStatus string) error
	ListPlans(ctx context.Context, q *listing.Query) ([]Plan, error)
	CountPlans(ctx context.Context, q *listing.Query) (int, error)
}
