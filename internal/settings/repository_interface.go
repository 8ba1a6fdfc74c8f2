package settings

import "context"

type Repository interface {
	GetGroup(ctx context.Context, category string) (Values, error)
	UpsertGroup(ctx context.Context, category string, values Values) error
}
