package ratings

import "context"

type Repository interface {
	ListRatings(ctx context.Context, filter ListFilter) ([]Rating, int64, error)
	ScoreTotals(ctx context.Context, classID string) ([]ScoreTotals, error)
	DeleteRating(ctx context.Context, id string) (bool, error)
}
