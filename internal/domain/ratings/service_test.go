package ratings

import (
	"context"
	"errors"
	"testing"
)

type fakeRatingsRepo struct {
	totals  []ScoreTotals
	ratings map[string]Rating
}

func (r *fakeRatingsRepo) ListRatings(ctx context.Context, filter ListFilter) ([]Rating, int64, error) {
	items := make([]Rating, 0, len(r.ratings))
	for _, rating := range r.ratings {
		if filter.ClassID != "" && rating.ClassID != filter.ClassID {
			continue
		}
		items = append(items, rating)
	}
	return items, int64(len(items)), nil
}

func (r *fakeRatingsRepo) ScoreTotals(ctx context.Context, classID string) ([]ScoreTotals, error) {
	return r.totals, nil
}

func (r *fakeRatingsRepo) DeleteRating(ctx context.Context, id string) (bool, error) {
	if _, ok := r.ratings[id]; !ok {
		return false, nil
	}
	delete(r.ratings, id)
	return true, nil
}

func TestSummariesRoundAverage(t *testing.T) {
	service := NewService(&fakeRatingsRepo{totals: []ScoreTotals{
		{ClassID: "c1", ClassName: "Salsa", Count: 3, Sum: 14},
		{ClassID: "c2", ClassName: "Tango", Count: 0, Sum: 0},
	}})

	summaries, err := service.Summaries(context.Background(), "")
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("classes without ratings are omitted, got %+v", summaries)
	}
	if summaries[0].Average != 4.67 || summaries[0].Count != 3 {
		t.Fatalf("unexpected summary: %+v", summaries[0])
	}
}

func TestDeleteMissingRating(t *testing.T) {
	service := NewService(&fakeRatingsRepo{ratings: map[string]Rating{"r1": {ID: "r1"}}})
	if err := service.Delete(context.Background(), "r1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := service.Delete(context.Background(), "r1"); !errors.Is(err, ErrRatingNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
