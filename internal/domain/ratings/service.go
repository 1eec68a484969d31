package ratings

import (
	"context"
	"strings"

	"studio-admin/internal/domain/relations"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Rating, int64, error) {
	filter.ClassID = strings.TrimSpace(filter.ClassID)
	return s.repo.ListRatings(ctx, filter)
}

// Summaries returns count and average score per class, optionally for a
// single class. Classes without ratings are omitted.
func (s *Service) Summaries(ctx context.Context, classID string) ([]Summary, error) {
	totals, err := s.repo.ScoreTotals(ctx, strings.TrimSpace(classID))
	if err != nil {
		return nil, err
	}

	result := make([]Summary, 0, len(totals))
	for _, row := range totals {
		if row.Count == 0 {
			continue
		}
		result = append(result, Summary{
			ClassID:   row.ClassID,
			ClassName: row.ClassName,
			Count:     row.Count,
			Average:   relations.RoundCents(float64(row.Sum) / float64(row.Count)),
		})
	}
	return result, nil
}

// Delete removes a rating as a moderation action.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteRating(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRatingNotFound
	}
	return nil
}
