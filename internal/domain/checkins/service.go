package checkins

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]CheckIn, int64, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, ErrRangeInvalid
	}
	filter.ClassID = strings.TrimSpace(filter.ClassID)
	return s.repo.ListCheckIns(ctx, filter)
}

// Create records a manual check-in. Only active classes accept check-ins.
func (s *Service) Create(ctx context.Context, input CreateInput) (*CheckIn, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, ErrUserRequired
	}
	classID := strings.TrimSpace(input.ClassID)

	className, ok, err := s.repo.ActiveClassName(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrClassNotActive
	}

	checkedInAt := s.now()
	if input.CheckedInAt != nil {
		checkedInAt = input.CheckedInAt.UTC()
	}

	checkIn := CheckIn{
		ID:          uuid.NewString(),
		ClassID:     &classID,
		ClassName:   className,
		UserID:      userID,
		UserName:    strings.TrimSpace(input.UserName),
		CheckedInAt: checkedInAt,
	}
	if err := s.repo.CreateCheckIn(ctx, &checkIn); err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteCheckIn(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCheckInNotFound
	}
	return nil
}
