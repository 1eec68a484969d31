package promotions

import (
	"context"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Promotion, int64, error) {
	return s.repo.ListPromotions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*Promotion, error) {
	return s.repo.GetPromotion(ctx, id)
}

func (s *Service) Create(ctx context.Context, input Input) (*Promotion, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}

	promotion := fromInput(uuid.NewString(), input)
	if err := s.repo.CreatePromotion(ctx, &promotion); err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (s *Service) Update(ctx context.Context, id string, input Input) (*Promotion, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}

	promotion := fromInput(id, input)
	promotion.UpdatedAt = time.Now().UTC()
	updated, err := s.repo.UpdatePromotion(ctx, &promotion)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrPromotionNotFound
	}
	return s.repo.GetPromotion(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeletePromotion(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPromotionNotFound
	}
	return nil
}

func fromInput(id string, input Input) Promotion {
	return Promotion{
		ID:              id,
		Title:           input.Title,
		Description:     input.Description,
		Code:            input.Code,
		DiscountPercent: input.DiscountPercent,
		StartsAt:        input.StartsAt.UTC(),
		EndsAt:          input.EndsAt.UTC(),
		ImageURL:        input.ImageURL,
		IsActive:        input.IsActive,
	}
}

func normalize(input Input) (Input, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	input.ImageURL = strings.TrimSpace(input.ImageURL)

	if input.Title == "" {
		return input, ErrTitleRequired
	}
	if !codePattern.MatchString(input.Code) {
		return input, ErrCodeInvalid
	}
	if math.IsNaN(input.DiscountPercent) || input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return input, ErrDiscountInvalid
	}
	if !input.EndsAt.After(input.StartsAt) {
		return input, ErrWindowInvalid
	}
	return input, nil
}
