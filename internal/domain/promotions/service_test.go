package promotions

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakePromotionsRepo struct {
	promotions map[string]*Promotion
}

func (r *fakePromotionsRepo) ListPromotions(ctx context.Context, filter ListFilter) ([]Promotion, int64, error) {
	items := make([]Promotion, 0, len(r.promotions))
	for _, promotion := range r.promotions {
		if filter.RunningAt != nil && !promotion.Running(*filter.RunningAt) {
			continue
		}
		items = append(items, *promotion)
	}
	return items, int64(len(items)), nil
}

func (r *fakePromotionsRepo) GetPromotion(ctx context.Context, id string) (*Promotion, error) {
	promotion, ok := r.promotions[id]
	if !ok {
		return nil, ErrPromotionNotFound
	}
	copied := *promotion
	return &copied, nil
}

func (r *fakePromotionsRepo) CreatePromotion(ctx context.Context, promotion *Promotion) error {
	for _, existing := range r.promotions {
		if existing.Code == promotion.Code {
			return ErrCodeTaken
		}
	}
	copied := *promotion
	r.promotions[promotion.ID] = &copied
	return nil
}

func (r *fakePromotionsRepo) UpdatePromotion(ctx context.Context, promotion *Promotion) (bool, error) {
	if _, ok := r.promotions[promotion.ID]; !ok {
		return false, nil
	}
	copied := *promotion
	r.promotions[promotion.ID] = &copied
	return true, nil
}

func (r *fakePromotionsRepo) DeletePromotion(ctx context.Context, id string) (bool, error) {
	if _, ok := r.promotions[id]; !ok {
		return false, nil
	}
	delete(r.promotions, id)
	return true, nil
}

func validInput() Input {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return Input{
		Title:           "New year",
		Code:            " new-year26 ",
		DiscountPercent: 15,
		StartsAt:        start,
		EndsAt:          start.AddDate(0, 1, 0),
		IsActive:        true,
	}
}

func TestCreateUppercasesCode(t *testing.T) {
	service := NewService(&fakePromotionsRepo{promotions: map[string]*Promotion{}})
	promotion, err := service.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if promotion.Code != "NEW-YEAR26" {
		t.Fatalf("expected upper-cased code, got %q", promotion.Code)
	}
	if _, err := service.Create(context.Background(), validInput()); !errors.Is(err, ErrCodeTaken) {
		t.Fatalf("expected duplicate code conflict, got %v", err)
	}
}

func TestCreateValidates(t *testing.T) {
	service := NewService(&fakePromotionsRepo{promotions: map[string]*Promotion{}})

	cases := []struct {
		name   string
		mutate func(*Input)
		want   error
	}{
		{"missing title", func(in *Input) { in.Title = "" }, ErrTitleRequired},
		{"short code", func(in *Input) { in.Code = "ab" }, ErrCodeInvalid},
		{"discount above range", func(in *Input) { in.DiscountPercent = 101 }, ErrDiscountInvalid},
		{"inverted window", func(in *Input) { in.EndsAt = in.StartsAt }, ErrWindowInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			if _, err := service.Create(context.Background(), input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRunning(t *testing.T) {
	input := validInput()
	promotion := fromInput("p1", input)
	if !promotion.Running(input.StartsAt) {
		t.Fatalf("promotion should run at its start")
	}
	if promotion.Running(input.EndsAt) {
		t.Fatalf("promotion should end at ends_at")
	}
	promotion.IsActive = false
	if promotion.Running(input.StartsAt.Add(time.Hour)) {
		t.Fatalf("inactive promotion never runs")
	}
}

func TestUpdateMissing(t *testing.T) {
	service := NewService(&fakePromotionsRepo{promotions: map[string]*Promotion{}})
	if _, err := service.Update(context.Background(), "missing", validInput()); !errors.Is(err, ErrPromotionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
