package memberships

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Membership, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.ListMemberships(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*Membership, error) {
	return s.repo.GetMembership(ctx, id)
}

func (s *Service) Create(ctx context.Context, input Input) (*Membership, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}

	membership := Membership{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		DurationDays: input.DurationDays,
		ClassLimit:   input.ClassLimit,
		IsActive:     input.IsActive,
	}
	if err := s.repo.CreateMembership(ctx, &membership); err != nil {
		return nil, err
	}
	return &membership, nil
}

// Update also refreshes the membership name stored on class join rows.
func (s *Service) Update(ctx context.Context, id string, input Input) (*Membership, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}

	var updated Membership
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		membership, err := tx.GetMembership(ctx, id)
		if err != nil {
			return err
		}
		renamed := membership.Name != input.Name

		membership.Name = input.Name
		membership.Description = input.Description
		membership.Price = input.Price
		membership.DurationDays = input.DurationDays
		membership.ClassLimit = input.ClassLimit
		membership.IsActive = input.IsActive
		membership.UpdatedAt = time.Now().UTC()

		if err := tx.UpdateMembership(ctx, membership); err != nil {
			return err
		}
		if renamed {
			if err := tx.RenameInLinks(ctx, membership.ID, membership.Name); err != nil {
				return err
			}
		}
		updated = *membership
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteMembership(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMembershipNotFound
	}
	return nil
}

func normalize(input Input) (Input, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.Name == "" {
		return input, ErrNameRequired
	}
	if math.IsNaN(input.Price) || input.Price < 0 {
		return input, ErrPriceInvalid
	}
	if input.DurationDays <= 0 {
		return input, ErrDurationInvalid
	}
	if input.ClassLimit < 0 {
		return input, ErrClassLimitInvalid
	}
	input.Price = math.Round(input.Price*100) / 100
	return input, nil
}
