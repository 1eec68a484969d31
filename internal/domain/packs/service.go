package packs

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"studio-admin/internal/domain/events"
	"studio-admin/internal/domain/relations"
	"studio-admin/pkg/logger"
)

var (
	baseColumns  = []string{"name", "description", "is_active", "updated_at"}
	priceColumns = []string{"price", "discount_enabled", "discount_percent"}
)

type Service struct {
	repo   Repository
	events events.Publisher
	log    logger.Logger
}

func NewService(repo Repository) *Service {
	return NewServiceWithEvents(repo, events.Nop(), logger.Nop())
}

func NewServiceWithEvents(repo Repository, publisher events.Publisher, log logger.Logger) *Service {
	return &Service{repo: repo, events: publisher, log: log}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]PackWithClasses, int64, error) {
	items, total, err := s.repo.ListPacks(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if len(items) == 0 {
		return []PackWithClasses{}, total, nil
	}

	ids := make([]string, 0, len(items))
	for _, pack := range items {
		ids = append(ids, pack.ID)
	}
	classesByPack, err := s.repo.ClassIDsByPackIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]PackWithClasses, 0, len(items))
	for _, pack := range items {
		classIDs := classesByPack[pack.ID]
		if classIDs == nil {
			classIDs = []string{}
		}
		result = append(result, PackWithClasses{ClassPack: pack, ClassIDs: classIDs})
	}
	return result, total, nil
}

func (s *Service) Get(ctx context.Context, id string) (*PackWithClasses, error) {
	pack, err := s.repo.GetPack(ctx, id)
	if err != nil {
		return nil, err
	}
	classIDs, err := s.repo.ClassLinks().ChildIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PackWithClasses{ClassPack: *pack, ClassIDs: classIDs}, nil
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*PackWithClasses, error) {
	name, err := validate(input.Name, input.DiscountPercent)
	if err != nil {
		return nil, err
	}

	pack := ClassPack{
		ID:              uuid.NewString(),
		Name:            name,
		Description:     strings.TrimSpace(input.Description),
		DiscountEnabled: input.DiscountEnabled,
		DiscountPercent: input.DiscountPercent,
		IsActive:        input.IsActive,
	}
	classIDs := relations.Normalize(input.ClassIDs)

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreatePack(ctx, &pack); err != nil {
			return err
		}
		if _, err := s.classBinding(tx).Sync(ctx, relations.Parent{ID: pack.ID, Name: pack.Name}, classIDs); err != nil {
			return err
		}

		price, err := s.price(ctx, tx, classIDs, pack.DiscountEnabled, pack.DiscountPercent)
		if err != nil {
			return err
		}
		pack.Price = price
		return tx.UpdatePack(ctx, &pack, []string{"price"})
	})
	if err != nil {
		return nil, err
	}

	return &PackWithClasses{ClassPack: pack, ClassIDs: classIDs}, nil
}

// Update rewrites the pack's classes. The price and discount settings are
// only persisted when the class set changed; otherwise the stored price is
// kept even if a different discount was submitted.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*PackWithClasses, error) {
	name, err := validate(input.Name, input.DiscountPercent)
	if err != nil {
		return nil, err
	}
	classIDs := relations.Normalize(input.ClassIDs)

	var (
		updated      ClassPack
		priceChanged bool
	)
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		pack, err := tx.GetPack(ctx, input.ID)
		if err != nil {
			return err
		}

		changed, err := s.classBinding(tx).Sync(ctx, relations.Parent{ID: pack.ID, Name: name}, classIDs)
		if err != nil {
			return err
		}

		pack.Name = name
		pack.Description = strings.TrimSpace(input.Description)
		pack.IsActive = input.IsActive
		pack.UpdatedAt = time.Now().UTC()
		columns := append([]string{}, baseColumns...)

		if changed {
			price, err := s.price(ctx, tx, classIDs, input.DiscountEnabled, input.DiscountPercent)
			if err != nil {
				return err
			}
			priceChanged = price != pack.Price
			pack.Price = price
			pack.DiscountEnabled = input.DiscountEnabled
			pack.DiscountPercent = input.DiscountPercent
			columns = append(columns, priceColumns...)
		}

		if err := tx.UpdatePack(ctx, pack, columns); err != nil {
			return err
		}
		updated = *pack
		return nil
	})
	if err != nil {
		return nil, err
	}

	if priceChanged {
		event := events.New(events.PackPriceChanged, updated.ID, map[string]any{"price": updated.Price})
		if err := s.events.Publish(context.WithoutCancel(ctx), event); err != nil {
			s.log.InternalError("packs: publish event failed", err, "pack_id", updated.ID)
		}
	}

	return &PackWithClasses{ClassPack: updated, ClassIDs: classIDs}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeletePack(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPackNotFound
	}
	return nil
}

// PricePreview prices an arbitrary selection without storing anything.
func (s *Service) PricePreview(unitPrices []*float64, discountEnabled bool, discountPercent float64) float64 {
	return relations.RecomputePrice(unitPrices, discountEnabled, discountPercent)
}

func (s *Service) price(ctx context.Context, tx Repository, classIDs []string, discountEnabled bool, discountPercent float64) (float64, error) {
	if len(classIDs) == 0 {
		return 0, nil
	}
	prices, err := tx.ClassPrices(ctx, classIDs)
	if err != nil {
		return 0, err
	}
	unitPrices := make([]*float64, 0, len(classIDs))
	for _, id := range classIDs {
		if price, ok := prices[id]; ok {
			unitPrices = append(unitPrices, &price)
			continue
		}
		unitPrices = append(unitPrices, nil)
	}
	return relations.RecomputePrice(unitPrices, discountEnabled, discountPercent), nil
}

func (s *Service) classBinding(tx Repository) relations.Binding {
	return relations.Binding{
		Store:  tx.ClassLinks(),
		Lookup: tx.ClassNames,
		Label:  "classes",
		Field:  "class_ids",
	}
}

func validate(name string, discountPercent float64) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if math.IsNaN(discountPercent) || discountPercent < 0 || discountPercent > 100 {
		return "", ErrDiscountInvalid
	}
	return name, nil
}
