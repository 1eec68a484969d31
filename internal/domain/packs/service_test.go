package packs

import (
	"context"
	"errors"
	"testing"

	"studio-admin/internal/domain/apperr"
	"studio-admin/internal/domain/events"
	"studio-admin/internal/domain/relations"
	"studio-admin/pkg/logger"
)

type fakePacksRepo struct {
	packs   map[string]*ClassPack
	classes map[string]fakeClass
	links   *fakeLinkStore
}

type fakeClass struct {
	name  string
	price float64
}

func newFakePacksRepo() *fakePacksRepo {
	return &fakePacksRepo{
		packs: make(map[string]*ClassPack),
		classes: map[string]fakeClass{
			"A": {name: "Salsa", price: 10},
			"B": {name: "Bachata", price: 20},
			"C": {name: "Tango", price: 15},
		},
		links: &fakeLinkStore{rows: make(map[string][]relations.Link)},
	}
}

func (r *fakePacksRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	packs := make(map[string]*ClassPack, len(r.packs))
	for id, pack := range r.packs {
		copied := *pack
		packs[id] = &copied
	}
	links := make(map[string][]relations.Link, len(r.links.rows))
	for id, rows := range r.links.rows {
		links[id] = append([]relations.Link{}, rows...)
	}
	if err := fn(r); err != nil {
		r.packs = packs
		r.links.rows = links
		return err
	}
	return nil
}

func (r *fakePacksRepo) ListPacks(ctx context.Context, filter ListFilter) ([]ClassPack, int64, error) {
	items := make([]ClassPack, 0, len(r.packs))
	for _, pack := range r.packs {
		if filter.ActiveOnly && !pack.IsActive {
			continue
		}
		items = append(items, *pack)
	}
	return items, int64(len(items)), nil
}

func (r *fakePacksRepo) GetPack(ctx context.Context, id string) (*ClassPack, error) {
	pack, ok := r.packs[id]
	if !ok {
		return nil, ErrPackNotFound
	}
	copied := *pack
	return &copied, nil
}

func (r *fakePacksRepo) CreatePack(ctx context.Context, pack *ClassPack) error {
	copied := *pack
	r.packs[pack.ID] = &copied
	return nil
}

func (r *fakePacksRepo) UpdatePack(ctx context.Context, pack *ClassPack, columns []string) error {
	stored, ok := r.packs[pack.ID]
	if !ok {
		return ErrPackNotFound
	}
	for _, column := range columns {
		switch column {
		case "name":
			stored.Name = pack.Name
		case "description":
			stored.Description = pack.Description
		case "is_active":
			stored.IsActive = pack.IsActive
		case "price":
			stored.Price = pack.Price
		case "discount_enabled":
			stored.DiscountEnabled = pack.DiscountEnabled
		case "discount_percent":
			stored.DiscountPercent = pack.DiscountPercent
		case "updated_at":
			stored.UpdatedAt = pack.UpdatedAt
		}
	}
	return nil
}

func (r *fakePacksRepo) DeletePack(ctx context.Context, id string) (bool, error) {
	if _, ok := r.packs[id]; !ok {
		return false, nil
	}
	delete(r.packs, id)
	delete(r.links.rows, id)
	return true, nil
}

func (r *fakePacksRepo) ClassNames(ctx context.Context, ids []string) (map[string]string, error) {
	result := make(map[string]string, len(ids))
	for _, id := range ids {
		if class, ok := r.classes[id]; ok {
			result[id] = class.name
		}
	}
	return result, nil
}

func (r *fakePacksRepo) ClassPrices(ctx context.Context, ids []string) (map[string]float64, error) {
	result := make(map[string]float64, len(ids))
	for _, id := range ids {
		if class, ok := r.classes[id]; ok {
			result[id] = class.price
		}
	}
	return result, nil
}

func (r *fakePacksRepo) ClassLinks() relations.Store {
	return r.links
}

func (r *fakePacksRepo) ClassIDsByPackIDs(ctx context.Context, packIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(packIDs))
	for _, id := range packIDs {
		ids, _ := r.links.ChildIDs(ctx, id)
		result[id] = ids
	}
	return result, nil
}

type fakeLinkStore struct {
	rows map[string][]relations.Link
}

func (s *fakeLinkStore) ChildIDs(ctx context.Context, parentID string) ([]string, error) {
	ids := make([]string, 0, len(s.rows[parentID]))
	for _, link := range s.rows[parentID] {
		ids = append(ids, link.ChildID)
	}
	return ids, nil
}

func (s *fakeLinkStore) DeleteByParent(ctx context.Context, parentID string) error {
	delete(s.rows, parentID)
	return nil
}

func (s *fakeLinkStore) Insert(ctx context.Context, links []relations.Link) error {
	for _, link := range links {
		s.rows[link.ParentID] = append(s.rows[link.ParentID], link)
	}
	return nil
}

type countingPublisher struct {
	count int
}

func (p *countingPublisher) Publish(context.Context, events.Event) error {
	p.count++
	return nil
}

func TestCreateComputesPrice(t *testing.T) {
	cases := []struct {
		name     string
		enabled  bool
		discount float64
		classIDs []string
		want     float64
	}{
		{"discount disabled", false, 25, []string{"A", "B"}, 30.00},
		{"discount enabled", true, 25, []string{"A", "B"}, 22.50},
		{"full discount", true, 100, []string{"A", "B"}, 0.00},
		{"no classes", true, 10, nil, 0.00},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := NewService(newFakePacksRepo())
			pack, err := service.Create(context.Background(), CreateInput{
				Name:            "Latin",
				DiscountEnabled: tc.enabled,
				DiscountPercent: tc.discount,
				ClassIDs:        tc.classIDs,
			})
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if pack.Price != tc.want {
				t.Fatalf("price = %.2f, want %.2f", pack.Price, tc.want)
			}
		})
	}
}

func TestUpdateSameSetPreservesPrice(t *testing.T) {
	repo := newFakePacksRepo()
	publisher := &countingPublisher{}
	service := NewServiceWithEvents(repo, publisher, logger.Nop())

	pack, err := service.Create(context.Background(), CreateInput{Name: "Latin", ClassIDs: []string{"A", "B"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := service.Update(context.Background(), UpdateInput{
		ID:              pack.ID,
		Name:            "Latin Nights",
		IsActive:        true,
		DiscountEnabled: true,
		DiscountPercent: 50,
		ClassIDs:        []string{"B", "A"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	stored := repo.packs[pack.ID]
	if stored.Price != 30 || updated.Price != 30 {
		t.Fatalf("price must be preserved, stored=%.2f returned=%.2f", stored.Price, updated.Price)
	}
	if stored.DiscountEnabled || stored.DiscountPercent != 0 {
		t.Fatalf("discount must not change with an unchanged set: %+v", stored)
	}
	if stored.Name != "Latin Nights" || !stored.IsActive {
		t.Fatalf("name and active flag must be updated: %+v", stored)
	}
	if rows := repo.links.rows[pack.ID]; len(rows) != 2 || rows[0].ParentName != "Latin Nights" {
		t.Fatalf("join rows should carry the new name: %+v", rows)
	}
	if publisher.count != 0 {
		t.Fatalf("no price event expected, got %d", publisher.count)
	}
}

func TestUpdateChangedSetRecomputesPrice(t *testing.T) {
	repo := newFakePacksRepo()
	publisher := &countingPublisher{}
	service := NewServiceWithEvents(repo, publisher, logger.Nop())

	pack, err := service.Create(context.Background(), CreateInput{Name: "Latin", ClassIDs: []string{"A"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := service.Update(context.Background(), UpdateInput{
		ID:              pack.ID,
		Name:            "Latin",
		DiscountEnabled: true,
		DiscountPercent: 25,
		ClassIDs:        []string{"A", "B"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 22.50 || repo.packs[pack.ID].Price != 22.50 {
		t.Fatalf("expected recomputed price 22.50, got %.2f", repo.packs[pack.ID].Price)
	}
	if !repo.packs[pack.ID].DiscountEnabled || repo.packs[pack.ID].DiscountPercent != 25 {
		t.Fatalf("discount should be stored on recompute: %+v", repo.packs[pack.ID])
	}
	if publisher.count != 1 {
		t.Fatalf("expected one price event, got %d", publisher.count)
	}
}

func TestUpdateUnknownClassRollsBack(t *testing.T) {
	repo := newFakePacksRepo()
	service := NewService(repo)

	pack, err := service.Create(context.Background(), CreateInput{Name: "Latin", ClassIDs: []string{"A", "B"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = service.Update(context.Background(), UpdateInput{ID: pack.ID, Name: "Renamed", ClassIDs: []string{"A", "ghost"}})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	ids, _ := repo.links.ChildIDs(context.Background(), pack.ID)
	if !relations.SameSet(ids, []string{"A", "B"}) {
		t.Fatalf("join rows must be restored, got %v", ids)
	}
	if repo.packs[pack.ID].Name != "Latin" || repo.packs[pack.ID].Price != 30 {
		t.Fatalf("pack must be unchanged: %+v", repo.packs[pack.ID])
	}
}

func TestUpdateMissingPack(t *testing.T) {
	service := NewService(newFakePacksRepo())
	_, err := service.Update(context.Background(), UpdateInput{ID: "missing", Name: "x"})
	if !errors.Is(err, ErrPackNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestValidation(t *testing.T) {
	service := NewService(newFakePacksRepo())
	if _, err := service.Create(context.Background(), CreateInput{Name: " "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected name required, got %v", err)
	}
	if _, err := service.Create(context.Background(), CreateInput{Name: "x", DiscountPercent: 150}); !errors.Is(err, ErrDiscountInvalid) {
		t.Fatalf("expected discount invalid, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newFakePacksRepo()
	service := NewService(repo)
	pack, err := service.Create(context.Background(), CreateInput{Name: "Latin", ClassIDs: []string{"C"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := service.Delete(context.Background(), pack.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := service.Delete(context.Background(), pack.ID); !errors.Is(err, ErrPackNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPricePreviewClampsDiscount(t *testing.T) {
	service := NewService(newFakePacksRepo())
	if got := service.PricePreview(relations.Prices(10, 20), true, 150); got != 0 {
		t.Fatalf("expected 0.00, got %.2f", got)
	}
}
