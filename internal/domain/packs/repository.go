package packs

import (
	"context"

	"studio-admin/internal/domain/relations"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListPacks(ctx context.Context, filter ListFilter) ([]ClassPack, int64, error)
	GetPack(ctx context.Context, id string) (*ClassPack, error)
	CreatePack(ctx context.Context, pack *ClassPack) error
	UpdatePack(ctx context.Context, pack *ClassPack, columns []string) error
	DeletePack(ctx context.Context, id string) (bool, error)
	ClassNames(ctx context.Context, ids []string) (map[string]string, error)
	ClassPrices(ctx context.Context, ids []string) (map[string]float64, error)
	ClassLinks() relations.Store
	ClassIDsByPackIDs(ctx context.Context, packIDs []string) (map[string][]string, error)
}
