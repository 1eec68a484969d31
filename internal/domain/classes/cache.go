package classes

import (
	"context"
	"time"
)

type CatalogCache interface {
	GetCatalog(ctx context.Context) ([]Class, bool)
	SetCatalog(ctx context.Context, classes []Class, ttl time.Duration)
	InvalidateCatalog(ctx context.Context)
}

type noopCatalogCache struct{}

func (noopCatalogCache) GetCatalog(context.Context) ([]Class, bool) {
	return nil, false
}

func (noopCatalogCache) SetCatalog(context.Context, []Class, time.Duration) {}

func (noopCatalogCache) InvalidateCatalog(context.Context) {}
