package inmemory

import (
	"context"
	"sync"
	"time"

	classesdomain "studio-admin/internal/domain/classes"
)

// CatalogCache keeps the active class catalog in process memory. It is used
// when no shared cache is configured.
type CatalogCache struct {
	mu    sync.RWMutex
	item  catalogItem
	valid bool
}

type catalogItem struct {
	value     []classesdomain.Class
	expiresAt time.Time
}

func NewCatalogCache() *CatalogCache {
	return &CatalogCache{}
}

func (c *CatalogCache) GetCatalog(context.Context) ([]classesdomain.Class, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.item, c.valid
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		if c.valid && !c.item.expiresAt.After(now) {
			c.valid = false
			c.item = catalogItem{}
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneClasses(item.value), true
}

func (c *CatalogCache) SetCatalog(ctx context.Context, classes []classesdomain.Class, ttl time.Duration) {
	if ttl <= 0 {
		c.InvalidateCatalog(ctx)
		return
	}

	c.mu.Lock()
	c.item = catalogItem{
		value:     cloneClasses(classes),
		expiresAt: time.Now().Add(ttl),
	}
	c.valid = true
	c.mu.Unlock()
}

func (c *CatalogCache) InvalidateCatalog(context.Context) {
	c.mu.Lock()
	c.item = catalogItem{}
	c.valid = false
	c.mu.Unlock()
}

func cloneClasses(classes []classesdomain.Class) []classesdomain.Class {
	if classes == nil {
		return nil
	}
	cloned := make([]classesdomain.Class, len(classes))
	for i := range classes {
		cloned[i] = classes[i]
		if classes[i].InstructorID != nil {
			id := *classes[i].InstructorID
			cloned[i].InstructorID = &id
		}
		if classes[i].PromotionID != nil {
			id := *classes[i].PromotionID
			cloned[i].PromotionID = &id
		}
		cloned[i].Schedule = append(classes[i].Schedule[:0:0], classes[i].Schedule...)
	}
	return cloned
}
