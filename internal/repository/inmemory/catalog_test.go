package inmemory

import (
	"context"
	"testing"
	"time"

	classesdomain "studio-admin/internal/domain/classes"
)

func TestCatalogCacheRoundTrip(t *testing.T) {
	cache := NewCatalogCache()
	ctx := context.Background()

	if _, ok := cache.GetCatalog(ctx); ok {
		t.Fatal("expected empty cache")
	}

	instructorID := "i-1"
	cache.SetCatalog(ctx, []classesdomain.Class{{ID: "c-1", Name: "Salsa", InstructorID: &instructorID}}, time.Minute)

	got, ok := cache.GetCatalog(ctx)
	if !ok || len(got) != 1 || got[0].Name != "Salsa" {
		t.Fatalf("unexpected cached catalog: %+v", got)
	}

	*got[0].InstructorID = "changed"
	again, _ := cache.GetCatalog(ctx)
	if *again[0].InstructorID != "i-1" {
		t.Fatal("cached value must not be shared with callers")
	}

	cache.InvalidateCatalog(ctx)
	if _, ok := cache.GetCatalog(ctx); ok {
		t.Fatal("expected miss after invalidate")
	}
}

func TestCatalogCacheExpires(t *testing.T) {
	cache := NewCatalogCache()
	ctx := context.Background()

	cache.SetCatalog(ctx, []classesdomain.Class{{ID: "c-1"}}, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	if _, ok := cache.GetCatalog(ctx); ok {
		t.Fatal("expected expired entry")
	}

	cache.SetCatalog(ctx, []classesdomain.Class{{ID: "c-1"}}, 0)
	if _, ok := cache.GetCatalog(ctx); ok {
		t.Fatal("zero ttl must not store")
	}
}
