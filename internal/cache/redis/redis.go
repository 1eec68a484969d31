// Package redis shares the public class catalog across instances.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"studio-admin/internal/config"
	classesdomain "studio-admin/internal/domain/classes"
	"studio-admin/pkg/logger"
)

const catalogKey = "studio:catalog:active"

func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// CatalogCache stores the catalog as one JSON value. Cache errors are logged
// and treated as misses.
type CatalogCache struct {
	client *goredis.Client
	log    logger.Logger
}

func NewCatalogCache(client *goredis.Client, log logger.Logger) *CatalogCache {
	return &CatalogCache{client: client, log: log}
}

func (c *CatalogCache) GetCatalog(ctx context.Context) ([]classesdomain.Class, bool) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("redis: catalog get failed", "error", err.Error())
		return nil, false
	}

	var classes []classesdomain.Class
	if err := json.Unmarshal(raw, &classes); err != nil {
		c.log.Warn("redis: catalog decode failed", "error", err.Error())
		return nil, false
	}
	return classes, true
}

func (c *CatalogCache) SetCatalog(ctx context.Context, classes []classesdomain.Class, ttl time.Duration) {
	if ttl <= 0 {
		c.InvalidateCatalog(ctx)
		return
	}
	raw, err := json.Marshal(classes)
	if err != nil {
		c.log.Warn("redis: catalog encode failed", "error", err.Error())
		return
	}
	if err := c.client.Set(ctx, catalogKey, raw, ttl).Err(); err != nil {
		c.log.Warn("redis: catalog set failed", "error", err.Error())
	}
}

func (c *CatalogCache) InvalidateCatalog(ctx context.Context) {
	if err := c.client.Del(context.WithoutCancel(ctx), catalogKey).Err(); err != nil {
		c.log.Warn("redis: catalog invalidate failed", "error", err.Error())
	}
}
