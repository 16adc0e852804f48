package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/salutech-dev/medbook-api/internal/config"
)

// Availability results change whenever a booking, block or template for the
// provider changes, so entries are short-lived and writers invalidate
// eagerly. A cache outage never fails a request.
const availabilityTTL = 60 * time.Second

func NewRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
}

type AvailabilityCache struct {
	rdb *redis.Client
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb}
}

func key(providerID uint, branchID uint, date string) string {
	return fmt.Sprintf("avail:%d:%d:%s", providerID, branchID, date)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	providerID uint,
	branchID uint,
	date string,
) ([]string, bool) {

	raw, err := c.rdb.Get(ctx, key(providerID, branchID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	providerID uint,
	branchID uint,
	date string,
	slots []string,
) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(providerID, branchID, date), raw, availabilityTTL)
}

// InvalidateProvider drops every cached entry for the provider, all branches
// and dates. Called after template replaces, which change every future day.
func (c *AvailabilityCache) InvalidateProvider(
	ctx context.Context,
	providerID uint,
) {
	pattern := fmt.Sprintf("avail:%d:*", providerID)

	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}

// InvalidateProviderDate drops every cached variant for the provider on the
// date. Called after booking mutations and block approvals.
func (c *AvailabilityCache) InvalidateProviderDate(
	ctx context.Context,
	providerID uint,
	date string,
) {
	pattern := fmt.Sprintf("avail:%d:*:%s", providerID, date)

	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}
