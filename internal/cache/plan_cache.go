// Package cache keeps read-mostly reference data in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lokma/internal/logger"
	"lokma/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const planKeyPrefix = "lokma:plan:"

// PlanSource is the store behind the cache.
type PlanSource interface {
	GetByID(ctx context.Context, id string) (*models.SubscriptionPlan, error)
	GetByCode(ctx context.Context, code string) (*models.SubscriptionPlan, error)
}

// PlanCache is a read-through cache for subscription plans. Redis failures fall back to the source.
type PlanCache struct {
	rdb    *redis.Client
	source PlanSource
	ttl    time.Duration
	log    zerolog.Logger
}

func NewPlanCache(rdb *redis.Client, source PlanSource, ttl time.Duration) *PlanCache {
	return &PlanCache{rdb: rdb, source: source, ttl: ttl, log: logger.Component("plan-cache")}
}

func (c *PlanCache) GetByID(ctx context.Context, id string) (*models.SubscriptionPlan, error) {
	return c.readThrough(ctx, planKeyPrefix+"id:"+id, func() (*models.SubscriptionPlan, error) {
		return c.source.GetByID(ctx, id)
	})
}

func (c *PlanCache) GetByCode(ctx context.Context, code string) (*models.SubscriptionPlan, error) {
	return c.readThrough(ctx, planKeyPrefix+"code:"+code, func() (*models.SubscriptionPlan, error) {
		return c.source.GetByCode(ctx, code)
	})
}

func (c *PlanCache) readThrough(ctx context.Context, key string, load func() (*models.SubscriptionPlan, error)) (*models.SubscriptionPlan, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var plan models.SubscriptionPlan
		if jerr := json.Unmarshal(raw, &plan); jerr == nil {
			return &plan, nil
		}
		c.log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("redis get failed")
	}

	plan, err := load()
	if err != nil {
		return nil, err
	}
	if data, jerr := json.Marshal(plan); jerr == nil {
		if serr := c.rdb.Set(ctx, key, data, c.ttl).Err(); serr != nil {
			c.log.Warn().Err(serr).Str("key", key).Msg("redis set failed")
		}
	}
	return plan, nil
}
