package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

func NewRedisClient(ctx context.Context, cfg config.Config, log logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("can not connect Redis: %w", err)
	}

	log.Info("Connect Redis successfully.")
	return rdb, nil
}

type redisPortfolioCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisPortfolioCache(rdb redis.Cmdable, ttl time.Duration) service.PortfolioCache {
	return &redisPortfolioCache{rdb: rdb, ttl: ttl}
}

func portfolioKey(ownerID uuid.UUID) string {
	return "portfolio:" + ownerID.String()
}

func (c *redisPortfolioCache) Get(ctx context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, error) {
	raw, err := c.rdb.Get(ctx, portfolioKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, service.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var p portfolio.Portfolio
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode cached portfolio: %w", err)
	}
	return &p, nil
}

func (c *redisPortfolioCache) Set(ctx context.Context, ownerID uuid.UUID, p *portfolio.Portfolio) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode portfolio: %w", err)
	}
	return c.rdb.Set(ctx, portfolioKey(ownerID), raw, c.ttl).Err()
}

func (c *redisPortfolioCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	return c.rdb.Del(ctx, portfolioKey(ownerID)).Err()
}
