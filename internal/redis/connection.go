package redis

import (
	"context"
	"fmt"
	"time"

	"ai-accountant/internal/config"

	redisv9 "github.com/redis/go-redis/v9"
)

const defaultSummaryTTL = time.Hour

type Client struct {
	rdb        *redisv9.Client
	summaryTTL time.Duration
}

// NewClient создает новое подключение к Redis
func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redisv9.NewClient(&redisv9.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.Redis.SummaryTTL
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}

	return &Client{rdb: rdb, summaryTTL: ttl}, nil
}

// Close закрывает соединение с Redis
func (c *Client) Close() error {
	return c.rdb.Close()
}
