package xredis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// noopClient satisfies Client when no redis service is reachable. Reads always
// miss and writes are discarded, so callers degrade to their source of truth
// without branching on availability.
type noopClient struct{}

func NewNoopClient() *noopClient {
	return &noopClient{}
}

func (c *noopClient) Exist(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (c *noopClient) Del(ctx context.Context, key ...string) error {
	return nil
}

func (c *noopClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	return nil
}

func (c *noopClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	return nil
}

func (c *noopClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	return nil, nil
}

func (c *noopClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	return nil
}

func (c *noopClient) GetObj(ctx context.Context, key string, v any) error {
	return redis.Nil
}
