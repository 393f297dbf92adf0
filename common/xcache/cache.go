package xcache

import (
	"context"
	"errors"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"time"
)

type BlobCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, b []byte, ttl time.Duration) error
}

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

func (rc *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := rc.client.Get(ctx, rc.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		slog.WarnContext(ctx, "redis cache get failed", slog.String("key", key), slog.String("err", err.Error()))
		return nil, false, err
	}

	return b, true, nil
}

func (rc *RedisCache) Set(ctx context.Context, key string, b []byte, ttl time.Duration) error {
	if err := rc.client.Set(ctx, rc.prefix+key, b, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "redis cache set failed", slog.String("key", key), slog.String("err", err.Error()))
		return err
	}

	return nil
}

var _ BlobCache = (*RedisCache)(nil)
