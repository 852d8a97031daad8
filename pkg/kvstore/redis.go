package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/electroquick/pkg/redis"
)

// RedisClient is the subset of pkg/redis the store relies on.
type RedisClient interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Key(parts ...string) string
}

// Redis stores values under namespaced keys without expiry.
type Redis struct {
	client RedisClient
}

func NewRedis(client RedisClient) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, r.client.Key("kv", key))
	if err != nil {
		if redis.IsNil(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return v, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.client.Key("kv", key), value, 0); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
