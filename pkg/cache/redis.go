package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisScanCount = 100

// RedisStore stores JSON encoded values in redis. All keys are prefixed with the given prefix,
// which also scopes Clear.
type RedisStore[V any] struct {
	client     *redis.Client
	expiration time.Duration
	prefix     string
}

func NewRedis[V any](client *redis.Client, prefix string, expiration time.Duration) *RedisStore[V] {
	return &RedisStore[V]{
		client:     client,
		expiration: expiration,
		prefix:     prefix,
	}
}

func (c *RedisStore[V]) prefixedKey(key string) string {
	return c.prefix + key
}

func (c *RedisStore[V]) Name() string {
	return "redis:" + c.prefix
}

func (c *RedisStore[V]) Get(ctx context.Context, key string) (V, error) {
	var v V

	encoded, err := c.client.Get(ctx, c.prefixedKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return v, ErrNotFound
		}
		return v, fmt.Errorf("unable to read cache entry: %w", err)
	}

	err = json.Unmarshal([]byte(encoded), &v)
	if err != nil {
		return v, fmt.Errorf("unable to unmarshal cache entry: %w", err)
	}

	return v, nil
}

func (c *RedisStore[V]) Put(ctx context.Context, key string, value V) error {
	enc, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("unable to marshal cache entry: %w", err)
	}

	_, err = c.client.Set(ctx, c.prefixedKey(key), enc, c.expiration).Result()
	if err != nil {
		return fmt.Errorf("unable to store cache entry: %w", err)
	}

	return nil
}

func (c *RedisStore[V]) PutIfAbsent(ctx context.Context, key string, value V) (V, bool, error) {
	enc, err := json.Marshal(value)
	if err != nil {
		return value, false, fmt.Errorf("unable to marshal cache entry: %w", err)
	}

	for {
		set, err := c.client.SetNX(ctx, c.prefixedKey(key), enc, c.expiration).Result()
		if err != nil {
			return value, false, fmt.Errorf("unable to store cache entry: %w", err)
		}
		if set {
			return value, false, nil
		}

		existing, err := c.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			// expired or evicted in between, try again
			continue
		}
		if err != nil {
			return value, false, err
		}

		return existing, true, nil
	}
}

func (c *RedisStore[V]) Evict(ctx context.Context, key string) error {
	err := c.client.Del(ctx, c.prefixedKey(key)).Err()
	if err != nil {
		return fmt.Errorf("unable to evict cache entry: %w", err)
	}
	return nil
}

// Clear removes all keys carrying the store's prefix.
func (c *RedisStore[V]) Clear(ctx context.Context) error {
	var keys []string

	iter := c.client.Scan(ctx, 0, c.prefix+"*", redisScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("unable to scan cache entries: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	err := c.client.Del(ctx, keys...).Err()
	if err != nil {
		return fmt.Errorf("unable to clear cache entries: %w", err)
	}

	return nil
}

func (c *RedisStore[V]) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
