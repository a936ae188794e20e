package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisProvider keeps all keys as fields of a single redis hash so Clear
// is one DEL.
type RedisProvider struct {
	opts   *redis.Options
	hash   string
	client *redis.Client
}

func NewRedisProvider(addr string, db int, hash string) *RedisProvider {
	return &RedisProvider{
		opts: &redis.Options{Addr: addr, DB: db},
		hash: hash,
	}
}

// NewRedisProviderFromClient wraps an existing client.
func NewRedisProviderFromClient(client *redis.Client, hash string) *RedisProvider {
	return &RedisProvider{client: client, hash: hash}
}

func (r *RedisProvider) Name() string { return "redis" }

func (r *RedisProvider) Init(ctx context.Context) error {
	if r.client == nil {
		r.client = redis.NewClient(r.opts)
	}
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

func (r *RedisProvider) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func (r *RedisProvider) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.HGet(ctx, r.hash, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (r *RedisProvider) Set(ctx context.Context, key, value string) error {
	if err := r.client.HSet(ctx, r.hash, key, value).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisProvider) Delete(ctx context.Context, key string) error {
	if err := r.client.HDel(ctx, r.hash, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

func (r *RedisProvider) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.hash).Err(); err != nil {
		return fmt.Errorf("redis clear: %w", err)
	}
	return nil
}
