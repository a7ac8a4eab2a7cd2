package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps snapshots in redis. Records have no TTL: like the
// cart and favorites themselves, they live until explicitly cleared.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := r.client.Get(ctx, snapshotKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return data, nil
}

func (r *RedisStore) Save(ctx context.Context, name string, data []byte) error {
	if err := r.client.Set(ctx, snapshotKey(name), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (r *RedisStore) Delete(ctx context.Context, name string) error {
	if err := r.client.Del(ctx, snapshotKey(name)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func snapshotKey(name string) string {
	return fmt.Sprintf("snapshot:%s", name)
}
