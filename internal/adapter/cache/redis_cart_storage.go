package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/cart"
	"github.com/redis/go-redis/v9"
)

// RedisCartStorage keeps one cart snapshot per key. A zero ttl keeps
// snapshots until they are overwritten.
type RedisCartStorage struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCartStorage(rdb *redis.Client, ttl time.Duration) *RedisCartStorage {
	return &RedisCartStorage{rdb: rdb, ttl: ttl}
}

func (r *RedisCartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrNoSnapshot
	}
	return val, err
}

func (r *RedisCartStorage) Save(ctx context.Context, key string, data []byte) error {
	return r.rdb.Set(ctx, key, data, r.ttl).Err()
}

var _ cart.Storage = (*RedisCartStorage)(nil)
