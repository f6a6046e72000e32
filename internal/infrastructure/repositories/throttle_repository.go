package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HariStrange/drive-Vault/domain"
)

// ThrottleRepositoryImpl implements domain.ThrottleRepository using Redis SET NX
type ThrottleRepositoryImpl struct {
	client *redis.Client
	prefix string
}

// NewThrottleRepository creates a new throttle repository
func NewThrottleRepository(client *redis.Client) domain.ThrottleRepository {
	return &ThrottleRepositoryImpl{
		client: client,
		prefix: "throttle:",
	}
}

// Acquire implements domain.ThrottleRepository
func (r *ThrottleRepositoryImpl) Acquire(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	fullKey := r.prefix + key
	ok, err := r.client.SetNX(ctx, fullKey, time.Now().Unix(), window).Result()
	if err != nil {
		return false, 0, err
	}
	if ok {
		return true, 0, nil
	}

	ttl, err := r.client.TTL(ctx, fullKey).Result()
	if err != nil {
		return false, 0, err
	}
	return false, ttl, nil
}

// Count implements domain.ThrottleRepository
func (r *ThrottleRepositoryImpl) Count(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := r.prefix + key
	n, err := r.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Reset implements domain.ThrottleRepository
func (r *ThrottleRepositoryImpl) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
