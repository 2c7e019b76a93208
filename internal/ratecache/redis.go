// Package ratecache caches lender rate sets. The Redis implementation is
// the production cache; the memory implementation backs tests and
// offline use.
package ratecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Veraticus/dealcalc/internal/common"
	"github.com/Veraticus/dealcalc/internal/model"
)

// keyPrefix namespaces rate set keys in a shared Redis instance.
const keyPrefix = "dealcalc:rates:"

// RedisCache implements service.RateCache on Redis. Rate sets are stored
// as JSON, one key per provider.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis instance at addr.
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

// GetRateSet returns the cached rate set for a provider, or
// common.ErrNotFound when none is cached.
func (r *RedisCache) GetRateSet(ctx context.Context, providerID string) (*model.RateSet, error) {
	data, err := r.client.Get(ctx, keyPrefix+providerID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: rate set %s", common.ErrNotFound, providerID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRateSetUnavailable, err)
	}

	var set model.RateSet
	if err := json.Unmarshal([]byte(data), &set); err != nil {
		return nil, fmt.Errorf("failed to decode rate set %s: %w", providerID, err)
	}
	return &set, nil
}

// PutRateSet stores a provider's rate set.
func (r *RedisCache) PutRateSet(ctx context.Context, set *model.RateSet) error {
	if set == nil || set.ProviderID == "" {
		return fmt.Errorf("%w: rate set needs a provider id", common.ErrInvalidConfig)
	}

	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode rate set: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+set.ProviderID, string(data), 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrRateSetUnavailable, err)
	}
	return nil
}

// Close releases the Redis connection.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
