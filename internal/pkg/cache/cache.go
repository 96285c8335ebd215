package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the raw key/value layer underneath the cache. Get reports
// a miss with found=false; an expired entry is a miss.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Cache is a read-through cache with get-or-compute semantics. Expiry
// belongs to the Store; the cache itself keeps no clock.
type Cache struct {
	store Store
}

func New(store Store) *Cache {
	return &Cache{store: store}
}

// GetOrCompute unmarshals a cached value into dest on a hit; on a miss
// it calls compute, stores the result under key for ttl, and fills dest.
// A store failure degrades to computing fresh, never to a request error.
func (c *Cache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, dest any, compute func(context.Context) (any, error)) error {
	if data, found, err := c.store.Get(ctx, key); err == nil && found {
		if json.Unmarshal(data, dest) == nil {
			return nil
		}
	}

	value, err := compute(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_ = c.store.Set(ctx, key, data, ttl)

	return json.Unmarshal(data, dest)
}

// Forget drops a key so the next read recomputes.
func (c *Cache) Forget(ctx context.Context, key string) error {
	return c.store.Del(ctx, key)
}
