package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/waterflow/pkg/observability"
)

// ObservedCache reports cache traffic to hooks.
type ObservedCache struct {
	inner Cache
	hooks observability.CacheHooks
}

// Observed wraps c so that every Get and Set is reported to hooks. A nil
// hooks value uses [observability.NoopCacheHooks].
func Observed(c Cache, hooks observability.CacheHooks) Cache {
	if hooks == nil {
		hooks = observability.NoopCacheHooks{}
	}
	return &ObservedCache{inner: c, hooks: hooks}
}

func (c *ObservedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.inner.Get(ctx, key)
	if err == nil {
		if hit {
			c.hooks.OnCacheHit(ctx, keyType(key))
		} else {
			c.hooks.OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (c *ObservedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.inner.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	c.hooks.OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

func (c *ObservedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *ObservedCache) Close() error { return c.inner.Close() }

// keyType strips the content hash, leaving the scope and kind of a key.
func keyType(key string) string {
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

var _ Cache = (*ObservedCache)(nil)
