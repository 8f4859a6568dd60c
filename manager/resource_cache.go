package manager

import (
	// Standard Library Imports
	"context"
	"sort"
	"strings"
	"time"

	// External Imports
	"github.com/patrickmn/go-cache"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

// CachedResourceManager keeps resource lookups in memory for a fixed TTL.
// Lookups that fail are never cached.
//
// Implements:
// - storage.ResourceStore
type CachedResourceManager struct {
	next  storage.ResourceStore
	cache *cache.Cache
}

// NewCachedResourceManager wraps next with a cache. Entries expire after
// DefaultCacheTTL unless WithTTL is given.
func NewCachedResourceManager(next storage.ResourceStore, opts ...Option) *CachedResourceManager {
	cfg := newConfig(opts)
	return &CachedResourceManager{
		next:  next,
		cache: cache.New(cfg.ttl, time.Minute),
	}
}

// Flush drops every cached lookup.
func (c *CachedResourceManager) Flush() {
	c.cache.Flush()
}

// cached returns a copy of the value stored under key, loading and storing it
// first if needed. The stored value is never handed out.
func cached[V any](c *cache.Cache, key string, clone func(V) V, load func() (V, error)) (V, error) {
	if v, found := c.Get(key); found {
		if value, ok := v.(V); ok {
			return clone(value), nil
		}
	}

	value, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	c.SetDefault(key, value)
	return clone(value), nil
}

func cloneAPIResource(res *storage.APIResource) *storage.APIResource {
	if res == nil {
		return nil
	}
	out := res.Clone()
	return &out
}

func cloneResources(r storage.Resources) storage.Resources {
	return r.Clone()
}

// namesKey builds an order independent cache key for a set of names.
func namesKey(prefix string, names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return prefix + ":" + strings.Join(sorted, "\x00")
}

// FindAPIResource implements storage.ResourceStore.
func (c *CachedResourceManager) FindAPIResource(ctx context.Context, name string) (*storage.APIResource, error) {
	return cached(c.cache, "api:"+name, cloneAPIResource, func() (*storage.APIResource, error) {
		return c.next.FindAPIResource(ctx, name)
	})
}

// FindAPIResourcesByScope implements storage.ResourceStore.
func (c *CachedResourceManager) FindAPIResourcesByScope(ctx context.Context, scopeNames []string) ([]storage.APIResource, error) {
	return cached(c.cache, namesKey("api-by-scope", scopeNames), storage.CloneAll[storage.APIResource], func() ([]storage.APIResource, error) {
		return c.next.FindAPIResourcesByScope(ctx, scopeNames)
	})
}

// FindAPIResourcesByScopeName implements storage.ResourceStore.
func (c *CachedResourceManager) FindAPIResourcesByScopeName(ctx context.Context, scopeNames []string) ([]storage.APIResource, error) {
	return cached(c.cache, namesKey("api-by-scope-name", scopeNames), storage.CloneAll[storage.APIResource], func() ([]storage.APIResource, error) {
		return c.next.FindAPIResourcesByScopeName(ctx, scopeNames)
	})
}

// FindIdentityResourcesByScope implements storage.ResourceStore.
func (c *CachedResourceManager) FindIdentityResourcesByScope(ctx context.Context, scopeNames []string) ([]storage.IdentityResource, error) {
	return cached(c.cache, namesKey("identity-by-scope", scopeNames), storage.CloneAll[storage.IdentityResource], func() ([]storage.IdentityResource, error) {
		return c.next.FindIdentityResourcesByScope(ctx, scopeNames)
	})
}

// FindIdentityResourcesByScopeName implements storage.ResourceStore.
func (c *CachedResourceManager) FindIdentityResourcesByScopeName(ctx context.Context, scopeNames []string) ([]storage.IdentityResource, error) {
	return cached(c.cache, namesKey("identity-by-scope-name", scopeNames), storage.CloneAll[storage.IdentityResource], func() ([]storage.IdentityResource, error) {
		return c.next.FindIdentityResourcesByScopeName(ctx, scopeNames)
	})
}

// FindAPIScopesByName implements storage.ResourceStore.
func (c *CachedResourceManager) FindAPIScopesByName(ctx context.Context, scopeNames []string) ([]storage.APIScope, error) {
	return cached(c.cache, namesKey("scopes-by-name", scopeNames), storage.CloneAll[storage.APIScope], func() ([]storage.APIScope, error) {
		return c.next.FindAPIScopesByName(ctx, scopeNames)
	})
}

// FindAPIResourcesByName implements storage.ResourceStore. The names are
// validated before the cache is consulted, as nil and empty lists share a key.
func (c *CachedResourceManager) FindAPIResourcesByName(ctx context.Context, names []string) ([]storage.APIResource, error) {
	if err := storage.ValidateNames("names", names); err != nil {
		return nil, err
	}
	return cached(c.cache, namesKey("api-by-name", names), storage.CloneAll[storage.APIResource], func() ([]storage.APIResource, error) {
		return c.next.FindAPIResourcesByName(ctx, names)
	})
}

// GetAllResources implements storage.ResourceStore.
func (c *CachedResourceManager) GetAllResources(ctx context.Context) (storage.Resources, error) {
	return cached(c.cache, "all", cloneResources, func() (storage.Resources, error) {
		return c.next.GetAllResources(ctx)
	})
}
