package memcache_fx

import (
	"time"

	"go.uber.org/fx"

	mem "menfem/pkg/memcache"
)

var Module = fx.Provide(
	provideActionTokens, provideQueryCache)

func provideActionTokens() mem.ActionTokenStore {
	return mem.NewActionTokens()
}

func provideQueryCache() mem.QueryCache {
	// Short TTL: the cache only collapses duplicate reads inside a burst of
	// requests, it is not a real caching layer.
	return mem.NewQueryCache(30 * time.Second)
}
