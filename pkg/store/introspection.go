package store

import (
	"github.com/aretw0/introspection"
)

// AdapterState exposes internal state for observability.
type AdapterState struct {
	Backend       string `json:"backend"`
	CacheWarm     bool   `json:"cache_warm"`
	CachedNotes   int    `json:"cached_notes"`
	CacheHits     int    `json:"cache_hits"`
	CacheMisses   int    `json:"cache_misses"`
	Invalidations int    `json:"invalidations"`
	Watching      bool   `json:"watching"`
}

// State implements introspection.Introspectable.
func (a *Adapter) State() any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	backend := "kv"
	if comp, ok := a.kv.(introspection.Component); ok {
		backend = comp.ComponentType()
	}

	return AdapterState{
		Backend:       backend,
		CacheWarm:     a.cached != nil,
		CachedNotes:   len(a.cached),
		CacheHits:     a.hits,
		CacheMisses:   a.misses,
		Invalidations: a.invalidations,
		Watching:      a.watching,
	}
}

// ComponentType implements introspection.Component.
func (a *Adapter) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Adapter)(nil)
var _ introspection.Component = (*Adapter)(nil)
