// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about solve pipeline execution and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSolveHooks(&mySolveHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Solve().OnAssembleStart(ctx, tileCount)
//	// ... assemble ...
//	observability.Solve().OnAssembleComplete(ctx, tileCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Solve Hooks
// =============================================================================

// SolveHooks receives events from the solve pipeline.
type SolveHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, input string)
	OnLoadComplete(ctx context.Context, input string, tileCount int, duration time.Duration, err error)

	// Assembly events
	OnAssembleStart(ctx context.Context, tileCount int)
	OnAssembleComplete(ctx context.Context, tileCount int, duration time.Duration, err error)

	// Pattern search events
	OnSearchStart(ctx context.Context, imageSize int)
	OnSearchComplete(ctx context.Context, matches int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSolveHooks is a no-op implementation of SolveHooks.
type NoopSolveHooks struct{}

func (NoopSolveHooks) OnLoadStart(context.Context, string)                                 {}
func (NoopSolveHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopSolveHooks) OnAssembleStart(context.Context, int)                                {}
func (NoopSolveHooks) OnAssembleComplete(context.Context, int, time.Duration, error)       {}
func (NoopSolveHooks) OnSearchStart(context.Context, int)                                  {}
func (NoopSolveHooks) OnSearchComplete(context.Context, int, time.Duration, error)         {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	solveHooks SolveHooks = NoopSolveHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetSolveHooks registers custom solve hooks.
// This should be called once at application startup before any solve operations.
func SetSolveHooks(h SolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solveHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Solve returns the registered solve hooks.
func Solve() SolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solveHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solveHooks = NoopSolveHooks{}
	cacheHooks = NoopCacheHooks{}
}
