// Package observability provides hooks for instrumenting pacdep runs.
//
// Libraries emit events through the registered hooks; the defaults do
// nothing. The command-line tool registers logging hooks in debug mode, and
// other consumers can plug metrics or tracing backends the same way without
// the libraries depending on them.
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetPipelineHooks(&myPipelineHooks{})
//	observability.SetCacheHooks(&myCacheHooks{})
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnAnalyzeStart(ctx, packages)
//	// ... build and settle ...
//	observability.Pipeline().OnAnalyzeComplete(ctx, packages, nodes, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the analysis pipeline.
type PipelineHooks interface {
	// Database events
	OnOpenStart(ctx context.Context, configPath string)
	OnOpenComplete(ctx context.Context, repos, packages int, duration time.Duration, err error)

	// Closure events, one pair per closure
	OnAnalyzeStart(ctx context.Context, packages []string)
	OnAnalyzeComplete(ctx context.Context, packages []string, nodes int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the sync database index cache.
type CacheHooks interface {
	// OnCacheHit records an index served from the cache.
	OnCacheHit(ctx context.Context, repo string)

	// OnCacheMiss records an index that had to be parsed.
	OnCacheMiss(ctx context.Context, repo string)

	// OnCacheSet records a cache write of size bytes.
	OnCacheSet(ctx context.Context, repo string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnOpenStart(context.Context, string)                                    {}
func (NoopPipelineHooks) OnOpenComplete(context.Context, int, int, time.Duration, error)         {}
func (NoopPipelineHooks) OnAnalyzeStart(context.Context, []string)                               {}
func (NoopPipelineHooks) OnAnalyzeComplete(context.Context, []string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
