package cli

import (
	"context"
	"time"

	"github.com/jjk-jacky/pacdep/pkg/observability"
)

// traceHooks logs pipeline and cache events through the logger attached to
// the event's context.
type traceHooks struct{}

func (traceHooks) OnOpenStart(ctx context.Context, configPath string) {
	loggerFromContext(ctx).Debug("opening databases", "config", configPath)
}

func (traceHooks) OnOpenComplete(ctx context.Context, repos, packages int, d time.Duration, err error) {
	if err != nil {
		loggerFromContext(ctx).Debug("open failed", "error", err, "elapsed", d)
		return
	}
	loggerFromContext(ctx).Debug("databases ready", "repos", repos, "packages", packages, "elapsed", d)
}

func (traceHooks) OnAnalyzeStart(ctx context.Context, packages []string) {
	loggerFromContext(ctx).Debug("closure", "packages", packages)
}

func (traceHooks) OnAnalyzeComplete(ctx context.Context, packages []string, nodes int, d time.Duration, err error) {
	if err != nil {
		loggerFromContext(ctx).Debug("closure failed", "packages", packages, "error", err)
		return
	}
	loggerFromContext(ctx).Debug("closure settled", "packages", packages, "nodes", nodes, "elapsed", d)
}

func (traceHooks) OnCacheHit(ctx context.Context, repo string) {
	loggerFromContext(ctx).Debug("cache hit", "repo", repo)
}

func (traceHooks) OnCacheMiss(ctx context.Context, repo string) {
	loggerFromContext(ctx).Debug("cache miss", "repo", repo)
}

func (traceHooks) OnCacheSet(ctx context.Context, repo string, size int) {
	loggerFromContext(ctx).Debug("cache set", "repo", repo, "size", size)
}

// EnableTracing registers hooks that log every pipeline and cache event at
// debug level.
func (c *CLI) EnableTracing() {
	observability.SetPipelineHooks(traceHooks{})
	observability.SetCacheHooks(traceHooks{})
}
