package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jjk-jacky/pacdep/pkg/cache"
	"github.com/jjk-jacky/pacdep/pkg/deps"
	"github.com/jjk-jacky/pacdep/pkg/errors"
	"github.com/jjk-jacky/pacdep/pkg/observability"
	"github.com/jjk-jacky/pacdep/pkg/pacman"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Open loads the pacman databases described by configPath.
func (r *Runner) Open(ctx context.Context, configPath string, ttl time.Duration) (*pacman.DB, error) {
	return pacman.Open(ctx, pacman.OpenOptions{
		ConfigPath: configPath,
		Cache:      r.Cache,
		Keyer:      r.Keyer,
		CacheTTL:   ttl,
		Logger:     r.Logger,
	})
}

// Execute opens the databases and analyzes every request.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnOpenStart(ctx, opts.ConfigPath)
	start := time.Now()
	db, err := r.Open(ctx, opts.ConfigPath, opts.CacheTTL)
	openTime := time.Since(start)
	if err != nil {
		hooks.OnOpenComplete(ctx, 0, 0, openTime, err)
		return nil, err
	}
	hooks.OnOpenComplete(ctx, len(db.Syncs()), countPackages(db), openTime, nil)
	r.Logger.Debug("opened databases", "repos", len(db.Syncs()), "duration", openTime)

	result, err := r.Analyze(ctx, db, opts)
	if result != nil {
		result.Stats.OpenTime = openTime
		result.Warnings = append(db.Warnings(), result.Warnings...)
	}
	return result, err
}

// Analyze builds and settles the closures of opts against src. A request
// whose packages all fail to resolve is skipped with a warning; Analyze
// fails with NO_PACKAGES only when no request could be processed.
func (r *Runner) Analyze(ctx context.Context, src deps.Source, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Deps.Logger == nil {
		opts.Deps.Logger = r.Logger
	}

	hooks := observability.Pipeline()
	start := time.Now()
	result := &Result{}
	result.Stats.Packages = countPackages(src)

	for _, req := range opts.Requests() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hooks.OnAnalyzeStart(ctx, req)
		reqStart := time.Now()
		c, err := deps.Build(src, req, opts.Deps)
		if err == nil {
			c.Settle()
			hooks.OnAnalyzeComplete(ctx, req, c.Len(), time.Since(reqStart), nil)
		} else {
			hooks.OnAnalyzeComplete(ctx, req, 0, time.Since(reqStart), err)
		}
		if c != nil {
			result.Warnings = append(result.Warnings, c.Warnings()...)
		}
		if errors.Is(err, errors.ErrCodeNoPackages) && c != nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		result.Analyses = append(result.Analyses, &Analysis{Packages: req, Closure: c})
		r.Logger.Debug("analyzed",
			"packages", req,
			"nodes", c.Len(),
			"exclusive", c.Group(deps.Exclusive).Count,
			"shared", c.Group(deps.Shared).Count)
	}
	result.Stats.AnalyzeTime = time.Since(start)

	if len(result.Analyses) == 0 {
		return result, errors.New(errors.ErrCodeNoPackages, "nothing to process")
	}
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func countPackages(src deps.Source) int {
	n := 0
	for range src.Packages(deps.SearchBoth) {
		n++
	}
	return n
}
