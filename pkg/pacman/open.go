package pacman

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/jjk-jacky/pacdep/pkg/cache"
	"github.com/jjk-jacky/pacdep/pkg/deps"
	pderrors "github.com/jjk-jacky/pacdep/pkg/errors"
	"github.com/jjk-jacky/pacdep/pkg/observability"
)

// OpenOptions configures [Open].
type OpenOptions struct {
	// ConfigPath is the pacman.conf to read. Defaults to /etc/pacman.conf.
	ConfigPath string
	// Config, when set, is used instead of reading ConfigPath.
	Config *Config
	// Cache memoizes parsed sync databases. Defaults to no caching.
	Cache cache.Cache
	// Keyer derives cache keys. Defaults to cache.DefaultKeyer.
	Keyer cache.Keyer
	// CacheTTL bounds the age of cached indexes. Zero keeps them until the
	// database file changes.
	CacheTTL time.Duration
	// Logger receives debug traces and warnings.
	Logger *log.Logger
}

// WithDefaults returns a copy of OpenOptions with zero values replaced.
func (o OpenOptions) WithDefaults() OpenOptions {
	if o.ConfigPath == "" {
		o.ConfigPath = DefaultConfigPath
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Open reads pacman.conf, the local database and every configured sync
// database. Sync databases are loaded concurrently; a missing one only
// yields a warning and an empty repository.
func Open(ctx context.Context, opts OpenOptions) (*DB, error) {
	opts = opts.WithDefaults()
	logger := opts.Logger

	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = ParseConfig(opts.ConfigPath); err != nil {
			return nil, err
		}
	}
	logger.Debug("pacman config", "root", cfg.RootDir, "dbpath", cfg.DBPath, "repos", len(cfg.Repos))

	local, err := ReadLocalDB(filepath.Join(cfg.DBPath, LocalName))
	if err != nil {
		return nil, err
	}
	logger.Debug("local database", "packages", len(local))

	syncs := make([]*Repository, len(cfg.Repos))
	warnings := make([]error, len(cfg.Repos))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range cfg.Repos {
		g.Go(func() error {
			file := filepath.Join(cfg.DBPath, "sync", name+".db")
			pkgs, err := loadSyncDB(ctx, opts, name, file)
			if errors.Is(err, fs.ErrNotExist) {
				warnings[i] = pderrors.Wrap(pderrors.ErrCodeFileRead, err, "database %s not found", file)
				logger.Warn("missing sync database", "repo", name, "path", file)
				err = nil
			}
			if err != nil {
				return err
			}
			syncs[i] = NewRepository(name, pkgs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if pderrors.GetCode(err) == "" {
			return nil, pderrors.Wrap(pderrors.ErrCodeBackend, err, "failed to initialize databases")
		}
		return nil, err
	}

	db := NewDB(NewRepository(LocalName, local), syncs...)
	for _, w := range warnings {
		if w != nil {
			db.warnings = append(db.warnings, w)
		}
	}
	return db, nil
}

// loadSyncDB returns the parsed packages of one sync database, from the
// cache when the file is unchanged.
func loadSyncDB(ctx context.Context, opts OpenOptions, repo, file string) ([]*deps.Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(file)
	if err != nil {
		return nil, err
	}

	key := opts.Keyer.IndexKey(repo, file, info.Size(), info.ModTime())
	if data, ok, err := opts.Cache.Get(ctx, key); err == nil && ok {
		var pkgs []*deps.Package
		if err := json.Unmarshal(data, &pkgs); err == nil {
			observability.Cache().OnCacheHit(ctx, repo)
			opts.Logger.Debug("sync database from cache", "repo", repo, "packages", len(pkgs))
			return fillRepo(pkgs, repo), nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, repo)

	start := time.Now()
	pkgs, err := ReadSyncDB(file, repo)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("sync database parsed", "repo", repo, "packages", len(pkgs), "elapsed", time.Since(start))

	if data, err := json.Marshal(pkgs); err == nil {
		if err := opts.Cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
			opts.Logger.Warn("cache write failed", "repo", repo, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, repo, len(data))
		}
	}
	return pkgs, nil
}

// fillRepo restores fields a cached index may leave out.
func fillRepo(pkgs []*deps.Package, repo string) []*deps.Package {
	for _, p := range pkgs {
		p.Repo = repo
	}
	return pkgs
}
