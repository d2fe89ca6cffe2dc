package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jjk-jacky/pacdep/pkg/buildinfo"
	"github.com/jjk-jacky/pacdep/pkg/cache"
	"github.com/jjk-jacky/pacdep/pkg/pipeline"
	"github.com/jjk-jacky/pacdep/pkg/report"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pacdep"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives reports and command output; status lines go to the
	// logger's writer.
	Out io.Writer
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself runs the analysis of its arguments.
func (c *CLI) RootCommand() *cobra.Command {
	var flags analyzeFlags

	root := &cobra.Command{
		Use:   "pacdep [flags] PACKAGE...",
		Short: "pacdep shows the installed size of packages and their dependencies",
		Long: `pacdep computes the size a package and its dependencies take, splitting
dependencies into exclusive ones (only needed by the package), shared ones
(also needed by other installed packages) and optional ones.

Packages are looked up in the local database first, then in the sync
databases, so pacdep also tells what installing a package would cost.`,
		Version:      buildinfo.Version,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd, &flags, args)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringP("config", "c", "", "pacman.conf file to use (default /etc/pacman.conf)")
	root.PersistentFlags().String("settings", "", "pacdep settings file (default $XDG_CONFIG_HOME/pacdep/config.toml)")
	root.PersistentFlags().Bool("no-cache", false, "do not use the sync database index cache")
	flags.register(root)
	root.Flags().StringVarP(&flags.format, "format", "f", report.FormatText, "output format: text, json, yaml")

	root.AddCommand(c.graphCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pacdep/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
