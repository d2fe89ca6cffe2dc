package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jjk-jacky/pacdep/internal/config"
	"github.com/jjk-jacky/pacdep/pkg/deps"
)

// analyzeFlags holds the analysis flags shared by the root, graph and
// browse commands.
type analyzeFlags struct {
	explicit     bool
	showOptional int
	reverse      int
	skipLocal    bool
	sortSize     bool
	combined     bool
	format       string
	list         config.ListConfig
}

// register adds the analysis flags to cmd.
func (f *analyzeFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVarP(&f.list.Exclusive, "list-exclusive", "e", false, "list exclusive dependencies")
	fs.BoolVarP(&f.list.ExclusiveExplicit, "list-exclusive-explicit", "E", false, "list exclusive explicit dependencies")
	fs.BoolVarP(&f.list.Shared, "list-shared", "s", false, "list shared dependencies")
	fs.BoolVarP(&f.list.SharedExplicit, "list-shared-explicit", "S", false, "list shared explicit dependencies")
	fs.BoolVarP(&f.list.Optional, "list-optional", "o", false, "list optional dependencies")
	fs.BoolVarP(&f.list.OptionalExplicit, "list-optional-explicit", "O", false, "list optional explicit dependencies")
	fs.CountVarP(&f.showOptional, "show-optional", "p", "show optional dependencies (repeat to include more, up to 3)")
	fs.BoolVarP(&f.explicit, "explicit", "x", false, "don't ignore explicitly installed dependencies")
	fs.CountVarP(&f.reverse, "reverse", "r", "show packages requiring the package instead (repeat for more, up to 3)")
	fs.BoolVarP(&f.skipLocal, "skip-local", "L", false, "look packages up in the sync databases only")
	fs.BoolVarP(&f.sortSize, "sort-size", "z", false, "sort listed packages by size instead of name")
	fs.BoolVarP(&f.combined, "combined", "C", false, "analyze all packages together instead of one at a time")
}

// settings is the outcome of merging the settings file with the flags.
type settings struct {
	pacmanConf string
	noCache    bool
	combined   bool
	format     string
	deps       deps.Options
}

// resolve loads the settings file and overrides its values with the flags
// the user set on cmd.
func (f *analyzeFlags) resolve(cmd *cobra.Command, logger *log.Logger) (*settings, error) {
	fs := cmd.Flags()

	path, _ := fs.GetString("settings")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	for _, key := range cfg.Undecoded {
		logger.Warn("unknown settings key", "key", key)
	}

	if fs.Changed("config") {
		cfg.PacmanConf, _ = fs.GetString("config")
	}
	if fs.Changed("no-cache") {
		cfg.NoCache, _ = fs.GetBool("no-cache")
	}
	if fs.Changed("explicit") {
		cfg.Explicit = f.explicit
	}
	if fs.Changed("show-optional") {
		cfg.ShowOptional = f.showOptional
	}
	if fs.Changed("reverse") {
		cfg.Reverse = f.reverse
	}
	if fs.Changed("skip-local") {
		cfg.SkipLocal = f.skipLocal
	}
	if fs.Changed("sort-size") {
		cfg.Sort = config.SortName
		if f.sortSize {
			cfg.Sort = config.SortSize
		}
	}
	if fs.Changed("format") {
		cfg.Format = f.format
	}

	for name, toggle := range map[string]struct{ dst, src *bool }{
		"list-exclusive":          {&cfg.List.Exclusive, &f.list.Exclusive},
		"list-exclusive-explicit": {&cfg.List.ExclusiveExplicit, &f.list.ExclusiveExplicit},
		"list-shared":             {&cfg.List.Shared, &f.list.Shared},
		"list-shared-explicit":    {&cfg.List.SharedExplicit, &f.list.SharedExplicit},
		"list-optional":           {&cfg.List.Optional, &f.list.Optional},
		"list-optional-explicit":  {&cfg.List.OptionalExplicit, &f.list.OptionalExplicit},
	} {
		if fs.Changed(name) {
			*toggle.dst = *toggle.src
		}
	}

	logger.Debug("settings",
		"pacman_conf", cfg.PacmanConf,
		"explicit", cfg.Explicit,
		"show_optional", cfg.ShowOptional,
		"reverse", cfg.Reverse,
		"sort", cfg.Sort,
		"format", cfg.Format)

	return &settings{
		pacmanConf: cfg.PacmanConf,
		noCache:    cfg.NoCache,
		combined:   f.combined,
		format:     cfg.Format,
		deps: deps.Options{
			Explicit:     cfg.Explicit,
			ShowOptional: cfg.ShowOptional,
			Reverse:      cfg.Reverse,
			SkipLocal:    cfg.SkipLocal,
			SortBySize:   cfg.Sort == config.SortSize,
			List:         cfg.List.ListSet(),
			Logger:       logger,
		},
	}, nil
}
