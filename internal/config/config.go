// Package config loads pacdep's own settings file, a small TOML document
// providing defaults for the command-line flags.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/jjk-jacky/pacdep/pkg/deps"
	pderrors "github.com/jjk-jacky/pacdep/pkg/errors"
	"github.com/jjk-jacky/pacdep/pkg/pacman"
	"github.com/jjk-jacky/pacdep/pkg/report"
)

// FileName is the settings file name inside the config directory.
const FileName = "config.toml"

// Sort orders for group listings.
const (
	SortName = "name"
	SortSize = "size"
)

// Config holds the settings file values.
type Config struct {
	PacmanConf   string     `toml:"pacman_conf"`
	Explicit     bool       `toml:"explicit"`
	ShowOptional int        `toml:"show_optional"`
	Reverse      int        `toml:"reverse"`
	SkipLocal    bool       `toml:"skip_local"`
	Sort         string     `toml:"sort"`
	Format       string     `toml:"format"`
	NoCache      bool       `toml:"no_cache"`
	List         ListConfig `toml:"list"`

	// Undecoded lists keys of the file pacdep does not know.
	Undecoded []string `toml:"-"`
}

// ListConfig selects the groups whose members are listed.
type ListConfig struct {
	Exclusive         bool `toml:"exclusive"`
	ExclusiveExplicit bool `toml:"exclusive_explicit"`
	Shared            bool `toml:"shared"`
	SharedExplicit    bool `toml:"shared_explicit"`
	Optional          bool `toml:"optional"`
	OptionalExplicit  bool `toml:"optional_explicit"`
}

// ListSet converts the toggles into a [deps.ListSet].
func (l ListConfig) ListSet() deps.ListSet {
	var s deps.ListSet
	for cl, on := range map[deps.Classification]bool{
		deps.Exclusive:         l.Exclusive,
		deps.ExclusiveExplicit: l.ExclusiveExplicit,
		deps.Shared:            l.Shared,
		deps.SharedExplicit:    l.SharedExplicit,
		deps.Optional:          l.Optional,
		deps.OptionalExplicit:  l.OptionalExplicit,
	} {
		if on {
			s = s.With(cl)
		}
	}
	return s
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		PacmanConf: pacman.DefaultConfigPath,
		Sort:       SortName,
		Format:     report.FormatText,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/pacdep/config.toml, falling back to
// ~/.config/pacdep/config.toml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "pacdep", FileName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "pacdep", FileName)
	}
	return ""
}

// Load reads the settings file at path, or at [DefaultPath] when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads settings from a specific path, merged over the
// defaults, and validates the result.
func LoadFromPath(path string) (*Config, error) {
	loaded := &Config{}
	md, err := toml.DecodeFile(path, loaded)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return nil, pderrors.Wrap(pderrors.ErrCodeInvalidConfig, err, "parsing %s", path)
		}
		return nil, pderrors.Wrap(pderrors.ErrCodeInvalidConfig, err, "reading %s", path)
	}

	merged := Merge(loaded, DefaultConfig(), md)
	for _, k := range md.Undecoded() {
		merged.Undecoded = append(merged.Undecoded, k.String())
	}
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Merge fills the keys the file did not define from defaults.
func Merge(loaded, defaults *Config, md toml.MetaData) *Config {
	out := *loaded
	if !md.IsDefined("pacman_conf") {
		out.PacmanConf = defaults.PacmanConf
	}
	if !md.IsDefined("sort") {
		out.Sort = defaults.Sort
	}
	if !md.IsDefined("format") {
		out.Format = defaults.Format
	}
	return &out
}

// Validate checks that settings values are in range.
func Validate(cfg *Config) error {
	if err := pderrors.ValidateLevel("show_optional", cfg.ShowOptional, deps.MaxShowOptional); err != nil {
		return pderrors.Wrap(pderrors.ErrCodeInvalidConfig, err, "invalid show_optional")
	}
	if err := pderrors.ValidateLevel("reverse", cfg.Reverse, deps.MaxReverse); err != nil {
		return pderrors.Wrap(pderrors.ErrCodeInvalidConfig, err, "invalid reverse")
	}
	if !slices.Contains([]string{SortName, SortSize}, cfg.Sort) {
		return pderrors.New(pderrors.ErrCodeInvalidConfig, "sort must be %q or %q, got %q", SortName, SortSize, cfg.Sort)
	}
	if err := report.ValidateFormat(cfg.Format); err != nil {
		return pderrors.Wrap(pderrors.ErrCodeInvalidConfig, err, "invalid format")
	}
	if cfg.PacmanConf == "" {
		return pderrors.New(pderrors.ErrCodeInvalidConfig, "pacman_conf must not be empty")
	}
	return nil
}
