package pacman

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/jjk-jacky/pacdep/pkg/errors"
)

// Defaults applied when pacman.conf leaves the paths unset.
const (
	DefaultConfigPath = "/etc/pacman.conf"
	DefaultRootDir    = "/"
	DefaultDBPath     = "/var/lib/pacman/"
)

// maxIncludeDepth bounds nested Include directives.
const maxIncludeDepth = 10

// Config is the subset of pacman.conf pacdep needs: where the databases
// live and which repositories are enabled, in priority order.
type Config struct {
	RootDir string
	DBPath  string
	Repos   []string
}

// ParseConfig reads a pacman.conf file, following Include directives.
func ParseConfig(path string) (*Config, error) {
	p := &confParser{cfg: &Config{}}
	if err := p.parse(path, 0); err != nil {
		return nil, err
	}

	cfg := p.cfg
	if cfg.RootDir == "" {
		cfg.RootDir = DefaultRootDir
	}
	if cfg.DBPath == "" {
		if cfg.RootDir == DefaultRootDir {
			cfg.DBPath = DefaultDBPath
		} else {
			cfg.DBPath = filepath.Join(cfg.RootDir, DefaultDBPath) + "/"
		}
	}
	return cfg, nil
}

type confParser struct {
	cfg     *Config
	section string
}

func (p *confParser) parse(path string, depth int) error {
	if depth > maxIncludeDepth {
		return errors.New(errors.ErrCodeParse, "%s: include depth exceeds %d", path, maxIncludeDepth)
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileRead, err, "cannot read config %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		if line[0] == '[' && line[len(line)-1] == ']' {
			name := strings.TrimSpace(line[1 : len(line)-1])
			if name == "" {
				return errors.New(errors.ErrCodeParse, "%s:%d: bad section name", path, lineno)
			}
			p.section = name
			if name != "options" {
				p.cfg.Repos = append(p.cfg.Repos, name)
			}
			continue
		}

		key, value, _ := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if p.section == "" {
			return errors.New(errors.ErrCodeParse, "%s:%d: directive %q outside of a section", path, lineno, key)
		}

		switch {
		case key == "Include":
			if value == "" {
				return errors.New(errors.ErrCodeParse, "%s:%d: Include without a value", path, lineno)
			}
			if err := p.include(value, depth); err != nil {
				return err
			}
		case p.section == "options" && key == "RootDir":
			p.cfg.RootDir = value
		case p.section == "options" && key == "DBPath":
			p.cfg.DBPath = value
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeFileRead, err, "cannot read config %s", path)
	}
	return nil
}

// include parses every file matching pattern. A pattern matching nothing
// is ignored, as pacman does.
func (p *confParser) include(pattern string, depth int) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}
	for _, m := range matches {
		if err := p.parse(m, depth+1); err != nil {
			return err
		}
	}
	return nil
}
