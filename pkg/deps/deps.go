package deps

import (
	"io"
	"iter"

	"github.com/charmbracelet/log"

	"github.com/jjk-jacky/pacdep/pkg/errors"
)

const (
	MaxShowOptional = 3 // Highest optional-dependency inclusion level
	MaxReverse      = 3 // Highest reverse (required-by) level
)

// Reason records why a local package was installed.
type Reason int

const (
	// ReasonExplicit marks a package the user asked for directly.
	ReasonExplicit Reason = iota
	// ReasonDepend marks a package pulled in as another package's dependency.
	ReasonDepend
)

// String returns "explicit" or "dependency".
func (r Reason) String() string {
	if r == ReasonDepend {
		return "dependency"
	}
	return "explicit"
}

// SearchSet selects which package databases a lookup consults.
type SearchSet int

const (
	SearchLocal SearchSet = 1 << iota // The local (installed) database
	SearchSync                        // The repository (sync) databases
	SearchBoth  = SearchLocal | SearchSync
)

// OptDepend is one optional-dependency entry ("name: description").
type OptDepend struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Package holds the metadata pacdep needs about one concrete package.
// Repo is empty for packages read from the local database.
type Package struct {
	Name          string      `json:"name"`
	Version       string      `json:"version,omitempty"`
	Description   string      `json:"description,omitempty"`
	Repo          string      `json:"repo,omitempty"`
	Reason        Reason      `json:"reason,omitempty"`
	InstalledSize int64       `json:"isize,omitempty"`
	Depends       []string    `json:"depends,omitempty"`
	OptDepends    []OptDepend `json:"optdepends,omitempty"`
	Provides      []string    `json:"provides,omitempty"`
}

// IsLocal reports whether the package comes from the local database.
func (p *Package) IsLocal() bool { return p.Repo == "" }

// IsExplicit reports whether the package is installed with reason explicit.
// Repository packages are never explicit.
func (p *Package) IsExplicit() bool { return p.IsLocal() && p.Reason == ReasonExplicit }

// Origin returns "local" or the repository name.
func (p *Package) Origin() string {
	if p.IsLocal() {
		return "local"
	}
	return p.Repo
}

// Source is the package metadata oracle consulted by the graph builder and
// classifier. Implementations must be read-only and side-effect free; the
// closure memoizes results per name.
type Source interface {
	// FindPackage resolves a package name, virtual capability or dependency
	// spec to a concrete package, searching the local database before the
	// repositories when set includes both.
	FindPackage(name string, set SearchSet) (*Package, bool)
	// Package looks up a package by exact name.
	Package(name string, set SearchSet) (*Package, bool)
	// RequiredBy returns the names of packages whose dependencies are
	// satisfied by pkg, within pkg's own database partition.
	RequiredBy(pkg *Package) []string
	// Packages iterates every package in the selected databases.
	Packages(set SearchSet) iter.Seq[*Package]
}

// ListSet selects the classifications whose member lists are populated.
// Size totals are tracked for every classification regardless.
type ListSet uint

// ListAll enumerates members of every classification.
const ListAll ListSet = 1<<numClassifications - 1

// With returns a copy of s that also lists c.
func (s ListSet) With(c Classification) ListSet { return s | 1<<c }

// Has reports whether members of c are listed.
func (s ListSet) Has(c Classification) bool { return s&(1<<c) != 0 }

// Options configures one analysis run. The value is treated as immutable
// once handed to [Build].
type Options struct {
	Explicit     bool        // Keep explicitly installed dependencies and report *Explicit variants
	ShowOptional int         // Optional-dependency inclusion level (0-3)
	Reverse      int         // Required-by level (0 = forward mode, 1-3)
	SkipLocal    bool        // Resolve roots in the repositories only
	SortBySize   bool        // Order members by descending size instead of name
	List         ListSet     // Classifications whose members are enumerated
	Logger       *log.Logger // Debug traces and warnings (optional)
}

// WithDefaults returns a copy of Options with implied settings applied:
// listing optional dependencies turns on optional inclusion, and a nil
// Logger is replaced by a discarding one.
func (o Options) WithDefaults() Options {
	opts := o
	if (opts.List.Has(Optional) || opts.List.Has(OptionalExplicit)) && opts.ShowOptional == 0 {
		opts.ShowOptional = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts
}

// Validate checks that counted options are in range.
func (o Options) Validate() error {
	if err := errors.ValidateLevel("--show-optional", o.ShowOptional, MaxShowOptional); err != nil {
		return err
	}
	return errors.ValidateLevel("--reverse", o.Reverse, MaxReverse)
}

// IsReverse reports whether the run computes required-by closures.
func (o Options) IsReverse() bool { return o.Reverse > 0 }

// rootSearch is the database set roots are resolved against.
func (o Options) rootSearch() SearchSet {
	if o.SkipLocal {
		return SearchSync
	}
	return SearchBoth
}
