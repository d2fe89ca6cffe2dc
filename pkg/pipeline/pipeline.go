// Package pipeline runs pacdep analyses end to end: open the package
// databases, build and settle one closure per request, and collect the
// warnings met on the way.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ConfigPath: "/etc/pacman.conf",
//	    Packages:   []string{"gimp", "inkscape"},
//	    Deps:       deps.Options{ShowOptional: 1},
//	})
//	for _, a := range result.Analyses {
//	    fmt.Println(a.Closure.Group(deps.Exclusive).TotalSize)
//	}
//
// By default every package gets its own closure, so that each report shows
// what removing that package alone would free. With Combined set, all
// packages share one closure: dependencies they have in common are then
// exclusive to the set.
package pipeline

import (
	"time"

	"github.com/jjk-jacky/pacdep/pkg/deps"
	"github.com/jjk-jacky/pacdep/pkg/errors"
	"github.com/jjk-jacky/pacdep/pkg/pacman"
)

// DefaultCacheTTL bounds the age of cached sync database indexes. Entries
// are invalidated earlier whenever the database file changes.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Options configures one pipeline execution.
type Options struct {
	ConfigPath string       // pacman.conf location
	Packages   []string     // Requested package names (or virtual capabilities)
	Combined   bool         // One closure for all packages instead of one each
	Deps       deps.Options // Classification options
	CacheTTL   time.Duration
}

// ValidateAndSetDefaults checks the request and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.ConfigPath == "" {
		o.ConfigPath = pacman.DefaultConfigPath
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if len(o.Packages) == 0 {
		return errors.New(errors.ErrCodeNoPackages, "missing package name(s)")
	}
	for _, name := range o.Packages {
		if err := errors.ValidatePackageName(name); err != nil {
			return err
		}
	}
	return o.Deps.Validate()
}

// Requests splits the packages into closure requests: one per package, or
// a single one holding every package in combined mode.
func (o *Options) Requests() [][]string {
	if o.Combined {
		return [][]string{o.Packages}
	}
	reqs := make([][]string, len(o.Packages))
	for i, p := range o.Packages {
		reqs[i] = []string{p}
	}
	return reqs
}

// Analysis is the settled closure of one request.
type Analysis struct {
	Packages []string
	Closure  *deps.Closure
}

// Result is the outcome of [Runner.Execute].
type Result struct {
	Analyses []*Analysis
	Warnings []error // Database and closure warnings, in order
	Stats    Stats
}

// Stats records pipeline timings.
type Stats struct {
	OpenTime    time.Duration
	AnalyzeTime time.Duration
	Packages    int // Packages known to the source
}
