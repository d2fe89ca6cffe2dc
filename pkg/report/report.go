// Package report turns a settled closure into a serializable summary: the
// requested packages, one entry per displayed classification, and the size
// totals pacdep prints.
package report

import (
	"github.com/jjk-jacky/pacdep/pkg/deps"
)

// Report summarizes one settled closure.
type Report struct {
	Reverse  bool     `json:"reverse" yaml:"reverse"`
	Explicit bool     `json:"explicit" yaml:"explicit"`
	Roots    []Root   `json:"packages" yaml:"packages"`
	Groups   []Group  `json:"groups" yaml:"groups"`
	Totals   Totals   `json:"totals" yaml:"totals"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Root is one requested package.
type Root struct {
	Name      string `json:"name" yaml:"name"`
	Requested string `json:"requested,omitempty" yaml:"requested,omitempty"`
	Repo      string `json:"repo" yaml:"repo"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	Size      int64  `json:"size" yaml:"size"`
	SizeHuman string `json:"size_human" yaml:"size_human"`
}

// IsProvided reports whether the package was requested through a virtual
// capability.
func (r Root) IsProvided() bool { return r.Requested != "" }

// IsLocal reports whether the package is installed.
func (r Root) IsLocal() bool { return r.Repo == "local" }

// Group is the aggregate of one classification.
type Group struct {
	Classification deps.Classification `json:"-" yaml:"-"`
	Name           string              `json:"classification" yaml:"classification"`
	Title          string              `json:"title" yaml:"title"`
	Count          int                 `json:"count" yaml:"count"`
	Size           int64               `json:"size" yaml:"size"`
	LocalSize      int64               `json:"local_size" yaml:"local_size"`
	SyncSize       int64               `json:"sync_size" yaml:"sync_size"`
	SizeHuman      string              `json:"size_human" yaml:"size_human"`
	Members        []Member            `json:"members,omitempty" yaml:"members,omitempty"`
	Width          int                 `json:"-" yaml:"-"`
}

// IsMixed reports whether the group holds both installed and repository
// packages.
func (g Group) IsMixed() bool { return g.LocalSize > 0 && g.SyncSize > 0 }

// Member is one listed package of a group.
type Member struct {
	Name    string `json:"name" yaml:"name"`
	Repo    string `json:"repo,omitempty" yaml:"repo,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Size    int64  `json:"size" yaml:"size"`
}

// IsLocal reports whether the member is installed.
func (m Member) IsLocal() bool { return m.Repo == "" }

// Totals are the summary sizes of a report.
//
// OwnSize is the size of the requested packages. Impact adds the exclusive
// and optional dependencies of the same origin as the requested packages:
// what removing installed packages frees, or what installing repository
// packages adds. DependencySize covers every classified dependency, and
// Total is Impact plus DependencySize.
type Totals struct {
	OwnSize        int64 `json:"own_size" yaml:"own_size"`
	Impact         int64 `json:"impact" yaml:"impact"`
	DependencySize int64 `json:"dependency_size" yaml:"dependency_size"`
	Total          int64 `json:"total" yaml:"total"`
}

// New builds the report of a settled closure.
func New(c *deps.Closure) *Report {
	opts := c.Options()
	r := &Report{Reverse: c.IsReverse(), Explicit: opts.Explicit}

	var hasLocal, hasSync bool
	for _, n := range c.Roots() {
		root := Root{
			Name:      n.Name,
			Repo:      n.Package.Origin(),
			Version:   n.Package.Version,
			Size:      n.Size(),
			SizeHuman: FormatSize(n.Size()),
		}
		if n.IsProvided() {
			root.Requested = n.RequestedName
		}
		if n.IsLocal() {
			hasLocal = true
		} else {
			hasSync = true
		}
		r.Roots = append(r.Roots, root)
	}

	var impact int64
	for _, cl := range Visible(c) {
		g := c.Group(cl)
		entry := Group{
			Classification: cl,
			Name:           cl.String(),
			Title:          cl.Title(r.Reverse),
			Count:          g.Count,
			Size:           g.TotalSize,
			LocalSize:      g.LocalSize,
			SyncSize:       g.SyncSize(),
			SizeHuman:      FormatSize(g.TotalSize),
			Width:          g.Width,
		}
		for _, m := range g.Members {
			entry.Members = append(entry.Members, Member{
				Name:    m.Name,
				Repo:    m.Repo(),
				Version: m.Package.Version,
				Size:    m.Size(),
			})
		}
		r.Groups = append(r.Groups, entry)

		r.Totals.DependencySize += g.TotalSize
		if !cl.IsShared() {
			if hasLocal {
				impact += g.LocalSize
			}
			if hasSync {
				impact += g.SyncSize()
			}
		}
	}

	r.Totals.OwnSize = c.RootSize()
	r.Totals.Impact = r.Totals.OwnSize + impact
	r.Totals.Total = r.Totals.Impact + r.Totals.DependencySize

	for _, w := range c.Warnings() {
		r.Warnings = append(r.Warnings, w.Error())
	}
	return r
}

// Visible returns the classifications a report of c shows, in report order:
// explicit variants only in explicit mode, optional groups only when
// optional dependencies are considered, and no shared groups for a reverse
// closure.
func Visible(c *deps.Closure) []deps.Classification {
	opts := c.Options()
	optional := opts.ShowOptional > 0
	if c.IsReverse() {
		optional = opts.Reverse > 1
	}

	var out []deps.Classification
	for _, cl := range deps.Classifications {
		switch {
		case cl.IsExplicit() && !opts.Explicit:
		case cl.IsOptional() && !optional:
		case cl.IsShared() && c.IsReverse():
		default:
			out = append(out, cl)
		}
	}
	return out
}

// Group returns the entry for cl, if displayed.
func (r *Report) Group(cl deps.Classification) (Group, bool) {
	for _, g := range r.Groups {
		if g.Classification == cl {
			return g, true
		}
	}
	return Group{}, false
}

// Combined returns the size of a classification and its explicit variant
// together.
func (r *Report) Combined(base deps.Classification) int64 {
	var size int64
	for _, g := range r.Groups {
		if g.Classification.Base() == base.Base() {
			size += g.Size
		}
	}
	return size
}
