package deps

import (
	"iter"
	"slices"
	"strings"
)

// memSource is an in-memory Source for tests. Lookups follow the pacman
// backend rules: exact name before provides, local before sync.
type memSource struct {
	local []*Package
	sync  []*Package
}

func (s *memSource) dbs(set SearchSet) [][]*Package {
	var out [][]*Package
	if set&SearchLocal != 0 {
		out = append(out, s.local)
	}
	if set&SearchSync != 0 {
		out = append(out, s.sync)
	}
	return out
}

func depName(spec string) string {
	if i := strings.IndexAny(spec, "<>="); i >= 0 {
		return spec[:i]
	}
	return spec
}

func (s *memSource) FindPackage(name string, set SearchSet) (*Package, bool) {
	name = depName(name)
	if p, ok := s.Package(name, set); ok {
		return p, true
	}
	for _, db := range s.dbs(set) {
		for _, p := range db {
			if slices.Contains(p.Provides, name) {
				return p, true
			}
		}
	}
	return nil, false
}

func (s *memSource) Package(name string, set SearchSet) (*Package, bool) {
	for _, db := range s.dbs(set) {
		for _, p := range db {
			if p.Name == name {
				return p, true
			}
		}
	}
	return nil, false
}

func (s *memSource) RequiredBy(pkg *Package) []string {
	set := SearchSync
	if pkg.IsLocal() {
		set = SearchLocal
	}
	var names []string
	for p := range s.Packages(set) {
		for _, spec := range p.Depends {
			n := depName(spec)
			if n == pkg.Name || slices.Contains(pkg.Provides, n) {
				names = append(names, p.Name)
				break
			}
		}
	}
	return names
}

func (s *memSource) Packages(set SearchSet) iter.Seq[*Package] {
	return func(yield func(*Package) bool) {
		for _, db := range s.dbs(set) {
			for _, p := range db {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// dep returns an installed package pulled in as a dependency.
func dep(name string, size int64, depends ...string) *Package {
	return &Package{Name: name, Version: "1.0-1", Reason: ReasonDepend, InstalledSize: size, Depends: depends}
}

// expl returns an explicitly installed package.
func expl(name string, size int64, depends ...string) *Package {
	p := dep(name, size, depends...)
	p.Reason = ReasonExplicit
	return p
}

// repo returns a package only available from the named repository.
func repo(repoName, name string, size int64, depends ...string) *Package {
	p := dep(name, size, depends...)
	p.Repo = repoName
	p.Reason = ReasonExplicit
	return p
}

func optdeps(p *Package, names ...string) *Package {
	for _, n := range names {
		p.OptDepends = append(p.OptDepends, OptDepend{Name: n, Description: "for " + n})
	}
	return p
}
