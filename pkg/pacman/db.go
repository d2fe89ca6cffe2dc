package pacman

import (
	"iter"
	"slices"
	"sync"

	"github.com/jjk-jacky/pacdep/pkg/deps"
)

// Repository is one package database: the local database (Name "local")
// or a sync repository.
type Repository struct {
	Name     string
	Packages []*deps.Package

	byName map[string]*deps.Package
}

// LocalName is the name of the installed-packages database.
const LocalName = "local"

// NewRepository indexes pkgs by name. For duplicate names the first entry
// wins.
func NewRepository(name string, pkgs []*deps.Package) *Repository {
	r := &Repository{Name: name, Packages: pkgs, byName: make(map[string]*deps.Package, len(pkgs))}
	for _, p := range pkgs {
		if _, dup := r.byName[p.Name]; !dup {
			r.byName[p.Name] = p
		}
	}
	return r
}

// Package returns the package with the exact name.
func (r *Repository) Package(name string) (*deps.Package, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Len returns the number of packages.
func (r *Repository) Len() int { return len(r.Packages) }

// DB is the pacman package metadata source: the local database plus the
// sync databases in pacman.conf order. It implements [deps.Source] and is
// safe for concurrent use once built.
type DB struct {
	local    *Repository
	syncs    []*Repository
	warnings []error

	reverse [2]reverseIndex
}

// NewDB builds a DB from already loaded repositories.
func NewDB(local *Repository, syncs ...*Repository) *DB {
	if local == nil {
		local = NewRepository(LocalName, nil)
	}
	return &DB{local: local, syncs: syncs}
}

// Local returns the installed-packages database.
func (db *DB) Local() *Repository { return db.local }

// Syncs returns the sync databases in priority order.
func (db *DB) Syncs() []*Repository { return slices.Clone(db.syncs) }

// Warnings returns non-fatal problems met while opening the databases.
func (db *DB) Warnings() []error { return slices.Clone(db.warnings) }

func (db *DB) repos(set deps.SearchSet) []*Repository {
	var out []*Repository
	if set&deps.SearchLocal != 0 {
		out = append(out, db.local)
	}
	if set&deps.SearchSync != 0 {
		out = append(out, db.syncs...)
	}
	return out
}

// FindPackage implements [deps.Source]. The installed database is searched
// first; within each side a package named exactly like the dependency wins
// over providers. Version constraints are not checked.
func (db *DB) FindPackage(name string, set deps.SearchSet) (*deps.Package, bool) {
	want := ParseDepSpec(name).Name
	for _, side := range []deps.SearchSet{deps.SearchLocal, deps.SearchSync} {
		if set&side == 0 {
			continue
		}
		repos := db.repos(side)
		for _, r := range repos {
			if p, ok := r.Package(want); ok {
				return p, true
			}
		}
		for _, r := range repos {
			for _, p := range r.Packages {
				if provides(p, want) {
					return p, true
				}
			}
		}
	}
	return nil, false
}

// Package implements [deps.Source].
func (db *DB) Package(name string, set deps.SearchSet) (*deps.Package, bool) {
	for _, r := range db.repos(set) {
		if p, ok := r.Package(name); ok {
			return p, true
		}
	}
	return nil, false
}

// Packages implements [deps.Source].
func (db *DB) Packages(set deps.SearchSet) iter.Seq[*deps.Package] {
	return func(yield func(*deps.Package) bool) {
		for _, r := range db.repos(set) {
			for _, p := range r.Packages {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// RequiredBy implements [deps.Source]: the packages of pkg's own side
// (installed or repositories) with a dependency pkg satisfies, in database
// order, without duplicates.
func (db *DB) RequiredBy(pkg *deps.Package) []string {
	side, idx := deps.SearchSync, &db.reverse[1]
	if pkg.IsLocal() {
		side, idx = deps.SearchLocal, &db.reverse[0]
	}
	idx.once.Do(func() { idx.build(db.Packages(side)) })

	var pos []int
	pos = append(pos, idx.by[pkg.Name]...)
	for _, prov := range pkg.Provides {
		pos = append(pos, idx.by[ParseDepSpec(prov).Name]...)
	}
	slices.Sort(pos)
	pos = slices.Compact(pos)

	names := make([]string, 0, len(pos))
	for _, i := range pos {
		if n := idx.pkgs[i].Name; !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	return names
}

func provides(p *deps.Package, name string) bool {
	for _, prov := range p.Provides {
		if ParseDepSpec(prov).Name == name {
			return true
		}
	}
	return false
}

// reverseIndex maps a dependency name to the positions of the packages
// depending on it. It is built on first use.
type reverseIndex struct {
	once sync.Once
	pkgs []*deps.Package
	by   map[string][]int
}

func (x *reverseIndex) build(pkgs iter.Seq[*deps.Package]) {
	x.by = make(map[string][]int)
	for p := range pkgs {
		i := len(x.pkgs)
		x.pkgs = append(x.pkgs, p)
		for _, d := range p.Depends {
			name := ParseDepSpec(d).Name
			if s := x.by[name]; len(s) == 0 || s[len(s)-1] != i {
				x.by[name] = append(s, i)
			}
		}
	}
}

var _ deps.Source = (*DB)(nil)
