package deps

import (
	"slices"

	"github.com/jjk-jacky/pacdep/pkg/errors"
)

// Build materializes the closure of the requested packages.
//
// In forward mode the closure follows dependency edges; with
// [Options.ShowOptional] set, each root's optional dependencies that pass the
// inclusion filter are merged in as well. In reverse mode
// ([Options.Reverse] > 0) it follows required-by edges instead.
//
// Roots that cannot be resolved, and dependencies that cannot be satisfied,
// are recorded as PACKAGE_NOT_FOUND warnings and skipped. Build fails with
// NO_PACKAGES when roots is empty or none of them resolves.
//
// The returned closure is not classified yet; call [Closure.Settle].
func Build(src Source, roots []string, opts Options) (*Closure, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, errors.New(errors.ErrCodeNoPackages, "missing package name(s)")
	}

	b := &builder{c: newClosure(src, opts.WithDefaults())}
	for _, name := range roots {
		b.addRoot(name)
	}
	if len(b.c.roots) == 0 {
		return b.c, errors.New(errors.ErrCodeNoPackages, "nothing to process: none of %d package(s) found", len(roots))
	}

	if b.c.IsReverse() {
		b.expandRequirers()
		return b.c, nil
	}
	if b.c.opts.ShowOptional > 0 {
		for _, r := range b.c.roots {
			b.addOptional(r)
		}
	}
	return b.c, nil
}

type builder struct {
	c *Closure
}

func (b *builder) addRoot(name string) {
	c := b.c
	pkg, ok := c.src.FindPackage(name, c.opts.rootSearch())
	if !ok {
		c.warn(errors.New(errors.ErrCodePackageNotFound, "package not found: %s", name))
		return
	}
	n, isNew := c.add(pkg)
	if n.Root {
		c.opts.Logger.Debug("root requested twice", "pkg", n.Name, "requested", name)
		return
	}
	n.Root = true
	n.RequestedName = name
	n.Classification = Exclusive
	c.roots = append(c.roots, n)
	if n.IsProvided() {
		c.opts.Logger.Debug("root is provided", "requested", name, "pkg", n.Name)
	}

	if isNew && !c.IsReverse() {
		b.expand(n)
	}
}

// expand walks the dependency specs of n, creating nodes for new packages
// before recursing so that cycles terminate.
func (b *builder) expand(n *Node) {
	c := b.c
	for _, spec := range n.Package.Depends {
		c.opts.Logger.Debug("look for satisfier", "pkg", n.Name, "dep", spec)
		pkg, ok := c.src.FindPackage(spec, SearchBoth)
		if !ok {
			c.warn(errors.New(errors.ErrCodePackageNotFound, "no package found for dependency %s of %s", spec, n.Name))
			continue
		}
		if !c.opts.Explicit && pkg.IsExplicit() {
			c.opts.Logger.Debug("ignoring explicitly installed dependency", "pkg", pkg.Name)
			continue
		}

		child, isNew := c.add(pkg)
		n.link(child)
		if isNew {
			c.opts.Logger.Debug("adding to closure", "pkg", child.Name, "parent", n.Name)
			b.expand(child)
		}
	}
}

// addOptional merges root's optional dependencies that pass the inclusion
// filter of the configured level.
func (b *builder) addOptional(root *Node) {
	c := b.c
	level := c.opts.ShowOptional
	for _, od := range root.Package.OptDepends {
		pkg, ok := c.src.FindPackage(od.Name, SearchLocal)
		if !ok {
			if level < 3 {
				c.opts.Logger.Debug("ignoring non-installed optional dependency", "pkg", od.Name)
				continue
			}
			if pkg, ok = c.src.FindPackage(od.Name, SearchSync); !ok {
				c.opts.Logger.Debug("ignoring unknown optional dependency", "pkg", od.Name)
				continue
			}
		}
		if level < 3 && !c.opts.Explicit && pkg.IsExplicit() {
			c.opts.Logger.Debug("ignoring explicitly installed optional dependency", "pkg", pkg.Name)
			continue
		}
		if level < 2 {
			if by, ok := b.installedOutsider(pkg); ok {
				c.opts.Logger.Debug("ignoring optional dependency required elsewhere", "pkg", pkg.Name, "by", by)
				continue
			}
		}

		n, isNew := c.add(pkg)
		if isNew {
			b.expand(n)
		}
		b.recordOptional(root, n)
	}
}

// installedOutsider finds an installed package outside the closure that
// requires pkg.
func (b *builder) installedOutsider(pkg *Package) (string, bool) {
	c := b.c
	for _, name := range c.src.RequiredBy(pkg) {
		if _, in := c.nodes[name]; in {
			continue
		}
		if _, installed := c.src.Package(name, SearchLocal); installed {
			return name, true
		}
	}
	return "", false
}

func (b *builder) recordOptional(root, n *Node) {
	if n.Root || slices.Contains(b.c.optional[root], n) {
		return
	}
	b.c.optional[root] = append(b.c.optional[root], n)
}

// partition is the database set a package's requirers live in.
func partition(pkg *Package) SearchSet {
	if pkg.IsLocal() {
		return SearchLocal
	}
	return SearchSync
}
