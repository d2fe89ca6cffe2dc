package deps

import (
	"slices"

	"github.com/jjk-jacky/pacdep/pkg/errors"
)

// expandRequirers grows a reverse-mode closure level by level. Level 1
// stops after the direct requirers of the roots; higher levels keep
// expanding newly discovered requirers until none appear.
func (b *builder) expandRequirers() {
	c := b.c
	level := c.opts.Reverse

	queue := slices.Clone(c.roots)
	for depth := 0; len(queue) > 0; depth++ {
		var next []*Node
		for _, n := range queue {
			next = append(next, b.addRequirers(n)...)
		}
		c.opts.Logger.Debug("expanded requirers", "depth", depth, "new", len(next))
		if level == 1 {
			break
		}
		queue = next
	}

	if level < 2 {
		return
	}
	targets := c.roots
	if level == 3 {
		targets = slices.Clone(c.order)
	}
	for _, n := range targets {
		b.addOptionalRequirers(n)
	}
}

// addRequirers links every package requiring n and returns the nodes that
// were not in the closure yet.
func (b *builder) addRequirers(n *Node) []*Node {
	c := b.c
	var added []*Node
	for _, name := range c.src.RequiredBy(n.Package) {
		pkg, ok := c.src.Package(name, partition(n.Package))
		if !ok {
			c.warn(errors.New(errors.ErrCodePackageNotFound, "package not found: %s (requires %s)", name, n.Name))
			continue
		}
		child, isNew := c.add(pkg)
		n.link(child)
		if isNew {
			added = append(added, child)
		}
	}
	return added
}

// addOptionalRequirers adds the packages listing target among their optional
// dependencies. Installed targets are matched against installed packages
// only. Repository targets are matched against every database, so that
// installed packages offering them as optional show up, or against the
// repositories alone with SkipLocal.
func (b *builder) addOptionalRequirers(target *Node) {
	c := b.c
	set := SearchLocal
	if !target.IsLocal() {
		set = c.opts.rootSearch()
	}
	for pkg := range c.src.Packages(set) {
		if !slices.ContainsFunc(pkg.OptDepends, func(od OptDepend) bool { return od.Name == target.Name }) {
			continue
		}
		if _, exists := c.nodes[pkg.Name]; exists {
			continue
		}
		n, _ := c.add(pkg)
		target.link(n)
		b.recordOptional(target, n)
		c.opts.Logger.Debug("optional requirer", "pkg", pkg.Name, "target", target.Name)
	}
}

// settleReverse classifies a required-by closure: requirers are
// independent consumers, so every hard requirer is Exclusive and every
// optional requirer Optional. There is no propagation.
func (c *Closure) settleReverse() {
	optional := make(map[*Node]bool)
	for _, nodes := range c.optional {
		for _, n := range nodes {
			optional[n] = true
		}
	}
	for _, n := range c.order {
		if n.Root {
			continue
		}
		base := Exclusive
		if optional[n] {
			base = Optional
		}
		c.setClassification(n, c.explicit(n, base), nil)
	}
}
