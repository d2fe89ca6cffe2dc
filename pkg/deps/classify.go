package deps

// guard is the set of nodes whose state is being derived further up the
// call stack. It is an immutable linked list: pushing returns a new head
// and leaves the caller's view untouched, so no cleanup is needed on
// return.
type guard struct {
	node *Node
	next *guard
}

func (g *guard) push(n *Node) *guard { return &guard{node: n, next: g} }

func (g *guard) contains(n *Node) bool {
	for ; g != nil; g = g.next {
		if g.node == n {
			return true
		}
	}
	return false
}

// Settle assigns a classification to every node of the closure and fills
// the per-classification groups.
//
// In forward mode the roots' classification is propagated to their
// dependencies, each root's optional dependencies are then overlaid as
// Optional, and any node still Unknown is derived last. Contagion reaching
// an overlaid node through a cycle leaves it Optional. In reverse mode
// requirers are Exclusive and optional requirers Optional.
//
// Settle is idempotent: calling it again on a settled closure changes
// nothing.
func (c *Closure) Settle() {
	if c.IsReverse() {
		c.settleReverse()
		return
	}

	for _, r := range c.roots {
		c.opts.Logger.Debug("determine dependencies type", "root", r.Name)
		c.propagate(r, nil)
	}
	for _, r := range c.roots {
		for _, n := range c.optional[r] {
			c.setClassification(n, c.explicit(n, Optional), nil)
		}
	}
	for _, n := range c.order {
		if !n.Root && n.Classification == Unknown {
			c.setClassification(n, c.determineState(n, nil), nil)
		}
	}
}

// explicit promotes base to its *Explicit variant when the closure runs in
// explicit mode and n is a local package installed explicitly.
func (c *Closure) explicit(n *Node, base Classification) Classification {
	if !c.opts.Explicit || base == Unknown {
		return base
	}
	if n.Package.IsExplicit() {
		return base + 1
	}
	return base
}

// determineState derives n's classification from the packages requiring
// it. A settled node keeps its state. Otherwise n is Shared as soon as one
// requirer is an installed package outside the closure, or is itself
// Shared (or, in explicit mode, ExclusiveExplicit) once derived; it is
// Exclusive when no requirer forces sharing. Requirers already in g are
// skipped to break cycles.
func (c *Closure) determineState(n *Node, g *guard) Classification {
	if n.Classification != Unknown {
		return n.Classification
	}

	log := c.opts.Logger
	for _, name := range c.src.RequiredBy(n.Package) {
		p, ok := c.nodes[name]
		switch {
		case !ok:
			if _, installed := c.src.Package(name, SearchLocal); !installed {
				continue
			}
			d := c.explicit(n, Shared)
			log.Debug("required by outsider", "pkg", n.Name, "state", d, "by", name)
			return d

		case p.Classification.IsShared():
			d := c.explicit(n, Shared)
			log.Debug("required by shared dependency", "pkg", n.Name, "state", d, "by", name)
			return d

		case p.Classification == Unknown && !g.contains(p):
			log.Debug("determining state of requirer", "pkg", n.Name, "by", name)
			pg := g.push(p)
			d := c.determineState(p, pg)
			c.setClassification(p, d, pg)
			if d.IsShared() || (c.opts.Explicit && d == ExclusiveExplicit) {
				d := c.explicit(n, Shared)
				log.Debug("requirer not exclusive", "pkg", n.Name, "state", d, "by", name)
				return d
			}
		}
	}

	d := c.explicit(n, Exclusive)
	log.Debug("exclusive", "pkg", n.Name, "state", d)
	return d
}

// setClassification records state for n, moving its size and membership
// between groups, then propagates to n's dependencies. Roots never change,
// a Shared node is never moved back to Exclusive, and the optional overlay
// is final: an Optional node only changes to the other Optional variant.
func (c *Closure) setClassification(n *Node, state Classification, g *guard) {
	if n.Root || n.Classification == state {
		return
	}
	if n.Classification.IsShared() && state.IsExclusive() {
		return
	}
	if n.Classification.IsOptional() && !state.IsOptional() {
		return
	}

	c.opts.Logger.Debug("set state", "pkg", n.Name, "from", n.Classification, "to", state)
	c.account(n, n.Classification, state)
	n.Classification = state
	c.propagate(n, g)
}

// propagate pushes n's classification down to its dependencies. Sharing is
// contagious: children of a Shared node become Shared outright. Any other
// state makes each child re-derive its own state with n guarded.
func (c *Closure) propagate(n *Node, g *guard) {
	if c.IsReverse() {
		return
	}
	for _, child := range n.Dependencies {
		if n.Classification.IsShared() {
			c.setClassification(child, c.explicit(child, Shared), g)
			continue
		}
		cg := g.push(n)
		c.setClassification(child, c.determineState(child, cg), cg)
	}
}
