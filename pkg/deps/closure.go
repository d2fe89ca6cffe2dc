package deps

import (
	"cmp"
	"slices"
)

// Node is one distinct package of a closure.
//
// Dependencies are references to other nodes of the same closure; the
// closure owns every node. In reverse mode the "dependencies" of a node are
// the packages requiring it.
type Node struct {
	Name           string         // Canonical package name (unique in the closure)
	RequestedName  string         // Name the user asked for (roots only)
	Package        *Package       // Metadata from the Source
	Dependencies   []*Node        // Child nodes, in discovery order, without duplicates
	Classification Classification // Unknown until settled
	Root           bool           // Named directly by the caller
}

// IsProvided reports whether a root was requested through a virtual
// capability satisfied by a differently named package.
func (n *Node) IsProvided() bool {
	return n.RequestedName != "" && n.RequestedName != n.Name
}

// IsLocal reports whether the node's package is installed.
func (n *Node) IsLocal() bool { return n.Package.IsLocal() }

// Repo returns the repository name, or "" for local packages.
func (n *Node) Repo() string { return n.Package.Repo }

// Size returns the installed size in bytes.
func (n *Node) Size() int64 { return n.Package.InstalledSize }

// Width is the number of columns needed to list the node: its name plus a
// separating space, and "repo/" for repository packages.
func (n *Node) Width() int {
	w := len(n.Name) + 1
	if !n.IsLocal() {
		w += len(n.Package.Repo) + 1
	}
	return w
}

func (n *Node) link(child *Node) {
	if child == n || slices.Contains(n.Dependencies, child) {
		return
	}
	n.Dependencies = append(n.Dependencies, child)
}

// Group aggregates the nodes currently assigned one classification.
type Group struct {
	Classification Classification
	TotalSize      int64   // Installed size of every node in the classification
	LocalSize      int64   // Part of TotalSize from local packages
	Count          int     // Number of nodes in the classification
	Members        []*Node // Listed nodes, local first (only if requested)
	Width          int     // Widest Member
}

// SyncSize is the part of TotalSize coming from repository packages.
func (g *Group) SyncSize() int64 { return g.TotalSize - g.LocalSize }

// IsMixed reports whether the group holds both local and repository sizes.
func (g *Group) IsMixed() bool { return g.LocalSize > 0 && g.TotalSize > g.LocalSize }

func (g *Group) insert(n *Node, bySize bool) {
	i, _ := slices.BinarySearchFunc(g.Members, n, func(a, b *Node) int {
		return compareMembers(a, b, bySize)
	})
	g.Members = slices.Insert(g.Members, i, n)
	g.Width = max(g.Width, n.Width())
}

func (g *Group) remove(n *Node) {
	i := slices.Index(g.Members, n)
	if i < 0 {
		return
	}
	g.Members = slices.Delete(g.Members, i, i+1)
	g.Width = 0
	for _, m := range g.Members {
		g.Width = max(g.Width, m.Width())
	}
}

// compareMembers orders local packages before repository ones, then by
// name, or by descending size when bySize is set.
func compareMembers(a, b *Node, bySize bool) int {
	if a.IsLocal() != b.IsLocal() {
		if a.IsLocal() {
			return -1
		}
		return 1
	}
	if bySize {
		if c := cmp.Compare(b.Size(), a.Size()); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Name, b.Name)
}

// Closure is the state of one analysis run: every package reachable from
// the roots, their classifications, and per-classification aggregates.
//
// A Closure is built by [Build] and classified by [Closure.Settle]. It is
// not safe for concurrent use.
type Closure struct {
	opts  Options
	src   Source
	nodes map[string]*Node
	order []*Node
	roots []*Node

	// optional holds, per root, the optional-dependency nodes that passed
	// the inclusion filter.
	optional map[*Node][]*Node

	groups   [numClassifications]Group
	warnings []error
}

func newClosure(src Source, opts Options) *Closure {
	c := &Closure{
		opts:     opts,
		src:      src,
		nodes:    make(map[string]*Node),
		optional: make(map[*Node][]*Node),
	}
	for i := range c.groups {
		c.groups[i].Classification = Classification(i)
	}
	return c
}

// Options returns the options the closure was built with.
func (c *Closure) Options() Options { return c.opts }

// IsReverse reports whether the closure holds requirers instead of
// dependencies.
func (c *Closure) IsReverse() bool { return c.opts.IsReverse() }

// Len returns the number of nodes, roots included.
func (c *Closure) Len() int { return len(c.order) }

// Nodes returns every node in insertion order.
func (c *Closure) Nodes() []*Node { return slices.Clone(c.order) }

// Node returns the node with the given package name.
func (c *Closure) Node(name string) (*Node, bool) {
	n, ok := c.nodes[name]
	return n, ok
}

// Roots returns the requested packages that could be resolved, in request
// order.
func (c *Closure) Roots() []*Node { return slices.Clone(c.roots) }

// OptionalOf returns the optional-dependency nodes recorded for root.
func (c *Closure) OptionalOf(root *Node) []*Node { return slices.Clone(c.optional[root]) }

// Group returns a snapshot of the aggregate for classification cl.
func (c *Closure) Group(cl Classification) Group {
	if cl < 0 || cl >= numClassifications {
		return Group{Classification: cl}
	}
	g := c.groups[cl]
	g.Members = slices.Clone(g.Members)
	return g
}

// Warnings returns the non-fatal problems met while building the closure,
// such as unresolvable roots or dependencies.
func (c *Closure) Warnings() []error { return slices.Clone(c.warnings) }

// RootSize returns the installed size of the roots, which is never part of
// any Group.
func (c *Closure) RootSize() int64 {
	var size int64
	for _, r := range c.roots {
		size += r.Size()
	}
	return size
}

// RootLocalSize returns the part of RootSize coming from local packages.
func (c *Closure) RootLocalSize() int64 {
	var size int64
	for _, r := range c.roots {
		if r.IsLocal() {
			size += r.Size()
		}
	}
	return size
}

// add returns the node for pkg, creating and inserting it if needed. The
// second result reports whether the node is new.
func (c *Closure) add(pkg *Package) (*Node, bool) {
	if n, ok := c.nodes[pkg.Name]; ok {
		return n, false
	}
	n := &Node{Name: pkg.Name, Package: pkg}
	c.nodes[n.Name] = n
	c.order = append(c.order, n)
	return n, true
}

func (c *Closure) warn(err error) {
	c.warnings = append(c.warnings, err)
	c.opts.Logger.Warn(err.Error())
}

// account moves n's size and membership from one classification to
// another. Roots are never accounted.
func (c *Closure) account(n *Node, from, to Classification) {
	if n.Root {
		return
	}
	size := n.Size()
	if from != Unknown {
		g := &c.groups[from]
		g.TotalSize -= size
		if n.IsLocal() {
			g.LocalSize -= size
		}
		g.Count--
		g.remove(n)
	}
	if to == Unknown {
		return
	}
	g := &c.groups[to]
	g.TotalSize += size
	if n.IsLocal() {
		g.LocalSize += size
	}
	g.Count++
	if c.opts.List.Has(to) {
		g.insert(n, c.opts.SortBySize)
	}
}
