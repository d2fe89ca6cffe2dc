package deps

import (
	"github.com/jjk-jacky/pacdep/pkg/dag"
)

// Node metadata keys set by [Closure.Graph].
const (
	MetaClassification = "classification"
	MetaSize           = "size"
	MetaRepo           = "repo"
	MetaVersion        = "version"
	MetaRoot           = "root"
	MetaReverse        = "reverse"
)

// Graph exports the closure as a directed graph. Each node carries the
// package's classification, installed size, repository and version as
// metadata; rows hold the breadth-first depth below the nearest root.
// Edges point from a package to its dependencies, or to its requirers for a
// reverse closure.
func (c *Closure) Graph() *dag.DAG {
	g := dag.New(dag.Metadata{MetaReverse: c.IsReverse()})

	depth := make(map[*Node]int, len(c.order))
	queue := make([]*Node, 0, len(c.order))
	for _, r := range c.roots {
		depth[r] = 0
		queue = append(queue, r)
	}
	for i := 0; i < len(queue); i++ {
		n := queue[i]
		for _, child := range n.Dependencies {
			if _, seen := depth[child]; !seen {
				depth[child] = depth[n] + 1
				queue = append(queue, child)
			}
		}
	}
	// Optional dependencies are only reachable through the root's record.
	for _, r := range c.roots {
		for _, n := range c.optional[r] {
			if _, seen := depth[n]; !seen {
				depth[n] = 1
			}
		}
	}

	for _, n := range c.order {
		row, ok := depth[n]
		if !ok {
			row = 1
		}
		_ = g.AddNode(dag.Node{
			ID:  n.Name,
			Row: row,
			Meta: dag.Metadata{
				MetaClassification: n.Classification.String(),
				MetaSize:           n.Size(),
				MetaRepo:           n.Package.Origin(),
				MetaVersion:        n.Package.Version,
				MetaRoot:           n.Root,
			},
		})
	}
	for _, n := range c.order {
		for _, child := range n.Dependencies {
			_ = g.AddEdge(dag.Edge{From: n.Name, To: child.Name})
		}
	}
	for _, r := range c.roots {
		for _, n := range c.optional[r] {
			_ = g.AddEdge(dag.Edge{From: r.Name, To: n.Name, Meta: dag.Metadata{"optional": true}})
		}
	}
	return g
}
