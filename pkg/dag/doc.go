// Package dag provides the directed graph pacdep exports a dependency
// closure to, for DOT rendering and JSON output.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]. Node IDs must be unique; edges may only connect existing
// nodes:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "pacman", Row: 0})
//	g.AddNode(dag.Node{ID: "libarchive", Row: 1})
//	g.AddEdge(dag.Edge{From: "pacman", To: "libarchive"})
//
// Rows hold the breadth-first depth of each node below the requested
// packages, which renderers use to rank nodes.
//
// # Metadata
//
// Both nodes and the graph itself carry [Metadata] maps. Exported closures
// store each package's classification, installed size, repository and
// version there. Metadata maps are never nil after creation.
//
// # Cycles
//
// Despite the package name, pacman dependency graphs may contain cycles
// (packages depending on each other). [DAG.HasCycle] reports them; the
// graph itself does not reject them.
package dag
