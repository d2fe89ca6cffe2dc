// Package dot renders an exported dependency closure as a Graphviz graph.
//
// [ToDOT] produces DOT text from the [dag.DAG] returned by
// [deps.Closure.Graph]; [RenderSVG] lays it out with the embedded Graphviz
// (goccy/go-graphviz, no external binary needed).
//
//	g := closure.Graph()
//	svg, err := dot.RenderSVG(ctx, dot.ToDOT(g, dot.Options{Detailed: true}))
package dot
