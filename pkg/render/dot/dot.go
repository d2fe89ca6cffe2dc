package dot

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/jjk-jacky/pacdep/pkg/dag"
	"github.com/jjk-jacky/pacdep/pkg/deps"
	"github.com/jjk-jacky/pacdep/pkg/report"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds version, repository and size to node labels.
	// When false, only the package name is shown.
	Detailed bool
}

// fillColors maps a classification to the node fill color.
var fillColors = map[string]string{
	deps.Exclusive.String():         "#c6f6d5",
	deps.ExclusiveExplicit.String(): "#9ae6b4",
	deps.Shared.String():            "#fed7d7",
	deps.SharedExplicit.String():    "#feb2b2",
	deps.Optional.String():          "#bee3f8",
	deps.OptionalExplicit.String():  "#90cdf4",
}

// ToDOT converts an exported closure (see [deps.Closure.Graph]) to Graphviz
// DOT. Requested packages are drawn bold, nodes are filled by
// classification, and nodes of the same depth share a rank. Edges to
// optional dependencies are dashed.
func ToDOT(g *dag.DAG, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := fmtAttrs(*n, fmtLabel(*n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, row := range g.RowIDs() {
		nodes := g.NodesInRow(row)
		if len(nodes) < 2 {
			continue
		}
		ids := make([]string, len(nodes))
		for i, n := range nodes {
			ids[i] = strconv.Quote(n.ID)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if opt, _ := e.Meta["optional"].(bool); opt {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node, detailed bool) string {
	if !detailed {
		return n.ID
	}

	var parts []string
	if v, _ := n.Meta[deps.MetaVersion].(string); v != "" {
		parts = append(parts, v)
	}
	if repo, _ := n.Meta[deps.MetaRepo].(string); repo != "" {
		parts = append(parts, repo)
	}
	if size, ok := metaSize(n.Meta[deps.MetaSize]); ok {
		parts = append(parts, report.FormatSize(size))
	}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		switch k {
		case deps.MetaVersion, deps.MetaRepo, deps.MetaSize, deps.MetaRoot, deps.MetaClassification:
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	if len(parts) == 0 {
		return n.ID
	}
	return n.ID + "\n" + strings.Join(parts, "\n")
}

// metaSize accepts sizes set by deps.Closure.Graph and sizes decoded from
// JSON, which arrive as float64.
func metaSize(v any) (int64, bool) {
	switch size := v.(type) {
	case int64:
		return size, true
	case float64:
		return int64(size), true
	}
	return 0, false
}

func fmtAttrs(n dag.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if root, _ := n.Meta[deps.MetaRoot].(bool); root {
		attrs = append(attrs, "penwidth=2", "fontname=\"bold\"")
		return attrs
	}
	cl, _ := n.Meta[deps.MetaClassification].(string)
	if color, ok := fillColors[cl]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", color))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the drawing scales from the
// origin with its natural size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
