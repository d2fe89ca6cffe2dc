package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jjk-jacky/pacdep/pkg/deps"
	"github.com/jjk-jacky/pacdep/pkg/report"
)

// writeText prints reports in pacdep's column layout, separated by blank
// lines.
func writeText(w io.Writer, reports []*report.Report) error {
	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		renderText(&b, r)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// renderText writes one report. Every label is padded to the widest group
// title so that sizes line up in a single column.
func renderText(b *strings.Builder, r *report.Report) {
	width := titleWidth(r)

	for i, root := range r.Roots {
		b.WriteString(StyleTitle.Render(pad(rootLabel(root), width)))
		b.WriteString(StyleNumber.Render(report.PadSize(root.Size)))
		if i < len(r.Roots)-1 {
			b.WriteString("\n")
		}
	}
	if len(r.Roots) > 1 {
		b.WriteString("\n")
		b.WriteString(pad("Requested packages:", width))
		b.WriteString(StyleNumber.Render(report.PadSize(r.Totals.OwnSize)))
	}
	if r.Totals.Impact > r.Totals.OwnSize {
		b.WriteString(StyleDim.Render(" (" + report.PadSize(r.Totals.Impact) + ")"))
	}
	b.WriteString("\n")

	for _, g := range r.Groups {
		b.WriteString(pad(g.Title, width))
		b.WriteString(StyleNumber.Render(report.PadSize(g.Size)))
		if g.Classification.IsExplicit() {
			if base, ok := r.Group(g.Classification.Base()); ok && base.Size > 0 && g.Size > 0 {
				b.WriteString(StyleDim.Render(" (" + report.PadSize(r.Combined(g.Classification)) + ")"))
			}
		}
		b.WriteString("\n")
		listMembers(b, g)
	}

	b.WriteString(pad(deps.Unknown.Title(r.Reverse), width))
	b.WriteString(StyleNumber.Render(report.PadSize(r.Totals.DependencySize)))
	b.WriteString(StyleDim.Render(" (" + report.PadSize(r.Totals.Total) + ")"))
	b.WriteString("\n")
}

// listMembers writes the listed packages of g, one per line. A mixed group
// gets "local:" and "sync:" sub-totals, with members indented one more
// column under them.
func listMembers(b *strings.Builder, g report.Group) {
	mixed := g.IsMixed()
	indent := " "
	if mixed {
		indent = "  "
	}

	local, sync := false, false
	for _, m := range g.Members {
		if mixed && m.IsLocal() && !local {
			b.WriteString(" " + pad("local:", 8) + report.PadSize(g.LocalSize) + "\n")
			local = true
		}
		if mixed && !m.IsLocal() && !sync {
			b.WriteString(" " + pad("sync:", 8) + report.PadSize(g.SyncSize) + "\n")
			sync = true
		}

		name := m.Name
		if !m.IsLocal() {
			name = m.Repo + "/" + m.Name
		}
		b.WriteString(indent)
		b.WriteString(StyleValue.Render(pad(name, g.Width)))
		b.WriteString(report.PadSize(m.Size))
		b.WriteString("\n")
	}
}

// titleWidth is one more than the longest label of the report's column.
func titleWidth(r *report.Report) int {
	width := len(deps.Unknown.Title(r.Reverse))
	for _, g := range r.Groups {
		width = max(width, len(g.Title))
	}
	return width + 1
}

func rootLabel(root report.Root) string {
	name := root.Name
	if !root.IsLocal() {
		name = root.Repo + "/" + root.Name
	}
	if root.IsProvided() {
		return root.Requested + " is provided by " + name
	}
	return name
}

// pad left-aligns s in a field of n columns.
func pad(s string, n int) string {
	return fmt.Sprintf("%-*s", n, s)
}
