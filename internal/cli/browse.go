package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jjk-jacky/pacdep/pkg/buildinfo"
	"github.com/jjk-jacky/pacdep/pkg/deps"
	"github.com/jjk-jacky/pacdep/pkg/report"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command, an interactive viewer of the
// reports of its packages.
func (c *CLI) browseCommand() *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "browse [flags] PACKAGE...",
		Short: "Browse dependency reports interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.resolve(cmd, c.Logger)
			if err != nil {
				return err
			}
			s.deps.List = deps.ListAll

			result, err := c.analyze(cmd.Context(), s, args)
			if err != nil {
				return err
			}
			reports := make([]*report.Report, len(result.Analyses))
			for i, a := range result.Analyses {
				reports[i] = report.New(a.Closure)
			}

			_, err = tea.NewProgram(NewBrowseModel(reports)).Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// BrowseModel - Interactive report viewer
// =============================================================================

// browseRow is one line of the group list: a group header (member < 0) or
// one of its members.
type browseRow struct {
	group  int
	member int
}

// BrowseModel is the bubbletea model of the browse command. Groups of the
// current report are listed collapsed; enter expands them.
type BrowseModel struct {
	Reports  []*report.Report
	Current  int
	Cursor   int
	Offset   int
	Height   int
	Expanded map[deps.Classification]bool

	rows []browseRow
}

// NewBrowseModel creates a viewer over reports, starting on the first one.
func NewBrowseModel(reports []*report.Report) BrowseModel {
	m := BrowseModel{
		Reports:  reports,
		Height:   15,
		Expanded: make(map[deps.Classification]bool),
	}
	m.rows = m.buildRows()
	return m
}

func (m BrowseModel) currentReport() *report.Report {
	if len(m.Reports) == 0 {
		return &report.Report{}
	}
	return m.Reports[m.Current]
}

// buildRows flattens the current report's groups, expanding members of the
// expanded groups.
func (m BrowseModel) buildRows() []browseRow {
	var rows []browseRow
	for gi, g := range m.currentReport().Groups {
		rows = append(rows, browseRow{group: gi, member: -1})
		if !m.Expanded[g.Classification] {
			continue
		}
		for mi := range g.Members {
			rows = append(rows, browseRow{group: gi, member: mi})
		}
	}
	return rows
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			if len(m.rows) == 0 {
				return m, nil
			}
			row := m.rows[m.Cursor]
			cl := m.currentReport().Groups[row.group].Classification
			m.Expanded[cl] = !m.Expanded[cl]
			m.rows = m.buildRows()
			m.Cursor = m.headerIndex(row.group)
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
		case "right", "l", "tab":
			m = m.switchReport(m.Current + 1)
		case "left", "h", "shift+tab":
			m = m.switchReport(m.Current - 1)
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BrowseModel) switchReport(i int) BrowseModel {
	if i < 0 || i >= len(m.Reports) || i == m.Current {
		return m
	}
	m.Current = i
	m.Cursor, m.Offset = 0, 0
	m.rows = m.buildRows()
	return m
}

func (m BrowseModel) headerIndex(group int) int {
	for i, r := range m.rows {
		if r.group == group && r.member < 0 {
			return i
		}
	}
	return 0
}

func (m BrowseModel) View() string {
	var b strings.Builder
	r := m.currentReport()

	b.WriteString(StyleTitle.Render("pacdep"))
	b.WriteString(listDimStyle.Render(" " + buildinfo.Short()))
	if len(m.Reports) > 1 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Current+1, len(m.Reports))))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand  ←/→ package  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.rootsTable(r))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		b.WriteString(m.renderRow(r, i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s %s  (%s)",
		deps.Unknown.Title(r.Reverse),
		report.FormatSize(r.Totals.DependencySize),
		report.FormatSize(r.Totals.Total))))

	return b.String()
}

func (m BrowseModel) rootsTable(r *report.Report) string {
	rows := make([][]string, 0, len(r.Roots))
	for _, root := range r.Roots {
		name := root.Name
		if root.IsProvided() {
			name = root.Requested + " → " + root.Name
		}
		rows = append(rows, []string{name, root.Repo, root.Version, root.SizeHuman})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Repo", "Version", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})

	impact := fmt.Sprintf("  Impact: %s", report.FormatSize(r.Totals.Impact))
	return t.Render() + "\n" + listDimStyle.Render(impact)
}

func (m BrowseModel) renderRow(r *report.Report, i int) string {
	row := m.rows[i]
	g := r.Groups[row.group]
	selected := i == m.Cursor

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	var line string
	if row.member < 0 {
		marker := "+"
		if m.Expanded[g.Classification] {
			marker = "-"
		}
		line = fmt.Sprintf("%s%s %-34s %10s  %d", cursor, marker, g.Title, g.SizeHuman, g.Count)
	} else {
		mb := g.Members[row.member]
		name := mb.Name
		if !mb.IsLocal() {
			name = mb.Repo + "/" + mb.Name
		}
		line = fmt.Sprintf("%s    %-32s %10s  %s", cursor, name, report.FormatSize(mb.Size), mb.Version)
	}

	switch {
	case selected:
		return listSelectedStyle.Render(line)
	case row.member >= 0:
		return listDimStyle.Render(line)
	default:
		return listNormalStyle.Render(line)
	}
}
