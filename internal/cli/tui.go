package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tsgraph/tsg/pkg/tsg/analysis"
	"github.com/tsgraph/tsg/pkg/tsg/document"
	"github.com/tsgraph/tsg/pkg/tsg/graph"
	"github.com/tsgraph/tsg/pkg/tsg/traverse"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SectionListModel - interactive section browser
// =============================================================================

// sectionRow summarizes one section for display in the browser.
type sectionRow struct {
	id      string
	summary analysis.Summary
	topo    analysis.Topology
}

// SectionListModel is the bubbletea model for browsing a document's
// sections and, on selection, the paths traversal enumerates through it.
type SectionListModel struct {
	Doc      *document.Document
	Rows     []sectionRow
	Cursor   int
	Height   int
	Offset   int
	Selected *graph.Section
	Paths    []*traverse.Path
	viewing  bool
	err      error
}

// NewSectionListModel builds a browser over doc's sections.
func NewSectionListModel(doc *document.Document) SectionListModel {
	rows := make([]sectionRow, 0, len(doc.SectionIDs()))
	for _, id := range doc.SectionIDs() {
		sec, ok := doc.Section(id)
		if !ok {
			continue
		}
		rows = append(rows, sectionRow{
			id:      id,
			summary: analysis.Summarize(sec),
			topo:    analysis.ClassifyTopology(sec),
		})
	}
	return SectionListModel{Doc: doc, Rows: rows, Height: 15}
}

func (m SectionListModel) Init() tea.Cmd {
	return nil
}

func (m SectionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.viewing {
				m.viewing = false
				m.Selected = nil
				m.Paths = nil
				m.err = nil
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if !m.viewing && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.viewing && m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if !m.viewing && len(m.Rows) > 0 {
				row := m.Rows[m.Cursor]
				sec, ok := m.Doc.Section(row.id)
				if !ok {
					return m, nil
				}
				m.Selected = sec
				m.viewing = true
				paths, err := traverse.Traverse(sec, traverse.DefaultOptions())
				m.Paths = paths
				m.err = err
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SectionListModel) View() string {
	if m.viewing {
		return m.viewPaths()
	}
	return m.viewSections()
}

func (m SectionListModel) viewSections() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Sections"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ traverse  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor, r.id, string(r.topo),
			fmt.Sprintf("%d", r.summary.Nodes), fmt.Sprintf("%d", r.summary.Edges),
			fmt.Sprintf("%d", r.summary.Paths),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Section", "Topology", "Nodes", "Edges", "Paths").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	return b.String()
}

func (m SectionListModel) viewPaths() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Paths through " + m.Selected.ID))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
		return b.String()
	}
	for _, p := range m.Paths {
		b.WriteString(listDimStyle.Render(p.ID) + "  " + listNormalStyle.Render(p.String()) + "\n")
	}
	if len(m.Paths) == 0 {
		b.WriteString(listDimStyle.Render("(no paths)"))
	}
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// tuiCommand launches an interactive section/path browser over a parsed
// document.
func (c *CLI) tuiCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui <file.tsg>",
		Short: "Browse a document's sections and paths interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.ParseFile(args[0])
			if err != nil {
				return err
			}
			m := NewSectionListModel(doc)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
	return cmd
}
