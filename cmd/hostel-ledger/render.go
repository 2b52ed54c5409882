package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent  = lipgloss.Color("#3AA99F")
	colorText    = lipgloss.Color("#FFFCF0")
	colorTextDim = lipgloss.Color("#575653")
)

// table is a bordered block of rows under an optional title.
type table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// styles are bound to one writer so colour is dropped when it is not a
// terminal.
type styles struct {
	header lipgloss.Style
	value  lipgloss.Style
	dim    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header: r.NewStyle().Bold(true).Foreground(colorAccent),
		value:  r.NewStyle().Foreground(colorText),
		dim:    r.NewStyle().Foreground(colorTextDim),
	}
}

// renderTable writes t with rounded box borders. The first column is left
// aligned, the rest are amounts and right aligned.
func renderTable(w io.Writer, t table) error {
	st := newStyles(w)
	var b strings.Builder

	b.WriteString("\n")
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(st.header.Render(t.Title))
		b.WriteString("\n")
	}
	if len(t.Rows) == 0 {
		b.WriteString(st.dim.Render("  (none)"))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	numCols := len(t.Headers)
	for _, row := range t.Rows {
		numCols = max(numCols, len(row))
	}
	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	rule := func(left, mid, right string) {
		b.WriteString(st.dim.Render(left))
		for i, w := range widths {
			b.WriteString(st.dim.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(st.dim.Render(mid))
			}
		}
		b.WriteString(st.dim.Render(right))
		b.WriteString("\n")
	}
	line := func(cells []string, style lipgloss.Style, alignRight bool) {
		b.WriteString(st.dim.Render("│"))
		for i := range numCols {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style.Render(" " + pad(cell, widths[i], alignRight && i > 0) + " "))
			if i < numCols-1 {
				b.WriteString(st.dim.Render("│"))
			}
		}
		b.WriteString(st.dim.Render("│"))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		line(t.Headers, st.header, false)
		rule("├", "┼", "┤")
	}
	for _, row := range t.Rows {
		line(row, st.value, true)
	}
	rule("╰", "┴", "╯")

	_, err := io.WriteString(w, b.String())
	return err
}

// pad fills s with spaces to width display cells.
func pad(s string, width int, right bool) string {
	gap := strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
	if right {
		return gap + s
	}
	return s + gap
}

func renderPairs(w io.Writer, title string, pairs [][2]string) error {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0], p[1]}
	}
	return renderTable(w, table{Title: title, Rows: rows})
}
