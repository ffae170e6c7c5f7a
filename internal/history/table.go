package history

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column is one table column. Right-aligned columns are padded on the left.
type column struct {
	title string
	right bool
}

// grid lays rows out under titled columns, each as wide as its widest cell in
// terminal columns. Cells beyond the last column are dropped.
type grid struct {
	cols   []column
	widths []int
	rows   [][]string
}

func newGrid(cols ...column) *grid {
	g := &grid{cols: cols, widths: make([]int, len(cols))}
	for i, c := range cols {
		g.widths[i] = runewidth.StringWidth(c.title)
	}
	return g
}

func (g *grid) add(cells ...string) {
	if len(cells) > len(g.cols) {
		cells = cells[:len(g.cols)]
	}
	for i, cell := range cells {
		g.widths[i] = max(g.widths[i], runewidth.StringWidth(cell))
	}
	g.rows = append(g.rows, cells)
}

// lines renders the title row followed by every added row.
func (g *grid) lines() []string {
	titles := make([]string, len(g.cols))
	for i, c := range g.cols {
		titles[i] = c.title
	}
	out := make([]string, 0, len(g.rows)+1)
	out = append(out, g.render(titles))
	for _, row := range g.rows {
		out = append(out, g.render(row))
	}
	return out
}

func (g *grid) render(cells []string) string {
	var b strings.Builder
	for i, c := range g.cols {
		if i > 0 {
			b.WriteByte(' ')
		}
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		if c.right {
			b.WriteString(runewidth.FillLeft(cell, g.widths[i]))
		} else {
			b.WriteString(runewidth.FillRight(cell, g.widths[i]))
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// clip cuts line to at most width terminal columns. Zero width disables it.
func clip(line string, width int) string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return line
	}
	return runewidth.Truncate(line, width, "")
}
