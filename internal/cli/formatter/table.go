package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

// Column describes one table column. Cells wider than Max (in runes) are
// collapsed to one line and cut; zero means no limit.
type Column struct {
	Header string
	Max    int
}

// Table renders a header, a rule and one line per row. Widths are measured
// on visible text, so styled cells still line up.
type Table struct {
	Columns []Column
	rows    [][]string
}

func NewTable(cols ...Column) *Table {
	return &Table{Columns: cols}
}

// Row appends a row; missing cells render empty and extra cells are dropped.
func (t *Table) Row(cells ...string) {
	row := make([]string, len(t.Columns))
	for i := range row {
		if i >= len(cells) {
			break
		}
		if limit := t.Columns[i].Max; limit > 0 {
			row[i] = OneLine(cells[i], limit)
		} else {
			row[i] = cells[i]
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) String() string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = lipgloss.Width(c.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	headers := make([]string, len(t.Columns))
	rules := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = StyleHeader.Render(c.Header)
		rules[i] = StyleDim.Render(strings.Repeat("─", widths[i]))
	}
	writeLine(&b, headers, widths)
	writeLine(&b, rules, widths)
	for _, row := range t.rows {
		writeLine(&b, row, widths)
	}
	return b.String()
}

// writeLine pads every cell but the last, so lines carry no trailing blanks.
func writeLine(b *strings.Builder, cells []string, widths []int) {
	last := len(cells) - 1
	for i, cell := range cells {
		b.WriteString(cell)
		if i == last {
			break
		}
		b.WriteString(strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell))))
		b.WriteString(columnGap)
	}
	b.WriteByte('\n')
}
