package render

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/mattn/go-runewidth"

	"github.com/midbel/gridcalc/config"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

type Options struct {
	// AutoFit sizes every column to its widest text. Otherwise every column
	// is Width symbols wide and longer texts are cut.
	AutoFit bool
	Width   int
	Align   config.Alignment
	Color   bool
}

func FromConfig(cfg config.Config) Options {
	return Options{
		AutoFit: cfg.AutoFit,
		Width:   cfg.VisibleCellSymbols,
		Align:   cfg.Alignment,
		Color:   true,
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	plainStyle  = lipgloss.NewStyle()
)

// Table renders g with column numbers on top and row letters on the left.
func Table(g *grid.Grid, opts Options) string {
	var (
		rows   = Texts(g)
		widths = columnWidths(g, rows, opts)
		header = []string{""}
	)
	for c := range g.Columns() {
		header = append(header, Align(g.ColumnLabel(c), widths[c], opts.Align))
	}
	var lines [][]string
	for r, row := range rows {
		line := []string{g.RowLabel(r)}
		for c, str := range row {
			if !opts.AutoFit {
				str = runewidth.Truncate(str, widths[c], "")
			}
			line = append(line, Align(str, widths[c], opts.Align))
		}
		lines = append(lines, line)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(header...).
		Rows(lines...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if !opts.Color {
				return plainStyle
			}
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			case row >= 0 && row < len(rows) && value.IsErrorText(rows[row][col-1]):
				return errorStyle
			default:
				return plainStyle
			}
		})
	return t.Render()
}

// Texts gives the display text of every cell, row by row. Unset cells have
// an empty text.
func Texts(g *grid.Grid) [][]string {
	rows := make([][]string, g.Rows())
	for r := range rows {
		rows[r] = make([]string, g.Columns())
		for c := range rows[r] {
			if v, ok := g.At(layout.NewPosition(r, c)); ok {
				rows[r][c] = v.String()
			}
		}
	}
	return rows
}

func columnWidths(g *grid.Grid, rows [][]string, opts Options) []int {
	widths := make([]int, g.Columns())
	for c := range widths {
		if !opts.AutoFit {
			widths[c] = max(1, opts.Width)
			continue
		}
		w := 1
		for _, row := range rows {
			w = max(w, runewidth.StringWidth(row[c]))
		}
		widths[c] = w
	}
	return widths
}

// Align pads str with spaces up to width. Texts already wider are kept as
// is.
func Align(str string, width int, align config.Alignment) string {
	pad := width - runewidth.StringWidth(str)
	if pad <= 0 {
		return str
	}
	switch align {
	case config.AlignRight:
		return strings.Repeat(" ", pad) + str
	case config.AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + str + strings.Repeat(" ", pad-left)
	default:
		return str + strings.Repeat(" ", pad)
	}
}
