package grid

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/midbel/gridcalc/format"
	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

var (
	ErrIndex = errors.New("index out of range")
	ErrShape = errors.New("invalid grid shape")
	ErrLimit = errors.New("grid size limit exceeded")
)

const DefaultMaxDepth = 256

// Grid is a rectangular table of cells. It always has at least one row and
// one column. A nil slot is an unset cell.
//
// A Grid is not safe for concurrent use.
type Grid struct {
	cells [][]Cell
	cols  int

	limits    layout.Dimension
	maxDepth  int
	formatter format.Formatter
	logger    *slog.Logger
}

type Option func(*Grid)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Grid) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithLimits sets the maximum number of rows and columns. A zero field
// means no limit on that axis.
func WithLimits(dim layout.Dimension) Option {
	return func(g *Grid) {
		g.limits = dim
	}
}

// WithMaxDepth bounds the number of references and formulas followed while
// computing one cell.
func WithMaxDepth(depth int) Option {
	return func(g *Grid) {
		if depth > 0 {
			g.maxDepth = depth
		}
	}
}

// WithFormatter changes how formula results are rendered.
func WithFormatter(f format.Formatter) Option {
	return func(g *Grid) {
		if f != nil {
			g.formatter = f
		}
	}
}

func New(rows, cols int, options ...Option) (*Grid, error) {
	g := Grid{
		maxDepth:  DefaultMaxDepth,
		formatter: format.FormatValue(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, o := range options {
		o(&g)
	}
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%dx%d: %w", rows, cols, ErrShape)
	}
	if err := g.checkLimits(rows, cols); err != nil {
		return nil, err
	}
	g.cols = cols
	g.cells = make([][]Cell, rows)
	for i := range g.cells {
		g.cells[i] = make([]Cell, cols)
	}
	return &g, nil
}

func (g *Grid) Rows() int {
	return len(g.cells)
}

func (g *Grid) Columns() int {
	return g.cols
}

func (g *Grid) Dimension() layout.Dimension {
	return layout.NewDimension(g.Rows(), g.Columns())
}

func (g *Grid) Limits() layout.Dimension {
	return g.limits
}

// RowLabel gives the letter label of a row: A for the first one.
func (g *Grid) RowLabel(row int) string {
	return layout.Letters(row)
}

// ColumnLabel gives the 1-based number of a column.
func (g *Grid) ColumnLabel(col int) string {
	return strconv.Itoa(col + 1)
}

// SetCell replaces the cell at row and col with the cell built from raw.
// Nothing changes when the position is out of bounds.
func (g *Grid) SetCell(row, col int, raw string) error {
	pos := layout.NewPosition(row, col)
	if !g.Dimension().Contains(pos) {
		g.logger.Warn("set cell out of bounds", "row", row, "col", col, "rows", g.Rows(), "cols", g.Columns())
		return fmt.Errorf("%d,%d: %w", row, col, ErrIndex)
	}
	g.cells[row][col] = g.build(pos, raw)
	return nil
}

// SetAddr is SetCell with an address like B3.
func (g *Grid) SetAddr(addr, raw string) error {
	pos, err := layout.ParseAddress(addr)
	if err != nil {
		return err
	}
	return g.SetCell(pos.Line, pos.Column, raw)
}

func (g *Grid) GetCell(row, col int) (Cell, bool) {
	if !g.Dimension().Contains(layout.NewPosition(row, col)) {
		return nil, false
	}
	c := g.cells[row][col]
	return c, c != nil
}

func (g *Grid) build(pos layout.Position, raw string) Cell {
	src, ok := strings.CutPrefix(raw, "=")
	if !ok {
		return Classify(raw)
	}
	if strings.ContainsAny(src, "()") {
		expr, err := formula.Parse(src)
		if err != nil {
			g.logger.Debug("invalid formula", "cell", pos.Addr(), "formula", src, "err", err)
			return String(value.ErrSyntax.String())
		}
		return Formula{Expr: expr}
	}
	target, err := layout.ParseAddress(src)
	if err != nil {
		g.logger.Debug("invalid reference", "cell", pos.Addr(), "target", src, "err", err)
		return String(value.ErrRef.String())
	}
	if target.Equal(pos) {
		return String(value.ErrCircular.String())
	}
	if c, ok := g.GetCell(target.Line, target.Column); ok {
		if ref, ok := c.(Reference); ok && ref.Target.Equal(pos) {
			return String(value.ErrCircular.String())
		}
	}
	return Reference{Target: target}
}

func (g *Grid) checkLimits(rows, cols int) error {
	if g.limits.Lines > 0 && rows > g.limits.Lines {
		return fmt.Errorf("%d rows (max %d): %w", rows, g.limits.Lines, ErrLimit)
	}
	if g.limits.Columns > 0 && cols > g.limits.Columns {
		return fmt.Errorf("%d columns (max %d): %w", cols, g.limits.Columns, ErrLimit)
	}
	return nil
}
