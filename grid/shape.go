package grid

import (
	"fmt"
	"slices"
)

// Shape operations move cells but never the targets of references and
// formulas: they keep pointing to the same absolute positions.

func (g *Grid) AddRow() error {
	return g.InsertRow(g.Rows())
}

func (g *Grid) AddColumn() error {
	return g.InsertColumn(g.Columns())
}

// InsertRow inserts an empty row at index. Rows at or after index move one
// position down.
func (g *Grid) InsertRow(index int) error {
	if index < 0 || index > g.Rows() {
		g.logger.Warn("insert row rejected", "index", index, "rows", g.Rows())
		return fmt.Errorf("row %d: %w", index, ErrIndex)
	}
	if err := g.checkLimits(g.Rows()+1, g.Columns()); err != nil {
		g.logger.Warn("insert row rejected", "index", index, "err", err)
		return err
	}
	g.cells = slices.Insert(g.cells, index, make([]Cell, g.cols))
	return nil
}

// InsertColumn inserts an empty column at index. Columns at or after index
// move one position right.
func (g *Grid) InsertColumn(index int) error {
	if index < 0 || index > g.Columns() {
		g.logger.Warn("insert column rejected", "index", index, "cols", g.Columns())
		return fmt.Errorf("column %d: %w", index, ErrIndex)
	}
	if err := g.checkLimits(g.Rows(), g.Columns()+1); err != nil {
		g.logger.Warn("insert column rejected", "index", index, "err", err)
		return err
	}
	for i := range g.cells {
		g.cells[i] = slices.Insert(g.cells[i], index, nil)
	}
	g.cols++
	return nil
}

// RemoveRow removes the row at index. The last remaining row can not be
// removed.
func (g *Grid) RemoveRow(index int) error {
	if index < 0 || index >= g.Rows() {
		g.logger.Warn("remove row rejected", "index", index, "rows", g.Rows())
		return fmt.Errorf("row %d: %w", index, ErrIndex)
	}
	if g.Rows() <= 1 {
		g.logger.Warn("remove row rejected", "index", index, "reason", "last row")
		return fmt.Errorf("last row can not be removed: %w", ErrShape)
	}
	g.cells = slices.Delete(g.cells, index, index+1)
	return nil
}

// RemoveColumn removes the column at index. The last remaining column can
// not be removed.
func (g *Grid) RemoveColumn(index int) error {
	if index < 0 || index >= g.Columns() {
		g.logger.Warn("remove column rejected", "index", index, "cols", g.Columns())
		return fmt.Errorf("column %d: %w", index, ErrIndex)
	}
	if g.Columns() <= 1 {
		g.logger.Warn("remove column rejected", "index", index, "reason", "last column")
		return fmt.Errorf("last column can not be removed: %w", ErrShape)
	}
	for i := range g.cells {
		g.cells[i] = slices.Delete(g.cells[i], index, index+1)
	}
	g.cols--
	return nil
}

// Resize adds or removes rows and columns at the end of the grid until it
// has the given shape. Nothing changes when the shape is invalid or over
// the limits.
func (g *Grid) Resize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		g.logger.Warn("resize rejected", "rows", rows, "cols", cols)
		return fmt.Errorf("%dx%d: %w", rows, cols, ErrShape)
	}
	if err := g.checkLimits(rows, cols); err != nil {
		g.logger.Warn("resize rejected", "rows", rows, "cols", cols, "err", err)
		return err
	}
	for g.Rows() < rows {
		g.cells = append(g.cells, make([]Cell, g.cols))
	}
	clear(g.cells[rows:])
	g.cells = g.cells[:rows]
	for i := range g.cells {
		row := g.cells[i]
		for len(row) < cols {
			row = append(row, nil)
		}
		clear(row[cols:])
		g.cells[i] = row[:cols]
	}
	g.cols = cols
	return nil
}

// Grow makes the grid large enough to hold the cell at row and col.
func (g *Grid) Grow(row, col int) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("%d,%d: %w", row, col, ErrIndex)
	}
	if row < g.Rows() && col < g.Columns() {
		return nil
	}
	return g.Resize(max(g.Rows(), row+1), max(g.Columns(), col+1))
}
