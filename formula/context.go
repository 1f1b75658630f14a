package formula

import (
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

// Context gives the evaluator access to the cells of a grid. At reports
// false for unset cells.
type Context interface {
	Dimension() layout.Dimension
	At(layout.Position) (value.Value, bool)
}

// argument is a parameter together with the values of the cells it refers
// to. Unset and out of bounds cells are not part of cells.
type argument struct {
	Parameter
	cells []value.Value
	set   bool
}

func resolve(ctx Context, p Parameter) argument {
	arg := argument{
		Parameter: p,
	}
	switch p := p.(type) {
	case SingleCell:
		if v, ok := ctx.At(p.Position); ok {
			arg.cells = append(arg.cells, v)
			arg.set = true
		}
	case CellRange:
		dim := ctx.Dimension()
		arg.cells = make([]value.Value, 0, min(p.Width(), dim.Columns)*min(p.Height(), dim.Lines))
		for pos := range p.Positions() {
			if !dim.Contains(pos) {
				continue
			}
			if v, ok := ctx.At(pos); ok {
				arg.cells = append(arg.cells, v)
			}
		}
		arg.set = len(arg.cells) > 0
	default:
		arg.set = true
	}
	return arg
}

func (a argument) numbers() []float64 {
	var list []float64
	switch p := a.Parameter.(type) {
	case SingleCell, CellRange:
		for _, v := range a.cells {
			if value.IsNumeric(v) {
				list = append(list, v.Float())
			}
		}
	case IntLiteral:
		list = append(list, float64(p))
	case BoolLiteral:
		if p {
			list = append(list, 1)
		} else {
			list = append(list, 0)
		}
	}
	return list
}

// text gives the string form of a non range argument. An unset cell has an
// empty text.
func (a argument) text() string {
	switch p := a.Parameter.(type) {
	case SingleCell:
		if len(a.cells) == 0 {
			return ""
		}
		return a.cells[0].String()
	case StringLiteral:
		return string(p)
	case CellRange:
		return p.Range.String()
	default:
		return p.String()
	}
}

func (a argument) isRange() bool {
	return IsRange(a.Parameter)
}

func (a argument) hasError(err value.Error) bool {
	for _, v := range a.cells {
		if v.String() == err.String() {
			return true
		}
	}
	return false
}
