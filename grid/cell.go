package grid

import (
	"strconv"

	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

// Cell is one of Empty, Int, Bool, String, Reference and Formula. Cells do
// not know the grid they live in: their text and number are computed by
// Grid.Text and Grid.Eval.
type Cell interface {
	Type() string
	cell()
}

type Empty struct{}

func (Empty) cell() {}

func (Empty) Type() string {
	return value.TypeEmpty
}

type Int int64

func (Int) cell() {}

func (Int) Type() string {
	return value.TypeInt
}

type Bool bool

func (Bool) cell() {}

func (Bool) Type() string {
	return value.TypeBool
}

type String string

func (String) cell() {}

func (String) Type() string {
	return value.TypeText
}

// Reference keeps the absolute position of its target. Changing the shape
// of the grid never moves it.
type Reference struct {
	Target layout.Position
}

func (Reference) cell() {}

func (Reference) Type() string {
	return value.TypeReference
}

type Formula struct {
	Expr formula.Expr
}

func (Formula) cell() {}

func (Formula) Type() string {
	return value.TypeFormula
}

// Classify gives the literal cell for text. Text that is not empty, a
// boolean, a quoted string or an integer is kept verbatim as a String.
func Classify(text string) Cell {
	if text == "" {
		return Empty{}
	}
	if b, ok := value.ParseBool(text); ok {
		return Bool(b)
	}
	if s, ok := value.Unquote(text); ok {
		return String(s)
	}
	if i, ok := value.ParseInt(text); ok {
		return Int(i)
	}
	return String(text)
}

// Source gives the text that would produce c when typed into a cell.
func Source(c Cell) string {
	switch c := c.(type) {
	case Empty:
		return ""
	case Int:
		return strconv.FormatInt(int64(c), 10)
	case Bool:
		return strconv.FormatBool(bool(c))
	case String:
		return string(c)
	case Reference:
		return "=" + c.Target.Addr()
	case Formula:
		return "=" + c.Expr.String()
	default:
		return ""
	}
}
