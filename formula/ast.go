package formula

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/midbel/gridcalc/layout"
)

type Kind int8

const (
	KindSum Kind = iota
	KindAverage
	KindMax
	KindLen
	KindConcat
	KindSubstr
	KindCount
)

var kindNames = map[Kind]string{
	KindSum:     "SUM",
	KindAverage: "AVERAGE",
	KindMax:     "MAX",
	KindLen:     "LEN",
	KindConcat:  "CONCAT",
	KindSubstr:  "SUBSTR",
	KindCount:   "COUNT",
}

// KindFromString matches name case sensitively.
func KindFromString(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int8(k))
}

// Parameter is one argument of a formula. The set of variants is closed:
// SingleCell, CellRange, IntLiteral, BoolLiteral and StringLiteral.
type Parameter interface {
	fmt.Stringer
	parameter()
}

type SingleCell struct {
	layout.Position
}

func (SingleCell) parameter() {}

type CellRange struct {
	layout.Range
}

func (CellRange) parameter() {}

type IntLiteral int64

func (IntLiteral) parameter() {}

func (i IntLiteral) String() string {
	return strconv.FormatInt(int64(i), 10)
}

type BoolLiteral bool

func (BoolLiteral) parameter() {}

func (b BoolLiteral) String() string {
	return strconv.FormatBool(bool(b))
}

type StringLiteral string

func (StringLiteral) parameter() {}

func (s StringLiteral) String() string {
	return fmt.Sprintf("\"%s\"", string(s))
}

func IsRange(p Parameter) bool {
	_, ok := p.(CellRange)
	return ok
}

type Expr struct {
	Kind   Kind
	Params []Parameter
}

func (e Expr) String() string {
	var list []string
	for _, p := range e.Params {
		list = append(list, p.String())
	}
	return fmt.Sprintf("%s(%s)", e.Kind, strings.Join(list, ", "))
}

// DumpExpr gives a description of the expression with the variant of
// every parameter.
func DumpExpr(e Expr) string {
	var str strings.Builder
	str.WriteString(e.Kind.String())
	str.WriteString("(")
	for i, p := range e.Params {
		if i > 0 {
			str.WriteString(", ")
		}
		switch p := p.(type) {
		case SingleCell:
			str.WriteString("cell(" + p.Addr() + ")")
		case CellRange:
			str.WriteString("range(" + p.Range.String() + ")")
		case IntLiteral:
			str.WriteString("int(" + p.String() + ")")
		case BoolLiteral:
			str.WriteString("bool(" + p.String() + ")")
		case StringLiteral:
			str.WriteString("string(" + string(p) + ")")
		}
	}
	str.WriteString(")")
	return str.String()
}
