package value

import (
	"fmt"
)

const (
	TypeEmpty     = "empty"
	TypeInt       = "int"
	TypeBool      = "bool"
	TypeText      = "string"
	TypeNumber    = "number"
	TypeError     = "error"
	TypeReference = "ReferenceCell"
	TypeFormula   = "FormulaCell"
)

// Value is what the formula evaluator sees of a cell or of a literal
// argument: a type tag, a display text and a number.
type Value interface {
	Type() string
	fmt.Stringer
	Float() float64
}

// IsNumeric reports whether v contributes to numeric aggregates. Text and
// empty values never do.
func IsNumeric(v Value) bool {
	switch v.Type() {
	case TypeInt, TypeBool, TypeNumber, TypeReference, TypeFormula:
		return true
	default:
		return false
	}
}
