package formula

import (
	"errors"
	"fmt"
	"strings"

	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

var (
	ErrSyntax = errors.New("syntax error")
	ErrName   = errors.New("unknown formula")
)

// Parse parses a formula call of the form NAME(arg, arg...) given without
// its leading equal sign.
func Parse(str string) (Expr, error) {
	var expr Expr
	name, args, err := SplitCall(str)
	if err != nil {
		return expr, err
	}
	kind, ok := KindFromString(name)
	if !ok {
		return expr, fmt.Errorf("%s: %w", name, ErrName)
	}
	expr.Kind = kind
	for _, a := range SplitArgs(args) {
		p, err := ParseParameter(a)
		if err != nil {
			return expr, err
		}
		expr.Params = append(expr.Params, p)
	}
	return expr, nil
}

// SplitCall separates the name of the call from the text of its arguments.
// The arguments end at the last closing parenthesis of str.
func SplitCall(str string) (string, string, error) {
	beg := strings.IndexByte(str, '(')
	if beg <= 0 {
		return "", "", fmt.Errorf("%q: missing formula name or parenthesis: %w", str, ErrSyntax)
	}
	end := strings.LastIndexByte(str, ')')
	if end < beg {
		return "", "", fmt.Errorf("%q: missing closing parenthesis: %w", str, ErrSyntax)
	}
	return str[:beg], str[beg+1 : end], nil
}

// SplitArgs splits on every comma. Empty arguments are dropped.
func SplitArgs(str string) []string {
	var list []string
	for a := range strings.SplitSeq(str, ",") {
		a = strings.Trim(a, " \t")
		if a == "" {
			continue
		}
		list = append(list, a)
	}
	return list
}

// ParseParameter classifies one argument. A quoted text is a string even
// when it holds a colon.
func ParseParameter(str string) (Parameter, error) {
	if s, ok := value.Unquote(str); ok {
		return StringLiteral(s), nil
	}
	if strings.IndexByte(str, ':') >= 0 {
		rg, err := layout.ParseRange(str)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		return CellRange{Range: rg}, nil
	}
	if pos, err := layout.ParseAddress(str); err == nil {
		return SingleCell{Position: pos}, nil
	}
	if b, ok := value.ParseBool(str); ok {
		return BoolLiteral(b), nil
	}
	if i, ok := value.ParseInt(str); ok {
		return IntLiteral(i), nil
	}
	return StringLiteral(str), nil
}
