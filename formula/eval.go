package formula

import (
	"strings"

	"github.com/midbel/gridcalc/value"
)

type builtinFunc func([]argument) value.Value

var builtins = map[Kind]builtinFunc{
	KindSum:     evalSum,
	KindAverage: evalAverage,
	KindMax:     evalMax,
	KindLen:     evalLen,
	KindConcat:  evalConcat,
	KindSubstr:  evalSubstr,
	KindCount:   evalCount,
}

// Eval computes the result of expr against the cells given by ctx. The
// result is either a Number, an Int, a Text or one of the error values of
// the value package.
func Eval(expr Expr, ctx Context) value.Value {
	fn, ok := builtins[expr.Kind]
	if !ok {
		return value.ErrSyntax
	}
	args := make([]argument, 0, len(expr.Params))
	for _, p := range expr.Params {
		a := resolve(ctx, p)
		if a.hasError(value.ErrValue) {
			return value.ErrValue
		}
		args = append(args, a)
	}
	return fn(args)
}

func evalSum(args []argument) value.Value {
	sum, count := accumulate(args)
	if count == 0 {
		return value.ErrValue
	}
	return value.Number(sum)
}

func evalAverage(args []argument) value.Value {
	sum, count := accumulate(args)
	if count == 0 {
		return value.ErrValue
	}
	return value.Number(sum / float64(count))
}

func accumulate(args []argument) (float64, int) {
	var (
		sum   float64
		count int
	)
	for _, a := range args {
		for _, n := range a.numbers() {
			sum += n
			count++
		}
	}
	return sum, count
}

func evalMax(args []argument) value.Value {
	if len(args) != 1 || !args[0].isRange() {
		return value.ErrValue
	}
	list := args[0].numbers()
	if len(list) == 0 {
		return value.ErrValue
	}
	res := list[0]
	for _, n := range list[1:] {
		res = max(res, n)
	}
	return value.Number(res)
}

func evalLen(args []argument) value.Value {
	if len(args) != 1 || args[0].isRange() {
		return value.ErrValue
	}
	return value.Int(len([]rune(args[0].text())))
}

func evalConcat(args []argument) value.Value {
	if len(args) != 2 || !args[0].isRange() || args[1].isRange() {
		return value.ErrValue
	}
	if !args[1].set {
		return value.ErrValue
	}
	var list []string
	for _, v := range args[0].cells {
		str := v.String()
		if value.IsErrorText(str) {
			continue
		}
		list = append(list, str)
	}
	if len(list) == 0 {
		return value.ErrValue
	}
	return value.Text(strings.Join(list, args[1].text()))
}

func evalSubstr(args []argument) value.Value {
	if len(args) != 3 || args[0].isRange() {
		return value.ErrValue
	}
	start, ok1 := integer(args[1])
	length, ok2 := integer(args[2])
	if !ok1 || !ok2 {
		return value.ErrValue
	}
	str := []rune(args[0].text())
	if start < 0 || length <= 0 || start > int64(len(str))-length {
		return value.ErrValue
	}
	return value.Text(string(str[start : start+length]))
}

func evalCount(args []argument) value.Value {
	if len(args) != 1 || !args[0].isRange() {
		return value.ErrValue
	}
	var count int64
	for _, v := range args[0].cells {
		if v.String() != "" {
			count++
		}
	}
	return value.Int(count)
}

// integer accepts an integer literal or a cell holding an integer.
func integer(a argument) (int64, bool) {
	switch p := a.Parameter.(type) {
	case IntLiteral:
		return int64(p), true
	case SingleCell:
		if len(a.cells) == 1 {
			i, ok := a.cells[0].(value.Int)
			return int64(i), ok
		}
	}
	return 0, false
}
