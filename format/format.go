package format

import (
	"github.com/midbel/gridcalc/value"
)

const (
	WholePattern    = "0"
	FractionPattern = "0.00"
)

type Formatter interface {
	Format(value.Value) (string, error)
}

type ValueFormatter struct {
	formatters map[string]Formatter
}

// FormatValue gives a formatter that renders numbers with Number and every
// other value with its own text.
func FormatValue() *ValueFormatter {
	vf := ValueFormatter{
		formatters: make(map[string]Formatter),
	}
	vf.Set(value.TypeNumber, Number())
	return &vf
}

func (vf *ValueFormatter) Set(kind string, formatter Formatter) {
	vf.formatters[kind] = formatter
}

func (vf *ValueFormatter) Number(pattern string) error {
	f, err := ParseNumberFormatter(pattern)
	if err == nil {
		vf.Set(value.TypeNumber, f)
	}
	return err
}

func (vf *ValueFormatter) Format(v value.Value) (string, error) {
	f, ok := vf.formatters[v.Type()]
	if ok {
		return f.Format(v)
	}
	return v.String(), nil
}
