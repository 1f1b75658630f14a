package format

import (
	"testing"

	"github.com/midbel/gridcalc/value"
)

func TestFormatter(t *testing.T) {
	tests := []struct {
		Input value.Value
		Want  string
	}{
		{
			Input: value.Number(42),
			Want:  "42",
		},
		{
			Input: value.Number(-7),
			Want:  "-7",
		},
		{
			Input: value.Number(1234567),
			Want:  "1234567",
		},
		{
			Input: value.Number(3.14),
			Want:  "3.14",
		},
		{
			Input: value.Number(2.5),
			Want:  "2.50",
		},
		{
			Input: value.Number(-2.5),
			Want:  "-2.50",
		},
		{
			Input: value.Number(1.0 / 3),
			Want:  "0.33",
		},
		{
			Input: value.Number(2.0 / 3),
			Want:  "0.67",
		},
		{
			Input: value.Number(0.125),
			Want:  "0.13",
		},
		{
			Input: value.Number(2.999),
			Want:  "3.00",
		},
		{
			Input: value.Number(-0.001),
			Want:  "0.00",
		},
		{
			Input: value.Int(12),
			Want:  "12",
		},
		{
			Input: value.Text("foobar"),
			Want:  "foobar",
		},
		{
			Input: value.Boolean(true),
			Want:  "true",
		},
		{
			Input: value.ErrValue,
			Want:  "#VALUE!",
		},
	}
	vf := FormatValue()
	for _, c := range tests {
		got, err := vf.Format(c.Input)
		if err != nil {
			t.Errorf("fail to format value (%v): %s", c.Input, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%v: results mismatched! want %s - got %s", c.Input, c.Want, got)
		}
	}
}

func TestNumberPattern(t *testing.T) {
	tests := []struct {
		Pattern string
		Input   float64
		Want    string
	}{
		{
			Pattern: "#,###.##",
			Input:   1234567.891,
			Want:    "1,234,567.89",
		},
		{
			Pattern: "000",
			Input:   7,
			Want:    "007",
		},
		{
			Pattern: "+0.0",
			Input:   1.25,
			Want:    "+1.3",
		},
	}
	for _, c := range tests {
		f, err := ParseNumberFormatter(c.Pattern)
		if err != nil {
			t.Errorf("%s: fail to parse pattern: %s", c.Pattern, err)
			continue
		}
		got, err := f.Format(value.Number(c.Input))
		if err != nil {
			t.Errorf("%s: fail to format value: %s", c.Pattern, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%s: results mismatched! want %s - got %s", c.Pattern, c.Want, got)
		}
	}
}

func TestNumberRejectsText(t *testing.T) {
	if _, err := Number().Format(value.Text("1")); err == nil {
		t.Errorf("text should not be formatted as a number")
	}
}
