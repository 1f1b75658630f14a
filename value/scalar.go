package value

import (
	"strconv"
)

type Blank struct{}

func Empty() Value {
	return Blank{}
}

func (Blank) Type() string {
	return TypeEmpty
}

func (Blank) String() string {
	return ""
}

func (Blank) Float() float64 {
	return 0
}

type Int int64

func (Int) Type() string {
	return TypeInt
}

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (i Int) Float() float64 {
	return float64(i)
}

type Boolean bool

func (Boolean) Type() string {
	return TypeBool
}

func (b Boolean) String() string {
	return strconv.FormatBool(bool(b))
}

func (b Boolean) Float() float64 {
	if !bool(b) {
		return 0
	}
	return 1
}

type Text string

func (Text) Type() string {
	return TypeText
}

func (t Text) String() string {
	return string(t)
}

func (Text) Float() float64 {
	return 0
}

// Number is the result of a numeric aggregate.
type Number float64

func (Number) Type() string {
	return TypeNumber
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (n Number) Float() float64 {
	return float64(n)
}
