package layout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var ErrAddress = errors.New("invalid cell address")

// Position is a 0-based coordinate in a grid. An address like B3 gives
// Column 1 and Line 2.
type Position struct {
	Line   int
	Column int
}

func NewPosition(line, column int) Position {
	return Position{
		Line:   line,
		Column: column,
	}
}

// ParseAddress parses an address made of exactly one uppercase letter for
// the column followed by a positive row number.
func ParseAddress(addr string) (Position, error) {
	var pos Position
	if len(addr) < 2 || !isUpper(rune(addr[0])) {
		return pos, fmt.Errorf("%q: %w", addr, ErrAddress)
	}
	pos.Column = int(addr[0] - 'A')

	var line int
	for offset := 1; offset < len(addr); offset++ {
		c := addr[offset]
		if !isDigit(c) {
			return pos, fmt.Errorf("%q: %w", addr, ErrAddress)
		}
		line = line*10 + int(c-'0')
		if line > math.MaxInt32 {
			return pos, fmt.Errorf("%q: row too large: %w", addr, ErrAddress)
		}
	}
	if line == 0 {
		return pos, fmt.Errorf("%q: %w", addr, ErrAddress)
	}
	pos.Line = line - 1
	return pos, nil
}

func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Column == other.Column
}

func (p Position) Addr() string {
	return Letters(p.Column) + strconv.Itoa(p.Line+1)
}

func (p Position) String() string {
	return p.Addr()
}

// Letters gives the alphabetic label of a 0-based index: 0 is A, 25 is Z,
// 26 is AA.
func Letters(ix int) string {
	if ix < 0 {
		return "?"
	}
	var result string
	for n := ix + 1; n > 0; n /= 26 {
		n--
		result = string(rune('A'+n%26)) + result
	}
	return result
}

func isUpper(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
