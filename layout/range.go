package layout

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

var ErrRange = errors.New("invalid range")

type Range struct {
	Starts Position
	Ends   Position
}

func NewRange(starts, ends Position) Range {
	return Range{
		Starts: starts,
		Ends:   ends,
	}
}

// ParseRange parses start:end where both sides are addresses. The result is
// normalized.
func ParseRange(str string) (Range, error) {
	var rg Range
	ix := strings.IndexByte(str, ':')
	if ix <= 0 || ix == len(str)-1 {
		return rg, fmt.Errorf("%q: %w", str, ErrRange)
	}
	starts, err := ParseAddress(str[:ix])
	if err != nil {
		return rg, fmt.Errorf("%q: %w", str, ErrRange)
	}
	ends, err := ParseAddress(str[ix+1:])
	if err != nil {
		return rg, fmt.Errorf("%q: %w", str, ErrRange)
	}
	rg = NewRange(starts, ends)
	return rg.Normalize(), nil
}

// Normalize swaps the two corners when the start has a greater line or a
// greater column than the end. Corners are swapped as a whole, never one
// axis at a time.
func (r Range) Normalize() Range {
	if r.Starts.Line > r.Ends.Line || r.Starts.Column > r.Ends.Column {
		r.Starts, r.Ends = r.Ends, r.Starts
	}
	return r
}

func (r Range) Width() int {
	return max(0, r.Ends.Column-r.Starts.Column+1)
}

func (r Range) Height() int {
	return max(0, r.Ends.Line-r.Starts.Line+1)
}

// Positions visits every position of the range, row-major, both corners
// included.
func (r Range) Positions() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for line := r.Starts.Line; line <= r.Ends.Line; line++ {
			for col := r.Starts.Column; col <= r.Ends.Column; col++ {
				if !yield(NewPosition(line, col)) {
					return
				}
			}
		}
	}
}

func (r Range) String() string {
	return fmt.Sprintf("%s:%s", r.Starts.Addr(), r.Ends.Addr())
}
