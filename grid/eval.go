package grid

import (
	"strconv"

	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

// Text gives the display text of c computed against the current content of
// the grid.
func (g *Grid) Text(c Cell) string {
	res := g.compute(c)
	return res.text
}

// Eval gives the number of c computed against the current content of the
// grid.
func (g *Grid) Eval(c Cell) float64 {
	res := g.compute(c)
	return res.num
}

// Value gives what a formula sees of c.
func (g *Grid) Value(c Cell) value.Value {
	switch c := c.(type) {
	case Reference, Formula:
		res := g.compute(c)
		return res.value(c.Type())
	default:
		return literal(c)
	}
}

// At gives the value of the cell at pos. It reports false when the cell is
// unset or out of bounds.
func (g *Grid) At(pos layout.Position) (value.Value, bool) {
	c, ok := g.GetCell(pos.Line, pos.Column)
	if !ok {
		return nil, false
	}
	return g.Value(c), true
}

func (g *Grid) compute(c Cell) result {
	s := scope{
		Grid:  g,
		state: createState(),
	}
	text, num := s.resolve(c)
	if s.state.cyclic {
		return circular
	}
	return result{
		text: text,
		num:  num,
	}
}

type result struct {
	text string
	num  float64
}

var circular = result{
	text: value.ErrCircular.String(),
}

func (r result) value(kind string) value.Value {
	return computed{
		kind: kind,
		text: r.text,
		num:  r.num,
	}
}

// state is shared by every level of one computation. A cell visited again
// while its own result is still being computed, or a chain deeper than the
// grid allows, makes the whole computation circular.
type state struct {
	memo     map[layout.Position]result
	visiting map[layout.Position]struct{}
	cyclic   bool
}

func createState() *state {
	return &state{
		memo:     make(map[layout.Position]result),
		visiting: make(map[layout.Position]struct{}),
	}
}

type scope struct {
	*Grid
	depth int
	state *state
}

func (s scope) nest() scope {
	s.depth++
	return s
}

func (s scope) resolve(c Cell) (string, float64) {
	switch c := c.(type) {
	case Empty:
		return "", 0
	case Int:
		return strconv.FormatInt(int64(c), 10), float64(c)
	case Bool:
		if c {
			return "true", 1
		}
		return "false", 0
	case String:
		return string(c), 0
	case Reference:
		res, ok := s.nest().lookup(c.Target)
		if !ok {
			return value.ErrRef.String(), 0
		}
		return res.text, res.num
	case Formula:
		v := formula.Eval(c.Expr, s.nest())
		return s.format(v), number(v)
	default:
		return "", 0
	}
}

// lookup computes the cell at pos once per computation. It reports false
// when the cell is unset or out of bounds.
func (s scope) lookup(pos layout.Position) (result, bool) {
	if res, ok := s.state.memo[pos]; ok {
		return res, true
	}
	c, ok := s.GetCell(pos.Line, pos.Column)
	if !ok {
		return result{}, false
	}
	if _, ok := s.state.visiting[pos]; ok || s.depth > s.maxDepth {
		s.state.cyclic = true
		return circular, true
	}
	s.state.visiting[pos] = struct{}{}
	defer delete(s.state.visiting, pos)

	var res result
	res.text, res.num = s.resolve(c)
	s.state.memo[pos] = res
	return res, true
}

// At gives formulas the value of the cells they refer to.
func (s scope) At(pos layout.Position) (value.Value, bool) {
	c, ok := s.GetCell(pos.Line, pos.Column)
	if !ok {
		return nil, false
	}
	switch c.(type) {
	case Reference, Formula:
		res, _ := s.lookup(pos)
		return res.value(c.Type()), true
	default:
		return literal(c), true
	}
}

func (s scope) format(v value.Value) string {
	str, err := s.formatter.Format(v)
	if err != nil {
		return v.String()
	}
	return str
}

func literal(c Cell) value.Value {
	switch c := c.(type) {
	case Int:
		return value.Int(c)
	case Bool:
		return value.Boolean(c)
	case String:
		return value.Text(c)
	default:
		return value.Empty()
	}
}

func number(v value.Value) float64 {
	switch v.Type() {
	case value.TypeNumber, value.TypeInt:
		return v.Float()
	default:
		return 0
	}
}

// computed is the value of a reference or a formula cell. It keeps the type
// of the cell so that numeric aggregates count it.
type computed struct {
	kind string
	text string
	num  float64
}

func (c computed) Type() string {
	return c.kind
}

func (c computed) String() string {
	return c.text
}

func (c computed) Float() float64 {
	return c.num
}
