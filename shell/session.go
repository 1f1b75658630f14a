package shell

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/midbel/gridcalc/config"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/internal/ds"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/render"
)

// Result is the outcome of one command line. Output holds text to print
// after the message, like a table or the list of commands.
type Result struct {
	Ok      bool
	Message string
	Output  string
}

func success(msg string) Result {
	return Result{
		Ok:      true,
		Message: msg,
	}
}

func failure(msg string) Result {
	return Result{
		Message: msg,
	}
}

func (r Result) String() string {
	var str strings.Builder
	if r.Message != "" {
		if r.Ok {
			str.WriteString("Success: ")
		} else {
			str.WriteString("Error: ")
		}
		str.WriteString(r.Message)
	}
	if r.Output != "" {
		if str.Len() > 0 {
			str.WriteString("\n")
		}
		str.WriteString(r.Output)
	}
	return str.String()
}

type command struct {
	Usage   string
	Summary string
	Run     func(*Session, []string) Result
}

// Session holds a grid and executes command lines against it. A Session
// is not safe for concurrent use.
type Session struct {
	grid   *grid.Grid
	cfg    config.Config
	opts   render.Options
	logger *slog.Logger

	commands *ds.Trie[command]
	done     bool
}

func New(cfg config.Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	formatter, err := cfg.Formatter()
	if err != nil {
		return nil, err
	}
	g, err := grid.New(cfg.InitialRows, cfg.InitialCols,
		grid.WithLogger(logger),
		grid.WithLimits(layout.NewDimension(cfg.MaxRows, cfg.MaxCols)),
		grid.WithMaxDepth(cfg.MaxEvalDepth),
		grid.WithFormatter(formatter),
	)
	if err != nil {
		return nil, err
	}
	s := Session{
		grid:     g,
		cfg:      cfg,
		opts:     render.FromConfig(cfg),
		logger:   logger,
		commands: registry(),
	}
	return &s, nil
}

func (s *Session) Grid() *grid.Grid {
	return s.grid
}

func (s *Session) Config() config.Config {
	return s.cfg
}

// Done reports whether exit was requested.
func (s *Session) Done() bool {
	return s.done
}

// Configure applies the display properties of cfg. The shape, the limits
// and the number format of the grid are kept.
func (s *Session) Configure(cfg config.Config) {
	color := s.opts.Color
	s.cfg = cfg
	s.opts = render.FromConfig(cfg)
	s.opts.Color = color
}

func (s *Session) SetColor(color bool) {
	s.opts.Color = color
}

func (s *Session) Show() string {
	return render.Table(s.grid, s.opts)
}

func (s *Session) Help() string {
	var str strings.Builder
	str.WriteString("Available commands:\n")
	usage := func(c command) {
		fmt.Fprintf(&str, "  %-26s - %s\n", c.Usage, c.Summary)
	}
	s.commands.Walk(nil, func(_ []string, c command) {
		usage(c)
	})
	for _, c := range assignments {
		usage(c)
	}
	return str.String()
}

// Exec runs one command line. Tokens are separated by spaces.
func (s *Session) Exec(line string) Result {
	tokens := tokenize(line)
	if len(tokens) == 0 {
		return Result{Ok: true}
	}
	s.logger.Debug("execute command", "line", line)

	var (
		cmd command
		ok  bool
	)
	if cmd, ok = s.commands.Get(tokens[:1]); ok {
		return cmd.Run(s, tokens[1:])
	}
	if len(tokens) >= 2 {
		if cmd, ok = s.commands.Get([]string{cellPrefix, tokens[1]}); ok {
			return cmd.Run(s, tokens)
		}
		if strings.HasPrefix(tokens[1], "=") {
			if strings.ContainsAny(tokens[1], "()") {
				return execFormula(s, tokens)
			}
			return execReference(s, tokens)
		}
	}
	res := failure("Unknown command. Valid commands:")
	res.Output = s.Help()
	return res
}

func tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' '
	})
}

const cellPrefix = "{cell}"

// assignments are recognized by the leading = of their second token rather
// than by name, so they are only listed in the help.
var assignments = []command{
	{
		Usage:   "{cell} ={referenceCell}",
		Summary: "Create cell reference (e.g., C3 =A1)",
	},
	{
		Usage:   "{cell} ={formula}",
		Summary: "Create formula (e.g., A5 =SUM(A1:C3,6))",
	},
}

func registry() *ds.Trie[command] {
	trie := ds.NewTrie[command]()
	trie.Register([]string{cellPrefix, "insert"}, command{
		Usage:   "{cell} insert {value}",
		Summary: "Insert value into cell (e.g., A1 insert 42)",
		Run:     execInsert,
	})
	trie.Register([]string{cellPrefix, "delete"}, command{
		Usage:   "{cell} delete",
		Summary: "Delete cell content (e.g., B2 delete)",
		Run:     execDelete,
	})
	trie.Register([]string{cellPrefix, "get"}, command{
		Usage:   "{cell} get",
		Summary: "Show type, text and number of cell (e.g., C3 get)",
		Run:     execGet,
	})
	trie.Register([]string{"add_row"}, command{
		Usage:   "add_row",
		Summary: "Add row at the end",
		Run:     execAddRow,
	})
	trie.Register([]string{"add_col"}, command{
		Usage:   "add_col",
		Summary: "Add column at the end",
		Run:     execAddColumn,
	})
	trie.Register([]string{"insert_row"}, command{
		Usage:   "insert_row {index}",
		Summary: "Insert row at index",
		Run:     execInsertRow,
	})
	trie.Register([]string{"insert_col"}, command{
		Usage:   "insert_col {index}",
		Summary: "Insert column at index",
		Run:     execInsertColumn,
	})
	trie.Register([]string{"remove_row"}, command{
		Usage:   "remove_row {index}",
		Summary: "Remove row at index",
		Run:     execRemoveRow,
	})
	trie.Register([]string{"remove_col"}, command{
		Usage:   "remove_col {index}",
		Summary: "Remove column at index",
		Run:     execRemoveColumn,
	})
	trie.Register([]string{"resize"}, command{
		Usage:   "resize {rows} {cols}",
		Summary: "Resize table",
		Run:     execResize,
	})
	trie.Register([]string{"show"}, command{
		Usage:   "show",
		Summary: "Display current table",
		Run:     execShow,
	})
	trie.Register([]string{"help"}, command{
		Usage:   "help",
		Summary: "List available commands",
		Run:     execHelp,
	})
	trie.Register([]string{"exit"}, command{
		Usage:   "exit",
		Summary: "Exit program",
		Run:     execExit,
	})
	trie.Register([]string{"quit"}, command{
		Usage:   "quit",
		Summary: "Exit program",
		Run:     execExit,
	})
	return trie
}

func (s *Session) contains(pos layout.Position) bool {
	return s.grid.Dimension().Contains(pos)
}

// grow makes room for pos. It fails when pos is past the limits.
func (s *Session) grow(pos layout.Position) error {
	return s.grid.Grow(pos.Line, pos.Column)
}

func execInsert(s *Session, tokens []string) Result {
	if len(tokens) < 3 {
		return failure("Usage: {cell} insert {value}")
	}
	pos, err := layout.ParseAddress(tokens[0])
	if err != nil {
		return failure("Invalid cell reference")
	}
	if err := s.grow(pos); err != nil {
		return failure(s.limitError())
	}
	raw := strings.Join(tokens[2:], " ")
	if err := s.grid.SetCell(pos.Line, pos.Column, raw); err != nil {
		return failure(err.Error())
	}
	return success("Cell updated successfully")
}

func execDelete(s *Session, tokens []string) Result {
	pos, err := layout.ParseAddress(tokens[0])
	if err != nil {
		return failure("Invalid cell reference")
	}
	if !s.contains(pos) {
		return failure("Cell position out of bounds")
	}
	if err := s.grid.SetCell(pos.Line, pos.Column, ""); err != nil {
		return failure(err.Error())
	}
	return success("Cell deleted successfully")
}

func execGet(s *Session, tokens []string) Result {
	pos, err := layout.ParseAddress(tokens[0])
	if err != nil {
		return failure("Invalid cell reference")
	}
	if !s.contains(pos) {
		return failure("Cell position out of bounds")
	}
	cell, ok := s.grid.GetCell(pos.Line, pos.Column)
	if !ok {
		return success(fmt.Sprintf("%s is not set", pos.Addr()))
	}
	val := s.grid.Value(cell)
	num := strconv.FormatFloat(val.Float(), 'f', -1, 64)
	msg := fmt.Sprintf("%s [%s] %s => %q (%s)", pos.Addr(), cell.Type(), grid.Source(cell), val.String(), num)
	return success(msg)
}

func execReference(s *Session, tokens []string) Result {
	pos, err := layout.ParseAddress(tokens[0])
	if err != nil {
		return failure("Invalid cell reference")
	}
	if !s.contains(pos) {
		return failure("Target cell out of bounds")
	}
	ref := tokens[1]
	if len(ref) < 2 || ref[0] != '=' {
		return failure("Invalid reference format. Use ={CellRef}")
	}
	target, err := layout.ParseAddress(ref[1:])
	if err != nil {
		return failure("Invalid referenced cell format")
	}
	if !s.contains(target) {
		return failure("Referenced cell out of bounds")
	}
	if err := s.grid.SetCell(pos.Line, pos.Column, ref); err != nil {
		return failure(err.Error())
	}
	return success("Reference cell created successfully")
}

func execFormula(s *Session, tokens []string) Result {
	pos, err := layout.ParseAddress(tokens[0])
	if err != nil {
		return failure("Invalid cell reference")
	}
	if err := s.grow(pos); err != nil {
		return failure(s.limitError())
	}
	raw := strings.Join(tokens[1:], " ")
	if err := s.grid.SetCell(pos.Line, pos.Column, raw); err != nil {
		return failure(err.Error())
	}
	return success("Formula cell created successfully")
}

func execAddRow(s *Session, _ []string) Result {
	if err := s.grid.AddRow(); err != nil {
		return failure(shapeError(err, "row"))
	}
	return success("Row added successfully")
}

func execAddColumn(s *Session, _ []string) Result {
	if err := s.grid.AddColumn(); err != nil {
		return failure(shapeError(err, "column"))
	}
	return success("Column added successfully")
}

func execInsertRow(s *Session, args []string) Result {
	if len(args) < 1 {
		return failure("Usage: insert_row {index}")
	}
	index, ok := parseIndex(args[0])
	if !ok {
		return failure("Invalid row index")
	}
	if index > s.grid.Rows() {
		return failure("Row index out of bounds")
	}
	if err := s.grid.InsertRow(index); err != nil {
		return failure(shapeError(err, "row"))
	}
	return success("Row inserted successfully")
}

func execInsertColumn(s *Session, args []string) Result {
	if len(args) < 1 {
		return failure("Usage: insert_col {index}")
	}
	index, ok := parseIndex(args[0])
	if !ok {
		return failure("Invalid column index")
	}
	if index > s.grid.Columns() {
		return failure("Column index out of bounds")
	}
	if err := s.grid.InsertColumn(index); err != nil {
		return failure(shapeError(err, "column"))
	}
	return success("Column inserted successfully")
}

func execRemoveRow(s *Session, args []string) Result {
	if len(args) < 1 {
		return failure("Usage: remove_row {index}")
	}
	index, ok := parseIndex(args[0])
	if !ok {
		return failure("Invalid row index")
	}
	if index >= s.grid.Rows() {
		return failure("Row index out of bounds")
	}
	if err := s.grid.RemoveRow(index); err != nil {
		return failure(shapeError(err, "row"))
	}
	return success("Row removed successfully")
}

func execRemoveColumn(s *Session, args []string) Result {
	if len(args) < 1 {
		return failure("Usage: remove_col {index}")
	}
	index, ok := parseIndex(args[0])
	if !ok {
		return failure("Invalid column index")
	}
	if index >= s.grid.Columns() {
		return failure("Column index out of bounds")
	}
	if err := s.grid.RemoveColumn(index); err != nil {
		return failure(shapeError(err, "column"))
	}
	return success("Column removed successfully")
}

func execResize(s *Session, args []string) Result {
	if len(args) < 2 {
		return failure("Usage: resize {rows} {cols}")
	}
	rows, ok := parseIndex(args[0])
	if !ok {
		return failure("Invalid row count")
	}
	cols, ok := parseIndex(args[1])
	if !ok {
		return failure("Invalid column count")
	}
	if err := s.grid.Resize(rows, cols); err != nil {
		return failure(shapeError(err, "table"))
	}
	return success("Table resized successfully")
}

func execShow(s *Session, _ []string) Result {
	return Result{
		Ok:     true,
		Output: s.Show(),
	}
}

func execHelp(s *Session, _ []string) Result {
	return Result{
		Ok:     true,
		Output: s.Help(),
	}
}

func execExit(s *Session, _ []string) Result {
	s.done = true
	return success("Goodbye!")
}

// parseIndex accepts digits only.
func parseIndex(str string) (int, bool) {
	if str == "" || strings.Trim(str, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(str)
	return n, err == nil
}

func (s *Session) limitError() string {
	dim := s.grid.Limits()
	return fmt.Sprintf("Cell position exceeds the maximum table size (%dx%d)", dim.Lines, dim.Columns)
}

func shapeError(err error, what string) string {
	switch {
	case errors.Is(err, grid.ErrLimit):
		return fmt.Sprintf("Maximum table size reached (%s)", what)
	case errors.Is(err, grid.ErrShape):
		if what == "table" {
			return "Table must keep at least one row and one column"
		}
		return fmt.Sprintf("Cannot remove the last %s", what)
	default:
		return err.Error()
	}
}
