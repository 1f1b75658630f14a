package value

var (
	ErrRef      = createError("#REF!")
	ErrCircular = createError("#CIRCULAR!")
	ErrValue    = createError("#VALUE!")
	ErrSyntax   = createError("#ERROR!")
)

var codes = []Error{
	ErrRef,
	ErrCircular,
	ErrValue,
	ErrSyntax,
}

// Error is an error value rendered as its code. It is never raised: it
// flows through the grid like any other text.
type Error struct {
	code string
}

func createError(code string) Error {
	return Error{
		code: code,
	}
}

func (Error) Type() string {
	return TypeError
}

func (e Error) Error() string {
	return e.code
}

func (e Error) String() string {
	return e.code
}

func (Error) Float() float64 {
	return 0
}

// IsErrorText reports whether str is the code of one of the error values.
func IsErrorText(str string) bool {
	for _, e := range codes {
		if e.code == str {
			return true
		}
	}
	return false
}
