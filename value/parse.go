package value

// ParseInt accepts an optional leading minus followed by one or more ASCII
// digits. The value is accumulated digit by digit and wraps silently on
// overflow.
func ParseInt(str string) (Int, bool) {
	var (
		offset   int
		negative bool
	)
	if len(str) > 0 && str[0] == '-' {
		negative = true
		offset++
	}
	if offset >= len(str) {
		return 0, false
	}
	var n int64
	for ; offset < len(str); offset++ {
		c := str[offset]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
	}
	if negative {
		n = -n
	}
	return Int(n), true
}

func ParseBool(str string) (Boolean, bool) {
	switch str {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// Unquote strips a matching pair of double quotes.
func Unquote(str string) (Text, bool) {
	if len(str) < 2 || str[0] != '"' || str[len(str)-1] != '"' {
		return "", false
	}
	return Text(str[1 : len(str)-1]), true
}
