package predicate

import "github.com/dshills/fsview/internal/view"

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return isUpper(c) || isLower(c) }
func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }
func isPrint(c byte) bool { return c >= 0x20 && c < 0x7f }

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isPunct(c byte) bool {
	return isPrint(c) && !isAlnum(c) && c != ' '
}

// RegisterDefaults registers the built-in ASCII character classes.
func (r *Registry) RegisterDefaults() {
	r.MustRegister("any", "every character", view.AcceptAll)
	r.MustRegister("none", "no character", view.RejectAll)
	r.MustRegister("alpha", "ASCII letters", view.Char(isAlpha))
	r.MustRegister("digit", "decimal digits", view.Char(isDigit))
	r.MustRegister("alnum", "ASCII letters and digits", view.Char(isAlnum))
	r.MustRegister("upper", "upper-case ASCII letters", view.Char(isUpper))
	r.MustRegister("lower", "lower-case ASCII letters", view.Char(isLower))
	r.MustRegister("space", "white space", view.Char(isSpace))
	r.MustRegister("punct", "printable characters other than letters, digits and space", view.Char(isPunct))
	r.MustRegister("print", "printable ASCII", view.Char(isPrint))
	r.MustRegister("ascii", "7-bit characters", view.Char(func(c byte) bool { return c < 0x80 }))
}
