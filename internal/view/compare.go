package view

import (
	"io"
	"strings"
)

// Compare compares the materialized contents of a and b lexicographically.
// The result is 0 if a == b, -1 if a < b, and +1 if a > b.
func Compare(a, b *View) int {
	return strings.Compare(a.String(), b.String())
}

// Equal reports whether a and b materialize to the same string.
func Equal(a, b *View) bool {
	return a.String() == b.String()
}

// Less reports whether a sorts before b.
func Less(a, b *View) bool {
	return Compare(a, b) < 0
}

// LessEqual reports whether a sorts before or equal to b.
func LessEqual(a, b *View) bool {
	return !Less(b, a)
}

// Greater reports whether a sorts after b.
func Greater(a, b *View) bool {
	return Less(b, a)
}

// GreaterEqual reports whether a sorts after or equal to b.
func GreaterEqual(a, b *View) bool {
	return !Less(a, b)
}

// WriteTo writes the filtered characters, in order, to w.
// It implements io.WriterTo.
func (v *View) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, v.String())
	return int64(n), err
}
