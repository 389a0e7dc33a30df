package view

import (
	"slices"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(v *View) string {
	var out []byte
	for c, end := v.Begin(), v.End(); c != end; c.Next() {
		out = append(out, c.Value())
	}
	return string(out)
}

func collectReverse(v *View) string {
	var out []byte
	for r, end := v.RBegin(), v.REnd(); r != end; r.Next() {
		out = append(out, r.Value())
	}
	return string(out)
}

func TestBeginSnapsForward(t *testing.T) {
	v := New("12ab", Char(isAlpha))
	c := v.Begin()
	assert.Equal(t, 2, c.Offset())
	assert.True(t, c.Valid())
	assert.Equal(t, byte('a'), c.Value())
}

func TestEndIsRawLength(t *testing.T) {
	v := New("ab12", Char(isAlpha))
	end := v.End()
	assert.Equal(t, 4, end.Offset())
	assert.False(t, end.Valid())
}

func TestEmptyRange(t *testing.T) {
	tests := []struct {
		name string
		v    *View
	}{
		{"empty buffer", New("", nil)},
		{"no matches", New("1234", Char(isAlpha))},
		{"sentinel", Empty()},
		{"zero value", &View{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.v.Begin(), tt.v.End())
			assert.Equal(t, tt.v.RBegin(), tt.v.REnd())
			assert.Equal(t, "", collect(tt.v))
			assert.Equal(t, "", collectReverse(tt.v))
		})
	}
}

func TestSingleMatch(t *testing.T) {
	v := New("1a2", Char(isAlpha))
	c := v.Begin()
	require.Equal(t, byte('a'), c.Value())
	c.Next()
	assert.Equal(t, v.End(), c)

	c.Prev()
	assert.Equal(t, v.Begin(), c)
	assert.Equal(t, byte('a'), c.Value())
}

func TestNextSkipsNonMatching(t *testing.T) {
	v := New("a--b--c", Char(isAlpha))
	c := v.Begin()
	var offs []int
	for c != v.End() {
		offs = append(offs, c.Offset())
		c.Next()
	}
	assert.Equal(t, []int{0, 3, 6}, offs)

	// Next on end is a no-op.
	c.Next()
	assert.Equal(t, v.End(), c)
}

func TestPrevSkipsNonMatching(t *testing.T) {
	v := New("a--b--c--", Char(isAlpha))
	c := v.End()
	var offs []int
	for c != v.Begin() {
		c.Prev()
		offs = append(offs, c.Offset())
	}
	assert.Equal(t, []int{6, 3, 0}, offs)
}

func TestPrevPastBeginInvalidates(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"first match at zero", "ab"},
		{"first match after prefix", "12ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.data, Char(isAlpha))
			c := v.Begin()
			c.Prev()
			assert.False(t, c.Valid())
			assert.Equal(t, -1, c.Offset())
			assert.Panics(t, func() { c.Value() })

			// Further movement backwards stays invalid.
			c.Prev()
			assert.Equal(t, -1, c.Offset())
		})
	}
}

func TestCursorEquality(t *testing.T) {
	v := New("abc", nil)
	w := v.Clone()

	assert.Equal(t, v.Begin(), v.Begin())
	assert.True(t, v.Begin() == v.Begin())
	assert.False(t, v.Begin() == w.Begin(), "cursors of different views differ")
	assert.Same(t, v, v.Begin().View())

	a, b := v.Begin(), v.Begin()
	b.Next()
	assert.False(t, a == b)
}

func TestReverseCursor(t *testing.T) {
	v := New("x1y2z3", Char(isAlpha))
	r := v.RBegin()
	assert.Equal(t, v.End(), r.Base())
	assert.Equal(t, byte('z'), r.Value())
	r.Next()
	assert.Equal(t, byte('y'), r.Value())
	r.Prev()
	assert.Equal(t, byte('z'), r.Value())
	assert.Equal(t, "zyx", collectReverse(v))
}

func TestIterators(t *testing.T) {
	v := New("a1b2c3", Char(isDigit))

	assert.Equal(t, []byte("123"), slices.Collect(v.Chars()))
	assert.Equal(t, []byte("321"), slices.Collect(v.Backward()))

	var idx []int
	var chars []byte
	for i, c := range v.All() {
		idx = append(idx, i)
		chars = append(chars, c)
	}
	assert.Equal(t, []int{0, 1, 2}, idx)
	assert.Equal(t, []byte("123"), chars)

	// Early exit.
	for c := range v.Chars() {
		assert.Equal(t, byte('1'), c)
		break
	}

	// Iteration is restartable.
	assert.Equal(t, slices.Collect(v.Chars()), slices.Collect(v.Chars()))
}

func TestIterationMatchesMaterialization(t *testing.T) {
	f := func(data string, mask uint8) bool {
		pred := Char(func(c byte) bool { return c&(mask|1) != 0 })
		v := New(data, pred)
		s := v.String()

		fwd := collect(v)
		rev := []byte(collectReverse(v))
		slices.Reverse(rev)
		return len(fwd) == v.Size() && fwd == s && string(rev) == s
	}
	require.NoError(t, quick.Check(f, nil))
}
