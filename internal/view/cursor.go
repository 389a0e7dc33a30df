package view

import "iter"

// Cursor is a bidirectional position in a view, expressed as a raw offset.
//
// Cursors are comparable: two cursors are equal iff they reference the same
// view and hold the same raw offset. A cursor is only meaningful while its
// view is alive and has not been emptied by Take.
type Cursor struct {
	v   *View
	off int
}

// cursorAt creates a cursor at raw offset off and advances it to the next
// matching character, or to the end of the buffer.
func (v *View) cursorAt(off int) Cursor {
	c := Cursor{v: v, off: off}
	for c.off < len(v.data) && !v.match(c.off) {
		c.off++
	}
	return c
}

// Begin returns a cursor at the first matching character.
// For an empty view Begin equals End.
func (v *View) Begin() Cursor {
	return v.cursorAt(0)
}

// End returns the one-past-the-end cursor. It sits at the raw buffer length
// and is never advanced to a match.
func (v *View) End() Cursor {
	return Cursor{v: v, off: len(v.data)}
}

// Offset returns the raw offset of the cursor.
// Returns -1 once the cursor has been moved before the first match.
func (c Cursor) Offset() int {
	return c.off
}

// View returns the view the cursor walks.
func (c Cursor) View() *View {
	return c.v
}

// Valid returns true if the cursor points at a character of its buffer.
// End cursors and cursors moved before the first match are not valid.
func (c Cursor) Valid() bool {
	return c.v != nil && c.off >= 0 && c.off < len(c.v.data)
}

// Value returns the character under the cursor.
// It panics if the cursor is not Valid.
func (c Cursor) Value() byte {
	return c.v.data[c.off]
}

// Next moves to the next matching character, or to the end.
// Next on an end cursor does nothing.
func (c *Cursor) Next() {
	if c.v == nil || c.off >= len(c.v.data) {
		return
	}
	c.off++
	for c.off < len(c.v.data) && !c.v.match(c.off) {
		c.off++
	}
}

// Prev moves to the previous matching character. Moving before the first
// match leaves the cursor at offset -1, where it is no longer Valid.
func (c *Cursor) Prev() {
	if c.v == nil || c.off < 0 {
		return
	}
	c.off--
	for c.off >= 0 && !c.v.match(c.off) {
		c.off--
	}
}

// ReverseCursor walks a view backwards. It wraps a base cursor that sits one
// position after the character it yields, so RBegin wraps End and REnd wraps
// Begin.
type ReverseCursor struct {
	base Cursor
}

// RBegin returns a reverse cursor at the last matching character.
func (v *View) RBegin() ReverseCursor {
	return ReverseCursor{base: v.End()}
}

// REnd returns the reverse one-past-the-end cursor.
func (v *View) REnd() ReverseCursor {
	return ReverseCursor{base: v.Begin()}
}

// Base returns the underlying forward cursor.
func (r ReverseCursor) Base() Cursor {
	return r.base
}

// Value returns the character before the base cursor.
func (r ReverseCursor) Value() byte {
	c := r.base
	c.Prev()
	return c.Value()
}

// Next moves toward the start of the view.
func (r *ReverseCursor) Next() {
	r.base.Prev()
}

// Prev moves toward the end of the view.
func (r *ReverseCursor) Prev() {
	r.base.Next()
}

// All returns an iterator over (logical index, character) pairs in order.
func (v *View) All() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		i := 0
		for c, end := v.Begin(), v.End(); c != end; c.Next() {
			if !yield(i, c.Value()) {
				return
			}
			i++
		}
	}
}

// Chars returns an iterator over the view's characters in order.
func (v *View) Chars() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for c, end := v.Begin(), v.End(); c != end; c.Next() {
			if !yield(c.Value()) {
				return
			}
		}
	}
}

// Backward returns an iterator over the view's characters in reverse order.
func (v *View) Backward() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for r, end := v.RBegin(), v.REnd(); r != end; r.Next() {
			if !yield(r.Value()) {
				return
			}
		}
	}
}
