package view

import (
	"fmt"
	"strings"
	"unsafe"
)

// View is a read-only, filtered window over a borrowed text buffer.
//
// The zero value is an empty view with the default (accept-all) predicate.
type View struct {
	data string
	pred Predicate
	size int // logical length, fixed at construction
}

// New creates a view over s that exposes the characters accepted by pred.
// A nil pred accepts every character.
func New(s string, pred Predicate) *View {
	if pred == nil {
		pred = AcceptAll
	}
	v := &View{
		data: s,
		pred: pred,
	}
	v.size = v.count()
	return v
}

// FromBytes creates a view that aliases b without copying it.
// The caller must not modify b while the view, or any view derived from it,
// is in use.
func FromBytes(b []byte, pred Predicate) *View {
	return New(unsafe.String(unsafe.SliceData(b), len(b)), pred)
}

// Empty returns the empty sentinel view: no buffer, zero length and a
// predicate that rejects everything.
func Empty() *View {
	return &View{pred: RejectAll}
}

// count scans the buffer once and counts matches.
func (v *View) count() int {
	n := 0
	for i := 0; i < len(v.data); i++ {
		if v.match(i) {
			n++
		}
	}
	return n
}

// match reports whether the character at raw offset off is in the view.
func (v *View) match(off int) bool {
	return v.predicate()(v.data, off)
}

func (v *View) predicate() Predicate {
	if v.pred == nil {
		return AcceptAll
	}
	return v.pred
}

// Size returns the number of characters in the view.
func (v *View) Size() int {
	return v.size
}

// IsEmpty returns true if the view has no characters.
func (v *View) IsEmpty() bool {
	return v.size == 0
}

// Data returns the unfiltered backing buffer.
func (v *View) Data() string {
	return v.data
}

// Predicate returns the active filtering function.
func (v *View) Predicate() Predicate {
	return v.predicate()
}

// RawOffset maps logical index i to its raw offset in the backing buffer.
// The buffer is scanned from the start on every call.
func (v *View) RawOffset(i int) (int, error) {
	if i >= 0 {
		seen := 0
		for off := 0; off < len(v.data); off++ {
			if !v.match(off) {
				continue
			}
			if seen == i {
				return off, nil
			}
			seen++
		}
	}
	return 0, &RangeError{Op: "index", Index: i, Size: v.size}
}

// Index returns the i-th character of the view without bounds checking
// against the cached size. It panics with a *RangeError if the buffer holds
// fewer than i+1 matches.
func (v *View) Index(i int) byte {
	off, err := v.RawOffset(i)
	if err != nil {
		panic(err)
	}
	return v.data[off]
}

// At returns the i-th character of the view.
// Returns a *RangeError matching ErrIndexOutOfRange if i >= Size().
func (v *View) At(i int) (byte, error) {
	if i < 0 || i >= v.size {
		return 0, &RangeError{Op: "at", Index: i, Size: v.size}
	}
	off, err := v.RawOffset(i)
	if err != nil {
		return 0, err
	}
	return v.data[off], nil
}

// String materializes the filtered characters into a new string.
func (v *View) String() string {
	var b strings.Builder
	b.Grow(v.size)
	for off := 0; off < len(v.data); off++ {
		if v.match(off) {
			b.WriteByte(v.data[off])
		}
	}
	return b.String()
}

// Bytes materializes the filtered characters into a new slice.
func (v *View) Bytes() []byte {
	out := make([]byte, 0, v.size)
	for off := 0; off < len(v.data); off++ {
		if v.match(off) {
			out = append(out, v.data[off])
		}
	}
	return out
}

// Clone returns a copy of the view sharing the same backing buffer.
func (v *View) Clone() *View {
	c := *v
	return &c
}

// Take transfers the view's state to a new view and leaves v as the empty
// sentinel (see Empty). Cursors into v are invalidated.
func (v *View) Take() *View {
	out := &View{
		data: v.data,
		pred: v.pred,
		size: v.size,
	}
	v.data = ""
	v.pred = RejectAll
	v.size = 0
	return out
}

// Verify rescans the buffer and returns ErrStaleView if the number of
// matches no longer equals the size cached at construction. This can only
// happen when a buffer passed to FromBytes was modified.
func (v *View) Verify() error {
	if n := v.count(); n != v.size {
		return fmt.Errorf("%w: cached size %d, buffer now has %d matches", ErrStaleView, v.size, n)
	}
	return nil
}
