package view

import (
	"errors"
	"fmt"
)

// Errors returned by view operations.
var (
	// ErrIndexOutOfRange indicates a logical index or position beyond the view.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidCount indicates a negative substring count.
	ErrInvalidCount = errors.New("invalid count")

	// ErrStaleView indicates the backing buffer no longer matches the cached size.
	ErrStaleView = errors.New("view is stale")
)

// RangeError describes an out-of-range logical index or position.
type RangeError struct {
	// Op is the operation that rejected the index ("at", "index", "substr").
	Op string
	// Index is the offending logical index or position.
	Index int
	// Size is the logical size of the view at the time of the call.
	Size int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	if e.Op == "substr" {
		return fmt.Sprintf("view.substr(%d): position out of range for filtered string of size %d", e.Index, e.Size)
	}
	return fmt.Sprintf("view.%s(%d): invalid index for filtered string of size %d", e.Op, e.Index, e.Size)
}

// Is implements error matching for RangeError.
func (e *RangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
