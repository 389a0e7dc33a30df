package view

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// ComposeOption configures Compose.
type ComposeOption func(*composeOptions)

type composeOptions struct {
	includeSource bool
}

// IncludeSource makes Compose also AND the source view's own predicate in
// front of the supplied predicates. Without it the source predicate is
// dropped and only the supplied predicates filter the buffer.
func IncludeSource() ComposeOption {
	return func(o *composeOptions) {
		o.includeSource = true
	}
}

// Compose returns a new view over v's buffer whose predicate is the
// conjunction of preds, evaluated in order with short-circuit on the first
// failure. An empty preds accepts every character.
func Compose(v *View, preds []Predicate, opts ...ComposeOption) *View {
	var o composeOptions
	for _, opt := range opts {
		opt(&o)
	}

	ps := slices.Clone(preds)
	if o.includeSource {
		ps = append([]Predicate{v.predicate()}, ps...)
	}
	return New(v.data, And(ps...))
}

// Substr returns the sub-view of v from logical position pos to the end.
// See SubstrN.
func Substr(v *View, pos int) (*View, error) {
	return substr(v, pos, -1)
}

// SubstrN returns the sub-view of v covering logical positions
// [pos, min(pos+count, v.Size())).
//
// Returns a *RangeError matching ErrIndexOutOfRange if pos is negative or
// greater than v.Size(). When pos == v.Size() or count == 0 the result is an
// empty view over the same buffer.
func SubstrN(v *View, pos, count int) (*View, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: substr count %d", ErrInvalidCount, count)
	}
	return substr(v, pos, count)
}

// substr implements Substr and SubstrN; a negative count means "to the end".
func substr(v *View, pos, count int) (*View, error) {
	size := v.size
	if pos < 0 || pos > size {
		return nil, &RangeError{Op: "substr", Index: pos, Size: size}
	}
	if pos == size || count == 0 {
		return New(v.data, RejectAll), nil
	}

	end := size
	if count > 0 && count < size-pos {
		end = pos + count
	}

	// The logical range [pos, end) of v's matches occupies the raw range
	// [lo, hi). Restricting v's predicate to that range keeps exactly those
	// matches.
	lo, hi := v.rawRange(pos, end)
	return New(v.data, window(v.predicate(), lo, hi)), nil
}

// rawRange returns the raw window spanning logical positions [from, to).
// Requires 0 <= from < to <= Size().
func (v *View) rawRange(from, to int) (lo, hi int) {
	seen := 0
	for off := 0; off < len(v.data); off++ {
		if !v.match(off) {
			continue
		}
		if seen == from {
			lo = off
		}
		if seen == to-1 {
			return lo, off + 1
		}
		seen++
	}
	return lo, len(v.data)
}

// Split splits v around every occurrence of delim's materialized content.
//
// Occurrences are found leftmost-first without overlap in v's materialized
// content. Each gap, including the ones before the first and after the last
// occurrence, becomes a sub-view of v; empty gaps are kept. If either v or
// delim materializes to the empty string the result holds a single copy of v.
func Split(v, delim *View) []*View {
	return slices.Collect(SplitSeq(v, delim))
}

// SplitSeq is the lazy form of Split.
func SplitSeq(v, delim *View) iter.Seq[*View] {
	return func(yield func(*View) bool) {
		s := v.String()
		d := delim.String()
		if s == "" || d == "" {
			yield(v.Clone())
			return
		}

		start := 0
		for {
			idx := strings.Index(s[start:], d)
			if idx < 0 {
				break
			}
			if !yield(mustSubstr(v, start, idx)) {
				return
			}
			start += idx + len(d)
		}
		yield(mustSubstr(v, start, -1))
	}
}

// mustSubstr is substr for positions already known to be in range.
func mustSubstr(v *View, pos, count int) *View {
	sv, err := substr(v, pos, count)
	if err != nil {
		panic(err)
	}
	return sv
}
