package view

// Predicate reports whether the character at raw offset off of buf belongs
// to a view.
//
// Predicates must be pure: the result may depend only on buf and off, and
// must not change during the life of any view using it. A predicate is
// only ever called with 0 <= off < len(buf).
type Predicate func(buf string, off int) bool

// AcceptAll is the default predicate. It accepts every character.
func AcceptAll(string, int) bool { return true }

// RejectAll rejects every character. Empty views and views emptied by Take
// use it.
func RejectAll(string, int) bool { return false }

// Char adapts a test over a single character into a Predicate.
func Char(fn func(c byte) bool) Predicate {
	return func(buf string, off int) bool {
		return fn(buf[off])
	}
}

// And returns the short-circuit conjunction of preds, evaluated in order.
// The conjunction of no predicates accepts everything.
func And(preds ...Predicate) Predicate {
	ps := make([]Predicate, len(preds))
	copy(ps, preds)
	return func(buf string, off int) bool {
		for _, p := range ps {
			if !p(buf, off) {
				return false
			}
		}
		return true
	}
}

// Not negates a predicate.
func Not(p Predicate) Predicate {
	return func(buf string, off int) bool {
		return !p(buf, off)
	}
}

// window restricts p to raw offsets in [lo, hi).
func window(p Predicate, lo, hi int) Predicate {
	return func(buf string, off int) bool {
		return off >= lo && off < hi && p(buf, off)
	}
}
