package predicate

import (
	"fmt"
	"strings"

	"github.com/dshills/fsview/internal/view"
)

// Parse resolves a single spec against the registry.
func (r *Registry) Parse(spec string) (view.Predicate, error) {
	kind, arg, param := strings.Cut(spec, ":")
	if !param {
		p, ok := r.Get(spec)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPredicate, spec)
		}
		return p, nil
	}

	switch kind {
	case "not":
		p, err := r.Parse(arg)
		if err != nil {
			return nil, err
		}
		return view.Not(p), nil
	case "oneof":
		set := charSet(arg)
		return view.Char(func(c byte) bool { return set[c] }), nil
	case "noneof":
		set := charSet(arg)
		return view.Char(func(c byte) bool { return !set[c] }), nil
	case "range":
		if len(arg) != 3 || arg[1] != '-' || arg[0] > arg[2] {
			return nil, fmt.Errorf("%w: %q (want range:<lo>-<hi>)", ErrInvalidSpec, spec)
		}
		lo, hi := arg[0], arg[2]
		return view.Char(func(c byte) bool { return c >= lo && c <= hi }), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// Chain resolves specs in order. The first failure is returned.
func (r *Registry) Chain(specs []string) ([]view.Predicate, error) {
	preds := make([]view.Predicate, 0, len(specs))
	for _, spec := range specs {
		p, err := r.Parse(spec)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

// Validate checks that every spec resolves.
func (r *Registry) Validate(specs []string) error {
	_, err := r.Chain(specs)
	return err
}

func charSet(chars string) *[256]bool {
	var set [256]bool
	for i := 0; i < len(chars); i++ {
		set[chars[i]] = true
	}
	return &set
}
