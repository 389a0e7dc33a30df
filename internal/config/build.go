package config

import (
	"github.com/dshills/fsview/internal/predicate"
	"github.com/dshills/fsview/internal/script"
	"github.com/dshills/fsview/internal/view"
)

// Builder resolves filter definitions into predicates. Lua sources are
// compiled once per filter and reused by later builds.
type Builder struct {
	reg *predicate.Registry
	eng *script.Engine

	scripts map[scriptKey]*script.Script
	order   []*script.Script
}

type scriptKey struct {
	name, src string
}

// NewBuilder creates a builder. eng may be nil if no definition uses Lua.
func NewBuilder(reg *predicate.Registry, eng *script.Engine) *Builder {
	return &Builder{reg: reg, eng: eng, scripts: make(map[scriptKey]*script.Script)}
}

// Predicates resolves def into its ordered predicate list.
func (b *Builder) Predicates(name string, def FilterDef) ([]view.Predicate, error) {
	preds, err := b.reg.Chain(def.Chain)
	if err != nil {
		return nil, &ValidationError{Path: "filters." + name + ".chain", Message: "bad predicate", Err: err}
	}
	if def.Lua != "" {
		if b.eng == nil {
			return nil, &ValidationError{Path: "filters." + name + ".lua", Message: "lua filters are not enabled"}
		}
		s, err := b.compile(name, def.Lua)
		if err != nil {
			return nil, &ValidationError{Path: "filters." + name + ".lua", Message: "compile failed", Err: err}
		}
		preds = append(preds, s.Predicate())
	}
	return preds, nil
}

func (b *Builder) compile(name, src string) (*script.Script, error) {
	key := scriptKey{name, src}
	if s, ok := b.scripts[key]; ok {
		return s, nil
	}
	s, err := b.eng.Compile(name, src)
	if err != nil {
		return nil, err
	}
	b.scripts[key] = s
	b.order = append(b.order, s)
	return s, nil
}

// Apply composes def onto v.
func (b *Builder) Apply(v *view.View, name string, def FilterDef) (*view.View, error) {
	preds, err := b.Predicates(name, def)
	if err != nil {
		return nil, err
	}
	var opts []view.ComposeOption
	if def.IncludeSource {
		opts = append(opts, view.IncludeSource())
	}
	return view.Compose(v, preds, opts...), nil
}

// ScriptErr returns the first runtime error raised by any Lua predicate
// built so far.
func (b *Builder) ScriptErr() error {
	for _, s := range b.order {
		if err := s.Err(); err != nil {
			return err
		}
	}
	return nil
}
