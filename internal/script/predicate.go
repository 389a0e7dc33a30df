package script

import (
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/fsview/internal/view"
)

// Script is a compiled accept function.
type Script struct {
	name string
	eng  *Engine
	fn   *lua.LFunction

	errOnce sync.Once
	err     error
}

// Name returns the name the script was compiled under.
func (s *Script) Name() string {
	return s.name
}

// Predicate returns a view predicate that calls the script's accept
// function. Failing calls reject the character.
func (s *Script) Predicate() view.Predicate {
	return func(buf string, off int) bool {
		ok, err := s.eng.call(s.fn, buf[off:off+1], off)
		if err != nil {
			s.record(&ScriptError{Name: s.name, Offset: off, Err: err})
			return false
		}
		return ok
	}
}

// Err returns the first error raised by the predicate, if any.
func (s *Script) Err() error {
	return s.err
}

func (s *Script) record(err error) {
	s.errOnce.Do(func() {
		s.err = err
		s.eng.log.WithError(err).Warn("lua predicate failed; rejecting")
	})
}
