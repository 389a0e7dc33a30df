package script

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/fsview/internal/logging"
)

// Engine owns a sandboxed Lua state shared by the scripts compiled on it.
type Engine struct {
	L *lua.LState

	mu     sync.Mutex
	ctx    context.Context
	log    *logrus.Entry
	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithContext bounds every Lua call: once ctx is done, running and future
// calls fail.
func WithContext(ctx context.Context) Option {
	return func(e *Engine) {
		e.ctx = ctx
	}
}

// WithLogger sets the logger used for script failures.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) {
		e.log = logging.Component(l, "script")
	}
}

// NewEngine creates a new sandboxed Lua engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logging.Component(nil, "script")
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)
	installSandbox(L)
	if e.ctx != nil {
		L.SetContext(e.ctx)
	}
	e.L = L
	return e
}

// Compile runs src and captures the accept function it defines.
func (e *Engine) Compile(name, src string) (*Script, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrEngineClosed
	}

	if err := e.doWithRecovery(func() error { return e.L.DoString(src) }); err != nil {
		return nil, &ScriptError{Name: name, Offset: -1, Err: err}
	}

	fn, ok := e.L.GetGlobal("accept").(*lua.LFunction)
	if !ok {
		return nil, &ScriptError{Name: name, Offset: -1, Err: ErrNoAcceptFunction}
	}
	// Scripts share the global table; detach accept so the next script can
	// define its own.
	e.L.SetGlobal("accept", lua.LNil)

	e.log.WithField("script", name).Debug("compiled lua predicate")
	return &Script{name: name, eng: e, fn: fn}, nil
}

// CompileExpr compiles a function body as accept(c, off).
func (e *Engine) CompileExpr(name, body string) (*Script, error) {
	return e.Compile(name, fmt.Sprintf("function accept(c, off)\n%s\nend", body))
}

// call invokes fn(c, off) and returns its truthiness.
func (e *Engine) call(fn *lua.LFunction, c string, off int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false, ErrEngineClosed
	}

	var result bool
	err := e.doWithRecovery(func() error {
		if err := e.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, lua.LString(c), lua.LNumber(off)); err != nil {
			return err
		}
		ret := e.L.Get(-1)
		e.L.Pop(1)
		result = lua.LVAsBool(ret)
		return nil
	})
	return result, err
}

// doWithRecovery executes a function with panic recovery.
func (e *Engine) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// IsClosed returns true if the engine has been closed.
func (e *Engine) IsClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Close releases the Lua state. Predicates compiled on the engine reject
// every character afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}
