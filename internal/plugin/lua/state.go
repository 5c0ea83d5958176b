package lua

import (
	"io"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// State wraps a gopher-lua state configured for plugin execution.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	sandbox *Sandbox
	closed  bool
}

// StateOption configures a State.
type StateOption func(*stateConfig)

type stateConfig struct {
	print func(string)
}

// WithPrint sends output of the Lua print function to fn.
// Without it, print output is discarded.
func WithPrint(fn func(string)) StateOption {
	return func(c *stateConfig) {
		c.print = fn
	}
}

// WithPrintWriter writes print output to w, one line per call.
func WithPrintWriter(w io.Writer) StateOption {
	return WithPrint(func(s string) {
		_, _ = io.WriteString(w, s+"\n")
	})
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) (*State, error) {
	var cfg stateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	if err := openSafeLibraries(L); err != nil {
		L.Close()
		return nil, err
	}

	state := &State{L: L}
	state.sandbox = NewSandbox(L, cfg.print)
	state.sandbox.Install()

	return state, nil
}

// openSafeLibraries opens base, table, string and math.
// io, os, debug, package and coroutine stay closed.
func openSafeLibraries(L *lua.LState) error {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return err
		}
	}
	return nil
}

// DoString executes a Lua chunk.
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return recoverPanic(func() error {
		return s.L.DoString(code)
	})
}

// DoChunk compiles src under chunk name name and runs it.
// The name appears in Lua error messages in place of a file path.
func (s *State) DoChunk(name, src string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return recoverPanic(func() error {
		fn, err := s.L.Load(strings.NewReader(src), name)
		if err != nil {
			return err
		}
		top := s.L.GetTop()
		s.L.Push(fn)
		err = s.L.PCall(0, lua.MultRet, nil)
		s.L.SetTop(top)
		return err
	})
}

// recoverPanic runs fn and reports Go panics as *PanicError, whether they
// escape the interpreter or were caught by a protected call.
func recoverPanic(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return asPanic(fn())
}

// CallGlobal calls the global function fn.
// It returns ErrNotFunction if fn is unset or not a function.
func (s *State) CallGlobal(fn string, args ...lua.LValue) ([]lua.LValue, error) {
	v := s.GetGlobal(fn)
	f, ok := v.(*lua.LFunction)
	if !ok {
		return nil, ErrNotFunction
	}
	return s.Call(f, args...)
}

// Call calls fn in protected mode and returns every value it returned.
// Returns an empty slice (not nil) if the function returns no values.
func (s *State) Call(fn *lua.LFunction, args ...lua.LValue) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	stackTop := s.L.GetTop()

	s.L.Push(fn)
	for _, arg := range args {
		s.L.Push(arg)
	}

	err := recoverPanic(func() error {
		return s.L.PCall(len(args), lua.MultRet, nil)
	})
	if err != nil {
		s.L.SetTop(stackTop)
		return nil, err
	}

	nRet := s.L.GetTop() - stackTop
	if nRet <= 0 {
		return []lua.LValue{}, nil
	}
	results := make([]lua.LValue, nRet)
	for i := 0; i < nRet; i++ {
		results[i] = s.L.Get(stackTop + i + 1)
	}
	s.L.Pop(nRet)

	return results, nil
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// GlobalString returns the global name if it is a string, else def.
func (s *State) GlobalString(name, def string) string {
	if v, ok := s.GetGlobal(name).(lua.LString); ok {
		return string(v)
	}
	return def
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.L.SetGlobal(name, value)
}

// RegisterModule creates a global table name holding funcs and returns it
// so the caller can add plain fields.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) *lua.LTable {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	mod := s.L.SetFuncs(s.L.NewTable(), funcs)
	s.L.SetGlobal(name, mod)
	return mod
}

// LuaState returns the underlying gopher-lua state.
func (s *State) LuaState() *lua.LState {
	return s.L
}

// Sandbox returns the sandbox installed on the state.
func (s *State) Sandbox() *Sandbox {
	return s.sandbox
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.L.Close()
	s.closed = true
	return nil
}
