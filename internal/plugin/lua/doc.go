// Package lua wraps gopher-lua for running plugin scripts.
//
// Each plugin owns one State. A State opens only the base, table, string and
// math libraries; the Sandbox then removes the base functions that load code
// from disk or strings and routes print to a caller-supplied sink.
//
// States are not goroutine-safe in the Lua sense. All calls must come from
// the goroutine that drives the editor; the mutex only guards against Close
// racing a call.
//
// The Bridge converts between Go and Lua values:
//
//	b := lua.NewBridge(state.LuaState())
//	args := b.StringSliceToTable([]string{"a", "b"}) // {"a", "b"}, 1-based
//	s, ok := lua.StatusText(ret)                    // string or number result
package lua
