package lua

import (
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

// Bridge builds Lua values for calls into plugin code.
type Bridge struct {
	L *lua.LState
}

// NewBridge creates a new Bridge for the given Lua state.
func NewBridge(L *lua.LState) *Bridge {
	return &Bridge{L: L}
}

// StringSliceToTable converts s to a sequence with 1-based indices.
func (b *Bridge) StringSliceToTable(s []string) *lua.LTable {
	t := b.L.CreateTable(len(s), 0)
	for i, v := range s {
		t.RawSetInt(i+1, lua.LString(v))
	}
	return t
}

// StatusText returns the text of a string or number value.
// Any other value reports false.
func StatusText(lv lua.LValue) (string, bool) {
	switch v := lv.(type) {
	case lua.LString:
		return string(v), true
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10), true
		}
		return strconv.FormatFloat(f, 'g', -1, 64), true
	default:
		return "", false
	}
}

// ArgsString joins every argument of the current call with spaces, applying
// tostring semantics. It is used by Go functions exposed to plugins.
func ArgsString(L *lua.LState) string {
	n := L.GetTop()
	var out string
	for i := 1; i <= n; i++ {
		if i > 1 {
			out += " "
		}
		out += L.ToStringMeta(L.Get(i)).String()
	}
	return out
}
