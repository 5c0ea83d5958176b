package plugin

import (
	"strings"
	"unicode"

	plua "github.com/dshills/tabby/internal/plugin/lua"
	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the global table holding the editor API.
const ModuleName = "tabby"

// installAPI exposes the editor API to p's Lua state.
func (h *Host) installAPI(p *Plugin) {
	log := h.logger.WithField("plugin", p.ID)

	mod := p.state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"status": func(L *lua.LState) int {
			p.post(Message{Kind: StatusMessage, PluginID: p.ID, Text: plua.ArgsString(L)})
			return 0
		},
		"register_command": func(L *lua.LState) int {
			name := L.CheckString(1)
			fn := L.CheckFunction(2)
			if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
				L.ArgError(1, "command name must be a single word")
				return 0
			}

			ref := FuncRef{PluginID: p.ID, Slot: len(p.slots)}
			p.slots = append(p.slots, fn)
			p.commands = append(p.commands, name)
			p.post(Message{Kind: RegisterCommand, PluginID: p.ID, Command: name, Ref: ref})
			return 0
		},
		"log": func(L *lua.LState) int {
			log.Info("%s", plua.ArgsString(L))
			return 0
		},
	})
	mod.RawSetString("plugin_id", lua.LNumber(p.ID))
	mod.RawSetString("version", lua.LString(h.version))
}
