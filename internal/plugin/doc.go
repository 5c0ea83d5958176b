// Package plugin hosts Lua plugins and carries their output to the editor.
//
// A Host owns every loaded Plugin. Each plugin runs in its own sandboxed
// Lua state (see package plugin/lua) and talks to the editor only through a
// Mailbox: the Lua functions installed in the global table "tabby" post
// Messages, and the editor's main loop drains and applies them before every
// render.
//
// # Plugin scripts
//
// A plugin is a single Lua file:
//
//	PLUGIN_NAME = "demo"
//	PLUGIN_AUTHOR = "someone"
//	PLUGIN_VERSION = "v0.2.0"
//	PLUGIN_DESC = "says hello"
//
//	function init()
//	    tabby.status("demo ready")
//	end
//
//	tabby.register_command("hello", function(args)
//	    return "Hello from demo, " .. (args[1] or "nobody")
//	end)
//
// The four PLUGIN_* globals are optional. init, if defined, is called once
// after the chunk runs; an error it raises is logged and reported but the
// plugin stays loaded.
//
// Functions available to scripts:
//
//	tabby.status(text...)             show text in the status line
//	tabby.register_command(name, fn)  route command name to fn(args)
//	tabby.log(text...)                write an info line to latest.log
//	tabby.plugin_id                   this plugin's id
//	tabby.version                     editor version
//
// # Identity
//
// Plugin ids are assigned from a counter starting at 1 and are never reused
// within a session. A FuncRef names a registered function by plugin id and
// slot, so a command whose plugin has been unloaded fails with
// ErrPluginNotFound instead of reaching a different plugin.
package plugin
