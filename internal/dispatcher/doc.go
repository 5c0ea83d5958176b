// Package dispatcher turns command lines into handler calls.
//
// A submitted line is split on whitespace, recorded in the History, expanded
// through the AliasTable (one level only) and looked up in the Registry.
// The Registry maps each command name to a Handler, which is either a native
// Go function or a function registered by a plugin:
//
//	switch h.Kind {
//	case Native:
//	    err = h.Native(ctx, args)
//	case Scripted:
//	    status, err = ctx.Plugins.Invoke(h.Script, args)
//	}
//
// Every outcome ends up as a single line in Context.Status. Errors are
// classified into the kinds declared in errors.go.
//
// # Context
//
// Context is the editor's mutable state: the tab set, the side panel, the
// command line, the status line, the command tables and the plugin host.
// The main loop owns it and passes it to every handler and to the renderer;
// nothing else holds a reference.
package dispatcher
