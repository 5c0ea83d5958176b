package app

import (
	"github.com/dshills/tabby/internal/dispatcher"
	"github.com/dshills/tabby/internal/renderer/backend"
)

// Run drives the main loop until a quit command. The backend is
// initialized here and restored on return.
func (app *Application) Run() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	for {
		app.drainMessages()
		if app.ctx.Quit {
			app.logger.Info("quit")
			return nil
		}
		app.renderer.Render(app.ctx)
		app.handleEvent(app.backend.PollEvent())
	}
}

// handleEvent applies one backend event to the editor state.
func (app *Application) handleEvent(ev backend.Event) {
	switch ev.Type {
	case backend.EventKey:
		app.handleKey(ev)
	case backend.EventMouse:
		app.handleMouse(ev)
	case backend.EventResize, backend.EventWake:
		// The next frame reads the new size and the drained messages.
	}
}

func (app *Application) handleMouse(ev backend.Event) {
	t := app.ctx.Tabs.Active()
	switch ev.MouseButton {
	case backend.MouseWheelUp:
		t.ScrollBy(-1)
	case backend.MouseWheelDown:
		t.ScrollBy(1)
	}
}

// handleKey routes a key to the command line or the buffer being edited.
func (app *Application) handleKey(ev backend.Event) {
	ctx := app.ctx

	switch ev.Key {
	case backend.KeyEscape, backend.KeyInsert:
		if ctx.Mode == dispatcher.ModeInsert {
			ctx.Mode = dispatcher.ModeCommand
		} else {
			ctx.Mode = dispatcher.ModeInsert
		}
		return
	case backend.KeyPageUp:
		ctx.Editing().ScrollBy(-app.cfg.Editor.PageSize)
		return
	case backend.KeyPageDown:
		ctx.Editing().ScrollBy(app.cfg.Editor.PageSize)
		return
	case backend.KeyHome:
		ctx.Editing().SetScroll(0)
		return
	case backend.KeyEnd:
		t := ctx.Editing()
		t.SetScroll(t.LineCount() - 1)
		return
	}

	if n := ev.Key.FunctionNumber(); n > 0 {
		app.switchTab(n)
		return
	}

	if ctx.Mode == dispatcher.ModeInsert {
		app.editKey(ev)
		return
	}
	app.commandKey(ev)
}

// switchTab activates tab n (1-based), opening a new tab when n is past
// the end.
func (app *Application) switchTab(n int) {
	tabs := app.ctx.Tabs
	if n > tabs.Len() {
		tabs.Open(nil)
		return
	}
	_ = tabs.Activate(n - 1)
}

// editKey applies an insert-mode key to the buffer being edited.
func (app *Application) editKey(ev backend.Event) {
	t := app.ctx.Editing()
	switch ev.Key {
	case backend.KeyRune:
		t.InsertRune(ev.Rune)
	case backend.KeyTab:
		t.InsertRune('\t')
	case backend.KeyEnter:
		t.SplitLine()
	case backend.KeyBackspace:
		t.Backspace()
	case backend.KeyUp:
		t.MoveVertical(-1)
	case backend.KeyDown:
		t.MoveVertical(1)
	case backend.KeyLeft:
		t.MoveHorizontal(-1)
	case backend.KeyRight:
		t.MoveHorizontal(1)
	default:
		return
	}
	if app.renderer != nil {
		t.ScrollToCursor(app.renderer.TextHeight(app.ctx))
	}
}

// commandKey applies a command-mode key to the command line.
// A status message on display is dismissed by any key; Backspace only
// dismisses it.
func (app *Application) commandKey(ev backend.Event) {
	ctx := app.ctx
	in := ctx.Input

	if ctx.Status != "" {
		ctx.Status = ""
		if ev.Key == backend.KeyBackspace {
			return
		}
	}

	switch ev.Key {
	case backend.KeyRune:
		in.Insert(ev.Rune)
	case backend.KeyBackspace:
		in.Backspace()
	case backend.KeyLeft:
		in.Left()
	case backend.KeyRight:
		in.Right()
	case backend.KeyUp:
		in.Set(ctx.History.Previous())
	case backend.KeyDown:
		in.Set(ctx.History.Next())
	case backend.KeyEnter:
		line := in.Text()
		in.Clear()
		_ = app.dispatcher.Submit(ctx, line)
	}
}
