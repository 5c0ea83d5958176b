package app

import (
	"errors"
	"io/fs"

	"github.com/dshills/tabby/internal/dispatcher"
	"github.com/dshills/tabby/internal/engine/tab"
)

// cmdWrite saves the active tab to the named file or its own filename.
func cmdWrite(ctx *dispatcher.Context, args []string) error {
	t := ctx.Tabs.Active()
	path := t.Filename
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return dispatcher.Usagef("", "usage: !w <file>")
	}
	if err := t.Save(path); err != nil {
		return err
	}
	ctx.SetStatus(statusSuccess)
	return nil
}

// cmdRead replaces the active tab with a file unless it has unsaved changes.
func cmdRead(ctx *dispatcher.Context, args []string) error {
	if len(args) == 0 {
		return dispatcher.Usagef("", "usage: !r <file>")
	}
	if ctx.Tabs.Active().Changed {
		return dispatcher.Statef("", "current buffer isn't saved; !ri to ignore")
	}
	return readInto(ctx, ctx.Tabs.Active(), args[0])
}

// cmdReadIgnore replaces the active tab with a file, discarding changes.
func cmdReadIgnore(ctx *dispatcher.Context, args []string) error {
	if len(args) == 0 {
		return dispatcher.Usagef("", "usage: !ri <file>")
	}
	return readInto(ctx, ctx.Tabs.Active(), args[0])
}

// cmdReadNew opens a file in a new tab and activates it. A missing file
// still opens, as a new empty file.
func cmdReadNew(ctx *dispatcher.Context, args []string) error {
	if len(args) == 0 {
		return dispatcher.Usagef("", "usage: !rn <file>")
	}
	t := tab.New("")
	err := t.Load(args[0])
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	ctx.Tabs.Open(t)
	if err != nil {
		return err
	}
	ctx.SetStatus(statusSuccess)
	return nil
}

func readInto(ctx *dispatcher.Context, t *tab.Tab, path string) error {
	if err := t.Load(path); err != nil {
		return err
	}
	ctx.SetStatus(statusSuccess)
	return nil
}
