package app

import (
	"strconv"

	"github.com/dshills/tabby/internal/dispatcher"
	"github.com/dshills/tabby/internal/engine/tab"
)

// statusSuccess is shown by commands that have nothing else to report.
const statusSuccess = "Success"

// registerCommands installs the native commands.
func (app *Application) registerCommands(reg *dispatcher.Registry) {
	natives := map[string]dispatcher.NativeFunc{
		"!hi":      cmdHello,
		"!version": cmdVersion,
		"!q":       cmdQuit,
		"!qi":      cmdQuitIgnore,
		"!w":       cmdWrite,
		"!r":       cmdRead,
		"!ri":      cmdReadIgnore,
		"!rn":      cmdReadNew,
		"!tab":     cmdTab,
		"!alias":   cmdAlias,
		"!exec":    app.cmdExec,
		"!exec_f":  app.cmdExecFile,
		"!execn":   app.cmdExecNew,
		"!execn_f": app.cmdExecNewFile,
		"!plugin":  app.cmdPlugin,
	}
	for name, fn := range natives {
		reg.RegisterNative(name, fn)
	}
	app.logger.Debug("registered %d native commands", len(natives))
}

func cmdHello(ctx *dispatcher.Context, _ []string) error {
	ctx.SetStatus("Hello!")
	return nil
}

func cmdVersion(ctx *dispatcher.Context, _ []string) error {
	ctx.Status = ctx.Version
	return nil
}

// cmdQuit refuses to quit while any tab has unsaved changes.
func cmdQuit(ctx *dispatcher.Context, _ []string) error {
	if i := ctx.Tabs.FirstChanged(); i >= 0 {
		return dispatcher.Statef("", "tab %d has unsaved changes; !qi to ignore", i+1)
	}
	ctx.Quit = true
	return nil
}

func cmdQuitIgnore(ctx *dispatcher.Context, _ []string) error {
	ctx.Quit = true
	return nil
}

func cmdAlias(ctx *dispatcher.Context, args []string) error {
	if len(args) == 0 {
		return dispatcher.Usagef("", "usage: !alias new <name> <command...> | !alias rm <name> | !alias list")
	}
	switch args[0] {
	case "new":
		if len(args) < 3 {
			return dispatcher.Usagef("", "usage: !alias new <name> <command...>")
		}
		if err := ctx.Aliases.Add(args[1], args[2:]); err != nil {
			return err
		}
	case "rm":
		if len(args) < 2 {
			return dispatcher.Usagef("", "usage: !alias rm <name>")
		}
		if err := ctx.Aliases.Remove(args[1]); err != nil {
			return err
		}
	case "list":
		lines := ctx.Aliases.Describe()
		n := len(lines)
		if n == 0 {
			lines = append(lines, "no aliases defined")
		}
		ctx.Tabs.Open(readOnlyTab("Aliases", lines))
		ctx.SetStatus("%d alias(es) defined", n)
		return nil
	default:
		return dispatcher.Usagef("", "usage: !alias new <name> <command...> | !alias rm <name> | !alias list")
	}
	ctx.SetStatus(statusSuccess)
	return nil
}

// parseNumber parses a 1-based number argument.
func parseNumber(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, dispatcher.Usagef("", "%s must be a number: %q", what, s)
	}
	return n, nil
}

// readOnlyTab returns a clean tab named name holding lines.
func readOnlyTab(name string, lines []string) *tab.Tab {
	t := tab.New(name)
	t.SetLines(lines)
	t.Changed = false
	return t
}
