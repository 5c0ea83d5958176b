package app

import (
	"context"
	"strings"

	"github.com/dshills/tabby/internal/dispatcher"
	"github.com/dshills/tabby/internal/shell"
)

// outputTabName names the tab !execn opens.
const outputTabName = "Output"

// cmdExec runs a shell line and shows its output in the status line.
func (app *Application) cmdExec(ctx *dispatcher.Context, args []string) error {
	if len(args) == 0 {
		return dispatcher.Usagef("", "usage: !exec <command...>")
	}
	res, err := app.shell.RunLine(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	showOutput(ctx, res)
	return nil
}

// cmdExecFile runs a script file and shows its output in the status line.
func (app *Application) cmdExecFile(ctx *dispatcher.Context, args []string) error {
	if len(args) == 0 {
		return dispatcher.Usagef("", "usage: !exec_f <file> [args...]")
	}
	res, err := app.shell.RunFile(context.Background(), args[0], args[1:])
	if err != nil {
		return err
	}
	showOutput(ctx, res)
	return nil
}

// cmdExecNew runs a shell line and puts its output in a tab.
func (app *Application) cmdExecNew(ctx *dispatcher.Context, args []string) error {
	return app.execIntoTab(ctx, args, "usage: !execn [~cur [~ignore]] <command...>",
		func(rest []string) (shell.Result, error) {
			return app.shell.RunLine(context.Background(), strings.Join(rest, " "))
		})
}

// cmdExecNewFile runs a script file and puts its output in a tab.
func (app *Application) cmdExecNewFile(ctx *dispatcher.Context, args []string) error {
	return app.execIntoTab(ctx, args, "usage: !execn_f [~cur [~ignore]] <file> [args...]",
		func(rest []string) (shell.Result, error) {
			return app.shell.RunFile(context.Background(), rest[0], rest[1:])
		})
}

// execIntoTab parses the ~cur and ~ignore flags and runs the command.
// Without ~cur the output opens in a new tab; with it the output replaces
// the active tab, which must be saved unless ~ignore is given.
func (app *Application) execIntoTab(ctx *dispatcher.Context, args []string, usage string,
	run func(rest []string) (shell.Result, error)) error {
	current, ignore := false, false
	if len(args) > 0 && args[0] == "~cur" {
		current = true
		args = args[1:]
		if len(args) > 0 && args[0] == "~ignore" {
			ignore = true
			args = args[1:]
		}
	}
	if len(args) == 0 {
		return dispatcher.Usagef("", "%s", usage)
	}

	active := ctx.Tabs.Active()
	if current && active.Changed && !ignore {
		return dispatcher.Statef("", "this tab has unsaved changes; ~ignore to ignore")
	}

	res, err := run(args)
	if err != nil {
		return err
	}

	if current {
		active.SetLines(res.Lines())
	} else {
		ctx.Tabs.Open(readOnlyTab(outputTabName, res.Lines()))
	}
	ctx.SetStatus(statusSuccess)
	return nil
}

// showOutput puts a run's output in the status line.
func showOutput(ctx *dispatcher.Context, res shell.Result) {
	out := res.Output()
	if strings.TrimSpace(out) == "" {
		out = statusSuccess
	}
	ctx.Status = out
}
