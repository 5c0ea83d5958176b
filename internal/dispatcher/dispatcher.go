package dispatcher

import (
	"errors"
	"strings"
)

// Dispatcher executes command lines against a Context.
type Dispatcher struct{}

// New creates a dispatcher.
func New() *Dispatcher {
	return &Dispatcher{}
}

// Submit runs line. The outcome is left in ctx.Status; the returned error
// is the same failure, for callers that want to inspect it.
func (d *Dispatcher) Submit(ctx *Context, line string) error {
	ctx.Status = ""

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		err := Usagef("", "empty command")
		ctx.ReportError(err)
		return err
	}

	ctx.History.Append(tokens)
	tokens = ctx.Aliases.Expand(tokens)
	name, args := tokens[0], tokens[1:]

	ctx.Logger.WithComponent("dispatcher").Debug("dispatch %s %v", name, args)

	err := d.invoke(ctx, name, args)
	if err != nil {
		ctx.ReportError(err)
	}
	return err
}

func (d *Dispatcher) invoke(ctx *Context, name string, args []string) error {
	h, ok := ctx.Registry.Lookup(name)
	if !ok {
		return Lookupf("", "unknown command: %s", name)
	}

	switch h.Kind {
	case Native:
		return Wrap(name, h.Native(ctx, args))
	case Scripted:
		if ctx.Plugins == nil {
			return Lookupf(name, "no such plugin")
		}
		status, err := ctx.Plugins.Invoke(h.Script, args)
		if err != nil {
			return Wrap(name, err)
		}
		ctx.Status = status
		return nil
	default:
		return errors.New("invalid handler kind")
	}
}
