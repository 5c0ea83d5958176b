package app

import (
	"strings"

	"github.com/dshills/tabby/internal/dispatcher"
)

const tabUsage = "usage: !tab new | goto <n> | rm <n> | next | prev | rename <n> <name> | left | leftuse | showdiff"

// cmdTab manages tabs. Tab numbers are 1-based.
func cmdTab(ctx *dispatcher.Context, args []string) error {
	if len(args) == 0 {
		return dispatcher.Usagef("", tabUsage)
	}
	tabs := ctx.Tabs

	var err error
	switch args[0] {
	case "new":
		tabs.Add(nil)
	case "goto", "rm":
		if len(args) < 2 {
			return dispatcher.Usagef("", "usage: !tab %s <n>", args[0])
		}
		n, perr := parseNumber("tab", args[1])
		if perr != nil {
			return perr
		}
		if args[0] == "goto" {
			err = tabs.Activate(n - 1)
		} else {
			err = tabs.Remove(n - 1)
		}
	case "next":
		err = tabs.Next()
	case "prev":
		err = tabs.Prev()
	case "rename":
		if len(args) < 3 {
			return dispatcher.Usagef("", "usage: !tab rename <n> <name>")
		}
		n, perr := parseNumber("tab", args[1])
		if perr != nil {
			return perr
		}
		err = tabs.Rename(n-1, strings.Join(args[2:], " "))
	case "left":
		ctx.ShowSide = !ctx.ShowSide
	case "leftuse":
		ctx.SideFocus = !ctx.SideFocus
	case "showdiff":
		e, ok := tabs.Active().LastEdit()
		if !ok {
			return dispatcher.Statef("", "no edit was made")
		}
		tabs.Open(readOnlyTab("Last edit", e.Render()))
	default:
		return dispatcher.Usagef("", tabUsage)
	}
	if err != nil {
		return err
	}
	ctx.SetStatus(statusSuccess)
	return nil
}
