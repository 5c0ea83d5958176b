package app

import (
	"strings"

	"github.com/dshills/tabby/internal/dispatcher"
	"github.com/dshills/tabby/internal/plugin"
)

const pluginUsage = "usage: !plugin state | load <path> | info <name> | info-id <id> | unload <name> | unload-id <id> | list"

// cmdPlugin manages the plugin host.
func (app *Application) cmdPlugin(ctx *dispatcher.Context, args []string) error {
	if len(args) == 0 {
		return dispatcher.Usagef("", pluginUsage)
	}
	host := app.plugins
	rest := strings.Join(args[1:], " ")

	switch args[0] {
	case "state":
		ctx.SetStatus("plugin host: %s", host.State())

	case "load":
		if rest == "" {
			return dispatcher.Usagef("", "usage: !plugin load <path>")
		}
		p, err := host.Load(rest)
		if err != nil {
			app.logger.Plugin("load %s: %v", rest, err)
			return err
		}
		ctx.SetStatus("plugin %s loaded with id %d", p.Name, p.ID)

	case "info", "info-id":
		p, err := app.findPlugin(args[0] == "info-id", rest)
		if err != nil {
			return err
		}
		ctx.Tabs.Open(readOnlyTab("Plugin "+p.Name, p.Info()))
		ctx.SetStatus("plugin info displayed in new tab")

	case "unload", "unload-id":
		p, err := app.findPlugin(args[0] == "unload-id", rest)
		if err != nil {
			return err
		}
		if err := host.Unload(p.ID); err != nil {
			return err
		}
		ctx.SetStatus("plugin %s unloaded", p.Name)

	case "list":
		plugins := host.Plugins()
		lines := make([]string, 0, len(plugins))
		for _, p := range plugins {
			lines = append(lines, p.Summary())
		}
		if len(lines) == 0 {
			lines = append(lines, "no plugins loaded")
		}
		ctx.Tabs.Open(readOnlyTab("Plugins", lines))
		ctx.SetStatus("%d plugin(s) loaded", len(plugins))

	default:
		return dispatcher.Usagef("", pluginUsage)
	}
	return nil
}

// findPlugin resolves a plugin by id or by name.
func (app *Application) findPlugin(byID bool, arg string) (*plugin.Plugin, error) {
	if arg == "" {
		return nil, dispatcher.Usagef("", pluginUsage)
	}
	if byID {
		id, err := parseNumber("plugin id", arg)
		if err != nil {
			return nil, err
		}
		if p, ok := app.plugins.Get(id); ok {
			return p, nil
		}
		return nil, dispatcher.Lookupf("", "no plugin with id %d", id)
	}
	if p, ok := app.plugins.FindByName(arg); ok {
		return p, nil
	}
	return nil, dispatcher.Lookupf("", "no such plugin: %s", arg)
}
