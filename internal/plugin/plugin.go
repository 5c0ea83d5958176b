package plugin

import (
	"fmt"
	"strings"

	plua "github.com/dshills/tabby/internal/plugin/lua"
	lua "github.com/yuin/gopher-lua"
)

// Defaults for the optional PLUGIN_* globals.
const (
	DefaultName        = "Unnamed plugin"
	DefaultAuthor      = "Unknown author"
	DefaultVersion     = "v1.0.0"
	DefaultDescription = "No description provided"
)

// Plugin is one loaded Lua script.
type Plugin struct {
	ID          int
	Name        string
	Author      string
	Version     string
	Description string
	Path        string

	state    *plua.State
	slots    []*lua.LFunction
	commands []string

	// post delivers messages from the script. While the chunk runs it
	// buffers into pending so a failed load leaves no trace.
	post    func(Message)
	pending []Message
}

// Commands returns the command names the plugin registered, in order.
func (p *Plugin) Commands() []string {
	return append([]string(nil), p.commands...)
}

// String returns "name (id N)".
func (p *Plugin) String() string {
	return fmt.Sprintf("%s (id %d)", p.Name, p.ID)
}

// Summary returns a single-line description for plugin listings.
func (p *Plugin) Summary() string {
	return fmt.Sprintf("%d: %s %s by %s", p.ID, p.Name, p.Version, p.Author)
}

// Info returns the plugin details, one field per line.
func (p *Plugin) Info() []string {
	cmds := "(none)"
	if names := p.Commands(); len(names) > 0 {
		cmds = strings.Join(names, ", ")
	}
	return []string{
		"Name: " + p.Name,
		"Author: " + p.Author,
		"Version: " + p.Version,
		"Description: " + p.Description,
		fmt.Sprintf("ID: %d", p.ID),
		"Path: " + p.Path,
		"Commands: " + cmds,
	}
}

func (p *Plugin) readMetadata() {
	p.Name = p.state.GlobalString("PLUGIN_NAME", DefaultName)
	p.Author = p.state.GlobalString("PLUGIN_AUTHOR", DefaultAuthor)
	p.Version = p.state.GlobalString("PLUGIN_VERSION", DefaultVersion)
	p.Description = p.state.GlobalString("PLUGIN_DESC", DefaultDescription)
}

func (p *Plugin) bufferMessages() {
	p.post = func(m Message) {
		p.pending = append(p.pending, m)
	}
}

func (p *Plugin) deliverTo(mb *Mailbox) {
	for _, m := range p.pending {
		mb.Post(m)
	}
	p.pending = nil
	p.post = mb.Post
}
