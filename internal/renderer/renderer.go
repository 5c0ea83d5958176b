package renderer

import (
	"strings"

	"github.com/dshills/tabby/internal/dispatcher"
	"github.com/dshills/tabby/internal/engine/tab"
	"github.com/dshills/tabby/internal/renderer/backend"
)

// InsertMarker is appended to the status line in insert mode.
const InsertMarker = "\t -- INSERT -- \t"

// Tab bar separator between tab names.
const tabDivider = "|"

var (
	styleActiveTab = backend.Style{Fg: backend.ColorCyan, Bold: true}
	styleTitle     = backend.Style{Fg: backend.ColorYellow, Bold: true}
	styleRule      = backend.Style{Fg: backend.ColorWhite}
	styleSide      = backend.Style{Fg: backend.ColorGray}
)

// Options configures the renderer.
type Options struct {
	TabWidth int
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{TabWidth: DefaultTabWidth}
}

// Renderer draws a dispatcher.Context onto a backend.
type Renderer struct {
	backend backend.Backend
	opts    Options
}

// New creates a renderer.
func New(b backend.Backend, opts Options) *Renderer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultTabWidth
	}
	return &Renderer{backend: b, opts: opts}
}

// Backend returns the backend being drawn on.
func (r *Renderer) Backend() backend.Backend {
	return r.backend
}

// Layout returns the layout for ctx at the backend's current size.
func (r *Renderer) Layout(ctx *dispatcher.Context) Layout {
	w, h := r.backend.Size()
	return ComputeLayout(ctx, w, h)
}

// TextHeight returns the number of text rows of the active tab.
func (r *Renderer) TextHeight(ctx *dispatcher.Context) int {
	return r.Layout(ctx).Text.H
}

// Render draws one frame.
func (r *Renderer) Render(ctx *dispatcher.Context) {
	b := r.backend
	l := r.Layout(ctx)
	b.Clear()
	if l.Width <= 0 || l.Height <= 0 {
		b.Show()
		return
	}

	r.renderTabBar(ctx, l)
	r.renderHeader(ctx, l)
	r.renderBuffer(ctx.Tabs.Active(), l.Text, backend.StyleDefault)
	if ctx.ShowSide {
		r.renderBuffer(ctx.Side, l.Side, styleSide)
	}
	r.renderStatus(ctx, l)
	r.placeCursor(ctx, l)
	b.Show()
}

func (r *Renderer) renderTabBar(ctx *dispatcher.Context, l Layout) {
	x := 0
	active := ctx.Tabs.ActiveIndex()
	for i, t := range ctx.Tabs.Tabs() {
		if i > 0 {
			x = drawText(r.backend, x, l.TabBar, l.Width, tabDivider, backend.StyleDefault, r.opts.TabWidth)
		}
		style := backend.StyleDefault
		if i == active {
			style = styleActiveTab
		}
		x = drawText(r.backend, x, l.TabBar, l.Width, " "+t.Title()+" ", style, r.opts.TabWidth)
	}
}

func (r *Renderer) renderHeader(ctx *dispatcher.Context, l Layout) {
	if l.Title >= 0 {
		t := ctx.Tabs.Active()
		title := t.Filename
		if t.Changed {
			title += " *"
		}
		drawText(r.backend, 0, l.Title, l.Width, title, styleTitle, r.opts.TabWidth)
	}
	if l.Rule < l.Status {
		fill(r.backend, 0, l.Rule, l.Width, '─', styleRule)
	}
}

func (r *Renderer) renderBuffer(t *tab.Tab, area Rect, style backend.Style) {
	if area.Empty() {
		return
	}
	first := t.Scroll()
	for row := 0; row < area.H; row++ {
		i := first + row
		if i >= t.LineCount() {
			break
		}
		x := drawText(r.backend, area.X, area.Y+row, area.X+area.W, LinePrefix(i), style, r.opts.TabWidth)
		drawText(r.backend, x, area.Y+row, area.X+area.W, t.Line(i), style, r.opts.TabWidth)
	}
}

// StatusText returns what the status line shows for ctx.
// Status messages win over the command line; newlines become spaces.
func StatusText(ctx *dispatcher.Context) string {
	text := ctx.Input.Text()
	if ctx.Status != "" {
		text = strings.ReplaceAll(strings.TrimRight(ctx.Status, "\r\n"), "\n", " ")
	}
	if ctx.Mode == dispatcher.ModeInsert {
		text += InsertMarker
	}
	return text
}

func (r *Renderer) renderStatus(ctx *dispatcher.Context, l Layout) {
	drawText(r.backend, 0, l.Status, l.Width, StatusText(ctx), backend.StyleDefault, r.opts.TabWidth)
}

// CursorPosition returns where the terminal cursor goes, and false when
// it should be hidden.
func (r *Renderer) CursorPosition(ctx *dispatcher.Context, l Layout) (x, y int, ok bool) {
	if ctx.Mode == dispatcher.ModeInsert {
		t := ctx.Editing()
		area := l.Text
		if t == ctx.Side {
			area = l.Side
		}
		c := t.Cursor()
		row := c.Line - t.Scroll()
		if row < 0 || row >= area.H {
			return 0, 0, false
		}
		x = area.X + StringWidth(LinePrefix(c.Line), r.opts.TabWidth) +
			ColumnWidth(t.Line(c.Line), c.Col, r.opts.TabWidth)
		if x >= area.X+area.W {
			return 0, 0, false
		}
		return x, area.Y + row, true
	}

	if ctx.Status != "" || ctx.Input.Len() == 0 {
		return 0, 0, false
	}
	return ColumnWidth(ctx.Input.Text(), ctx.Input.Cursor(), r.opts.TabWidth), l.Status, true
}

func (r *Renderer) placeCursor(ctx *dispatcher.Context, l Layout) {
	if x, y, ok := r.CursorPosition(ctx, l); ok {
		r.backend.ShowCursor(x, y)
		return
	}
	r.backend.HideCursor()
}
