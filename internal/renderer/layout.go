package renderer

import "github.com/dshills/tabby/internal/dispatcher"

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r has no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Layout is the placement of every screen area for one frame.
type Layout struct {
	Width, Height int

	TabBar int // row of the tab bar
	Title  int // row of the file title, -1 when the active tab has no file
	Rule   int // row of the separator below the header

	Text Rect // active tab
	Side Rect // side panel, empty when closed

	Status int // row of the status line
}

// ComputeLayout places the screen areas for ctx on a width x height screen.
func ComputeLayout(ctx *dispatcher.Context, width, height int) Layout {
	l := Layout{
		Width:  width,
		Height: height,
		TabBar: 0,
		Title:  -1,
		Rule:   1,
		Status: height - 1,
	}
	if ctx.Tabs.Active().Filename != "" {
		l.Title = 1
		l.Rule = 2
	}

	top := l.Rule + 1
	textH := max(0, l.Status-top)
	l.Text = Rect{X: 0, Y: top, W: width, H: textH}

	if ctx.ShowSide {
		half := width / 2
		l.Side = Rect{X: 0, Y: top, W: half, H: textH}
		l.Text = Rect{X: half, Y: top, W: width - half, H: textH}
	}
	return l
}
