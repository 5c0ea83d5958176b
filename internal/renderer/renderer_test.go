package renderer

import (
	"testing"

	"github.com/dshills/tabby/internal/dispatcher"
	"github.com/dshills/tabby/internal/engine/tab"
	"github.com/dshills/tabby/internal/renderer/backend"
)

func newScene(w, h int) (*dispatcher.Context, *backend.MemoryBackend, *Renderer) {
	ctx := dispatcher.NewContext("test", nil)
	mem := backend.NewMemoryBackend(w, h)
	return ctx, mem, New(mem, DefaultOptions())
}

func TestRenderUntitled(t *testing.T) {
	ctx, mem, r := newScene(30, 6)
	ctx.Tabs.Active().SetLines([]string{"hello", "wörld"})

	r.Render(ctx)

	want := []string{
		" [untitled]",
		"──────────────────────────────",
		"1: hello",
		"2: wörld",
		"",
		"",
	}
	for y, w := range want {
		if got := mem.Row(y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
	if mem.ShowCount() != 1 {
		t.Errorf("Show() called %d times", mem.ShowCount())
	}
	if c := mem.Cell(1, 0); c.Style.Fg != backend.ColorCyan {
		t.Errorf("active tab style = %+v", c.Style)
	}
}

func TestRenderTabBarAndTitle(t *testing.T) {
	ctx, mem, r := newScene(40, 6)
	first := ctx.Tabs.Active()
	first.Filename = "/tmp/notes.txt"
	first.Changed = true
	ctx.Tabs.Add(tab.New("Output"))

	r.Render(ctx)

	if got := mem.Row(0); got != " notes.txt | Output" {
		t.Errorf("tab bar = %q", got)
	}
	if got := mem.Row(1); got != "/tmp/notes.txt *" {
		t.Errorf("title = %q", got)
	}
	if got := mem.Row(3); got != "1:" {
		t.Errorf("first text row = %q", got)
	}
	if c := mem.Cell(0, 1); c.Style.Fg != backend.ColorYellow || !c.Style.Bold {
		t.Errorf("title style = %+v", c.Style)
	}
}

func TestRenderScrolledWithLineNumbers(t *testing.T) {
	ctx, mem, r := newScene(20, 5)
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = "x"
	}
	active := ctx.Tabs.Active()
	active.SetLines(lines)
	active.SetScroll(9)

	r.Render(ctx)

	for row, want := range []string{"10: x", "11: x"} {
		if got := mem.Row(2 + row); got != want {
			t.Errorf("row %d = %q, want %q", 2+row, got, want)
		}
	}
	if r.TextHeight(ctx) != 2 {
		t.Errorf("TextHeight() = %d, want 2", r.TextHeight(ctx))
	}
}

func TestRenderSidePanel(t *testing.T) {
	ctx, mem, r := newScene(20, 4)
	ctx.ShowSide = true
	ctx.Side.SetLines([]string{"side"})
	ctx.Tabs.Active().SetLines([]string{"main"})

	r.Render(ctx)

	if got := mem.Row(2); got != "1: side   1: main" {
		t.Errorf("row 2 = %q", got)
	}
}

func TestRenderClipsLongLines(t *testing.T) {
	ctx, mem, r := newScene(8, 4)
	ctx.Tabs.Active().SetLines([]string{"abcdefghij"})

	r.Render(ctx)

	if got := mem.Row(2); got != "1: abcde" {
		t.Errorf("row 2 = %q", got)
	}
}

func TestStatusText(t *testing.T) {
	ctx := dispatcher.NewContext("test", nil)
	ctx.Input.Set("!w")
	if got := StatusText(ctx); got != "!w" {
		t.Errorf("command line = %q", got)
	}

	ctx.Status = "line one\nline two\n"
	if got := StatusText(ctx); got != "line one line two" {
		t.Errorf("status = %q", got)
	}

	ctx.Status = ""
	ctx.Mode = dispatcher.ModeInsert
	if got := StatusText(ctx); got != "!w"+InsertMarker {
		t.Errorf("insert = %q", got)
	}
}

func TestRenderStatusRow(t *testing.T) {
	ctx, mem, r := newScene(40, 4)
	ctx.Mode = dispatcher.ModeInsert
	r.Render(ctx)

	// "\t -- INSERT -- \t" starting at column 0 expands the first tab to 4 cells.
	if got := mem.Row(3); got != "     -- INSERT --" {
		t.Errorf("status row = %q", got)
	}
}

func TestCursorInsertMode(t *testing.T) {
	ctx, mem, r := newScene(30, 6)
	ctx.Mode = dispatcher.ModeInsert
	active := ctx.Tabs.Active()
	active.SetLines([]string{"", "世界x"})
	active.SetCursor(tab.Position{Line: 1, Col: 2})

	r.Render(ctx)

	// "2: " is three cells, each of the two wide runes two more.
	x, y, ok := mem.CursorPosition()
	if !ok || x != 7 || y != 3 {
		t.Errorf("cursor = %d, %d, %v; want 7, 3, true", x, y, ok)
	}
}

func TestCursorInsertModeSidePanel(t *testing.T) {
	ctx, mem, r := newScene(30, 6)
	ctx.Mode = dispatcher.ModeInsert
	ctx.ShowSide = true
	ctx.SideFocus = true
	ctx.Side.SetLines([]string{"ab"})
	ctx.Side.SetCursor(tab.Position{Line: 0, Col: 1})

	r.Render(ctx)

	if x, y, ok := mem.CursorPosition(); !ok || x != 4 || y != 2 {
		t.Errorf("cursor = %d, %d, %v; want 4, 2, true", x, y, ok)
	}
}

func TestCursorHiddenWhenOffscreen(t *testing.T) {
	ctx, mem, r := newScene(30, 5)
	ctx.Mode = dispatcher.ModeInsert
	active := ctx.Tabs.Active()
	active.SetLines(make([]string, 10))
	active.SetCursor(tab.Position{Line: 8})

	r.Render(ctx)

	if _, _, ok := mem.CursorPosition(); ok {
		t.Error("cursor should be hidden when its line is scrolled out")
	}
}

func TestCursorCommandLine(t *testing.T) {
	ctx, mem, r := newScene(30, 5)

	r.Render(ctx)
	if _, _, ok := mem.CursorPosition(); ok {
		t.Error("cursor should be hidden for an empty command line")
	}

	ctx.Input.Set("!tab")
	ctx.Input.Left()
	r.Render(ctx)
	if x, y, ok := mem.CursorPosition(); !ok || x != 3 || y != 4 {
		t.Errorf("cursor = %d, %d, %v; want 3, 4, true", x, y, ok)
	}

	ctx.Status = "Success"
	r.Render(ctx)
	if _, _, ok := mem.CursorPosition(); ok {
		t.Error("cursor should be hidden while a status message is shown")
	}
}

func TestWidths(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want int
	}{
		{"abc", 2, 2},
		{"\tx", 1, 4},
		{"a\tx", 2, 4},
		{"世界", 1, 2},
		{"abc", 10, 3},
	}
	for _, tt := range tests {
		if got := ColumnWidth(tt.s, tt.n, 4); got != tt.want {
			t.Errorf("ColumnWidth(%q, %d) = %d, want %d", tt.s, tt.n, got, tt.want)
		}
	}
	if got := StringWidth("a\t世", 4); got != 6 {
		t.Errorf("StringWidth = %d, want 6", got)
	}
}

func TestComputeLayout(t *testing.T) {
	ctx := dispatcher.NewContext("test", nil)
	l := ComputeLayout(ctx, 80, 24)
	if l.Title != -1 || l.Rule != 1 || l.Status != 23 {
		t.Errorf("layout rows = %+v", l)
	}
	if l.Text != (Rect{X: 0, Y: 2, W: 80, H: 21}) {
		t.Errorf("text = %+v", l.Text)
	}
	if !l.Side.Empty() {
		t.Errorf("side = %+v, want empty", l.Side)
	}

	ctx.Tabs.Active().Filename = "f"
	ctx.ShowSide = true
	l = ComputeLayout(ctx, 81, 24)
	if l.Side != (Rect{X: 0, Y: 3, W: 40, H: 20}) || l.Text != (Rect{X: 40, Y: 3, W: 41, H: 20}) {
		t.Errorf("split = %+v / %+v", l.Side, l.Text)
	}
}
