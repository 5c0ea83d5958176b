package backend

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

// MemoryBackend is an in-memory Backend. Events are queued with Post and
// returned by PollEvent in order.
type MemoryBackend struct {
	mu sync.Mutex

	width, height int
	cells         [][]Cell

	cursorX, cursorY int
	cursorVisible    bool
	shown            int

	events chan Event
}

// NewMemoryBackend creates a memory backend with the given dimensions.
func NewMemoryBackend(width, height int) *MemoryBackend {
	b := &MemoryBackend{
		width:  width,
		height: height,
		events: make(chan Event, 256),
	}
	b.allocate()
	return b
}

func (b *MemoryBackend) allocate() {
	b.cells = make([][]Cell, b.height)
	for y := range b.cells {
		b.cells[y] = make([]Cell, b.width)
		for x := range b.cells[y] {
			b.cells[y][x] = Cell{Rune: ' ', Width: 1}
		}
	}
}

func (b *MemoryBackend) Init() error { return nil }

func (b *MemoryBackend) Shutdown() {}

func (b *MemoryBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *MemoryBackend) SetCell(x, y int, r rune, style Style) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	w := runewidth.RuneWidth(r)
	if w < 1 {
		w = 1
	}
	b.cells[y][x] = Cell{Rune: r, Width: w, Style: style}
	if w == 2 && x+1 < b.width {
		b.cells[y][x+1] = Cell{Style: style}
	}
}

func (b *MemoryBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allocate()
}

func (b *MemoryBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shown++
}

func (b *MemoryBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX, b.cursorY = x, y
	b.cursorVisible = true
}

func (b *MemoryBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

// PollEvent returns the next posted event, blocking until one arrives.
func (b *MemoryBackend) PollEvent() Event {
	return <-b.events
}

func (b *MemoryBackend) Wake() {
	select {
	case b.events <- Event{Type: EventWake}:
	default:
		// A full queue is already going to wake the reader.
	}
}

// Post queues events for PollEvent.
func (b *MemoryBackend) Post(events ...Event) {
	for _, ev := range events {
		b.events <- ev
	}
}

// PostString queues one rune event per rune of s.
func (b *MemoryBackend) PostString(s string) {
	for _, r := range s {
		b.events <- RuneEvent(r)
	}
}

// Pending returns the number of queued events.
func (b *MemoryBackend) Pending() int {
	return len(b.events)
}

// Resize changes the dimensions and queues a resize event.
func (b *MemoryBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.allocate()
	b.mu.Unlock()
	b.events <- Event{Type: EventResize, Width: width, Height: height}
}

// Cell returns the cell at x, y.
func (b *MemoryBackend) Cell(x, y int) Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{}
	}
	return b.cells[y][x]
}

// Row returns row y as a string with trailing blanks removed.
// Continuation cells of wide runes are skipped.
func (b *MemoryBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y] {
		if c.Rune == 0 {
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Lines returns every row, see Row.
func (b *MemoryBackend) Lines() []string {
	_, h := b.Size()
	out := make([]string, h)
	for y := range out {
		out[y] = b.Row(y)
	}
	return out
}

// CursorPosition returns the current cursor position for testing.
func (b *MemoryBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursorVisible
}

// ShowCount returns how many times Show was called.
func (b *MemoryBackend) ShowCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shown
}
