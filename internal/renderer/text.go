package renderer

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/tabby/internal/renderer/backend"
)

// DefaultTabWidth is the distance between tab stops.
const DefaultTabWidth = 4

// runeCells returns the cell width of r drawn at visual column col.
func runeCells(r rune, col, tabWidth int) int {
	if r == '\t' {
		return tabWidth - col%tabWidth
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the cell width of s starting at visual column 0.
func StringWidth(s string, tabWidth int) int {
	col := 0
	for _, r := range s {
		col += runeCells(r, col, tabWidth)
	}
	return col
}

// ColumnWidth returns the cell width of the first n runes of s.
func ColumnWidth(s string, n, tabWidth int) int {
	col := 0
	for _, r := range s {
		if n == 0 {
			break
		}
		col += runeCells(r, col, tabWidth)
		n--
	}
	return col
}

// LinePrefix returns the line number label for line index i.
func LinePrefix(i int) string {
	return strconv.Itoa(i+1) + ": "
}

// drawText draws s on row y from x, clipped at maxX. Tab stops are measured
// from x. It returns the column after the last drawn cell.
func drawText(b backend.Backend, x, y, maxX int, s string, style backend.Style, tabWidth int) int {
	start := x
	for _, r := range s {
		w := runeCells(r, x-start, tabWidth)
		if w == 0 {
			// Combining marks have no cell of their own.
			continue
		}
		if x+w > maxX {
			break
		}
		if r == '\t' {
			for i := 0; i < w; i++ {
				b.SetCell(x+i, y, ' ', style)
			}
		} else {
			b.SetCell(x, y, r, style)
		}
		x += w
	}
	return x
}

// fill sets cells [x, maxX) of row y to blanks.
func fill(b backend.Backend, x, y, maxX int, r rune, style backend.Style) {
	for ; x < maxX; x++ {
		b.SetCell(x, y, r, style)
	}
}
