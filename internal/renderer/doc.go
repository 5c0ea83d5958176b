// Package renderer draws the editor state onto a backend.
//
// The screen is split into rows:
//
//	tab bar      name | name | name
//	title        file name, " *" when unsaved (only for tabs with a file)
//	rule
//	text         "N: line" for each visible line; side panel on the left half when open
//	status       status message or command line, plus the insert-mode marker
//
// Widths are terminal cells, measured with go-runewidth; tabs advance to the
// next tab stop.
package renderer
