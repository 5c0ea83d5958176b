// Package tab provides the editable text buffers of the editor.
//
// A Tab holds one document as a slice of lines together with its cursor,
// scroll offset and dirty flag. Lines are stored as Go strings (UTF-8) while
// the cursor column is measured in Unicode scalar values, so every mutation
// translates the column into a byte offset before touching the line:
//
//	t := tab.New("")
//	t.InsertRune('h')
//	t.InsertRune('é')
//	t.SplitLine()
//	t.Backspace() // joins the lines again
//
// A Set is the ordered collection of open tabs plus the active index. It is
// never empty: removing the last tab replaces it with a fresh one.
//
// Tabs and Sets are not safe for concurrent use. The editor mutates them
// only from its event loop.
package tab
