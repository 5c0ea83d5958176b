package tab

import "fmt"

// EditKind identifies the mutation an Edit records.
type EditKind uint8

const (
	// EditInsert is a single character insertion.
	EditInsert EditKind = iota
	// EditNewline is a line split at the cursor.
	EditNewline
	// EditDelete is the removal of the character left of the cursor.
	EditDelete
	// EditMerge is a line joined onto the previous one.
	EditMerge
	// EditReplace is a whole-buffer replacement (load, shell output).
	EditReplace
)

// String returns a string representation of the kind.
func (k EditKind) String() string {
	switch k {
	case EditInsert:
		return "insert"
	case EditNewline:
		return "newline"
	case EditDelete:
		return "delete"
	case EditMerge:
		return "merge"
	case EditReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Edit is a snapshot of one buffer mutation.
//
// Start is the cursor before the mutation and End the cursor after it.
// Before holds the touched lines as they were, After the lines that replaced
// them. Edits are a diagnostic log; nothing replays or reverts them.
type Edit struct {
	Kind   EditKind
	Start  Position
	End    Position
	Before []string
	After  []string
}

// Render formats the edit for display in a tab.
func (e Edit) Render() []string {
	out := []string{
		fmt.Sprintf("Edit: %s", e.Kind),
		fmt.Sprintf("Start: %s", e.Start),
		fmt.Sprintf("End: %s", e.End),
		"--- before",
	}
	for _, l := range e.Before {
		out = append(out, "- "+l)
	}
	out = append(out, "+++ after")
	for _, l := range e.After {
		out = append(out, "+ "+l)
	}
	return out
}

func cloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
