package fix

import (
	"fmt"
	"strings"
)

// LineChange is one line that differs between two versions of a document
// with the same line count.
type LineChange struct {
	// Line is the 1-based line number.
	Line int

	// Before is the original text.
	Before string

	// After is the modified text.
	After string
}

// Diff is a line-aligned diff. Comment toggling never adds or removes lines,
// so every change pairs one original line with one modified line.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Changes lists the differing lines in ascending order.
	Changes []LineChange
}

// GenerateDiff compares two line slices of equal length. It returns nil when
// nothing changed and an error when the line counts differ.
func GenerateDiff(path string, before, after []string) (*Diff, error) {
	if len(before) != len(after) {
		return nil, fmt.Errorf("line count changed from %d to %d", len(before), len(after))
	}

	var changes []LineChange
	for i := range before {
		if before[i] != after[i] {
			changes = append(changes, LineChange{Line: i + 1, Before: before[i], After: after[i]})
		}
	}

	if len(changes) == 0 {
		return nil, nil
	}
	return &Diff{Path: path, Changes: changes}, nil
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Changes) > 0
}

// String renders the diff in unified format with one hunk per changed line.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, change := range d.Changes {
		fmt.Fprintf(&builder, "@@ -%d,1 +%d,1 @@\n", change.Line, change.Line)
		builder.WriteString("-" + change.Before + "\n")
		builder.WriteString("+" + change.After + "\n")
	}

	return builder.String()
}
