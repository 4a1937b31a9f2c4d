package comment

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/linewidth/pkg/fix"
	"github.com/yaklabco/linewidth/pkg/indicator"
)

// Kind is the outcome of Decide.
type Kind int

// Action kinds.
const (
	None Kind = iota
	Insert
	Remove
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Remove:
		return "remove"
	default:
		return "none"
	}
}

// Action is a comment edit for a single line. Columns are rune offsets from
// the start of the line; Start == End for an insertion.
type Action struct {
	Kind  Kind
	Start int
	End   int

	// Text is inserted at Start. Empty for removals.
	Text string

	// Cursor is the cursor column the decision was made with.
	Cursor int
}

// Decide chooses whether to insert or remove the trailing comment on line.
//
// With suffix = " " + Text, lower = lastColumn + width(suffix) and
// upper = lower + Threshold:
//
//   - insert when lastColumn < width <= lastColumn+Threshold and the suffix is absent
//   - remove when the suffix is present and width > upper (RemoveAboveUpper)
//   - remove when the suffix is present and width <= lower (RemoveBelowLower)
//
// Decide is pure: the same inputs always give the same Action.
func Decide(line string, cursor int, s Settings, lastColumn int, measure indicator.Measure) Action {
	if !s.Auto || IsCommentLine(line, s.Markers) {
		return Action{Kind: None, Cursor: cursor}
	}
	if measure == nil {
		measure = indicator.MeasureChars
	}

	suffix := s.Suffix()
	width := measure(line)
	lower := lastColumn + measure(suffix)
	upper := lower + s.Threshold
	has := strings.HasSuffix(line, suffix)
	eol := utf8.RuneCountInString(line)

	switch {
	case !has && lastColumn < width && width <= lastColumn+s.Threshold:
		return Action{Kind: Insert, Start: eol, End: eol, Text: suffix, Cursor: cursor}
	case has && width > upper && s.RemoveAboveUpper,
		has && width <= lower && s.RemoveBelowLower:
		return Action{Kind: Remove, Start: eol - utf8.RuneCountInString(suffix), End: eol, Cursor: cursor}
	default:
		return Action{Kind: None, Cursor: cursor}
	}
}

// Edit converts the action into a byte-offset edit against line, the text
// the action was decided on.
func (a Action) Edit(line string) fix.TextEdit {
	return fix.TextEdit{
		StartOffset: byteOffset(line, a.Start),
		EndOffset:   byteOffset(line, a.End),
		NewText:     a.Text,
	}
}

// RestoresCursor reports whether the caller must move the cursor back to
// Start after applying the action: only for an insertion made while the
// cursor sat exactly at the end of the line.
func (a Action) RestoresCursor() bool {
	return a.Kind == Insert && a.Cursor == a.Start
}

// Apply returns line with the action applied.
func (a Action) Apply(line string) string {
	if a.Kind == None {
		return line
	}
	return fix.ApplyEdits(line, []fix.TextEdit{a.Edit(line)})
}

func byteOffset(line string, column int) int {
	if column <= 0 {
		return 0
	}
	seen := 0
	for offset := range line {
		if seen == column {
			return offset
		}
		seen++
	}
	return len(line)
}
