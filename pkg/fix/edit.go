// Package fix provides text edit types and application logic for the
// edits the comment toggler asks a host to make.
package fix

// TextEdit represents a single text replacement within a line or buffer.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// IsInsertion reports whether the edit only adds text.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset && e.NewText != ""
}

// IsDeletion reports whether the edit only removes text.
func (e TextEdit) IsDeletion() bool {
	return e.NewText == "" && e.EndOffset > e.StartOffset
}

// Shift returns the edit moved by delta bytes, e.g. from line-relative to
// buffer-relative offsets.
func (e TextEdit) Shift(delta int) TextEdit {
	e.StartOffset += delta
	e.EndOffset += delta
	return e
}

// EditBuilder accumulates text edits.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates a new EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]TextEdit, 0),
	}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}
