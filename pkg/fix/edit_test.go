package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/linewidth/pkg/fix"
)

func TestTextEdit_Kinds(t *testing.T) {
	t.Parallel()

	insert := fix.TextEdit{StartOffset: 3, EndOffset: 3, NewText: "x"}
	assert.True(t, insert.IsInsertion())
	assert.False(t, insert.IsDeletion())

	del := fix.TextEdit{StartOffset: 3, EndOffset: 5}
	assert.True(t, del.IsDeletion())
	assert.False(t, del.IsInsertion())

	noop := fix.TextEdit{StartOffset: 3, EndOffset: 3}
	assert.False(t, noop.IsInsertion())
	assert.False(t, noop.IsDeletion())
}

func TestTextEdit_Shift(t *testing.T) {
	t.Parallel()

	edit := fix.TextEdit{StartOffset: 2, EndOffset: 4, NewText: "ab"}
	shifted := edit.Shift(10)

	assert.Equal(t, fix.TextEdit{StartOffset: 12, EndOffset: 14, NewText: "ab"}, shifted)
	assert.Equal(t, 2, edit.StartOffset, "original is not modified")
}

func TestEditBuilder(t *testing.T) {
	t.Parallel()

	builder := fix.NewEditBuilder()
	builder.Insert(0, "a")
	builder.Delete(2, 4)
	builder.ReplaceRange(5, 6, "z")

	assert.Equal(t, []fix.TextEdit{
		{StartOffset: 0, EndOffset: 0, NewText: "a"},
		{StartOffset: 2, EndOffset: 4},
		{StartOffset: 5, EndOffset: 6, NewText: "z"},
	}, builder.Edits)
}
