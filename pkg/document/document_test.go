package document_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/linewidth/pkg/adapter"
	"github.com/yaklabco/linewidth/pkg/document"
	"github.com/yaklabco/linewidth/pkg/fix"
)

func TestNew(t *testing.T) {
	t.Parallel()

	doc := document.New("main.go", "package main\n\nfunc main() {}\n")

	assert.Equal(t, "go", doc.Kind())
	assert.Equal(t, 3, doc.LineCount())
	assert.Equal(t, []string{"package main", "", "func main() {}"}, doc.Lines())
	assert.Equal(t, "package main\n\nfunc main() {}\n", doc.Content())
}

func TestNew_PreservesLineEndings(t *testing.T) {
	t.Parallel()

	tests := []string{
		"a\r\nb\r\n",
		"a\nb",
		"",
		"single line",
	}

	for _, content := range tests {
		doc := document.New("f.txt", content)
		assert.Equal(t, content, doc.Content())
	}
}

func TestNew_WithKind(t *testing.T) {
	t.Parallel()

	doc := document.New("unknown.xyz", "x", document.WithKind("python"))
	assert.Equal(t, "python", doc.Kind())
}

func TestType(t *testing.T) {
	t.Parallel()

	doc := document.New("f.go", "ab")
	doc.MoveCursor(0, 1)

	require.NoError(t, doc.Type("XY"))
	assert.Equal(t, "aXYb", doc.Content())

	line, column := doc.Cursor()
	assert.Equal(t, 0, line)
	assert.Equal(t, 3, column)
	assert.Equal(t, int64(1), doc.Version())
}

func TestType_Newline(t *testing.T) {
	t.Parallel()

	doc := document.New("f.go", "hello world")
	doc.MoveCursor(0, 5)

	require.NoError(t, doc.Type("\n"))
	assert.Equal(t, []string{"hello", " world"}, doc.Lines())

	line, column := doc.Cursor()
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, column)
}

func TestBackspace(t *testing.T) {
	t.Parallel()

	doc := document.New("f.go", "ab\ncd")
	doc.MoveCursor(1, 0)

	require.NoError(t, doc.Backspace())
	assert.Equal(t, "abcd", doc.Content())
	line, column := doc.Cursor()
	assert.Equal(t, 0, line)
	assert.Equal(t, 2, column)

	require.NoError(t, doc.Backspace())
	assert.Equal(t, "acd", doc.Content())

	doc.MoveCursor(0, 0)
	version := doc.Version()
	require.NoError(t, doc.Backspace())
	assert.Equal(t, version, doc.Version(), "backspace at start of document changes nothing")
}

func TestMoveCursor_Clamps(t *testing.T) {
	t.Parallel()

	doc := document.New("f.go", "héllo\nx")

	doc.MoveCursor(5, 50)
	line, column := doc.Cursor()
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, column)

	doc.MoveToEnd(0)
	line, column = doc.Cursor()
	assert.Equal(t, 0, line)
	assert.Equal(t, 5, column)
}

func TestApplyEdit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	doc := document.New("f.go", "x := 1")
	doc.MoveToEnd(0)

	err := doc.ApplyEdit(ctx, adapter.Edit{
		Line:    0,
		Version: 0,
		Change:  fix.TextEdit{StartOffset: 6, EndOffset: 6, NewText: " // note"},
	})
	require.NoError(t, err)
	assert.Equal(t, "x := 1 // note", doc.Content())

	_, column := doc.Cursor()
	assert.Equal(t, 14, column, "cursor at the insertion point moves past the new text")

	err = doc.ApplyEdit(ctx, adapter.Edit{
		Line:    0,
		Version: 1,
		Change:  fix.TextEdit{StartOffset: 6, EndOffset: 14},
	})
	require.NoError(t, err)
	assert.Equal(t, "x := 1", doc.Content())

	_, column = doc.Cursor()
	assert.Equal(t, 6, column)
}

func TestApplyEdit_CursorBeforeEdit(t *testing.T) {
	t.Parallel()

	doc := document.New("f.go", "abc")
	doc.MoveCursor(0, 1)

	require.NoError(t, doc.ApplyEdit(context.Background(), adapter.Edit{
		Change: fix.TextEdit{StartOffset: 3, EndOffset: 3, NewText: "def"},
	}))

	_, column := doc.Cursor()
	assert.Equal(t, 1, column)
}

func TestApplyEdit_Rejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	insert := fix.TextEdit{StartOffset: 0, EndOffset: 0, NewText: "x"}

	t.Run("stale version", func(t *testing.T) {
		t.Parallel()

		doc := document.New("f.go", "abc")
		require.NoError(t, doc.Type("z"))

		err := doc.ApplyEdit(ctx, adapter.Edit{Version: 0, Change: insert})
		assert.True(t, errors.Is(err, adapter.ErrStaleEdit))
		assert.Equal(t, "zabc", doc.Content())
	})

	t.Run("line out of range", func(t *testing.T) {
		t.Parallel()

		doc := document.New("f.go", "abc")
		err := doc.ApplyEdit(ctx, adapter.Edit{Line: 3, Change: insert})
		assert.True(t, errors.Is(err, adapter.ErrStaleEdit))
	})

	t.Run("read-only", func(t *testing.T) {
		t.Parallel()

		doc := document.New("f.go", "abc", document.WithReadOnly())
		err := doc.ApplyEdit(ctx, adapter.Edit{Change: insert})
		assert.True(t, errors.Is(err, adapter.ErrReadOnly))
		assert.True(t, errors.Is(doc.Type("x"), adapter.ErrReadOnly))
	})

	t.Run("closed", func(t *testing.T) {
		t.Parallel()

		doc := document.New("f.go", "abc")
		doc.Close()

		assert.True(t, errors.Is(doc.ApplyEdit(ctx, adapter.Edit{Change: insert}), adapter.ErrHostUnavailable))
		_, err := doc.CurrentLine(ctx)
		assert.True(t, errors.Is(err, adapter.ErrHostUnavailable))
	})

	t.Run("invalid range", func(t *testing.T) {
		t.Parallel()

		doc := document.New("f.go", "abc")
		err := doc.ApplyEdit(ctx, adapter.Edit{Change: fix.TextEdit{StartOffset: 2, EndOffset: 10}})
		var validationErr *fix.ValidationError
		assert.True(t, errors.As(err, &validationErr))
	})
}

func TestOverlayAndNotifications(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	doc := document.New("f.go", "abc")

	_, ok := doc.Overlay()
	assert.False(t, ok)

	doc.RenderOverlay(ctx, adapter.Overlay{Line: 0, Width: 3})
	overlay, ok := doc.Overlay()
	require.True(t, ok)
	assert.Equal(t, 3, overlay.Width)

	doc.ClearOverlay(ctx)
	_, ok = doc.Overlay()
	assert.False(t, ok)

	doc.Notify(ctx, adapter.Notification{Severity: adapter.SeverityError, Message: "boom"})
	require.Len(t, doc.Notifications(), 1)
	assert.Equal(t, "boom", doc.Notifications()[0].Message)
}

func TestLine(t *testing.T) {
	t.Parallel()

	doc := document.New("f.go", "a\nb")
	assert.Equal(t, "b", doc.Line(1))
	assert.Empty(t, doc.Line(2))
	assert.Empty(t, doc.Line(-1))
}
