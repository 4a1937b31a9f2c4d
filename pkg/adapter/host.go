// Package adapter connects the width indicator and the comment toggler to a
// host editor. The host owns the document, the cursor, rendering and edits;
// the adapter reads a snapshot on every event and answers with declarative
// instructions.
package adapter

import (
	"context"
	"errors"

	"github.com/yaklabco/linewidth/pkg/comment"
	"github.com/yaklabco/linewidth/pkg/config"
	"github.com/yaklabco/linewidth/pkg/fix"
	"github.com/yaklabco/linewidth/pkg/indicator"
)

// Errors a Host may return.
var (
	// ErrHostUnavailable means there is no active document. The adapter does nothing.
	ErrHostUnavailable = errors.New("no active document")

	// ErrStaleEdit means the document changed after the edit was computed.
	// The adapter discards the edit without reporting it.
	ErrStaleEdit = errors.New("document changed since the edit was computed")

	// ErrReadOnly means the document cannot be modified.
	ErrReadOnly = errors.New("document is read-only")
)

// Line is a snapshot of the line holding the cursor.
type Line struct {
	// Number is the 0-based line index in the document.
	Number int

	// Text is the line content without the line terminator.
	Text string

	// Cursor is the cursor column in runes from the start of the line.
	Cursor int

	// Version identifies the document state the snapshot was taken from.
	Version int64
}

// Edit asks the host to change a single line.
type Edit struct {
	// Line is the 0-based line index.
	Line int

	// Version is the document version the edit was computed against.
	// Hosts reject the edit with ErrStaleEdit when it no longer matches.
	Version int64

	// Change is expressed in byte offsets relative to the start of the line.
	Change fix.TextEdit

	// Kind records whether the edit inserts or removes the comment.
	Kind comment.Kind
}

// Overlay is the indicator drawn after the end of a line. It replaces any
// overlay previously rendered.
type Overlay struct {
	// Line is the 0-based line index.
	Line int

	// Width is the measured width of the line text.
	Width int

	Display indicator.Display
	Style   config.StyleConfig
}

// Severity classifies a Notification.
type Severity int

// Notification severities.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a message for the user.
type Notification struct {
	Severity Severity
	Message  string
	Err      error
}

// Host is the editor runtime the adapter drives.
type Host interface {
	// CurrentLine returns the line holding the cursor, or ErrHostUnavailable.
	CurrentLine(ctx context.Context) (Line, error)

	// DocumentKind returns the language of the active document.
	DocumentKind(ctx context.Context) (string, error)

	// ApplyEdit changes one line. It may return ErrStaleEdit or ErrReadOnly.
	ApplyEdit(ctx context.Context, edit Edit) error

	// SetCursor moves the cursor to a rune column on a line.
	SetCursor(ctx context.Context, line, column int) error

	RenderOverlay(ctx context.Context, overlay Overlay)
	ClearOverlay(ctx context.Context)
	Notify(ctx context.Context, n Notification)
}
