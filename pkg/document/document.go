// Package document is an in-memory text buffer that implements
// adapter.Host. The CLI uses it to run the adapter over files and in the
// interactive editor.
package document

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/yaklabco/linewidth/pkg/adapter"
	"github.com/yaklabco/linewidth/pkg/fix"
	"github.com/yaklabco/linewidth/pkg/langdetect"
)

// Option configures a Document.
type Option func(*Document)

// WithKind overrides language detection.
func WithKind(kind string) Option {
	return func(d *Document) {
		d.kind = kind
	}
}

// WithReadOnly makes every edit fail with adapter.ErrReadOnly.
func WithReadOnly() Option {
	return func(d *Document) {
		d.readOnly = true
	}
}

// Document holds lines of text, a cursor, and the overlay and notifications
// the adapter produced. It is safe for concurrent use.
type Document struct {
	mu sync.Mutex

	path     string
	kind     string
	lines    []string
	newline  string
	trailing bool

	line   int
	column int

	version  int64
	readOnly bool
	closed   bool

	overlay       *adapter.Overlay
	notifications []adapter.Notification
}

// New creates a document from content. The cursor starts at the beginning.
func New(path, content string, opts ...Option) *Document {
	d := &Document{path: path, newline: "\n"}

	if strings.Contains(content, "\r\n") {
		d.newline = "\r\n"
	}
	body := content
	if strings.HasSuffix(body, d.newline) {
		d.trailing = true
		body = strings.TrimSuffix(body, d.newline)
	}
	d.lines = strings.Split(body, d.newline)

	for _, opt := range opts {
		opt(d)
	}
	if d.kind == "" {
		d.kind = langdetect.Kind(path, []byte(content))
	}
	return d
}

// Path returns the file path the document was created with.
func (d *Document) Path() string {
	return d.path
}

// Kind returns the document language.
func (d *Document) Kind() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.kind
}

// Content returns the full text, preserving the original line endings.
func (d *Document) Content() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	content := strings.Join(d.lines, d.newline)
	if d.trailing {
		content += d.newline
	}
	return content
}

// Lines returns a copy of the lines.
func (d *Document) Lines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Line returns the text of line n, or "" when out of range.
func (d *Document) Line(n int) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n < 0 || n >= len(d.lines) {
		return ""
	}
	return d.lines[n]
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.lines)
}

// Version increases with every change to the text.
func (d *Document) Version() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

// Cursor returns the cursor line and rune column.
func (d *Document) Cursor() (line, column int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.line, d.column
}

// Overlay returns the overlay currently shown, if any.
func (d *Document) Overlay() (adapter.Overlay, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.overlay == nil {
		return adapter.Overlay{}, false
	}
	return *d.overlay, true
}

// Notifications returns every notification received so far.
func (d *Document) Notifications() []adapter.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]adapter.Notification, len(d.notifications))
	copy(out, d.notifications)
	return out
}

// Close detaches the document; host calls then report
// adapter.ErrHostUnavailable.
func (d *Document) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.overlay = nil
}

// MoveCursor places the cursor, clamped to the document.
func (d *Document) MoveCursor(line, column int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.moveCursor(line, column)
}

func (d *Document) moveCursor(line, column int) {
	line = max(0, min(line, len(d.lines)-1))
	column = max(0, min(column, utf8.RuneCountInString(d.lines[line])))
	d.line, d.column = line, column
}

// MoveToEnd places the cursor at the end of a line.
func (d *Document) MoveToEnd(line int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.moveCursor(line, utf8.RuneCountInString(d.lines[max(0, min(line, len(d.lines)-1))]))
}

// Type inserts text at the cursor like a keystroke and moves the cursor past
// it. A "\n" splits the line.
func (d *Document) Type(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return adapter.ErrReadOnly
	}

	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			d.splitLine()
		}
		if part == "" {
			continue
		}
		current := d.lines[d.line]
		offset := byteOffset(current, d.column)
		d.lines[d.line] = current[:offset] + part + current[offset:]
		d.column += utf8.RuneCountInString(part)
	}
	d.version++
	return nil
}

func (d *Document) splitLine() {
	current := d.lines[d.line]
	offset := byteOffset(current, d.column)

	d.lines = append(d.lines, "")
	copy(d.lines[d.line+2:], d.lines[d.line+1:])
	d.lines[d.line] = current[:offset]
	d.lines[d.line+1] = current[offset:]
	d.line++
	d.column = 0
}

// Backspace deletes the rune before the cursor, joining lines at column 0.
func (d *Document) Backspace() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return adapter.ErrReadOnly
	}

	switch {
	case d.column > 0:
		current := d.lines[d.line]
		start := byteOffset(current, d.column-1)
		end := byteOffset(current, d.column)
		d.lines[d.line] = current[:start] + current[end:]
		d.column--
	case d.line > 0:
		prev := d.lines[d.line-1]
		d.lines[d.line-1] = prev + d.lines[d.line]
		d.lines = append(d.lines[:d.line], d.lines[d.line+1:]...)
		d.line--
		d.column = utf8.RuneCountInString(prev)
	default:
		return nil
	}
	d.version++
	return nil
}

// CurrentLine implements adapter.Host.
func (d *Document) CurrentLine(_ context.Context) (adapter.Line, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return adapter.Line{}, adapter.ErrHostUnavailable
	}
	return adapter.Line{
		Number:  d.line,
		Text:    d.lines[d.line],
		Cursor:  d.column,
		Version: d.version,
	}, nil
}

// DocumentKind implements adapter.Host.
func (d *Document) DocumentKind(_ context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return "", adapter.ErrHostUnavailable
	}
	return d.kind, nil
}

// ApplyEdit implements adapter.Host. The cursor keeps its place in the text:
// it moves past text inserted at or before it and back over removed text.
func (d *Document) ApplyEdit(_ context.Context, edit adapter.Edit) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case d.closed:
		return adapter.ErrHostUnavailable
	case d.readOnly:
		return adapter.ErrReadOnly
	case edit.Version != d.version, edit.Line < 0, edit.Line >= len(d.lines):
		return adapter.ErrStaleEdit
	}

	before := d.lines[edit.Line]
	after, err := fix.Apply(before, edit.Change)
	if err != nil {
		return fmt.Errorf("line %d: %w", edit.Line+1, err)
	}

	d.lines[edit.Line] = after
	d.version++

	if d.line == edit.Line {
		start := utf8.RuneCountInString(before[:edit.Change.StartOffset])
		end := utf8.RuneCountInString(before[:edit.Change.EndOffset])
		inserted := utf8.RuneCountInString(edit.Change.NewText)

		switch {
		case d.column >= end:
			d.column += inserted - (end - start)
		case d.column > start:
			d.column = start
		}
	}
	return nil
}

// SetCursor implements adapter.Host.
func (d *Document) SetCursor(_ context.Context, line, column int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return adapter.ErrHostUnavailable
	}
	d.moveCursor(line, column)
	return nil
}

// RenderOverlay implements adapter.Host.
func (d *Document) RenderOverlay(_ context.Context, overlay adapter.Overlay) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overlay = &overlay
}

// ClearOverlay implements adapter.Host.
func (d *Document) ClearOverlay(_ context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overlay = nil
}

// Notify implements adapter.Host.
func (d *Document) Notify(_ context.Context, n adapter.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifications = append(d.notifications, n)
}

func byteOffset(text string, column int) int {
	seen := 0
	for offset := range text {
		if seen == column {
			return offset
		}
		seen++
	}
	return len(text)
}

var _ adapter.Host = (*Document)(nil)
