// Package comment decides when a formatter-suppression comment should be
// appended to, or removed from, the line being edited.
package comment

import (
	"strings"

	"github.com/yaklabco/linewidth/pkg/config"
)

// DefaultMarkers are used when neither the configuration nor the document
// kind names any line-comment marker.
var DefaultMarkers = []string{"//"}

// Settings is the read-only view of the comment configuration used by Decide.
type Settings struct {
	// Text is the comment, without the separating space.
	Text string

	// Threshold is the width of the insert band past the last breakpoint.
	Threshold int

	Auto             bool
	RemoveAboveUpper bool
	RemoveBelowLower bool

	// Markers identify comment-only lines, which are never toggled.
	Markers []string
}

// SettingsFrom resolves the comment configuration for a document kind.
// Configured line markers win over the markers derived from the kind, and an
// unset text is written in the first marker's syntax. A configured text is
// used as is, even when empty; Validate rejects that.
func SettingsFrom(cfg config.CommentConfig, kind string) Settings {
	markers := cfg.LineMarkers
	if len(markers) == 0 {
		markers = MarkersFor(kind)
	}

	text, ok := cfg.TextValue()
	if !ok {
		text = DefaultText(markers)
	}

	return Settings{
		Text:             text,
		Threshold:        cfg.ThresholdValue(),
		Auto:             cfg.AutoEnabled(),
		RemoveAboveUpper: cfg.RemoveAbove(),
		RemoveBelowLower: cfg.RemoveBelow(),
		Markers:          markers,
	}
}

// Validate rejects settings Decide cannot work with.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.Text) == "" {
		return config.NewConfigurationError("comment.text", s.Text, config.MsgCommentTextEmpty)
	}
	if s.Threshold < 0 {
		return config.NewConfigurationError("comment.threshold", s.Threshold, config.MsgThresholdNegative)
	}
	return nil
}

// blockClosers terminate markers that open a block comment.
var blockClosers = map[string]string{
	"/*":   " */",
	"<!--": " -->",
}

// DefaultText is config.DefaultCommentBody written as a comment with the
// first of markers.
func DefaultText(markers []string) string {
	marker := DefaultMarkers[0]
	if len(markers) > 0 && markers[0] != "" {
		marker = markers[0]
	}
	return marker + " " + config.DefaultCommentBody + blockClosers[marker]
}

// Suffix is the exact text appended to a line: a space followed by Text.
func (s Settings) Suffix() string {
	return " " + s.Text
}

// IsCommentLine reports whether line, after leading whitespace, starts with
// one of the markers.
func IsCommentLine(line string, markers []string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, marker := range markers {
		if marker != "" && strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// markersByKind maps lowercased language names, as reported by
// langdetect, to their line-comment markers.
var markersByKind = map[string][]string{
	"c":            {"//"},
	"c++":          {"//"},
	"c#":           {"//"},
	"css":          {"/*"},
	"html":         {"<!--"},
	"xml":          {"<!--"},
	"dart":         {"//"},
	"go":           {"//"},
	"java":         {"//"},
	"javascript":   {"//"},
	"jsx":          {"//"},
	"kotlin":       {"//"},
	"objective-c":  {"//"},
	"php":          {"//", "#"},
	"rust":         {"//"},
	"scala":        {"//"},
	"swift":        {"//"},
	"tsx":          {"//"},
	"typescript":   {"//"},
	"zig":          {"//"},
	"dockerfile":   {"#"},
	"elixir":       {"#"},
	"makefile":     {"#"},
	"nim":          {"#"},
	"perl":         {"#"},
	"powershell":   {"#"},
	"python":       {"#"},
	"r":            {"#"},
	"ruby":         {"#"},
	"shell":        {"#"},
	"bash":         {"#"},
	"toml":         {"#"},
	"yaml":         {"#"},
	"ada":          {"--"},
	"elm":          {"--"},
	"haskell":      {"--"},
	"lua":          {"--"},
	"plsql":        {"--"},
	"sql":          {"--"},
	"tsql":         {"--"},
	"clojure":      {";"},
	"common lisp":  {";"},
	"emacs lisp":   {";"},
	"racket":       {";"},
	"scheme":       {";"},
	"erlang":       {"%"},
	"matlab":       {"%"},
	"tex":          {"%"},
	"vim script":   {"\""},
	"visual basic": {"'"},
}

// MarkersFor returns the line-comment markers for a document kind, falling
// back to DefaultMarkers for unknown kinds.
func MarkersFor(kind string) []string {
	if markers, ok := markersByKind[strings.ToLower(kind)]; ok {
		return markers
	}
	return DefaultMarkers
}
