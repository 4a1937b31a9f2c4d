// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError   = "error"
	FieldPath    = "path"
	FieldPaths   = "paths"
	FieldFiles   = "files"
	FieldSource  = "source"
	FieldCommand = "command"

	// Configuration fields.
	FieldFix    = "fix"
	FieldDryRun = "dry_run"
	FieldFormat = "format"
	FieldUnit   = "unit"

	// Document fields.
	FieldKind    = "kind"
	FieldLine    = "line"
	FieldColumn  = "column"
	FieldWidth   = "width"
	FieldVersion = "version"

	// Decision fields.
	FieldEvent  = "event"
	FieldAction = "action"
	FieldColor  = "color"
	FieldLabel  = "label"

	// Statistics fields.
	FieldFilesProcessed = "files_processed"
	FieldFilesModified  = "files_modified"
	FieldLinesOver      = "lines_over"
	FieldEdits          = "edits"

	// Build fields.
	FieldCommit = "commit"
	FieldBuilt  = "built"
)
