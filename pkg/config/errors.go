package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration matches every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports invalid or missing settings.
type ConfigurationError struct {
	// Field is the path to the invalid field (e.g., "breakpoints[1].column").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the problem in human-readable terms.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// Is makes errors.Is(err, ErrConfiguration) true.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError builds a ConfigurationError for field.
func NewConfigurationError(field string, value any, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}

// Messages shared by validation and the core.
const (
	MsgBreakpointsEmpty     = "breakpoints must be a non-empty ordered list"
	MsgBreakpointsUnordered = "breakpoints must be ordered by ascending column without duplicates"
	MsgExcludedKinds        = "excluded document kinds must be a list of strings"
	MsgCommentTextEmpty     = "comment text must not be empty"
	MsgThresholdNegative    = "threshold must be >= 0"
)
