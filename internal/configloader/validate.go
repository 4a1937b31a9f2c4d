package configloader

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yaklabco/linewidth/pkg/comment"
	"github.com/yaklabco/linewidth/pkg/config"
)

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are problems that prevent loading.
	Errors []*config.ConfigurationError

	// Warnings are settings that load but probably do not do what was meant.
	Warnings []*config.ConfigurationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err returns the first error, or nil.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors[0]
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

var (
	validateOnce sync.Once
	structCheck  *validator.Validate
)

// structValidator returns a validator that reports fields by their yaml name.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		structCheck = validator.New(validator.WithRequiredStructEnabled())
		structCheck.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return structCheck
}

// Validate checks a configuration: struct tags first, then the semantic
// checks of config.Config.Problems. A field reported by both is listed once.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		result.Errors = cfg.Problems()
		return result
	}

	seen := make(map[string]bool)
	for _, problem := range cfg.Problems() {
		seen[problem.Field] = true
		result.Errors = append(result.Errors, problem)
	}

	// The settings the toggler will run with, as resolved for any document.
	if err := comment.SettingsFrom(cfg.Comment, "").Validate(); err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) && !seen[cfgErr.Field] {
			seen[cfgErr.Field] = true
			result.Errors = append(result.Errors, cfgErr)
		}
	}

	var fieldErrs validator.ValidationErrors
	if err := structValidator().Struct(cfg); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			field := fieldPath(fe)
			if seen[field] {
				continue
			}
			seen[field] = true
			result.Errors = append(result.Errors, config.NewConfigurationError(field, fe.Value(), "%s", describe(fe)))
		}
	}

	if cfg.Comment.AutoEnabled() && cfg.Comment.Threshold != nil && *cfg.Comment.Threshold == 0 {
		result.Warnings = append(result.Warnings, config.NewConfigurationError(
			"comment.threshold", 0, "threshold is 0; the comment is never inserted"))
	}
	if !cfg.Comment.AutoEnabled() && (cfg.Comment.RemoveAboveUpper != nil || cfg.Comment.RemoveBelowLower != nil) {
		result.Warnings = append(result.Warnings, config.NewConfigurationError(
			"comment.auto", false, "comment.auto is false; removal settings have no effect"))
	}

	return result
}

// ValidateWithFile validates cfg and attributes every finding to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, e := range result.Errors {
		e.FilePath = filePath
	}
	for _, w := range result.Warnings {
		w.FilePath = filePath
	}
	return result
}

// fieldPath drops the root type name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	_, path, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return path
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gte":
		return "must be >= " + fe.Param()
	case "oneof":
		return fmt.Sprintf("invalid value %q; must be one of: %s", fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
