package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/linewidth/pkg/config"
)

// envVarPrefix is the prefix for all linewidth environment variables.
const envVarPrefix = "LINEWIDTH_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
	envTypeBreakpoints
)

type envMapping struct {
	field string
	typ   envFieldType
	help  string

	// keepEmpty applies a variable that is set but empty instead of
	// ignoring it.
	keepEmpty bool
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"BREAKPOINTS":        {field: "breakpoints", typ: envTypeBreakpoints, help: `Breakpoints as "column:color" pairs, e.g. "80:#0f0,100:#ff0"`},
	"COMMENT_TEXT":       {field: "comment.text", typ: envTypeString, help: "Ignore comment text, without the leading space", keepEmpty: true},
	"COMMENT_THRESHOLD":  {field: "comment.threshold", typ: envTypeInt, help: "Width past the last breakpoint within which the comment is inserted"},
	"COMMENT_AUTO":       {field: "comment.auto", typ: envTypeBool, help: "Insert and remove the comment automatically: true or false"},
	"REMOVE_ABOVE_UPPER": {field: "comment.remove_above_upper", typ: envTypeBool, help: "Remove the comment when the line outgrows the band: true or false"},
	"REMOVE_BELOW_LOWER": {field: "comment.remove_below_lower", typ: envTypeBool, help: "Remove the comment when the line shrinks below the band: true or false"},
	"LINE_MARKERS":       {field: "comment.line_markers", typ: envTypeSlice, help: "Comma-separated comment-line prefixes"},
	"EXCLUDED_KINDS":     {field: "excluded_kinds", typ: envTypeSlice, help: "Comma-separated document kinds to ignore"},
	"STYLE_MARGIN":       {field: "style.margin", typ: envTypeInt, help: "Cells between the line and the label"},
	"WIDTH_UNIT":         {field: "width.unit", typ: envTypeString, help: "Width unit: chars or cells"},
}

// FromEnv builds a partial configuration from LINEWIDTH_* variables read
// through lookup. Unset variables leave their fields unset, and so do empty
// ones except LINEWIDTH_COMMENT_TEXT, where an empty value is a
// configuration error once validated.
func FromEnv(lookup func(string) (string, bool)) (*config.Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := &config.Config{}
	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value, ok := lookup(envVar)
		if !ok || (value == "" && !mapping.keepEmpty) {
			continue
		}
		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return config.NewConfigurationError(mapping.field, value,
				"invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return config.NewConfigurationError(mapping.field, value, "invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	case envTypeBreakpoints:
		breakpoints, err := ParseBreakpoints(value)
		if err != nil {
			return config.NewConfigurationError(mapping.field, value, "invalid breakpoints for %s: %v", envVar, err)
		}
		cfg.Breakpoints = breakpoints
		return nil
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// ParseBreakpoints parses "column:color" pairs separated by commas. Commas
// inside parentheses belong to the color, so "80:rgb(0, 255, 0)" is one pair.
func ParseBreakpoints(value string) ([]config.Breakpoint, error) {
	var breakpoints []config.Breakpoint
	for _, pair := range splitTopLevel(value) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		column, color, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("%q is not column:color", pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(column))
		if err != nil {
			return nil, fmt.Errorf("%q: column must be an integer", pair)
		}
		breakpoints = append(breakpoints, config.Breakpoint{Column: n, Color: strings.TrimSpace(color)})
	}
	if len(breakpoints) == 0 {
		return nil, fmt.Errorf("no breakpoints in %q", value)
	}
	return breakpoints, nil
}

func splitTopLevel(value string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range value {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, value[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, value[start:])
}

// parseSliceValue parses a comma-separated string into a trimmed slice.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "comment.text":
		cfg.Comment.Text = config.String(value)
	case "width.unit":
		cfg.Width.Unit = config.WidthUnit(strings.ToLower(strings.TrimSpace(value)))
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "comment.auto":
		cfg.Comment.Auto = config.Bool(value)
	case "comment.remove_above_upper":
		cfg.Comment.RemoveAboveUpper = config.Bool(value)
	case "comment.remove_below_lower":
		cfg.Comment.RemoveBelowLower = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "comment.threshold":
		cfg.Comment.Threshold = config.Int(value)
	case "style.margin":
		cfg.Style.Margin = config.Int(value)
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "comment.line_markers":
		cfg.Comment.LineMarkers = value
	case "excluded_kinds":
		cfg.ExcludedKinds = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the environment variable for a config field, or "".
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Field       string
	Description string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Field: mapping.field, Description: mapping.help})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
