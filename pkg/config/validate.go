package config

import (
	"fmt"
	"strings"
)

// Problems returns every semantic problem with the configuration, in field
// order. Struct-tag validation is done by the loader; these are the checks
// the core relies on.
func (c *Config) Problems() []*ConfigurationError {
	if c == nil {
		return []*ConfigurationError{NewConfigurationError("", nil, "configuration is missing")}
	}

	var problems []*ConfigurationError

	if len(c.Breakpoints) == 0 {
		problems = append(problems, NewConfigurationError("breakpoints", c.Breakpoints, MsgBreakpointsEmpty))
	}
	for i, bp := range c.Breakpoints {
		field := fmt.Sprintf("breakpoints[%d]", i)
		if bp.Column < 0 {
			problems = append(problems, NewConfigurationError(field+".column", bp.Column, "column must be >= 0"))
		}
		if strings.TrimSpace(bp.Color) == "" {
			problems = append(problems, NewConfigurationError(field+".color", bp.Color, "color must not be empty"))
		}
		if i > 0 && bp.Column <= c.Breakpoints[i-1].Column {
			problems = append(problems, NewConfigurationError(field+".column", bp.Column, MsgBreakpointsUnordered))
		}
	}

	if text, ok := c.Comment.TextValue(); ok && strings.TrimSpace(text) == "" {
		problems = append(problems, NewConfigurationError("comment.text", text, MsgCommentTextEmpty))
	}
	if c.Comment.Threshold != nil && *c.Comment.Threshold < 0 {
		problems = append(problems, NewConfigurationError("comment.threshold", *c.Comment.Threshold, MsgThresholdNegative))
	}
	for i, marker := range c.Comment.LineMarkers {
		if strings.TrimSpace(marker) == "" {
			problems = append(problems, NewConfigurationError(
				fmt.Sprintf("comment.line_markers[%d]", i), marker, "line marker must not be empty"))
		}
	}

	if c.Style.Margin != nil && *c.Style.Margin < 0 {
		problems = append(problems, NewConfigurationError("style.margin", *c.Style.Margin, "margin must be >= 0"))
	}

	for i, kind := range c.ExcludedKinds {
		if strings.TrimSpace(kind) == "" {
			problems = append(problems, NewConfigurationError(
				fmt.Sprintf("excluded_kinds[%d]", i), kind, MsgExcludedKinds))
		}
	}

	if c.Width.Unit != "" && !c.Width.Unit.IsValid() {
		problems = append(problems, NewConfigurationError(
			"width.unit", c.Width.Unit, "invalid width unit %q; must be one of: chars, cells", c.Width.Unit))
	}

	return problems
}

// Validate returns the first semantic problem, or nil.
func (c *Config) Validate() error {
	if problems := c.Problems(); len(problems) > 0 {
		return problems[0]
	}
	return nil
}
