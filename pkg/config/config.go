// Package config defines core configuration types for linewidth.
// These types are pure data structures; discovery, merging and validation
// live in internal/configloader.
package config

import "strings"

// Breakpoint is one tier of the stepped width classification.
// A line whose width is at or below Column (and above the previous
// breakpoint's column) is drawn in Color.
type Breakpoint struct {
	// Column is the inclusive upper bound of this tier.
	Column int `json:"column" yaml:"column" validate:"gte=0" jsonschema:"minimum=0"`

	// Color is an opaque color token handed to the renderer
	// (e.g. "#ff0000", "9", "red").
	Color string `json:"color" yaml:"color" validate:"required" jsonschema:"minLength=1"`
}

// CommentConfig controls the automatic formatter-suppression comment.
//
// Text, the booleans and the threshold are pointers so that a layered config
// file can tell "unset" apart from ""/"false"/"0" when merging.
type CommentConfig struct {
	// Text is the comment appended to the line, without the separating space.
	// Unset means the document's line-comment marker followed by
	// DefaultCommentBody, e.g. "// prettier-ignore" or "# prettier-ignore".
	Text *string `json:"text,omitempty" yaml:"text,omitempty"`

	// Threshold is the width past the last breakpoint within which the
	// comment is inserted.
	Threshold *int `json:"threshold,omitempty" yaml:"threshold,omitempty" validate:"omitnil,gte=0"`

	// Auto enables automatic insertion and removal.
	Auto *bool `json:"auto,omitempty" yaml:"auto,omitempty"`

	// RemoveAboveUpper removes the comment once the line grows past the band.
	RemoveAboveUpper *bool `json:"remove_above_upper,omitempty" yaml:"remove_above_upper,omitempty"`

	// RemoveBelowLower removes the comment once the line shrinks below the band.
	RemoveBelowLower *bool `json:"remove_below_lower,omitempty" yaml:"remove_below_lower,omitempty"`

	// LineMarkers are the prefixes identifying a comment-only line.
	// Empty means "derive from the document kind".
	LineMarkers []string `json:"line_markers,omitempty" yaml:"line_markers,omitempty" validate:"dive,required"`
}

// Font styles accepted by StyleConfig.FontStyle.
const (
	FontStyleNormal = "normal"
	FontStyleItalic = "italic"
)

// Font weights accepted by StyleConfig.FontWeight.
const (
	FontWeightNormal = "normal"
	FontWeightBold   = "bold"
)

// StyleConfig controls how the overlay is drawn next to the line.
type StyleConfig struct {
	// Margin is the gap, in cells, between the end of the text and the label.
	Margin *int `json:"margin,omitempty" yaml:"margin,omitempty" validate:"omitnil,gte=0"`

	// FontStyle is "normal" or "italic".
	FontStyle string `json:"font_style,omitempty" yaml:"font_style,omitempty" validate:"omitempty,oneof=normal italic"`

	// FontWeight is "normal" or "bold".
	FontWeight string `json:"font_weight,omitempty" yaml:"font_weight,omitempty" validate:"omitempty,oneof=normal bold"`

	// Background is an optional color token for the label background.
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
}

// WidthUnit selects how line width is measured.
type WidthUnit string

const (
	// UnitChars counts Unicode code points.
	UnitChars WidthUnit = "chars"
	// UnitCells counts terminal display cells (wide runes count twice).
	UnitCells WidthUnit = "cells"
)

// IsValid returns true if the unit is known.
func (u WidthUnit) IsValid() bool {
	switch u {
	case UnitChars, UnitCells:
		return true
	default:
		return false
	}
}

// WidthConfig controls width measurement.
type WidthConfig struct {
	Unit WidthUnit `json:"unit,omitempty" yaml:"unit,omitempty" validate:"omitempty,oneof=chars cells" jsonschema:"enum=chars,enum=cells"`
}

// Config is the root configuration structure for linewidth.
type Config struct {
	// Breakpoints is the ordered list of width tiers. The last breakpoint's
	// column is the formatting limit used by the comment toggler.
	Breakpoints []Breakpoint `json:"breakpoints,omitempty" yaml:"breakpoints,omitempty" validate:"dive"`

	// Comment configures the automatic ignore comment.
	Comment CommentConfig `json:"comment" yaml:"comment"`

	// Style configures the overlay appearance.
	Style StyleConfig `json:"style" yaml:"style"`

	// ExcludedKinds lists document kinds (languages) the indicator ignores.
	ExcludedKinds []string `json:"excluded_kinds,omitempty" yaml:"excluded_kinds,omitempty" validate:"dive,required"`

	// Width configures width measurement.
	Width WidthConfig `json:"width" yaml:"width"`
}

// Default values.
const (
	DefaultCommentBody = "prettier-ignore"
	DefaultCommentText = "// " + DefaultCommentBody
	DefaultThreshold   = 5
	DefaultMargin      = 2
)

// DefaultBreakpoints returns the default tiers: green up to 80, yellow up to
// 100, orange up to 110 and red beyond.
func DefaultBreakpoints() []Breakpoint {
	return []Breakpoint{
		{Column: 80, Color: "#00ff00"},
		{Column: 100, Color: "#ffff00"},
		{Column: 110, Color: "#ffa500"},
		{Column: 120, Color: "#ff0000"},
	}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Breakpoints: DefaultBreakpoints(),
		Comment: CommentConfig{
			Threshold:        Int(DefaultThreshold),
			Auto:             Bool(true),
			RemoveAboveUpper: Bool(true),
			RemoveBelowLower: Bool(true),
		},
		Style: StyleConfig{
			Margin:     Int(DefaultMargin),
			FontStyle:  FontStyleNormal,
			FontWeight: FontWeightNormal,
		},
		ExcludedKinds: []string{"markdown", "text"},
		Width:         WidthConfig{Unit: UnitChars},
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// String returns a pointer to s.
func String(s string) *string { return &s }

// LastColumn returns the column of the last breakpoint, the formatting limit.
// It returns -1 when no breakpoints are configured.
func (c *Config) LastColumn() int {
	if c == nil || len(c.Breakpoints) == 0 {
		return -1
	}
	return c.Breakpoints[len(c.Breakpoints)-1].Column
}

// IsExcluded reports whether documents of the given kind are ignored.
// Kinds are compared case-insensitively.
func (c *Config) IsExcluded(kind string) bool {
	if c == nil || kind == "" {
		return false
	}
	for _, excluded := range c.ExcludedKinds {
		if strings.EqualFold(excluded, kind) {
			return true
		}
	}
	return false
}

// TextValue returns the configured text, or "" and false when it is unset.
func (c CommentConfig) TextValue() (string, bool) {
	if c.Text == nil {
		return "", false
	}
	return *c.Text, true
}

// ThresholdValue returns the configured threshold or the default.
func (c CommentConfig) ThresholdValue() int {
	if c.Threshold == nil {
		return DefaultThreshold
	}
	return *c.Threshold
}

// AutoEnabled returns whether automatic toggling is on (default true).
func (c CommentConfig) AutoEnabled() bool {
	return c.Auto == nil || *c.Auto
}

// RemoveAbove returns whether upper-overflow removal is on (default true).
func (c CommentConfig) RemoveAbove() bool {
	return c.RemoveAboveUpper == nil || *c.RemoveAboveUpper
}

// RemoveBelow returns whether lower-underflow removal is on (default true).
func (c CommentConfig) RemoveBelow() bool {
	return c.RemoveBelowLower == nil || *c.RemoveBelowLower
}

// MarginValue returns the configured margin or the default.
func (s StyleConfig) MarginValue() int {
	if s.Margin == nil {
		return DefaultMargin
	}
	return *s.Margin
}
