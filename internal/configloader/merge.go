package configloader

import "github.com/yaklabco/linewidth/pkg/config"

// merge overlays override onto a copy of base and returns the merged config
// with the fields override set, by their yaml path.
//
// Unset means empty for plain strings, nil for pointers and slices; an
// explicitly empty comment text is kept so validation can reject it. A non-nil empty
// slice (e.g. `excluded_kinds: []`) clears the base value.
func merge(base, override *config.Config) (*config.Config, []string) {
	if base == nil {
		return override.Clone(), nil
	}
	result := base.Clone()
	if override == nil {
		return result, nil
	}
	src := override.Clone()

	var set []string
	mark := func(field string) { set = append(set, field) }

	if src.Breakpoints != nil {
		result.Breakpoints = src.Breakpoints
		mark("breakpoints")
	}

	if src.Comment.Text != nil {
		result.Comment.Text = src.Comment.Text
		mark("comment.text")
	}
	if src.Comment.Threshold != nil {
		result.Comment.Threshold = src.Comment.Threshold
		mark("comment.threshold")
	}
	if src.Comment.Auto != nil {
		result.Comment.Auto = src.Comment.Auto
		mark("comment.auto")
	}
	if src.Comment.RemoveAboveUpper != nil {
		result.Comment.RemoveAboveUpper = src.Comment.RemoveAboveUpper
		mark("comment.remove_above_upper")
	}
	if src.Comment.RemoveBelowLower != nil {
		result.Comment.RemoveBelowLower = src.Comment.RemoveBelowLower
		mark("comment.remove_below_lower")
	}
	if src.Comment.LineMarkers != nil {
		result.Comment.LineMarkers = src.Comment.LineMarkers
		mark("comment.line_markers")
	}

	if src.Style.Margin != nil {
		result.Style.Margin = src.Style.Margin
		mark("style.margin")
	}
	if src.Style.FontStyle != "" {
		result.Style.FontStyle = src.Style.FontStyle
		mark("style.font_style")
	}
	if src.Style.FontWeight != "" {
		result.Style.FontWeight = src.Style.FontWeight
		mark("style.font_weight")
	}
	if src.Style.Background != "" {
		result.Style.Background = src.Style.Background
		mark("style.background")
	}

	if src.ExcludedKinds != nil {
		result.ExcludedKinds = src.ExcludedKinds
		mark("excluded_kinds")
	}

	if src.Width.Unit != "" {
		result.Width.Unit = src.Width.Unit
		mark("width.unit")
	}

	return result, set
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result, _ = merge(result, cfg)
	}
	return result
}
