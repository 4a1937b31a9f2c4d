package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every setting. If false, only breakpoints and the
	// comment are written.
	Full bool

	// Format is the output format: "yaml" or "json". JSON output carries
	// comments and is meant to be read back as JSONC.
	Format string
}

// GenerateTemplate creates a configuration file template from the defaults.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml":
		return generateYAMLTemplate(opts), nil
	case "json":
		return generateJSONTemplate(opts), nil
	default:
		return nil, fmt.Errorf("unknown template format %q", opts.Format)
	}
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	defaults := NewConfig()

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	buf.WriteString("# Width tiers in ascending column order. The last column is the\n")
	buf.WriteString("# formatting limit the ignore comment is measured against.\n")
	buf.WriteString("breakpoints:\n")
	for _, bp := range defaults.Breakpoints {
		fmt.Fprintf(&buf, "  - column: %d\n    color: %q\n", bp.Column, bp.Color)
	}

	buf.WriteString("\n# Formatter-suppression comment\n")
	buf.WriteString("comment:\n")
	buf.WriteString("  # Unset, the text follows the document's comment syntax: \"// prettier-ignore\"\n")
	buf.WriteString("  # in Go or TypeScript, \"# prettier-ignore\" in Python, shell or YAML.\n")
	fmt.Fprintf(&buf, "  # text: %q\n", DefaultCommentText)
	buf.WriteString("  # Width past the last breakpoint within which the comment is added\n")
	fmt.Fprintf(&buf, "  threshold: %d\n", defaults.Comment.ThresholdValue())
	fmt.Fprintf(&buf, "  auto: %t\n", defaults.Comment.AutoEnabled())

	if !opts.Full {
		return buf.Bytes()
	}

	buf.WriteString("  # Remove the comment once the line outgrows the threshold band\n")
	fmt.Fprintf(&buf, "  remove_above_upper: %t\n", defaults.Comment.RemoveAbove())
	buf.WriteString("  # Remove the comment once the line shrinks back under the limit\n")
	fmt.Fprintf(&buf, "  remove_below_lower: %t\n", defaults.Comment.RemoveBelow())
	buf.WriteString("  # Prefixes marking a comment-only line; empty derives them from the\n")
	buf.WriteString("  # document kind\n")
	buf.WriteString("  # line_markers:\n  #   - \"//\"\n")

	buf.WriteString("\n# Overlay appearance\n")
	buf.WriteString("style:\n")
	fmt.Fprintf(&buf, "  margin: %d\n", defaults.Style.MarginValue())
	buf.WriteString("  # normal or italic\n")
	fmt.Fprintf(&buf, "  font_style: %s\n", defaults.Style.FontStyle)
	buf.WriteString("  # normal or bold\n")
	fmt.Fprintf(&buf, "  font_weight: %s\n", defaults.Style.FontWeight)
	buf.WriteString("  # background: \"#202020\"\n")

	buf.WriteString("\n# Document kinds (languages) without an indicator\n")
	buf.WriteString("excluded_kinds:\n")
	for _, kind := range defaults.ExcludedKinds {
		fmt.Fprintf(&buf, "  - %s\n", kind)
	}

	buf.WriteString("\n# Width measurement: chars (code points) or cells (display width)\n")
	buf.WriteString("width:\n")
	fmt.Fprintf(&buf, "  unit: %s\n", defaults.Width.Unit)

	return buf.Bytes()
}

func generateJSONTemplate(opts TemplateOptions) []byte {
	defaults := NewConfig()

	var buf bytes.Buffer
	buf.WriteString("{\n")
	buf.WriteString("  // Width tiers in ascending column order\n")
	buf.WriteString("  \"breakpoints\": [\n")
	for i, bp := range defaults.Breakpoints {
		sep := ","
		if i == len(defaults.Breakpoints)-1 {
			sep = ""
		}
		fmt.Fprintf(&buf, "    {\"column\": %d, \"color\": %q}%s\n", bp.Column, bp.Color, sep)
	}
	buf.WriteString("  ],\n")

	buf.WriteString("  // Formatter-suppression comment\n")
	buf.WriteString("  \"comment\": {\n")
	buf.WriteString("    // Unset, the text follows the document's comment syntax\n")
	fmt.Fprintf(&buf, "    // \"text\": %q,\n", DefaultCommentText)
	fmt.Fprintf(&buf, "    \"threshold\": %d,\n", defaults.Comment.ThresholdValue())
	if opts.Full {
		fmt.Fprintf(&buf, "    \"auto\": %t,\n", defaults.Comment.AutoEnabled())
		fmt.Fprintf(&buf, "    \"remove_above_upper\": %t,\n", defaults.Comment.RemoveAbove())
		fmt.Fprintf(&buf, "    \"remove_below_lower\": %t\n", defaults.Comment.RemoveBelow())
	} else {
		fmt.Fprintf(&buf, "    \"auto\": %t\n", defaults.Comment.AutoEnabled())
	}

	if !opts.Full {
		buf.WriteString("  }\n}\n")
		return buf.Bytes()
	}

	buf.WriteString("  },\n")
	buf.WriteString("  \"style\": {\n")
	fmt.Fprintf(&buf, "    \"margin\": %d,\n", defaults.Style.MarginValue())
	fmt.Fprintf(&buf, "    \"font_style\": %q,\n", defaults.Style.FontStyle)
	fmt.Fprintf(&buf, "    \"font_weight\": %q\n", defaults.Style.FontWeight)
	buf.WriteString("  },\n")

	quoted := make([]string, 0, len(defaults.ExcludedKinds))
	for _, kind := range defaults.ExcludedKinds {
		quoted = append(quoted, fmt.Sprintf("%q", kind))
	}
	fmt.Fprintf(&buf, "  \"excluded_kinds\": [%s],\n", strings.Join(quoted, ", "))
	buf.WriteString("  // chars or cells\n")
	fmt.Fprintf(&buf, "  \"width\": {\"unit\": %q}\n", defaults.Width.Unit)
	buf.WriteString("}\n")

	return buf.Bytes()
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# linewidth configuration
# See: https://github.com/yaklabco/linewidth`
}
