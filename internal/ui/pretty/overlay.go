package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/linewidth/pkg/config"
	"github.com/yaklabco/linewidth/pkg/indicator"
)

// namedColors maps CSS-style names to hex so configs written for editors
// render the same in a terminal.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#00ff00",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"magenta": "#ff00ff",
	"cyan":    "#00ffff",
	"gray":    "#808080",
	"grey":    "#808080",
}

// NormalizeColor turns a color token into something lipgloss understands:
// "#rgb" and "#rrggbb" hex, "rgb(r, g, b)" and "rgba(r, g, b, a)", ANSI
// numbers and a few common names. Unknown tokens are returned unchanged.
func NormalizeColor(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))

	if hex, ok := namedColors[token]; ok {
		return hex
	}

	if strings.HasPrefix(token, "#") && len(token) == 4 {
		return "#" + strings.Repeat(token[1:2], 2) + strings.Repeat(token[2:3], 2) + strings.Repeat(token[3:4], 2)
	}

	if rest, ok := strings.CutPrefix(token, "rgba("); ok {
		return rgbToHex(rest)
	}
	if rest, ok := strings.CutPrefix(token, "rgb("); ok {
		return rgbToHex(rest)
	}

	return token
}

func rgbToHex(args string) string {
	args, ok := strings.CutSuffix(args, ")")
	if !ok {
		return ""
	}
	parts := strings.Split(args, ",")
	if len(parts) < 3 || len(parts) > 4 {
		return ""
	}

	var rgb [3]int
	for i := range rgb {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return ""
		}
		rgb[i] = v
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}

// LabelStyle builds the style for a remaining-width label.
func (s *Styles) LabelStyle(display indicator.Display, style config.StyleConfig) lipgloss.Style {
	label := lipgloss.NewStyle()
	if !s.colorEnabled {
		return label
	}

	if color := NormalizeColor(display.Color); color != "" {
		label = label.Foreground(lipgloss.Color(color))
	}
	if style.Background != "" {
		label = label.Background(lipgloss.Color(NormalizeColor(style.Background)))
	}
	if style.FontStyle == config.FontStyleItalic {
		label = label.Italic(true)
	}
	if style.FontWeight == config.FontWeightBold {
		label = label.Bold(true)
	}
	return label
}

// RenderLabel returns the margin followed by the styled label, ready to be
// appended after the line text.
func (s *Styles) RenderLabel(display indicator.Display, style config.StyleConfig) string {
	return strings.Repeat(" ", style.MarginValue()) + s.LabelStyle(display, style).Render(display.Label)
}
