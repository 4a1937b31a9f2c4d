package indicator

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/linewidth/pkg/config"
)

// Measure returns the width of a line of text.
type Measure func(text string) int

// MeasureChars counts code points.
func MeasureChars(text string) int {
	return utf8.RuneCountInString(text)
}

// MeasureCells counts terminal display cells; East Asian wide runes count as
// two and zero-width runes as none.
func MeasureCells(text string) int {
	return runewidth.StringWidth(text)
}

// MeasureFor returns the measure for a configured unit. Unknown or empty units
// fall back to MeasureChars.
func MeasureFor(unit config.WidthUnit) Measure {
	if unit == config.UnitCells {
		return MeasureCells
	}
	return MeasureChars
}
