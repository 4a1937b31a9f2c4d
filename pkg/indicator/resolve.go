// Package indicator maps a line width onto a colored remaining-width label
// using an ordered list of breakpoints.
package indicator

import (
	"strconv"

	"github.com/yaklabco/linewidth/pkg/config"
)

// Display is what the host renders next to the current line.
type Display struct {
	// Color is the selected breakpoint's color token.
	Color string

	// Label is the decimal rendering of Remaining.
	Label string

	// Index is the position of the selected breakpoint.
	Index int

	// Remaining is the selected breakpoint's column minus the line width.
	// It is negative once the width exceeds that column.
	Remaining int
}

// Resolve selects the breakpoint applicable to a line of the given width.
//
// The selected breakpoint is the first one whose column is >= width; widths
// past the last breakpoint stay on the last one, so the label keeps going
// negative. An empty breakpoint list is a configuration error.
func Resolve(width int, breakpoints []config.Breakpoint) (Display, error) {
	if len(breakpoints) == 0 {
		return Display{}, config.NewConfigurationError("breakpoints", nil, config.MsgBreakpointsEmpty)
	}

	crossed := 0
	for _, bp := range breakpoints {
		if bp.Column < width {
			crossed++
		}
	}
	index := min(crossed, len(breakpoints)-1)

	remaining := breakpoints[index].Column - width
	return Display{
		Color:     breakpoints[index].Color,
		Label:     strconv.Itoa(remaining),
		Index:     index,
		Remaining: remaining,
	}, nil
}
