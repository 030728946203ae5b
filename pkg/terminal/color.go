package terminal

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/senkyo/pkg/compare"
)

var swingAttrs = map[compare.Swing][]color.Attribute{
	compare.SwingSurge:    {color.FgGreen, color.Bold},
	compare.SwingGain:     {color.FgGreen},
	compare.SwingStable:   {color.Faint},
	compare.SwingLoss:     {color.FgRed},
	compare.SwingCollapse: {color.FgRed, color.Bold},
}

// SwingLabel returns the bucket label coloured by direction. Colour follows
// color.NoColor.
func SwingLabel(s compare.Swing) string {
	return color.New(swingAttrs[s]...).Sprint(s.Label())
}

// Signed formats a rate difference with its sign, coloured green or red.
func Signed(v float64) string {
	text := fmt.Sprintf("%+.2f", v)

	switch {
	case v > 0:
		return color.GreenString(text)
	case v < 0:
		return color.RedString(text)
	default:
		return text
	}
}

// SetColor forces colour output on or off.
func SetColor(enabled bool) {
	color.NoColor = !enabled //nolint:reassign // library global toggle.
}
