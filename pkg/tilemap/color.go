package tilemap

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/parties"
	"github.com/Sumatoshi-tech/senkyo/pkg/stats"
)

// RateCeiling is the vote rate that maps to a fully opaque party colour.
const RateCeiling = 55.0

// UnknownPartyColor is the tile base colour of a party missing from the catalogue.
const UnknownPartyColor = "#808080"

// TurnoutBaseColor shades the ward heat map when no party is targeted.
const TurnoutBaseColor = "#3b82f6"

const (
	minAlpha       = 0.2
	alphaSpan      = 0.8
	alphaPrecision = 1000

	// Rec. 601 luma above which a background counts as light.
	lightLuma = 140.0

	darkText  = "#1e3a8a"
	lightText = "#fff"
)

type band struct {
	min   float64
	color string
}

var turnoutBands = []band{
	{60, "#1e3a5f"},
	{55, "#1e40af"},
	{50, "#1d4ed8"},
	{45, "#2563eb"},
	{40, "#3b82f6"},
	{35, "#60a5fa"},
}

const turnoutFloor = "#93c5fd"

var changeBands = []band{
	{4, "#14532d"},
	{2, "#16a34a"},
	{0, "#4ade80"},
	{-2, "#fca5a5"},
	{-4, "#dc2626"},
}

const changeFloor = "#7f1d1d"

func pick(bands []band, v float64, floor string) string {
	for _, b := range bands {
		if v >= b.min {
			return b.color
		}
	}

	return floor
}

// TurnoutColor returns the blue step colour of a turnout percentage.
func TurnoutColor(turnout float64) string {
	return pick(turnoutBands, turnout, turnoutFloor)
}

// ChangeColor returns the green/red step colour of a turnout change in points.
func ChangeColor(diff float64) string {
	return pick(changeBands, diff, changeFloor)
}

// Alpha maps a normalized value to an opacity in [0.2, 1].
func Alpha(normalized float64) float64 {
	return stats.Clamp(minAlpha+normalized*alphaSpan, minAlpha, 1)
}

// PartyRateColor shades a party colour by vote rate.
func PartyRateColor(rate float64, hex string) string {
	return HexToRGBA(hex, Alpha(rate/RateCeiling))
}

// NormalizedColor shades hex by where value falls in [lo, hi]. A degenerate
// range yields the full colour.
func NormalizedColor(value, lo, hi float64, hex string) string {
	if hi == lo {
		return HexToRGBA(hex, 1)
	}

	return HexToRGBA(hex, Alpha((value-lo)/(hi-lo)))
}

// HeatmapFills colours each ward of a heat map by where its value falls
// between the smallest and largest value of the set. A targeted party shades
// its own colour; turnout shades TurnoutBaseColor.
func HeatmapFills(data []election.HeatmapData) []string {
	values := make([]float64, len(data))
	for i, d := range data {
		values[i] = d.Value
	}

	lo, hi := stats.MinMax(values)
	out := make([]string, len(data))

	for i, d := range data {
		base := TurnoutBaseColor
		if d.PartyName != "" {
			base = parties.Color(d.PartyName)
		}

		out[i] = NormalizedColor(d.Value, lo, hi, base)
	}

	return out
}

func parseHex(hex string) (r, g, b int64, ok bool) {
	if !strings.HasPrefix(hex, "#") || len(hex) < 7 {
		return 0, 0, 0, false
	}

	var err error

	if r, err = strconv.ParseInt(hex[1:3], 16, 64); err != nil {
		return 0, 0, 0, false
	}

	if g, err = strconv.ParseInt(hex[3:5], 16, 64); err != nil {
		return 0, 0, 0, false
	}

	if b, err = strconv.ParseInt(hex[5:7], 16, 64); err != nil {
		return 0, 0, 0, false
	}

	return r, g, b, true
}

// HexToRGBA converts "#rrggbb" to a CSS rgba() string. Malformed input
// yields black.
func HexToRGBA(hex string, alpha float64) string {
	r, g, b, _ := parseHex(hex)

	alpha = math.Round(alpha*alphaPrecision) / alphaPrecision

	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64))
}

// IsLightColor reports whether a "#rrggbb" colour is light enough to need
// dark text. Anything that is not a hex colour counts as light.
func IsLightColor(hex string) bool {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return true
	}

	return 0.299*float64(r)+0.587*float64(g)+0.114*float64(b) > lightLuma
}

// TextColor picks a readable label colour for a tile background. Translucent
// rgba() fills below half opacity get dark text.
func TextColor(bg string) string {
	if alpha, ok := rgbaAlpha(bg); ok {
		if alpha < 0.5 {
			return darkText
		}

		return lightText
	}

	if IsLightColor(bg) {
		return darkText
	}

	return lightText
}

func rgbaAlpha(s string) (float64, bool) {
	if !strings.HasPrefix(s, "rgba(") {
		return 0, false
	}

	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "rgba("), ")"), ",")
	if len(parts) != 4 {
		return 0, false
	}

	a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil {
		return 0, false
	}

	return a, true
}
