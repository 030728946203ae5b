package report

import "strings"

// Theme represents a colour theme for report pages.
type Theme string

const (
	// ThemeLight is the light theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark theme.
	ThemeDark Theme = "dark"
)

// ParseTheme maps a configured name to a Theme, defaulting to light.
func ParseTheme(name string) Theme {
	if strings.EqualFold(name, string(ThemeDark)) {
		return ThemeDark
	}

	return ThemeLight
}

// ThemeConfig holds the colours a page and its charts are drawn with.
type ThemeConfig struct {
	Background    string
	Surface       string
	Border        string
	TextPrimary   string
	TextSecondary string
	TextMuted     string
	Accent        string

	// Swing colours for gains and losses.
	Gain string
	Loss string

	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

var lightTheme = ThemeConfig{
	Background:    "#f8fafc", // slate-50.
	Surface:       "#ffffff",
	Border:        "#e2e8f0", // slate-200.
	TextPrimary:   "#0f172a", // slate-900.
	TextSecondary: "#334155", // slate-700.
	TextMuted:     "#64748b", // slate-500.
	Accent:        "#1e3a8a", // blue-900.

	Gain: "#16a34a",
	Loss: "#dc2626",

	ChartBackground: "transparent",
	ChartGrid:       "#e2e8f0",
	ChartAxis:       "#94a3b8", // slate-400.
	ChartText:       "#334155",
	ChartTextMuted:  "#64748b",
}

var darkTheme = ThemeConfig{
	Background:    "#020617", // slate-950.
	Surface:       "#0f172a", // slate-900.
	Border:        "#334155", // slate-700.
	TextPrimary:   "#f8fafc",
	TextSecondary: "#cbd5e1", // slate-300.
	TextMuted:     "#94a3b8",
	Accent:        "#60a5fa", // blue-400.

	Gain: "#22c55e",
	Loss: "#ef4444",

	ChartBackground: "transparent",
	ChartGrid:       "#334155",
	ChartAxis:       "#475569", // slate-600.
	ChartText:       "#cbd5e1",
	ChartTextMuted:  "#94a3b8",
}
