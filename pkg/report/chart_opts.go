package report

import (
	"github.com/go-echarts/go-echarts/v2/opts"
)

const radarSplitNumber = 5

// ChartOpts provides themed chart options.
type ChartOpts struct {
	theme ThemeConfig
	style Style
}

// NewChartOpts creates ChartOpts for the given theme and default style.
func NewChartOpts(theme Theme) *ChartOpts {
	return &ChartOpts{theme: GetThemeConfig(theme), style: DefaultStyle()}
}

// Init returns initialization options with themed background.
func (c *ChartOpts) Init() opts.Initialization {
	return opts.Initialization{
		Width:           c.style.Width,
		Height:          c.style.Height,
		BackgroundColor: c.theme.ChartBackground,
	}
}

// Sized returns initialization options with an explicit pixel size.
func (c *ChartOpts) Sized(width, height string) opts.Initialization {
	init := c.Init()
	init.Width, init.Height = width, height

	return init
}

// Title returns title options with themed text colours.
func (c *ChartOpts) Title(title, subtitle string) opts.Title {
	return opts.Title{
		Title:         title,
		Subtitle:      subtitle,
		Left:          "center",
		TitleStyle:    &opts.TextStyle{Color: c.theme.ChartText},
		SubtitleStyle: &opts.TextStyle{Color: c.theme.ChartTextMuted},
	}
}

// Legend returns legend options with themed text colour.
func (c *ChartOpts) Legend() opts.Legend {
	return opts.Legend{
		Show:      opts.Bool(true),
		Type:      "scroll",
		Top:       "0",
		Left:      "center",
		TextStyle: &opts.TextStyle{Color: c.theme.ChartTextMuted},
	}
}

// XAxis returns category x-axis options.
func (c *ChartOpts) XAxis(name string) opts.XAxis {
	return opts.XAxis{
		Name:      name,
		AxisLabel: &opts.AxisLabel{Color: c.theme.ChartTextMuted, Interval: "0"},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
	}
}

// YAxis returns value y-axis options.
func (c *ChartOpts) YAxis(name string) opts.YAxis {
	return opts.YAxis{
		Name:      name,
		AxisLabel: &opts.AxisLabel{Color: c.theme.ChartTextMuted},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
		SplitLine: &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: c.theme.ChartGrid},
		},
	}
}

// Grid returns grid options with standard margins.
func (c *ChartOpts) Grid() opts.Grid {
	return opts.Grid{
		Left:         c.style.GridLeft,
		Right:        c.style.GridRight,
		Top:          c.style.GridTop,
		Bottom:       c.style.GridBottom,
		ContainLabel: opts.Bool(true),
	}
}

// Tooltip returns tooltip options.
func (c *ChartOpts) Tooltip(trigger string) opts.Tooltip {
	return opts.Tooltip{Show: opts.Bool(true), Trigger: trigger}
}

// RadarComponent returns radar component options with themed colours.
func (c *ChartOpts) RadarComponent(indicators []*opts.Indicator) opts.RadarComponent {
	return opts.RadarComponent{
		Indicator:   indicators,
		Shape:       "polygon",
		SplitNumber: radarSplitNumber,
		SplitLine:   &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: c.theme.ChartGrid}},
		SplitArea:   &opts.SplitArea{Show: opts.Bool(true)},
		AxisLine:    &opts.AxisLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
		AxisName:    &opts.AxisName{Color: c.theme.ChartTextMuted},
	}
}
