package report

import (
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/senkyo/pkg/compare"
	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/parties"
	"github.com/Sumatoshi-tech/senkyo/pkg/tilemap"
)

const (
	rateAxisName  = "得票率 (%)"
	votesAxisName = "得票数"
	tilePadding   = 80
	rateRounding  = 100
)

func round2(v float64) float64 { return math.Round(v*rateRounding) / rateRounding }

func px(n int) string { return strconv.Itoa(n) + "px" }

// PartyBarChart draws votes per party, each bar in its party colour.
func PartyBarChart(c *ChartOpts, results []election.PartyResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(c.Init()),
		charts.WithTooltipOpts(c.Tooltip("axis")),
		charts.WithGridOpts(c.Grid()),
		charts.WithXAxisOpts(c.XAxis("")),
		charts.WithYAxisOpts(c.YAxis(votesAxisName)),
	)

	labels := make([]string, len(results))
	data := make([]opts.BarData, len(results))

	for i, r := range results {
		labels[i] = parties.ShortName(r.PartyName)
		data[i] = opts.BarData{
			Name:      r.PartyName,
			Value:     r.Votes,
			ItemStyle: &opts.ItemStyle{Color: parties.Color(r.PartyName)},
		}
	}

	bar.SetXAxis(labels)
	bar.AddSeries(votesAxisName, data)

	return bar
}

// VoteSharePie draws each party's share of the vote as a ring.
func VoteSharePie(c *ChartOpts, results []election.PartyResult) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(c.Init()),
		charts.WithTooltipOpts(c.Tooltip("item")),
		charts.WithLegendOpts(c.Legend()),
	)

	data := make([]opts.PieData, len(results))
	for i, r := range results {
		data[i] = opts.PieData{
			Name:      r.PartyName,
			Value:     round2(r.VoteShare),
			ItemStyle: &opts.ItemStyle{Color: parties.Color(r.PartyName)},
		}
	}

	pie.AddSeries(rateAxisName, data,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}%"}),
	)

	return pie
}

// SwingBar draws the rate difference per party, coloured by swing bucket.
func SwingBar(c *ChartOpts, comparisons []compare.PartyComparison) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(c.Init()),
		charts.WithTooltipOpts(c.Tooltip("axis")),
		charts.WithGridOpts(c.Grid()),
		charts.WithXAxisOpts(c.XAxis("")),
		charts.WithYAxisOpts(c.YAxis("増減 (pt)")),
	)

	labels := make([]string, len(comparisons))
	data := make([]opts.BarData, len(comparisons))

	for i, cmp := range comparisons {
		labels[i] = parties.ShortName(cmp.Party)
		data[i] = opts.BarData{
			Name:      cmp.Swing().Label(),
			Value:     round2(cmp.RateDiff),
			ItemStyle: &opts.ItemStyle{Color: compare.SwingColor(cmp.Swing())},
		}
	}

	bar.SetXAxis(labels)
	bar.AddSeries("増減", data)

	return bar
}

// WardHeatmap draws one bar per ward, shaded by where its value falls in the
// range of the set.
func WardHeatmap(c *ChartOpts, data []election.HeatmapData) *charts.Bar {
	axis := "投票率 (%)"
	if len(data) > 0 && data[0].PartyName != "" {
		axis = rateAxisName
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(c.Init()),
		charts.WithTooltipOpts(c.Tooltip("axis")),
		charts.WithGridOpts(c.Grid()),
		charts.WithXAxisOpts(c.XAxis("")),
		charts.WithYAxisOpts(c.YAxis(axis)),
	)

	fills := tilemap.HeatmapFills(data)
	labels := make([]string, len(data))
	values := make([]opts.BarData, len(data))

	for i, d := range data {
		labels[i] = d.RegionName
		values[i] = opts.BarData{
			Name:      d.RegionName,
			Value:     round2(d.Value),
			ItemStyle: &opts.ItemStyle{Color: fills[i]},
		}
	}

	bar.SetXAxis(labels)
	bar.AddSeries(axis, values)

	return bar
}

// AreaShareBar draws each local area's share of the votes cast in the ward.
func AreaShareBar(c *ChartOpts, areas []dashboard.AreaSummary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(c.Init()),
		charts.WithTooltipOpts(c.Tooltip("axis")),
		charts.WithGridOpts(c.Grid()),
		charts.WithXAxisOpts(c.XAxis("")),
		charts.WithYAxisOpts(c.YAxis("構成比 (%)")),
	)

	labels := make([]string, len(areas))
	data := make([]opts.BarData, len(areas))

	for i, a := range areas {
		labels[i] = a.Area
		data[i] = opts.BarData{Name: a.Area, Value: round2(a.Ratio)}
	}

	bar.SetXAxis(labels)
	bar.AddSeries("構成比", data)

	return bar
}

// PrecinctChangeBar draws the turnout change of every precinct that has a
// previous election, coloured by the tile map change scale.
func PrecinctChangeBar(c *ChartOpts, precincts []dashboard.PrecinctTurnout) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(c.Init()),
		charts.WithTooltipOpts(c.Tooltip("axis")),
		charts.WithGridOpts(c.Grid()),
		charts.WithXAxisOpts(c.XAxis("")),
		charts.WithYAxisOpts(c.YAxis("投票率の増減 (pt)")),
	)

	var (
		labels []string
		data   []opts.BarData
	)

	for _, p := range precincts {
		if !p.HasPrev {
			continue
		}

		labels = append(labels, strconv.Itoa(p.ID))
		data = append(data, opts.BarData{
			Name:      p.Name,
			Value:     round2(p.TurnoutDiff),
			ItemStyle: &opts.ItemStyle{Color: tilemap.ChangeColor(p.TurnoutDiff)},
		})
	}

	bar.SetXAxis(labels)
	bar.AddSeries("投票率の増減", data)

	return bar
}

// TrendLine draws one line per party across a multi-year series. A party
// absent from an election shows a gap.
func TrendLine(c *ChartOpts, series []compare.TrendPoint, names []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(c.Init()),
		charts.WithTooltipOpts(c.Tooltip("axis")),
		charts.WithGridOpts(c.Grid()),
		charts.WithLegendOpts(c.Legend()),
		charts.WithXAxisOpts(c.XAxis("")),
		charts.WithYAxisOpts(c.YAxis(rateAxisName)),
	)

	labels := make([]string, len(series))
	for i, p := range series {
		labels[i] = p.Year
		if p.Name != "" {
			labels[i] = p.Name
		}
	}

	line.SetXAxis(labels)

	for _, name := range names {
		data := make([]opts.LineData, len(series))

		for i, p := range series {
			if v, ok := p.Rates[name]; ok {
				data[i] = opts.LineData{Value: round2(v)}
			} else {
				data[i] = opts.LineData{Value: "-"}
			}
		}

		color := parties.Color(name)
		line.AddSeries(name, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
		)
	}

	return line
}

// PartyRadar draws each party's vote rate across regions, one axis per tile.
func PartyRadar(c *ChartOpts, tiles []tilemap.PrefectureTile, names []string) *charts.Radar {
	radar := charts.NewRadar()

	ceiling := 0.0
	for _, t := range tiles {
		for _, n := range names {
			ceiling = max(ceiling, t.VotesByParty[n])
		}
	}

	ceiling = math.Ceil(ceiling/10) * 10 //nolint:mnd // round up to the next 10%.
	if ceiling == 0 {
		ceiling = tilemap.RateCeiling
	}

	indicators := make([]*opts.Indicator, len(tiles))
	for i, t := range tiles {
		indicators[i] = &opts.Indicator{Name: t.Name, Max: float32(ceiling)}
	}

	radar.SetGlobalOptions(
		charts.WithInitializationOpts(c.Init()),
		charts.WithTooltipOpts(c.Tooltip("item")),
		charts.WithLegendOpts(c.Legend()),
		charts.WithRadarComponentOpts(c.RadarComponent(indicators)),
	)

	for _, n := range names {
		values := make([]float64, len(tiles))
		for i, t := range tiles {
			values[i] = round2(t.VotesByParty[n])
		}

		color := parties.Color(n)
		radar.AddSeries(n, []opts.RadarData{{Name: n, Value: values}},
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
		)
	}

	return radar
}

// TileMapChart draws the prefecture grid as square symbols, one series per
// fill colour so each cell keeps the colour Layout picked for it.
func TileMapChart(c *ChartOpts, cells []tilemap.Cell) *charts.Scatter {
	scatter := charts.NewScatter()

	axisHidden := &opts.AxisLine{Show: opts.Bool(false)}
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(c.Sized(px(tilemap.Width()+tilePadding), px(tilemap.Height()+tilePadding))),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item", Formatter: "{b}"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value", Min: 0, Max: tilemap.MaxCol, Show: opts.Bool(false), AxisLine: axisHidden,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value", Min: 0, Max: tilemap.MaxRow, Inverse: opts.Bool(true), Show: opts.Bool(false), AxisLine: axisHidden,
			SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
		}),
	)

	byFill := make(map[string][]opts.ScatterData)
	var fills []string

	for _, cell := range cells {
		if _, seen := byFill[cell.Fill]; !seen {
			fills = append(fills, cell.Fill)
		}

		byFill[cell.Fill] = append(byFill[cell.Fill], opts.ScatterData{
			Name:   cell.Label,
			Value:  []int{cell.Position.Col, cell.Position.Row},
			Symbol: "rect",
		})
	}

	for _, fill := range fills {
		scatter.AddSeries(fill, byFill[fill],
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: []int{tilemap.CellWidth, tilemap.CellHeight}}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: fill}),
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}",
				Color:     tilemap.TextColor(fill),
				FontSize:  10, //nolint:mnd // fits two kanji in a tile.
			}),
		)
	}

	return scatter
}
