package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/senkyo/pkg/compare"
	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/report"
	"github.com/Sumatoshi-tech/senkyo/pkg/tilemap"
)

func sampleDataset() *dashboard.Dataset {
	return &dashboard.Dataset{
		Rows: []election.Row{
			{Year: 2026, RegionType: election.RegionWard, RegionName: "大田区", District: "1", PartyName: "自民", Votes: 600, EligibleVoters: 1000},
			{Year: 2026, RegionType: election.RegionWard, RegionName: "大田区", District: "1", PartyName: "立民", Votes: 400, EligibleVoters: 1000},
			{Year: 2022, RegionType: election.RegionWard, RegionName: "大田区", District: "1", PartyName: "自民", Votes: 500, EligibleVoters: 1000},
			{Year: 2022, RegionType: election.RegionWard, RegionName: "大田区", District: "1", PartyName: "立民", Votes: 500, EligibleVoters: 1000},
		},
		Tiles: []tilemap.PrefectureTile{
			{ID: "13", Name: "東京都", Turnout: 47.5, VotesByParty: map[string]float64{"自民党": 28}},
			{ID: "27", Name: "大阪府", Turnout: 41.0, VotesByParty: map[string]float64{"維新の会": 35}},
		},
		Trends: &compare.Trends{UnifiedLocal: []compare.TrendPoint{
			{Year: "2019", Rates: map[string]float64{"自民": 30}},
			{Year: "2023", Rates: map[string]float64{"自民": 28, "維新": 5}},
		}},
		Master: &compare.MasterData{
			Region:   "大田区",
			Senkyoku: "26区",
			Years: map[string]compare.YearData{
				"2024": {Year: 2024, Districts: []compare.DistrictTurnout{{ID: 1, TotalVotes: 400, TurnoutRate: 50}}},
				"2026": {Year: 2026, Districts: []compare.DistrictTurnout{{ID: 1, TotalVotes: 600, TurnoutRate: 55}}},
			},
		},
	}
}

func TestPage_Render(t *testing.T) {
	t.Parallel()

	results := election.PartyTotals(sampleDataset().Rows[:2])
	c := report.NewChartOpts(report.ThemeDark)

	page := report.NewPage("政党別得票", "テスト").WithTheme(report.ThemeDark)
	page.Notice = "読み込めなかったデータ: missing.csv"
	page.Add(report.Section{
		Title: "得票数",
		Chart: report.PartyBarChart(c, results),
		Hint:  report.Hint{Title: "見方", Items: []string{"棒の色は政党の色"}},
	})

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))

	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `class="dark"`)
	assert.Contains(t, html, "政党別得票")
	assert.Contains(t, html, "missing.csv")
	assert.Contains(t, html, "棒の色は政党の色")
	assert.Contains(t, html, `class="echart-box"`)
	assert.Equal(t, 1, strings.Count(html, "<!DOCTYPE"), "chart wrapper is stripped")
}

func TestBuild_Pages(t *testing.T) {
	t.Parallel()

	f := dashboard.Reduce(dashboard.DefaultFilter(), dashboard.SelectComparisonYear{Year: 2022})
	pages := report.Build(sampleDataset(), f, report.ThemeLight)

	ids := make([]string, len(pages))
	for i, p := range pages {
		ids[i] = p.Meta.ID
	}

	assert.Equal(t, []string{"summary", "heatmap", "compare", "areas", "trend", "regions"}, ids)
}

func TestBuild_HeatmapShading(t *testing.T) {
	t.Parallel()

	pages := report.Build(sampleDataset(), dashboard.DefaultFilter(), report.ThemeLight)

	var heatmap *report.Page

	for _, p := range pages {
		if p.Meta.ID == "heatmap" {
			heatmap = p.Page
		}
	}

	require.NotNil(t, heatmap)

	var buf bytes.Buffer
	require.NoError(t, heatmap.Render(&buf))

	html := buf.String()
	assert.Contains(t, html, "rgba(59,130,246,1)", "turnout of a single ward is full strength")
	assert.Contains(t, html, "rgba(230,0,18,1)", "leading party shades its own colour")
}

func TestBuild_AreaChangeColours(t *testing.T) {
	t.Parallel()

	pages := report.Build(sampleDataset(), dashboard.DefaultFilter(), report.ThemeLight)

	for _, p := range pages {
		if p.Meta.ID != "areas" {
			continue
		}

		var buf bytes.Buffer
		require.NoError(t, p.Page.Render(&buf))
		assert.Contains(t, buf.String(), tilemap.ChangeColor(5))

		return
	}

	t.Fatal("areas page missing")
}

func TestBuild_SkipsMissingData(t *testing.T) {
	t.Parallel()

	pages := report.Build(&dashboard.Dataset{}, dashboard.DefaultFilter(), report.ThemeLight)
	assert.Empty(t, pages)
}

func TestSite_Write(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	site := &report.Site{Dir: dir, Title: "選挙結果", Theme: report.ThemeLight}

	require.NoError(t, site.Write(report.Build(sampleDataset(), dashboard.DefaultFilter(), report.ThemeLight)))

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="summary.html"`)

	summary, err := os.ReadFile(filepath.Join(dir, "summary.html"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), `href="index.html"`)

	require.ErrorIs(t, site.Write(nil), report.ErrNoPages)
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	assert.Equal(t, report.ThemeDark, report.ParseTheme("DARK"))
	assert.Equal(t, report.ThemeLight, report.ParseTheme("sepia"))
}
