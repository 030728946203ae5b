package tilemap_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/tilemap"
)

func TestPositions_Grid(t *testing.T) {
	t.Parallel()

	all := tilemap.Positions()
	require.Len(t, all, 47)

	codes := tilemap.Codes()
	require.Len(t, codes, 47)
	assert.Equal(t, "01", codes[0])
	assert.Equal(t, "47", codes[46])

	seen := make(map[[2]int]string, len(all))

	for code, p := range all {
		slot := [2]int{p.Col, p.Row}
		other, dup := seen[slot]
		assert.False(t, dup, "%s overlaps %s", code, other)
		seen[slot] = code

		assert.Less(t, p.Col, tilemap.MaxCol)
		assert.Less(t, p.Row, tilemap.MaxRow)
		assert.NotEmpty(t, p.Short)
	}

	for i := 1; i <= 47; i++ {
		_, ok := tilemap.Lookup(fmt.Sprintf("%02d", i))
		assert.True(t, ok, i)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	p, ok := tilemap.Lookup("13")
	require.True(t, ok)
	assert.Equal(t, tilemap.Position{Col: 9, Row: 7, Short: "東京"}, p)

	p, ok = tilemap.Lookup("47")
	require.True(t, ok)
	assert.Equal(t, tilemap.Position{Col: 0, Row: 15, Short: "沖縄"}, p)

	_, ok = tilemap.Lookup("48")
	assert.False(t, ok)

	x, y := tilemap.Origin(tilemap.Position{Col: 9, Row: 7})
	assert.Equal(t, 360, x)
	assert.Equal(t, 252, y)
	assert.Equal(t, 440, tilemap.Width())
	assert.Equal(t, 576, tilemap.Height())
}

func TestTurnoutColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		turnout float64
		want    string
	}{
		{turnout: 75, want: "#1e3a5f"},
		{turnout: 60, want: "#1e3a5f"},
		{turnout: 59.9, want: "#1e40af"},
		{turnout: 55, want: "#1e40af"},
		{turnout: 50, want: "#1d4ed8"},
		{turnout: 45, want: "#2563eb"},
		{turnout: 40, want: "#3b82f6"},
		{turnout: 35, want: "#60a5fa"},
		{turnout: 34.9, want: "#93c5fd"},
		{turnout: 0, want: "#93c5fd"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tilemap.TurnoutColor(tt.turnout), "turnout %v", tt.turnout)
	}
}

func TestChangeColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#14532d", tilemap.ChangeColor(4))
	assert.Equal(t, "#16a34a", tilemap.ChangeColor(2))
	assert.Equal(t, "#4ade80", tilemap.ChangeColor(0))
	assert.Equal(t, "#fca5a5", tilemap.ChangeColor(-0.1))
	assert.Equal(t, "#fca5a5", tilemap.ChangeColor(-2))
	assert.Equal(t, "#dc2626", tilemap.ChangeColor(-4))
	assert.Equal(t, "#7f1d1d", tilemap.ChangeColor(-4.1))
}

func TestAlpha(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.2, tilemap.Alpha(0), 1e-9)
	assert.InDelta(t, 0.6, tilemap.Alpha(0.5), 1e-9)
	assert.InDelta(t, 1.0, tilemap.Alpha(1), 1e-9)
	assert.InDelta(t, 1.0, tilemap.Alpha(3), 1e-9)
	assert.InDelta(t, 0.2, tilemap.Alpha(-1), 1e-9)

	assert.Equal(t, "rgba(230,0,18,1)", tilemap.PartyRateColor(55, "#e60012"))
	assert.Equal(t, "rgba(230,0,18,0.2)", tilemap.PartyRateColor(0, "#e60012"))
	assert.Equal(t, "rgba(0,80,157,1)", tilemap.NormalizedColor(5, 5, 5, "#00509d"))
	assert.Equal(t, "rgba(0,80,157,0.6)", tilemap.NormalizedColor(15, 10, 20, "#00509d"))
}

func TestHeatmapFills(t *testing.T) {
	t.Parallel()

	party := []election.HeatmapData{
		{RegionName: "大田区", Value: 10, PartyName: "立憲民主党"},
		{RegionName: "目黒区", Value: 15, PartyName: "立憲民主党"},
		{RegionName: "品川区", Value: 20, PartyName: "立憲民主党"},
	}
	assert.Equal(t, []string{
		"rgba(0,80,157,0.2)",
		"rgba(0,80,157,0.6)",
		"rgba(0,80,157,1)",
	}, tilemap.HeatmapFills(party))

	turnout := []election.HeatmapData{{RegionName: "大田区", Value: 52}}
	assert.Equal(t, []string{"rgba(59,130,246,1)"}, tilemap.HeatmapFills(turnout))

	assert.Empty(t, tilemap.HeatmapFills(nil))
}

func TestContrast(t *testing.T) {
	t.Parallel()

	assert.True(t, tilemap.IsLightColor("#ffffff"))
	assert.False(t, tilemap.IsLightColor("#1e3a5f"))
	assert.True(t, tilemap.IsLightColor("red"))
	assert.Equal(t, "rgba(255,255,255,0.5)", tilemap.HexToRGBA("#ffffff", 0.5))

	assert.Equal(t, "#fff", tilemap.TextColor("#1e3a5f"))
	assert.Equal(t, "#1e3a8a", tilemap.TextColor("#93c5fd"))
	assert.Equal(t, "#1e3a8a", tilemap.TextColor("rgba(230,0,18,0.2)"))
	assert.Equal(t, "#fff", tilemap.TextColor("rgba(230,0,18,0.9)"))
}

func TestLayout(t *testing.T) {
	t.Parallel()

	tiles := []tilemap.PrefectureTile{
		{ID: "13", Name: "東京都", Turnout: 58, VotesByParty: map[string]float64{"自民党": 27.5}},
		{ID: "01", Name: "北海道", Turnout: 52},
	}
	prev := []tilemap.PrefectureTile{{ID: "13", Turnout: 55}}

	t.Run("turnout", func(t *testing.T) {
		t.Parallel()

		cells := tilemap.Layout(tiles, tilemap.ModeTurnout, "", nil)
		require.Len(t, cells, 2)
		assert.Equal(t, "01", cells[0].Code)
		assert.Equal(t, "#1d4ed8", cells[0].Fill)
		assert.Equal(t, "52.0%", cells[0].SubLabel)
		assert.Equal(t, 400, cells[0].X)
		assert.Equal(t, 36, cells[0].Y)
		assert.Equal(t, "東京", cells[1].Label)
	})

	t.Run("party", func(t *testing.T) {
		t.Parallel()

		cells := tilemap.Layout(tiles, tilemap.ModeParty, "自民党", nil)
		require.Len(t, cells, 2)
		assert.Equal(t, "rgba(230,0,18,0.2)", cells[0].Fill)
		assert.Equal(t, "rgba(230,0,18,0.6)", cells[1].Fill)
		assert.Equal(t, "27.5%", cells[1].SubLabel)
		assert.Equal(t, "#fff", cells[1].Text)
	})

	t.Run("unknown_party_shades_from_grey", func(t *testing.T) {
		t.Parallel()

		cells := tilemap.Layout(tiles, tilemap.ModeParty, "架空党", nil)
		require.Len(t, cells, 2)
		assert.Equal(t, "rgba(128,128,128,0.2)", cells[0].Fill)
		assert.Equal(t, "rgba(128,128,128,0.2)", cells[1].Fill)
	})

	t.Run("change_falls_back", func(t *testing.T) {
		t.Parallel()

		cells := tilemap.Layout(tiles, tilemap.ModeChange, "", prev)
		require.Len(t, cells, 2)
		assert.Equal(t, tilemap.TurnoutColor(52), cells[0].Fill)
		assert.Equal(t, "#16a34a", cells[1].Fill)
		assert.Equal(t, "+3.0", cells[1].SubLabel)
	})
}

func TestLocalElection(t *testing.T) {
	t.Parallel()

	e := tilemap.LocalElection{
		Wards: []tilemap.PrefectureTile{
			{Name: "大田区", Turnout: 40, VotesByParty: map[string]float64{"自民党": 30, "公明党": 10}, WinnerCount: map[string]int{"自民党": 10}},
			{Name: "目黒区", Turnout: 45, VotesByParty: map[string]float64{"自民党": 20}, WinnerCount: map[string]int{"自民党": 8, "公明党": 1}},
		},
	}

	avg := e.PartyAverages([]string{"公明党", "自民党", "共産党"})
	require.Len(t, avg, 3)
	assert.Equal(t, "自民党", avg[0].Party)
	assert.InDelta(t, 25.0, avg[0].AvgRate, 1e-9)
	assert.Equal(t, 18, avg[0].TotalSeats)
	assert.InDelta(t, 5.0, avg[1].AvgRate, 1e-9)
	assert.Equal(t, 1, avg[1].TotalSeats)
	assert.Zero(t, avg[2].AvgRate)

	assert.Equal(t, "目黒区", e.ByTurnout()[0].Name)

	w, ok := e.Ward("大田区")
	require.True(t, ok)
	assert.Equal(t, "自民党", tilemap.TopParty(w, []string{"公明党", "自民党"}))

	_, ok = e.Ward("港区")
	assert.False(t, ok)

	assert.Empty(t, (&tilemap.LocalElection{}).PartyAverages(nil))
}
