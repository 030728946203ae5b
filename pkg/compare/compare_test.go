package compare_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/senkyo/pkg/compare"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
)

func TestGeneratePartyComparison(t *testing.T) {
	t.Parallel()

	a := []compare.PartyRate{
		{Party: "X", Votes: 100, Rate: 40},
		{Party: "Y", Votes: 80, Rate: 30},
	}
	b := []compare.PartyRate{
		{Party: "Y", Votes: 120, Rate: 45},
		{Party: "Z", Votes: 50, Rate: 10},
	}

	got := compare.GeneratePartyComparison(a, b)
	require.Len(t, got, 3)

	assert.Equal(t, "Y", got[0].Party)
	assert.Equal(t, 40, got[0].VoteDiff)
	assert.InDelta(t, 15.0, got[0].RateDiff, 1e-9)

	assert.Equal(t, "Z", got[1].Party)
	assert.Zero(t, got[1].Votes2024)
	assert.Equal(t, 50, got[1].VoteDiff)

	assert.Equal(t, "X", got[2].Party)
	assert.Zero(t, got[2].Votes2026)
	assert.Equal(t, -100, got[2].VoteDiff)
	assert.InDelta(t, -40.0, got[2].RateDiff, 1e-9)
	assert.Equal(t, compare.SwingCollapse, got[2].Swing())
}

func TestGeneratePartyComparison_EqualVotesKeepJoinOrder(t *testing.T) {
	t.Parallel()

	got := compare.GeneratePartyComparison(
		[]compare.PartyRate{{Party: "A"}, {Party: "B"}},
		[]compare.PartyRate{{Party: "C"}},
	)

	parties := make([]string, len(got))
	for i, c := range got {
		parties[i] = c.Party
	}

	assert.Equal(t, []string{"A", "B", "C"}, parties)
	assert.Empty(t, compare.GeneratePartyComparison(nil, nil))
}

func TestClassifySwing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		diff float64
		want compare.Swing
	}{
		{diff: 10, want: compare.SwingSurge},
		{diff: 5, want: compare.SwingSurge},
		{diff: 4.99, want: compare.SwingGain},
		{diff: 2, want: compare.SwingGain},
		{diff: 1.99, want: compare.SwingStable},
		{diff: 0, want: compare.SwingStable},
		{diff: -2, want: compare.SwingStable},
		{diff: -2.01, want: compare.SwingLoss},
		{diff: -5, want: compare.SwingLoss},
		{diff: -5.01, want: compare.SwingCollapse},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, compare.ClassifySwing(tt.diff), "diff %v", tt.diff)
	}
}

func TestSwingColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#22c55e", compare.SwingColor(compare.SwingSurge))
	assert.Equal(t, "#86efac", compare.SwingColor(compare.SwingGain))
	assert.Equal(t, "#9ca3af", compare.SwingColor(compare.SwingStable))
	assert.Equal(t, "#fca5a5", compare.SwingColor(compare.SwingLoss))
	assert.Equal(t, "#ef4444", compare.SwingColor(compare.SwingCollapse))
	assert.Equal(t, "#9ca3af", compare.SwingColor("bogus"))
}

func TestVoteDifference(t *testing.T) {
	t.Parallel()

	diff, pct := compare.VoteDifference(150, 100)
	assert.Equal(t, 50, diff)
	assert.InDelta(t, 50.0, pct, 1e-9)

	diff, pct = compare.VoteDifference(150, 0)
	assert.Equal(t, 150, diff)
	assert.Zero(t, pct)
}

func TestAggregateDistricts(t *testing.T) {
	t.Parallel()

	got := compare.AggregateDistricts([]compare.DistrictTurnout{
		{ID: 1, TotalVotes: 500, InvalidVotes: 10, EligibleVoters: 1000, TurnoutRate: 50},
		{ID: 2, TotalVotes: 300, InvalidVotes: 5, EligibleVoters: 1000, TurnoutRate: 30},
	})

	assert.Equal(t, 800, got.TotalVotes)
	assert.Equal(t, 2000, got.TotalEligible)
	assert.Equal(t, 15, got.TotalInvalid)
	assert.InDelta(t, 40.0, got.AvgTurnout, 1e-9)

	assert.Equal(t, compare.DistrictAggregate{}, compare.AggregateDistricts(nil))
}

func TestFromPartyResults(t *testing.T) {
	t.Parallel()

	got := compare.FromPartyResults([]election.PartyResult{
		{PartyName: "X", Votes: 10, VoteShare: 25, Seats: 1},
	})

	assert.Equal(t, []compare.PartyRate{{Party: "X", Votes: 10, Rate: 25}}, got)
}

func TestMasterDataCompare(t *testing.T) {
	t.Parallel()

	m := compare.MasterData{
		Region:   "大田区",
		Senkyoku: "4区",
		Years: map[string]compare.YearData{
			"2024": {Year: 2024, Hirei: compare.Tally{Results: []compare.PartyRate{{Party: "X", Votes: 10, Rate: 50}}}},
			"2026": {Year: 2026, Hirei: compare.Tally{Results: []compare.PartyRate{{Party: "X", Votes: 30, Rate: 60}}}},
		},
	}

	assert.Equal(t, []int{2024, 2026}, m.YearList())

	got := m.Compare(2024, 2026, compare.TierHirei)
	require.Len(t, got, 1)
	assert.Equal(t, 20, got[0].VoteDiff)
	assert.Equal(t, compare.SwingSurge, got[0].Swing())

	assert.Empty(t, m.Compare(2024, 2026, compare.TierSyosenkyoku))
}
