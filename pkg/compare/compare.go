// Package compare lines up two elections side by side: per-party vote and
// rate deltas, swing buckets, and precinct-level turnout rollups.
package compare

import (
	"slices"

	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/stats"
)

// PartyRate is one party's result on one side of a comparison.
type PartyRate struct {
	Party string  `json:"party" yaml:"party"`
	Votes int     `json:"votes" yaml:"votes"`
	Rate  float64 `json:"rate"  yaml:"rate"`
}

// PartyComparison is a party's result in two elections. The A side is the
// earlier election (2024 in the published data), the B side the later one.
type PartyComparison struct {
	Party     string  `json:"party"     yaml:"party"`
	Votes2024 int     `json:"votes2024" yaml:"votes2024"`
	Votes2026 int     `json:"votes2026" yaml:"votes2026"`
	Rate2024  float64 `json:"rate2024"  yaml:"rate2024"`
	Rate2026  float64 `json:"rate2026"  yaml:"rate2026"`
	VoteDiff  int     `json:"voteDiff"  yaml:"vote_diff"`
	RateDiff  float64 `json:"rateDiff"  yaml:"rate_diff"`
}

// Swing returns the swing bucket of the comparison.
func (c PartyComparison) Swing() Swing {
	return ClassifySwing(c.RateDiff)
}

// GeneratePartyComparison outer-joins a and b by party name. A party missing
// on one side gets zeros there. The result is sorted by B-side votes
// descending; parties with equal votes keep A-then-B-only order.
func GeneratePartyComparison(a, b []PartyRate) []PartyComparison {
	index := make(map[string]int, len(a)+len(b))
	out := make([]PartyComparison, 0, len(a)+len(b))

	slot := func(party string) *PartyComparison {
		if i, ok := index[party]; ok {
			return &out[i]
		}

		index[party] = len(out)
		out = append(out, PartyComparison{Party: party})

		return &out[len(out)-1]
	}

	for _, p := range a {
		c := slot(p.Party)
		c.Votes2024, c.Rate2024 = p.Votes, p.Rate
	}

	for _, p := range b {
		c := slot(p.Party)
		c.Votes2026, c.Rate2026 = p.Votes, p.Rate
	}

	for i := range out {
		out[i].VoteDiff = out[i].Votes2026 - out[i].Votes2024
		out[i].RateDiff = out[i].Rate2026 - out[i].Rate2024
	}

	slices.SortStableFunc(out, func(x, y PartyComparison) int {
		return y.Votes2026 - x.Votes2026
	})

	return out
}

// FromPartyResults adapts a PartyTotals rollup to one comparison side.
func FromPartyResults(results []election.PartyResult) []PartyRate {
	out := make([]PartyRate, len(results))

	for i, r := range results {
		out[i] = PartyRate{Party: r.PartyName, Votes: r.Votes, Rate: r.VoteShare}
	}

	return out
}

// VoteDifference returns current-previous and that change as a percentage of
// previous. The percentage is 0 when previous is 0.
func VoteDifference(current, previous int) (diff int, pct float64) {
	diff = current - previous

	return diff, stats.Percent(diff, previous)
}
