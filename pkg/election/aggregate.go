package election

import (
	"slices"

	"github.com/Sumatoshi-tech/senkyo/pkg/stats"
)

func rowVotes(r Row) int { return r.Votes }

// winnerIndex returns the index of the row with the most votes. When several
// rows tie, the earliest one wins. Returns -1 for empty input.
func winnerIndex(rows []Row) int {
	best := -1

	for i, r := range rows {
		if best < 0 || r.Votes > rows[best].Votes {
			best = i
		}
	}

	return best
}

// ComputeWinner returns the row with the most votes, the first one in input
// order on a tie. The boolean is false for empty input.
func ComputeWinner(rows []Row) (Row, bool) {
	i := winnerIndex(rows)
	if i < 0 {
		return Row{}, false
	}

	return rows[i], true
}

// SummarizeDistrict folds one district's rows into a DistrictSummary.
// Returns nil for empty input.
func SummarizeDistrict(rows []Row) *DistrictSummary {
	if len(rows) == 0 {
		return nil
	}

	total := stats.SumBy(rows, rowVotes)
	first := rows[0]

	results := make([]CandidateResult, len(rows))
	for i, r := range rows {
		results[i] = CandidateResult{
			CandidateName: r.CandidateName,
			PartyName:     r.PartyName,
			Votes:         r.Votes,
			VoteShare:     VoteShare(r.Votes, total),
		}
	}

	results[winnerIndex(rows)].IsWinner = true

	// Stable ordering keeps the winner ahead of any candidate it tied with.
	slices.SortStableFunc(results, func(a, b CandidateResult) int {
		return b.Votes - a.Votes
	})

	return &DistrictSummary{
		District:       first.District,
		RegionName:     first.RegionName,
		TotalVotes:     total,
		EligibleVoters: first.EligibleVoters,
		TurnoutRate:    TurnoutRate(total, first.EligibleVoters),
		Results:        results,
	}
}

// SummarizeWard folds all rows of one ward into a WardSummary. Each district
// contributes its eligible voters once and one seat to its winner's party.
// Returns nil for empty input.
func SummarizeWard(rows []Row) *WardSummary {
	if len(rows) == 0 {
		return nil
	}

	total := stats.SumBy(rows, rowVotes)

	districts := GroupBy(rows, func(r Row) string { return r.District })
	seats := make(map[string]int, districts.Len())
	eligible := 0

	for _, drows := range districts.All() {
		// Rows of one district share the figure; the last one is taken.
		eligible += drows[len(drows)-1].EligibleVoters

		if w, ok := ComputeWinner(drows); ok {
			seats[w.PartyName]++
		}
	}

	return &WardSummary{
		WardName:       rows[0].RegionName,
		TotalVotes:     total,
		EligibleVoters: eligible,
		TurnoutRate:    TurnoutRate(total, eligible),
		PartyResults:   partyResults(rows, total, seats),
		Seats:          districts.Len(),
	}
}

// PartyTotals rolls rows up per party across every district. A party earns a
// seat for each (regionName, district) group it wins.
func PartyTotals(rows []Row) []PartyResult {
	if len(rows) == 0 {
		return nil
	}

	seats := make(map[string]int)

	for _, drows := range GroupByDistrict(rows).All() {
		if w, ok := ComputeWinner(drows); ok {
			seats[w.PartyName]++
		}
	}

	return partyResults(rows, stats.SumBy(rows, rowVotes), seats)
}

func partyResults(rows []Row, total int, seats map[string]int) []PartyResult {
	byParty := GroupByParty(rows)
	out := make([]PartyResult, 0, byParty.Len())

	for party, prows := range byParty.All() {
		votes := stats.SumBy(prows, rowVotes)
		out = append(out, PartyResult{
			PartyName: party,
			Votes:     votes,
			VoteShare: VoteShare(votes, total),
			Seats:     seats[party],
		})
	}

	slices.SortStableFunc(out, func(a, b PartyResult) int {
		return b.Votes - a.Votes
	})

	return out
}

// Heatmap produces one value per ward in first-seen order. With a target
// party the value is that party's vote share in the ward, otherwise it is the
// ward turnout computed against the first row's eligible voters.
func Heatmap(rows []Row, targetParty string) []HeatmapData {
	wards := GroupByWard(rows)
	out := make([]HeatmapData, 0, wards.Len())

	for ward, wrows := range wards.All() {
		total := stats.SumBy(wrows, rowVotes)

		var value float64

		if targetParty != "" {
			partyVotes := 0

			for _, r := range wrows {
				if r.PartyName == targetParty {
					partyVotes += r.Votes
				}
			}

			value = VoteShare(partyVotes, total)
		} else {
			value = TurnoutRate(total, wrows[0].EligibleVoters)
		}

		out = append(out, HeatmapData{
			RegionID:   ward,
			RegionName: ward,
			Value:      value,
			PartyName:  targetParty,
		})
	}

	return out
}
