package tilemap

import (
	"slices"

	"github.com/Sumatoshi-tech/senkyo/pkg/stats"
)

// LocalSummary is the headline of a ward-level local election.
type LocalSummary struct {
	KuAvgTurnout float64 `json:"ku_avg_turnout" yaml:"ku_avg_turnout"`
	TotalWards   int     `json:"total_wards"    yaml:"total_wards"`
	TotalSeats   int     `json:"total_seats"    yaml:"total_seats"`
}

// LocalElection is one unified local election broken down by ward.
type LocalElection struct {
	Date               string           `json:"date"                 yaml:"date"`
	Name               string           `json:"name"                 yaml:"name"`
	NationalAvgTurnout float64          `json:"national_avg_turnout" yaml:"national_avg_turnout"`
	Wards              []PrefectureTile `json:"wards"                yaml:"wards"`
	Summary            LocalSummary     `json:"summary"              yaml:"summary"`
}

// PartyAverage is a party's mean vote rate across wards and its seat total.
type PartyAverage struct {
	Party      string  `json:"party"      yaml:"party"`
	AvgRate    float64 `json:"avgRate"    yaml:"avg_rate"`
	TotalSeats int     `json:"totalSeats" yaml:"total_seats"`
}

// PartyAverages averages each party's rate over every ward, counting wards
// where it ran nobody as zero, ordered by average descending.
func (e *LocalElection) PartyAverages(parties []string) []PartyAverage {
	out := make([]PartyAverage, len(parties))

	for i, party := range parties {
		rates := make([]float64, len(e.Wards))
		seats := 0

		for j, w := range e.Wards {
			rates[j] = w.VotesByParty[party]
			seats += w.WinnerCount[party]
		}

		out[i] = PartyAverage{Party: party, AvgRate: stats.Mean(rates), TotalSeats: seats}
	}

	slices.SortStableFunc(out, func(a, b PartyAverage) int {
		switch {
		case a.AvgRate > b.AvgRate:
			return -1
		case a.AvgRate < b.AvgRate:
			return 1
		default:
			return 0
		}
	})

	return out
}

// ByTurnout returns the wards ordered by turnout descending.
func (e *LocalElection) ByTurnout() []PrefectureTile {
	out := slices.Clone(e.Wards)

	slices.SortStableFunc(out, func(a, b PrefectureTile) int {
		switch {
		case a.Turnout > b.Turnout:
			return -1
		case a.Turnout < b.Turnout:
			return 1
		default:
			return 0
		}
	})

	return out
}

// Ward returns the ward with the given name.
func (e *LocalElection) Ward(name string) (PrefectureTile, bool) {
	i := slices.IndexFunc(e.Wards, func(w PrefectureTile) bool { return w.Name == name })
	if i < 0 {
		return PrefectureTile{}, false
	}

	return e.Wards[i], true
}

// TopParty returns the party with the highest rate in the tile among
// candidates, the first one on a tie.
func TopParty(tile PrefectureTile, candidates []string) string {
	top := ""
	best := -1.0

	for _, p := range candidates {
		if r := tile.VotesByParty[p]; r > best {
			top, best = p, r
		}
	}

	return top
}
