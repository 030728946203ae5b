package national

import (
	"slices"

	"github.com/Sumatoshi-tech/senkyo/pkg/stats"
)

// PartySeats is a party's nationwide district tally.
type PartySeats struct {
	Party string `json:"party" yaml:"party"`
	Seats int    `json:"seats" yaml:"seats"`
	Votes int    `json:"votes" yaml:"votes"`
}

// NationalShouTotals sums district seats and votes over every prefecture,
// ordered by seats descending. Parties with equal seats keep first-seen order.
func NationalShouTotals(prefs []ShouPrefectureSummary) []PartySeats {
	var out []PartySeats

	index := make(map[string]int)

	for _, pref := range prefs {
		for _, pr := range pref.PartyResults {
			i, ok := index[pr.Party]
			if !ok {
				i = len(out)
				index[pr.Party] = i
				out = append(out, PartySeats{Party: pr.Party})
			}

			out[i].Seats += pr.Seats
			out[i].Votes += pr.TotalVotes
		}
	}

	slices.SortStableFunc(out, func(a, b PartySeats) int { return b.Seats - a.Seats })

	return out
}

// Performance is one party's showing in one prefecture.
type Performance struct {
	Prefecture     string  `json:"prefecture"     yaml:"prefecture"`
	Seats          int     `json:"seats"          yaml:"seats"`
	TotalDistricts int     `json:"totalDistricts" yaml:"total_districts"`
	VoteRate       float64 `json:"voteRate"       yaml:"vote_rate"`
	TotalVotes     int     `json:"totalVotes"     yaml:"total_votes"`
	WinRate        float64 `json:"winRate"        yaml:"win_rate"`
}

// PartyPerformance reports party's results per prefecture ordered by win rate
// descending. Prefectures where the party ran nobody appear with zeros.
func PartyPerformance(prefs []ShouPrefectureSummary, party string) []Performance {
	if party == "" {
		return nil
	}

	out := make([]Performance, len(prefs))

	for i, pref := range prefs {
		perf := Performance{Prefecture: pref.Prefecture, TotalDistricts: pref.TotalDistricts}

		if j := slices.IndexFunc(pref.PartyResults, func(r ShouPartyResult) bool { return r.Party == party }); j >= 0 {
			pr := pref.PartyResults[j]
			perf.Seats, perf.VoteRate, perf.TotalVotes = pr.Seats, pr.VoteRate, pr.TotalVotes
		}

		perf.WinRate = stats.Percent(perf.Seats, pref.TotalDistricts)
		out[i] = perf
	}

	slices.SortStableFunc(out, func(a, b Performance) int {
		switch {
		case a.WinRate > b.WinRate:
			return -1
		case a.WinRate < b.WinRate:
			return 1
		default:
			return 0
		}
	})

	return out
}

// TotalDistricts counts the districts of all prefectures.
func TotalDistricts(prefs []ShouPrefectureSummary) int {
	return stats.SumBy(prefs, func(p ShouPrefectureSummary) int { return p.TotalDistricts })
}

// Winner returns the elected candidate of a district.
func (d ShouDistrict) Winner() (ShouCandidate, bool) {
	i := slices.IndexFunc(d.Candidates, func(c ShouCandidate) bool { return c.Result == Elected })
	if i < 0 {
		return ShouCandidate{}, false
	}

	return d.Candidates[i], true
}

// DistrictsOf returns the districts of one prefecture ordered by number.
func DistrictsOf(districts []ShouDistrict, prefecture string) []ShouDistrict {
	var out []ShouDistrict

	for _, d := range districts {
		if d.Prefecture == prefecture {
			out = append(out, d)
		}
	}

	slices.SortStableFunc(out, func(a, b ShouDistrict) int { return a.District - b.District })

	return out
}
