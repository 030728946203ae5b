package election

import "github.com/Sumatoshi-tech/senkyo/pkg/stats"

// VoteShare is votes as a percentage of total. Zero total yields 0.
func VoteShare(votes, total int) float64 {
	return stats.Percent(votes, total)
}

// TurnoutRate is votes cast as a percentage of eligible voters.
// Zero eligible voters yields 0.
func TurnoutRate(votes, eligible int) float64 {
	return stats.Percent(votes, eligible)
}

// DistrictRatio is a district's share of an overall vote total.
func DistrictRatio(districtVotes, total int) float64 {
	return stats.Percent(districtVotes, total)
}
