package compare

import "github.com/Sumatoshi-tech/senkyo/pkg/stats"

// DistrictTurnout is the tally of one polling precinct.
type DistrictTurnout struct {
	ID             int     `json:"id"             yaml:"id"`
	TotalVotes     int     `json:"totalVotes"     yaml:"total_votes"`
	InvalidVotes   int     `json:"invalidVotes"   yaml:"invalid_votes"`
	EligibleVoters int     `json:"eligibleVoters" yaml:"eligible_voters"`
	TurnoutRate    float64 `json:"turnoutRate"    yaml:"turnout_rate"`
}

// DistrictAggregate sums a set of precincts.
type DistrictAggregate struct {
	TotalVotes    int     `json:"totalVotes"    yaml:"total_votes"`
	TotalEligible int     `json:"totalEligible" yaml:"total_eligible"`
	TotalInvalid  int     `json:"totalInvalid"  yaml:"total_invalid"`
	AvgTurnout    float64 `json:"avgTurnout"    yaml:"avg_turnout"`
}

// AggregateDistricts sums precinct tallies. AvgTurnout is the unweighted mean
// of the precinct turnout rates, 0 when there are no precincts.
func AggregateDistricts(districts []DistrictTurnout) DistrictAggregate {
	rates := make([]float64, len(districts))
	for i, d := range districts {
		rates[i] = d.TurnoutRate
	}

	return DistrictAggregate{
		TotalVotes:    stats.SumBy(districts, func(d DistrictTurnout) int { return d.TotalVotes }),
		TotalEligible: stats.SumBy(districts, func(d DistrictTurnout) int { return d.EligibleVoters }),
		TotalInvalid:  stats.SumBy(districts, func(d DistrictTurnout) int { return d.InvalidVotes }),
		AvgTurnout:    stats.Mean(rates),
	}
}
