package election

// CandidateResult is one candidate's line inside a DistrictSummary.
type CandidateResult struct {
	CandidateName string  `json:"candidateName" yaml:"candidate_name"`
	PartyName     string  `json:"partyName"     yaml:"party_name"`
	Votes         int     `json:"votes"         yaml:"votes"`
	VoteShare     float64 `json:"voteShare"     yaml:"vote_share"`
	IsWinner      bool    `json:"isWinner"      yaml:"is_winner"`
}

// DistrictSummary is the result of a single district.
// Results are ordered by votes descending and only Results[0] is the winner.
type DistrictSummary struct {
	District       string            `json:"district"       yaml:"district"`
	RegionName     string            `json:"regionName"     yaml:"region_name"`
	TotalVotes     int               `json:"totalVotes"     yaml:"total_votes"`
	EligibleVoters int               `json:"eligibleVoters" yaml:"eligible_voters"`
	TurnoutRate    float64           `json:"turnoutRate"    yaml:"turnout_rate"`
	Results        []CandidateResult `json:"results"        yaml:"results"`
}

// Winner returns the winning candidate line.
func (s *DistrictSummary) Winner() (CandidateResult, bool) {
	if s == nil || len(s.Results) == 0 {
		return CandidateResult{}, false
	}

	return s.Results[0], true
}

// PartyResult is a party's rollup over some set of rows.
type PartyResult struct {
	PartyName string  `json:"partyName" yaml:"party_name"`
	Votes     int     `json:"votes"     yaml:"votes"`
	VoteShare float64 `json:"voteShare" yaml:"vote_share"`
	Seats     int     `json:"seats"     yaml:"seats"`
}

// WardSummary aggregates every district of one ward (regionName).
type WardSummary struct {
	WardName       string        `json:"wardName"       yaml:"ward_name"`
	TotalVotes     int           `json:"totalVotes"     yaml:"total_votes"`
	EligibleVoters int           `json:"eligibleVoters" yaml:"eligible_voters"`
	TurnoutRate    float64       `json:"turnoutRate"    yaml:"turnout_rate"`
	PartyResults   []PartyResult `json:"partyResults"   yaml:"party_results"`
	Seats          int           `json:"seats"          yaml:"seats"`
}

// SeatsOf returns the seats won by party in the ward.
func (s *WardSummary) SeatsOf(party string) int {
	if s == nil {
		return 0
	}

	for _, pr := range s.PartyResults {
		if pr.PartyName == party {
			return pr.Seats
		}
	}

	return 0
}

// HeatmapData is a single region value for choropleth rendering.
// PartyName is empty when Value is a turnout rate.
type HeatmapData struct {
	RegionID   string  `json:"regionId"            yaml:"region_id"`
	RegionName string  `json:"regionName"          yaml:"region_name"`
	Value      float64 `json:"value"               yaml:"value"`
	PartyName  string  `json:"partyName,omitempty" yaml:"party_name,omitempty"`
}
