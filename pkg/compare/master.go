package compare

import (
	"slices"
	"strconv"
)

// Tier selects the ballot of a House of Representatives election.
type Tier string

// Ballot tiers.
const (
	TierSyosenkyoku Tier = "syosenkyoku" // single-member district
	TierHirei       Tier = "hirei"       // proportional representation
)

// Tally is the party breakdown of one ballot.
type Tally struct {
	TotalVotes int         `json:"totalVotes" yaml:"total_votes"`
	Results    []PartyRate `json:"results"    yaml:"results"`
}

// YearData is one election of a constituency with its precinct detail.
type YearData struct {
	Year         int               `json:"year"         yaml:"year"`
	ElectionDate string            `json:"electionDate" yaml:"election_date"`
	Syosenkyoku  Tally             `json:"syosenkyoku"  yaml:"syosenkyoku"`
	Hirei        Tally             `json:"hirei"        yaml:"hirei"`
	Districts    []DistrictTurnout `json:"districts"    yaml:"districts"`
}

// MasterData is the multi-year record of one constituency.
type MasterData struct {
	Region   string              `json:"region"   yaml:"region"`
	Senkyoku string              `json:"senkyoku" yaml:"senkyoku"`
	Years    map[string]YearData `json:"years"    yaml:"years"`
}

// Year returns the record of the given election year.
func (m *MasterData) Year(year int) (YearData, bool) {
	yd, ok := m.Years[strconv.Itoa(year)]

	return yd, ok
}

// YearList returns the years on record in ascending order.
func (m *MasterData) YearList() []int {
	out := make([]int, 0, len(m.Years))

	for k := range m.Years {
		if y, err := strconv.Atoi(k); err == nil {
			out = append(out, y)
		}
	}

	slices.Sort(out)

	return out
}

// Compare lines up the chosen ballot of two years. Missing years compare as
// empty.
func (m *MasterData) Compare(earlier, later int, tier Tier) []PartyComparison {
	a, _ := m.Year(earlier)
	b, _ := m.Year(later)

	return GeneratePartyComparison(a.tally(tier).Results, b.tally(tier).Results)
}

func (y YearData) tally(tier Tier) Tally {
	if tier == TierHirei {
		return y.Hirei
	}

	return y.Syosenkyoku
}
