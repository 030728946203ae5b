// Package election models flat per-candidate election results and folds them
// into district, ward, party and heatmap summaries.
//
// Every function in this package is pure: inputs are never mutated, nothing is
// cached between calls, and arithmetic edge cases (empty groups, zero
// denominators) degrade to zero values instead of errors.
package election

// RegionType classifies the administrative unit a row was counted in.
type RegionType string

// Known region types.
const (
	RegionDistrict RegionType = "district"
	RegionWard     RegionType = "ward"
	RegionCity     RegionType = "city"
)

// Valid reports whether rt is one of the known region types.
func (rt RegionType) Valid() bool {
	switch rt {
	case RegionDistrict, RegionWard, RegionCity:
		return true
	default:
		return false
	}
}

// Row is one candidate's result in one district for one election year.
//
// Within a (RegionName, District, Year) group EligibleVoters is the same on
// every row; it is repeated only because the source files are flat.
type Row struct {
	Year           int        `json:"year"           yaml:"year"`
	RegionType     RegionType `json:"regionType"     yaml:"region_type"`
	RegionName     string     `json:"regionName"     yaml:"region_name"`
	District       string     `json:"district"       yaml:"district"`
	PartyName      string     `json:"partyName"      yaml:"party_name"`
	CandidateName  string     `json:"candidateName"  yaml:"candidate_name"`
	Votes          int        `json:"votes"          yaml:"votes"`
	EligibleVoters int        `json:"eligibleVoters" yaml:"eligible_voters"`
}

// DistrictKey identifies a single-member district inside a region.
type DistrictKey struct {
	Region   string
	District string
}

// String renders the key the way the source data labels districts.
func (k DistrictKey) String() string {
	return k.Region + "-" + k.District
}

// Key returns the district key of the row.
func (r Row) Key() DistrictKey {
	return DistrictKey{Region: r.RegionName, District: r.District}
}
