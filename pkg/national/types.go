// Package national models House of Representatives results: proportional
// representation blocks (hirei) and single-member districts (shou).
package national

// Result marks how a candidate fared.
type Result string

// Candidate outcomes.
const (
	Elected         Result = "当"  // won outright
	ElectedByHirei  Result = "比当" // won a proportional seat after losing a district
	Defeated        Result = "落"
)

// Won reports whether the candidate took a seat either way.
func (r Result) Won() bool { return r == Elected || r == ElectedByHirei }

// HireiCandidate is one entry on a party's proportional list. Votes and
// WinnerVotes are set only for candidates who also ran in a district.
type HireiCandidate struct {
	Rank         int     `json:"rank"                   yaml:"rank"`
	Name         string  `json:"name"                   yaml:"name"`
	Age          int     `json:"age"                    yaml:"age"`
	Party        string  `json:"party"                  yaml:"party"`
	Result       Result  `json:"result"                 yaml:"result"`
	Votes        int     `json:"votes,omitempty"        yaml:"votes,omitempty"`
	WinnerVotes  int     `json:"winnerVotes,omitempty"  yaml:"winner_votes,omitempty"`
	Sekihairitsu float64 `json:"sekihairitsu,omitempty" yaml:"sekihairitsu,omitempty"`
	Block        string  `json:"block"                  yaml:"block"`
}

// HireiPartyBlock is a party's result inside one block.
type HireiPartyBlock struct {
	Party      string           `json:"party"      yaml:"party"`
	Block      string           `json:"block"      yaml:"block"`
	Seats      int              `json:"seats"      yaml:"seats"`
	Votes      int              `json:"votes"      yaml:"votes"`
	VoteRate   float64          `json:"voteRate"   yaml:"vote_rate"`
	Candidates []HireiCandidate `json:"candidates" yaml:"candidates"`
}

// HireiBlock is one of the eleven proportional blocks (or the single
// national block of an upper house election).
type HireiBlock struct {
	Name       string            `json:"name"       yaml:"name"`
	TotalSeats int               `json:"totalSeats" yaml:"total_seats"`
	TotalVotes int               `json:"totalVotes" yaml:"total_votes"`
	Parties    []HireiPartyBlock `json:"parties"    yaml:"parties"`
}

// ShouCandidate is one candidate of a single-member district.
type ShouCandidate struct {
	Name            string  `json:"name"            yaml:"name"`
	Party           string  `json:"party"           yaml:"party"`
	Votes           int     `json:"votes"           yaml:"votes"`
	VoteRate        float64 `json:"voteRate"        yaml:"vote_rate"`
	Result          Result  `json:"result"          yaml:"result"`
	IsDualCandidate bool    `json:"isDualCandidate" yaml:"is_dual_candidate"`
}

// ShouDistrict is one single-member district.
type ShouDistrict struct {
	Prefecture string          `json:"prefecture" yaml:"prefecture"`
	District   int             `json:"district"   yaml:"district"`
	Candidates []ShouCandidate `json:"candidates" yaml:"candidates"`
}

// ShouPartyResult is a party's district results within a prefecture.
type ShouPartyResult struct {
	Party      string  `json:"party"      yaml:"party"`
	Seats      int     `json:"seats"      yaml:"seats"`
	TotalVotes int     `json:"totalVotes" yaml:"total_votes"`
	VoteRate   float64 `json:"voteRate"   yaml:"vote_rate"`
}

// ShouPrefectureSummary rolls a prefecture's districts up by party.
type ShouPrefectureSummary struct {
	Prefecture     string            `json:"prefecture"     yaml:"prefecture"`
	TotalDistricts int               `json:"totalDistricts" yaml:"total_districts"`
	PartyResults   []ShouPartyResult `json:"partyResults"   yaml:"party_results"`
}

// Hirei is the proportional half of an election.
type Hirei struct {
	TotalSeats int          `json:"totalSeats" yaml:"total_seats"`
	Blocks     []HireiBlock `json:"blocks"     yaml:"blocks"`
}

// Shou is the district half of an election.
type Shou struct {
	TotalSeats  int                     `json:"totalSeats"  yaml:"total_seats"`
	Prefectures []ShouPrefectureSummary `json:"prefectures" yaml:"prefectures"`
	Districts   []ShouDistrict          `json:"districts"   yaml:"districts"`
}

// Election is one national election.
type Election struct {
	Year         int    `json:"year"         yaml:"year"`
	ElectionDate string `json:"electionDate" yaml:"election_date"`
	Hirei        Hirei  `json:"hirei"        yaml:"hirei"`
	Shou         Shou   `json:"shou"         yaml:"shou"`
}
