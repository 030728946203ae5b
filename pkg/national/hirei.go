package national

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/senkyo/pkg/stats"
)

// SortKey selects the candidate column to order by.
type SortKey string

// Candidate sort keys.
const (
	SortRank         SortKey = "rank"
	SortName         SortKey = "name"
	SortSekihairitsu SortKey = "sekihairitsu"
	SortVotes        SortKey = "votes"
	SortResult       SortKey = "result"
)

var resultOrder = map[Result]int{Elected: 0, ElectedByHirei: 1, Defeated: 2}

// Sekihairitsu is a losing district candidate's votes as a percentage of the
// district winner's. Zero winner votes yields 0.
func Sekihairitsu(votes, winnerVotes int) float64 {
	return stats.Percent(votes, winnerVotes)
}

// SortCandidates returns cands ordered by key. Descending order is the exact
// reverse of ascending, ties included. Unknown keys keep input order.
func SortCandidates(cands []HireiCandidate, key SortKey, asc bool) []HireiCandidate {
	out := slices.Clone(cands)

	var less func(a, b HireiCandidate) int

	switch key {
	case SortRank:
		less = func(a, b HireiCandidate) int { return a.Rank - b.Rank }
	case SortName:
		less = func(a, b HireiCandidate) int { return strings.Compare(a.Name, b.Name) }
	case SortSekihairitsu:
		less = func(a, b HireiCandidate) int { return cmp.Compare(a.Sekihairitsu, b.Sekihairitsu) }
	case SortVotes:
		less = func(a, b HireiCandidate) int { return a.Votes - b.Votes }
	case SortResult:
		less = func(a, b HireiCandidate) int { return resultOrder[a.Result] - resultOrder[b.Result] }
	}

	if less != nil {
		slices.SortStableFunc(out, less)
	}

	if !asc {
		slices.Reverse(out)
	}

	return out
}

// FindBlock returns the block with the given name.
func FindBlock(blocks []HireiBlock, name string) (HireiBlock, bool) {
	i := slices.IndexFunc(blocks, func(b HireiBlock) bool { return b.Name == name })
	if i < 0 {
		return HireiBlock{}, false
	}

	return blocks[i], true
}

// FindParty returns the party's result in the block.
func (b HireiBlock) FindParty(party string) (HireiPartyBlock, bool) {
	i := slices.IndexFunc(b.Parties, func(p HireiPartyBlock) bool { return p.Party == party })
	if i < 0 {
		return HireiPartyBlock{}, false
	}

	return b.Parties[i], true
}

// Ranked returns the block's parties by seats then votes, both descending.
func (b HireiBlock) Ranked() []HireiPartyBlock {
	out := slices.Clone(b.Parties)

	slices.SortStableFunc(out, func(x, y HireiPartyBlock) int {
		if c := y.Seats - x.Seats; c != 0 {
			return c
		}

		return y.Votes - x.Votes
	})

	return out
}

// SeatRow is one block's seats per party.
type SeatRow struct {
	Block      string         `json:"block"      yaml:"block"`
	TotalSeats int            `json:"totalSeats" yaml:"total_seats"`
	Seats      map[string]int `json:"seats"      yaml:"seats"`
}

// BlockSeatMatrix tabulates seats per block and party.
func BlockSeatMatrix(blocks []HireiBlock) []SeatRow {
	out := make([]SeatRow, len(blocks))

	for i, b := range blocks {
		seats := make(map[string]int, len(b.Parties))
		for _, p := range b.Parties {
			seats[p.Party] = p.Seats
		}

		out[i] = SeatRow{Block: b.Name, TotalSeats: b.TotalSeats, Seats: seats}
	}

	return out
}

// HireiParties lists every party appearing in any block, first seen first.
func HireiParties(blocks []HireiBlock) []string {
	var out []string

	seen := make(map[string]bool)

	for _, b := range blocks {
		for _, p := range b.Parties {
			if !seen[p.Party] {
				seen[p.Party] = true
				out = append(out, p.Party)
			}
		}
	}

	return out
}
