package dashboard

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/senkyo/pkg/compare"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/national"
	"github.com/Sumatoshi-tech/senkyo/pkg/tilemap"
)

// Errors returned by views whose inputs were never loaded or do not match.
var (
	ErrNoNational = errors.New("no national election loaded")
	ErrNoTiles    = errors.New("no prefecture tiles loaded")
	ErrNotFound   = errors.New("not found")
	ErrBadMode    = errors.New("unknown colour mode")
)

// Summary is the headline view: party totals plus per-ward rollups.
type Summary struct {
	Year    int                     `json:"year"    yaml:"year"`
	Parties []election.PartyResult  `json:"parties" yaml:"parties"`
	Wards   []*election.WardSummary `json:"wards"   yaml:"wards"`
}

// Summarize builds the headline view of rows.
func Summarize(rows []election.Row, year int) Summary {
	return Summary{
		Year:    year,
		Parties: election.PartyTotals(rows),
		Wards:   Wards(rows),
	}
}

// Districts summarizes every district in first-seen order.
func Districts(rows []election.Row) []*election.DistrictSummary {
	groups := election.GroupByDistrict(rows)
	out := make([]*election.DistrictSummary, 0, groups.Len())

	for _, g := range groups.All() {
		out = append(out, election.SummarizeDistrict(g))
	}

	return out
}

// Wards summarizes every ward in first-seen order.
func Wards(rows []election.Row) []*election.WardSummary {
	groups := election.GroupByWard(rows)
	out := make([]*election.WardSummary, 0, groups.Len())

	for _, g := range groups.All() {
		out = append(out, election.SummarizeWard(g))
	}

	return out
}

// CompareYears compares party totals of two years under f's party and
// region criteria.
func CompareYears(rows []election.Row, f Filter, earlier, later int) []compare.PartyComparison {
	a := election.PartyTotals(Apply(rows, Reduce(f, SelectYear{Year: earlier})))
	b := election.PartyTotals(Apply(rows, Reduce(f, SelectYear{Year: later})))

	return compare.GeneratePartyComparison(compare.FromPartyResults(a), compare.FromPartyResults(b))
}

// TileQuery selects how the prefecture grid is coloured.
type TileQuery struct {
	Mode  tilemap.ColorMode
	Party string
	Prev  []tilemap.PrefectureTile
}

// Tiles lays out tiles under q.
func Tiles(tiles []tilemap.PrefectureTile, q TileQuery) ([]tilemap.Cell, error) {
	if len(tiles) == 0 {
		return nil, ErrNoTiles
	}

	if q.Mode == "" {
		q.Mode = tilemap.ModeTurnout
	}

	if !q.Mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrBadMode, q.Mode)
	}

	return tilemap.Layout(tiles, q.Mode, q.Party, q.Prev), nil
}

// NationalQuery narrows a national election view. Block and Party select a
// proportional list; Party alone selects per-prefecture performance.
type NationalQuery struct {
	Block string
	Party string
	Sort  national.SortKey
	Desc  bool
}

// NationalView is the answer to a NationalQuery; unused parts stay empty.
type NationalView struct {
	Year           int                       `json:"year"                  yaml:"year"`
	Seats          []national.PartySeats     `json:"seats"                 yaml:"seats"`
	Blocks         []national.SeatRow        `json:"blocks"                yaml:"blocks"`
	BlockParties   []string                  `json:"blockParties"          yaml:"block_parties"`
	Candidates     []national.HireiCandidate `json:"candidates,omitempty"  yaml:"candidates,omitempty"`
	Performance    []national.Performance    `json:"performance,omitempty" yaml:"performance,omitempty"`
	TotalDistricts int                       `json:"totalDistricts"        yaml:"total_districts"`
}

// National answers q against e.
func National(e *national.Election, q NationalQuery) (*NationalView, error) {
	if e == nil {
		return nil, ErrNoNational
	}

	view := &NationalView{
		Year:           e.Year,
		Seats:          national.NationalShouTotals(e.Shou.Prefectures),
		Blocks:         national.BlockSeatMatrix(e.Hirei.Blocks),
		BlockParties:   national.HireiParties(e.Hirei.Blocks),
		TotalDistricts: national.TotalDistricts(e.Shou.Prefectures),
	}

	switch {
	case q.Block != "" && q.Party != "":
		block, ok := national.FindBlock(e.Hirei.Blocks, q.Block)
		if !ok {
			return nil, fmt.Errorf("block %q: %w", q.Block, ErrNotFound)
		}

		list, ok := block.FindParty(q.Party)
		if !ok {
			return nil, fmt.Errorf("party %q in block %q: %w", q.Party, q.Block, ErrNotFound)
		}

		key := q.Sort
		if key == "" {
			key = national.SortRank
		}

		view.Candidates = national.SortCandidates(list.Candidates, key, !q.Desc)
	case q.Party != "":
		view.Performance = national.PartyPerformance(e.Shou.Prefectures, q.Party)
	}

	return view, nil
}
