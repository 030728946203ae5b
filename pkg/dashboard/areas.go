package dashboard

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/senkyo/pkg/compare"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/precinct"
)

// OtherArea groups precincts missing from the precinct table.
const OtherArea = "その他"

// ErrNoMaster is returned by the area view when no constituency record loaded.
var ErrNoMaster = errors.New("no constituency record loaded")

// AreaQuery selects the precinct area view. Zero Year picks the latest year
// on record and zero Prev the one before Year; an empty Area keeps them all.
type AreaQuery struct {
	Year int
	Prev int
	Area string
}

// PrecinctTurnout is one precinct in the selected year, with its share of
// the votes cast across the ward and its change against Prev.
type PrecinctTurnout struct {
	ID           int     `json:"id"                    yaml:"id"`
	Name         string  `json:"name"                  yaml:"name"`
	Area         string  `json:"area"                  yaml:"area"`
	Constituency string  `json:"constituency"          yaml:"constituency"`
	TotalVotes   int     `json:"totalVotes"            yaml:"total_votes"`
	TurnoutRate  float64 `json:"turnoutRate"           yaml:"turnout_rate"`
	Ratio        float64 `json:"ratio"                 yaml:"ratio"`
	HasPrev      bool    `json:"hasPrev"               yaml:"has_prev"`
	VoteDiff     int     `json:"voteDiff,omitempty"    yaml:"vote_diff,omitempty"`
	VoteDiffPct  float64 `json:"voteDiffPct,omitempty" yaml:"vote_diff_pct,omitempty"`
	TurnoutDiff  float64 `json:"turnoutDiff,omitempty" yaml:"turnout_diff,omitempty"`
	RatioDiff    float64 `json:"ratioDiff,omitempty"   yaml:"ratio_diff,omitempty"`
}

// AreaSummary rolls the precincts of one local area up.
type AreaSummary struct {
	Area        string                    `json:"area"                  yaml:"area"`
	Precincts   int                       `json:"precincts"             yaml:"precincts"`
	Totals      compare.DistrictAggregate `json:"totals"                yaml:"totals"`
	Ratio       float64                   `json:"ratio"                 yaml:"ratio"`
	Prev        compare.DistrictAggregate `json:"prev"                  yaml:"prev"`
	VoteDiff    int                       `json:"voteDiff,omitempty"    yaml:"vote_diff,omitempty"`
	VoteDiffPct float64                   `json:"voteDiffPct,omitempty" yaml:"vote_diff_pct,omitempty"`
}

// AreaView is the answer to an AreaQuery.
type AreaView struct {
	Region    string            `json:"region"    yaml:"region"`
	Senkyoku  string            `json:"senkyoku"  yaml:"senkyoku"`
	Year      int               `json:"year"      yaml:"year"`
	Prev      int               `json:"prev"      yaml:"prev"`
	Areas     []AreaSummary     `json:"areas"     yaml:"areas"`
	Precincts []PrecinctTurnout `json:"precincts" yaml:"precincts"`
}

// Areas joins the precinct tallies of m with the precinct table: each
// precinct's share of the ward vote and its change since q.Prev, plus one
// rollup per local area in display order.
func Areas(m *compare.MasterData, q AreaQuery) (*AreaView, error) {
	if m == nil {
		return nil, ErrNoMaster
	}

	years := m.YearList()
	if len(years) == 0 {
		return nil, fmt.Errorf("constituency %s: %w", m.Senkyoku, ErrNotFound)
	}

	year := q.Year
	if year == 0 {
		year = years[len(years)-1]
	}

	cur, ok := m.Year(year)
	if !ok {
		return nil, fmt.Errorf("year %d: %w", year, ErrNotFound)
	}

	prevYear := q.Prev
	if prevYear == 0 {
		if i := slices.Index(years, year); i > 0 {
			prevYear = years[i-1]
		}
	}

	var prev compare.YearData

	if prevYear != 0 {
		if prev, ok = m.Year(prevYear); !ok {
			return nil, fmt.Errorf("year %d: %w", prevYear, ErrNotFound)
		}
	}

	names := append(precinct.Areas(), OtherArea)
	if q.Area != "" && !slices.Contains(names, q.Area) {
		return nil, fmt.Errorf("area %q: %w", q.Area, ErrNotFound)
	}

	view := &AreaView{Region: m.Region, Senkyoku: m.Senkyoku, Year: year, Prev: prevYear}
	view.Precincts = precinctTurnouts(cur.Districts, prev.Districts, q.Area)

	curTotal := compare.AggregateDistricts(cur.Districts).TotalVotes
	curByArea := byArea(cur.Districts)
	prevByArea := byArea(prev.Districts)

	for _, name := range names {
		if q.Area != "" && name != q.Area {
			continue
		}

		ds := curByArea[name]
		if len(ds) == 0 {
			continue
		}

		sum := AreaSummary{
			Area:      name,
			Precincts: len(ds),
			Totals:    compare.AggregateDistricts(ds),
			Prev:      compare.AggregateDistricts(prevByArea[name]),
		}
		sum.Ratio = election.DistrictRatio(sum.Totals.TotalVotes, curTotal)

		if prevYear != 0 {
			sum.VoteDiff, sum.VoteDiffPct = compare.VoteDifference(sum.Totals.TotalVotes, sum.Prev.TotalVotes)
		}

		view.Areas = append(view.Areas, sum)
	}

	return view, nil
}

func precinctTurnouts(cur, prev []compare.DistrictTurnout, area string) []PrecinctTurnout {
	curTotal := compare.AggregateDistricts(cur).TotalVotes
	prevTotal := compare.AggregateDistricts(prev).TotalVotes

	prevByID := make(map[int]compare.DistrictTurnout, len(prev))
	for _, d := range prev {
		prevByID[d.ID] = d
	}

	out := make([]PrecinctTurnout, 0, len(cur))

	for _, d := range cur {
		pt := PrecinctTurnout{
			ID:          d.ID,
			Area:        OtherArea,
			TotalVotes:  d.TotalVotes,
			TurnoutRate: d.TurnoutRate,
			Ratio:       election.DistrictRatio(d.TotalVotes, curTotal),
		}

		if info, ok := precinct.ByID(d.ID); ok {
			pt.Name, pt.Area, pt.Constituency = info.Name, info.Area, info.Constituency
		}

		if area != "" && pt.Area != area {
			continue
		}

		if p, ok := prevByID[d.ID]; ok {
			pt.HasPrev = true
			pt.VoteDiff, pt.VoteDiffPct = compare.VoteDifference(d.TotalVotes, p.TotalVotes)
			pt.TurnoutDiff = d.TurnoutRate - p.TurnoutRate
			pt.RatioDiff = pt.Ratio - election.DistrictRatio(p.TotalVotes, prevTotal)
		}

		out = append(out, pt)
	}

	slices.SortFunc(out, func(a, b PrecinctTurnout) int { return a.ID - b.ID })

	return out
}

// byArea buckets districts by local area using the precinct table.
func byArea(districts []compare.DistrictTurnout) map[string][]compare.DistrictTurnout {
	areaOf := make(map[int]string)

	for _, name := range precinct.Areas() {
		for _, p := range precinct.ByArea(name) {
			areaOf[p.ID] = name
		}
	}

	out := make(map[string][]compare.DistrictTurnout)

	for _, d := range districts {
		name, ok := areaOf[d.ID]
		if !ok {
			name = OtherArea
		}

		out[name] = append(out[name], d)
	}

	return out
}
