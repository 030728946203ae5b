package tilemap

import (
	"fmt"
	"strconv"

	"github.com/Sumatoshi-tech/senkyo/pkg/parties"
)

// PrefectureTile is the per-prefecture data behind one tile. VotesByParty
// holds vote rates in percent. Ward-level files reuse the shape with Type set
// to the kind of municipality.
type PrefectureTile struct {
	ID           string             `json:"id"             yaml:"id"`
	Name         string             `json:"name"           yaml:"name"`
	Region       string             `json:"region"         yaml:"region"`
	Type         string             `json:"type,omitempty" yaml:"type,omitempty"`
	Note         string             `json:"note,omitempty" yaml:"note,omitempty"`
	Turnout      float64            `json:"turnout"        yaml:"turnout"`
	VotesByParty map[string]float64 `json:"votes_by_party" yaml:"votes_by_party"`
	WinnerCount  map[string]int     `json:"winner_count"   yaml:"winner_count"`
	TotalSeats   int                `json:"total_seats"    yaml:"total_seats"`
}

// ColorMode selects what the tile fill encodes.
type ColorMode string

// Colour modes.
const (
	ModeTurnout ColorMode = "turnout"
	ModeParty   ColorMode = "party"
	ModeChange  ColorMode = "change"
)

// Valid reports whether m is a known mode.
func (m ColorMode) Valid() bool {
	return m == ModeTurnout || m == ModeParty || m == ModeChange
}

// Cell is one rendered tile.
type Cell struct {
	Code     string   `json:"code"     yaml:"code"`
	Position Position `json:"position" yaml:"position"`
	X        int      `json:"x"        yaml:"x"`
	Y        int      `json:"y"        yaml:"y"`
	Fill     string   `json:"fill"     yaml:"fill"`
	Text     string   `json:"text"     yaml:"text"`
	Label    string   `json:"label"    yaml:"label"`
	SubLabel string   `json:"subLabel" yaml:"sub_label"`
	Value    float64  `json:"value"    yaml:"value"`
}

// Layout places every tile that has data on the grid and colours it. In
// change mode a tile without a previous counterpart falls back to turnout
// colouring. Cells come out in prefecture code order.
func Layout(tiles []PrefectureTile, mode ColorMode, party string, prev []PrefectureTile) []Cell {
	byID := indexTiles(tiles)
	prevByID := indexTiles(prev)
	out := make([]Cell, 0, len(byID))

	for _, code := range Codes() {
		tile, ok := byID[code]
		if !ok {
			continue
		}

		pos := positions[code]
		x, y := Origin(pos)

		fill, sub, value := shade(tile, mode, party, prevByID)

		out = append(out, Cell{
			Code:     code,
			Position: pos,
			X:        x,
			Y:        y,
			Fill:     fill,
			Text:     TextColor(fill),
			Label:    pos.Short,
			SubLabel: sub,
			Value:    value,
		})
	}

	return out
}

func shade(tile PrefectureTile, mode ColorMode, party string, prev map[string]PrefectureTile) (fill, sub string, value float64) {
	turnoutLabel := strconv.FormatFloat(tile.Turnout, 'f', 1, 64) + "%"

	switch mode {
	case ModeParty:
		rate := tile.VotesByParty[party]

		return PartyRateColor(rate, partyHex(party)), strconv.FormatFloat(rate, 'f', 1, 64) + "%", rate
	case ModeChange:
		p, ok := prev[tile.ID]
		if !ok {
			return TurnoutColor(tile.Turnout), turnoutLabel, tile.Turnout
		}

		diff := tile.Turnout - p.Turnout

		return ChangeColor(diff), fmt.Sprintf("%+.1f", diff), diff
	default:
		return TurnoutColor(tile.Turnout), turnoutLabel, tile.Turnout
	}
}

// partyHex is the base colour of party on the tile map. Unknown parties
// shade from grey rather than the catalogue's pale fallback.
func partyHex(party string) string {
	if c, ok := parties.LookupColor(party); ok {
		return c
	}

	return UnknownPartyColor
}

func indexTiles(tiles []PrefectureTile) map[string]PrefectureTile {
	m := make(map[string]PrefectureTile, len(tiles))

	for _, t := range tiles {
		m[t.ID] = t
	}

	return m
}
