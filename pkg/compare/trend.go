package compare

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// TrendPoint is one election in a multi-year series: its year label, an
// optional display name and the vote rate of each party.
//
// On the wire every party is a sibling key of "year" and "name".
type TrendPoint struct {
	Year  string
	Name  string
	Rates map[string]float64
}

// UnmarshalJSON splits the flat object into label fields and party rates.
// Numeric years are accepted.
func (p *TrendPoint) UnmarshalJSON(data []byte) error {
	var raw map[string]any

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = TrendPoint{Rates: make(map[string]float64, len(raw))}

	for k, v := range raw {
		switch k {
		case "year":
			p.Year = label(v)
		case "name":
			p.Name = label(v)
		default:
			f, ok := v.(float64)
			if !ok {
				return fmt.Errorf("trend %q: party %q: rate is %T, want number", p.Year, k, v)
			}

			p.Rates[k] = f
		}
	}

	return nil
}

// MarshalJSON writes the flat wire form.
func (p TrendPoint) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, len(p.Rates)+2)

	for k, v := range p.Rates {
		raw[k] = v
	}

	raw["year"] = p.Year

	if p.Name != "" {
		raw["name"] = p.Name
	}

	return json.Marshal(raw)
}

func label(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Trends holds the published multi-year party rate series.
type Trends struct {
	UnifiedLocal   []TrendPoint `json:"unified_local"`
	TokyoWardHirei []TrendPoint `json:"tokyo_ward_hirei"`
}

// Parties lists every party in the series in sorted order.
func Parties(series []TrendPoint) []string {
	set := make(map[string]struct{})

	for _, p := range series {
		for party := range p.Rates {
			set[party] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(set))
}

// Consecutive compares each point with the one before it, pairing the rates
// of the given parties. The first point has nothing to compare against and is
// skipped.
func Consecutive(series []TrendPoint, parties []string) [][]PartyComparison {
	if len(series) < 2 {
		return nil
	}

	out := make([][]PartyComparison, 0, len(series)-1)

	for i := 1; i < len(series); i++ {
		out = append(out, GeneratePartyComparison(
			ratesOf(series[i-1], parties),
			ratesOf(series[i], parties),
		))
	}

	return out
}

func ratesOf(p TrendPoint, parties []string) []PartyRate {
	out := make([]PartyRate, 0, len(parties))

	for _, party := range parties {
		if r, ok := p.Rates[party]; ok {
			out = append(out, PartyRate{Party: party, Rate: r})
		}
	}

	return out
}
