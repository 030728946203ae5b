// Package precinct maps the polling precincts of Ota ward to the towns they
// cover, their House of Representatives constituency and their local area.
package precinct

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed assets/ota.yaml
var otaYAML []byte

// Constituencies covering Ota ward.
const (
	Tokyo4  = "4区"
	Tokyo26 = "26区"
)

// Precinct is one polling precinct.
type Precinct struct {
	ID           int      `json:"id"           yaml:"id"`
	Name         string   `json:"name"         yaml:"name"`
	Towns        []string `json:"towns"        yaml:"towns"`
	Constituency string   `json:"constituency" yaml:"constituency"`
	Area         string   `json:"area"         yaml:"area"`
}

var areas = []string{"大森", "調布", "蒲田", "糀谷・羽田"}

var load = sync.OnceValue(func() []Precinct {
	ps, err := parse(otaYAML)
	if err != nil {
		panic(fmt.Sprintf("precinct: embedded table: %v", err))
	}

	return ps
})

func parse(data []byte) ([]Precinct, error) {
	var ps []Precinct

	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("decode precincts: %w", err)
	}

	slices.SortFunc(ps, func(a, b Precinct) int { return a.ID - b.ID })

	return ps, nil
}

// All returns every precinct ordered by id.
func All() []Precinct {
	return slices.Clone(load())
}

// ByID returns the precinct with the given number.
func ByID(id int) (Precinct, bool) {
	ps := load()

	i, found := slices.BinarySearchFunc(ps, id, func(p Precinct, id int) int { return p.ID - id })
	if !found {
		return Precinct{}, false
	}

	return ps[i], true
}

// ByConstituency returns the precincts of "4区" or "26区".
func ByConstituency(c string) []Precinct {
	return where(func(p Precinct) bool { return p.Constituency == c })
}

// ByArea returns the precincts of one local area.
func ByArea(area string) []Precinct {
	return where(func(p Precinct) bool { return p.Area == area })
}

// Areas lists the local areas in display order.
func Areas() []string {
	return slices.Clone(areas)
}

func where(keep func(Precinct) bool) []Precinct {
	var out []Precinct

	for _, p := range load() {
		if keep(p) {
			out = append(out, p)
		}
	}

	return out
}
