package election_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/senkyo/pkg/election"
)

func TestGroupBy_KeepsFirstSeenOrder(t *testing.T) {
	t.Parallel()

	rows := []election.Row{
		row("B", "1", "X", "a", 1, 10),
		row("A", "1", "Y", "b", 2, 10),
		row("B", "2", "Z", "c", 3, 10),
		row("A", "1", "Y", "b", 2, 10),
	}

	g := election.GroupByWard(rows)

	assert.Equal(t, []string{"B", "A"}, g.Keys())
	assert.Equal(t, 2, g.Len())
	assert.Len(t, g.Get("A"), 2, "duplicates are kept")
	assert.Equal(t, "c", g.Get("B")[1].CandidateName)
	assert.Nil(t, g.Get("missing"))

	total := 0
	for _, rs := range g.All() {
		total += len(rs)
	}

	assert.Equal(t, len(rows), total)
}

func TestGroupByDistrict(t *testing.T) {
	t.Parallel()

	g := election.GroupByDistrict([]election.Row{
		row("A", "1", "X", "a", 1, 10),
		row("A", "2", "X", "b", 1, 10),
		row("B", "1", "X", "c", 1, 10),
		row("A", "1", "Y", "d", 1, 10),
	})

	keys := g.Keys()
	assert.Len(t, keys, 3)
	assert.Equal(t, "A-1", keys[0].String())
	assert.Len(t, g.Get(election.DistrictKey{Region: "A", District: "1"}), 2)
}

func TestGroups_KeysIsCopy(t *testing.T) {
	t.Parallel()

	g := election.GroupByParty([]election.Row{row("A", "1", "X", "a", 1, 10)})
	keys := g.Keys()
	keys[0] = "mutated"

	assert.Equal(t, []string{"X"}, g.Keys())
}
