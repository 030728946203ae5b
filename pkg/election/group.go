package election

import "iter"

// Groups is an ordered partition of rows. Keys are kept in the order they
// were first seen and each group keeps its rows in input order.
type Groups[K comparable] struct {
	keys []K
	rows map[K][]Row
}

// GroupBy partitions rows by keyFn. Rows are not deduplicated.
func GroupBy[K comparable](rows []Row, keyFn func(Row) K) *Groups[K] {
	g := &Groups[K]{rows: make(map[K][]Row)}

	for _, r := range rows {
		k := keyFn(r)

		if _, seen := g.rows[k]; !seen {
			g.keys = append(g.keys, k)
		}

		g.rows[k] = append(g.rows[k], r)
	}

	return g
}

// GroupByDistrict partitions rows by (regionName, district).
func GroupByDistrict(rows []Row) *Groups[DistrictKey] {
	return GroupBy(rows, Row.Key)
}

// GroupByWard partitions rows by regionName.
func GroupByWard(rows []Row) *Groups[string] {
	return GroupBy(rows, func(r Row) string { return r.RegionName })
}

// GroupByParty partitions rows by partyName.
func GroupByParty(rows []Row) *Groups[string] {
	return GroupBy(rows, func(r Row) string { return r.PartyName })
}

// Keys returns the group keys in first-seen order.
func (g *Groups[K]) Keys() []K {
	out := make([]K, len(g.keys))
	copy(out, g.keys)

	return out
}

// Get returns the rows of the group k, or nil.
func (g *Groups[K]) Get(k K) []Row {
	return g.rows[k]
}

// Len returns the number of groups.
func (g *Groups[K]) Len() int {
	return len(g.keys)
}

// All iterates groups in first-seen key order.
func (g *Groups[K]) All() iter.Seq2[K, []Row] {
	return func(yield func(K, []Row) bool) {
		for _, k := range g.keys {
			if !yield(k, g.rows[k]) {
				return
			}
		}
	}
}
