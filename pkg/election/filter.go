package election

import "slices"

// FilterByParties keeps rows whose party is in names. An empty list keeps
// every row.
func FilterByParties(rows []Row, names []string) []Row {
	if len(names) == 0 {
		return slices.Clone(rows)
	}

	return filter(rows, func(r Row) bool { return slices.Contains(names, r.PartyName) })
}

// FilterByYear keeps rows of the given election year.
func FilterByYear(rows []Row, year int) []Row {
	return filter(rows, func(r Row) bool { return r.Year == year })
}

// FilterByRegion keeps rows of the given region. An empty region keeps every
// row.
func FilterByRegion(rows []Row, region string) []Row {
	if region == "" {
		return slices.Clone(rows)
	}

	return filter(rows, func(r Row) bool { return r.RegionName == region })
}

func filter(rows []Row, keep func(Row) bool) []Row {
	out := make([]Row, 0, len(rows))

	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}

	return out
}

// Years returns the distinct years present in rows, newest first.
func Years(rows []Row) []int {
	var years []int

	for _, r := range rows {
		if !slices.Contains(years, r.Year) {
			years = append(years, r.Year)
		}
	}

	slices.SortFunc(years, func(a, b int) int { return b - a })

	return years
}
