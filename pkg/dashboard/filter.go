// Package dashboard holds the filter state and loaded rows behind every
// senkyo view, and loads result sources with per-source placeholders.
package dashboard

import "slices"

// DefaultYear is the election year selected on startup and after Reset.
const DefaultYear = 2026

// Filter selects which rows a view shows. Zero Year and empty Region or
// Parties disable that criterion.
type Filter struct {
	Parties        []string `json:"parties"`
	Year           int      `json:"year"`
	Region         string   `json:"region"`
	ComparisonYear int      `json:"comparisonYear,omitempty"`
}

// DefaultFilter returns the startup filter.
func DefaultFilter() Filter {
	return Filter{Year: DefaultYear}
}

// Action is a state transition accepted by Reduce.
type Action interface {
	apply(f Filter) Filter
}

// SelectParties replaces the party selection.
type SelectParties struct{ Parties []string }

// SelectYear replaces the selected year.
type SelectYear struct{ Year int }

// SelectRegion replaces the selected region.
type SelectRegion struct{ Region string }

// SelectComparisonYear sets the year compared against.
type SelectComparisonYear struct{ Year int }

// SetFilter replaces the whole filter in one transition.
type SetFilter struct{ Filter Filter }

// Reset restores DefaultFilter.
type Reset struct{}

func (a SelectParties) apply(f Filter) Filter {
	f.Parties = slices.Clone(a.Parties)

	return f
}

func (a SelectYear) apply(f Filter) Filter {
	f.Year = a.Year

	return f
}

func (a SelectRegion) apply(f Filter) Filter {
	f.Region = a.Region

	return f
}

func (a SelectComparisonYear) apply(f Filter) Filter {
	f.ComparisonYear = a.Year

	return f
}

func (a SetFilter) apply(Filter) Filter {
	f := a.Filter
	f.Parties = slices.Clone(a.Filter.Parties)

	return f
}

func (Reset) apply(Filter) Filter { return DefaultFilter() }

// Reduce returns the filter that results from applying a to f. f is not
// modified; a nil action returns a copy of f.
func Reduce(f Filter, a Action) Filter {
	f.Parties = slices.Clone(f.Parties)
	if a == nil {
		return f
	}

	return a.apply(f)
}
