package dashboard

import (
	"slices"
	"strings"
	"sync"

	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/ingest"
)

// Store holds the raw rows and the current filter. It is safe for concurrent
// use; subscribers run synchronously after each dispatch, outside the lock.
type Store struct {
	mu     sync.RWMutex
	rows   []election.Row
	filter Filter
	subs   []func(Filter)
}

// NewStore creates a store over rows with DefaultFilter selected.
func NewStore(rows []election.Row) *Store {
	return &Store{rows: slices.Clone(rows), filter: DefaultFilter()}
}

// Filter returns the current filter.
func (s *Store) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Reduce(s.filter, nil)
}

// Dispatch applies a and returns the new filter.
func (s *Store) Dispatch(a Action) Filter {
	s.mu.Lock()
	s.filter = Reduce(s.filter, a)
	next := s.filter
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(Reduce(next, nil))
	}

	return next
}

// Subscribe registers fn to receive the filter after every dispatch.
func (s *Store) Subscribe(fn func(Filter)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs = append(s.subs, fn)
}

// Rows returns every loaded row, unfiltered.
func (s *Store) Rows() []election.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.rows)
}

// View returns the rows selected by the current filter: year first, then
// parties, then region.
func (s *Store) View() []election.Row {
	s.mu.RLock()
	rows, f := s.rows, s.filter
	s.mu.RUnlock()

	return Apply(rows, f)
}

// Apply filters rows by f without touching any store.
func Apply(rows []election.Row, f Filter) []election.Row {
	out := rows
	if f.Year != 0 {
		out = election.FilterByYear(out, f.Year)
	}

	out = election.FilterByParties(out, f.Parties)

	return election.FilterByRegion(out, f.Region)
}

// Import parses csvText and appends its rows. On malformed input nothing is
// appended and the error wraps ingest.ErrMalformedInput.
func (s *Store) Import(csvText string) (int, error) {
	rows, err := ingest.ParseCSV(strings.NewReader(csvText))
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = append(s.rows, rows...)

	return len(rows), nil
}
