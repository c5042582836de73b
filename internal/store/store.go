package store

import (
	"sort"
	"time"
)

// Store is the in-memory record store: an ordered sequence of cleaned
// transaction rows, loaded once at startup and read-only for the process
// lifetime.
type Store struct {
	rows []Row
}

// New creates a store over the given rows. The store takes ownership of the
// slice; callers must not mutate it afterward.
func New(rows []Row) *Store {
	return &Store{rows: rows}
}

// Rows returns the full row sequence. The slice is shared, not copied;
// consumers treat it as read-only.
func (s *Store) Rows() []Row {
	return s.rows
}

// Len returns the number of rows in the store.
func (s *Store) Len() int {
	return len(s.rows)
}

// Countries returns the distinct country values, sorted, for filter options.
func (s *Store) Countries() []string {
	seen := make(map[string]struct{})
	for i := range s.rows {
		seen[s.rows[i].Country] = struct{}{}
	}

	countries := make([]string, 0, len(seen))
	for c := range seen {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	return countries
}

// DateBounds returns the earliest and latest invoice dates in the store.
// Zero times when the store is empty.
func (s *Store) DateBounds() (min, max time.Time) {
	for i := range s.rows {
		d := s.rows[i].InvoiceDate
		if min.IsZero() || d.Before(min) {
			min = d
		}
		if max.IsZero() || d.After(max) {
			max = d
		}
	}
	return min, max
}
