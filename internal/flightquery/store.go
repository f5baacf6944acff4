// Package flightquery holds the most recently received flight identifier
// tuple pushed by the external scheduling system.
package flightquery

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// FlightQuery identifies a single flight departure to chart
type FlightQuery struct {
	Number      string    `json:"flight_no"`
	Date        time.Time `json:"flight_date"`
	Origin      string    `json:"flight_origin"`
	Destination string    `json:"flight_destination"`
}

// Complete reports whether all four fields are populated. An incomplete
// query short-circuits the refresh pipeline into the waiting placeholder.
func (q FlightQuery) Complete() bool {
	return q.Number != "" && !q.Date.IsZero() && q.Origin != "" && q.Destination != ""
}

// Store keeps the last-seen flight query. Writes come from the inbound
// notification endpoint, reads from the timer-driven refresh cycle, so
// access is guarded rather than assumed to not race.
type Store struct {
	mu      sync.RWMutex
	current FlightQuery
}

// NewStore creates a store holding the default query: empty identifiers
// with today's date
func NewStore() *Store {
	return &Store{current: defaultQuery()}
}

// Get returns the current flight query
func (s *Store) Get() FlightQuery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the stored query unconditionally
func (s *Store) Set(q FlightQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = q
}

// Reset restores the default empty query
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = defaultQuery()
}

func defaultQuery() FlightQuery {
	return FlightQuery{Date: DateOnly(time.Now().UTC())}
}

// DateOnly truncates a timestamp to calendar-date precision in UTC
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts the date formats the scheduling system is known to
// send: a bare ISO date or an ISO date-time, with or without zone.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layouts := []string{
		"2006-01-02",
		"2006-01-02T15:04:05",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized flight date format: %q", s)
}
