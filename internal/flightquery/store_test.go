package flightquery

import (
	"sync"
	"testing"
	"time"
)

func TestComplete(t *testing.T) {
	date := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    FlightQuery
		expected bool
	}{
		{
			name:     "all fields present",
			query:    FlightQuery{Number: "AB123", Date: date, Origin: "DEL", Destination: "BOM"},
			expected: true,
		},
		{
			name:     "missing flight number",
			query:    FlightQuery{Date: date, Origin: "DEL", Destination: "BOM"},
			expected: false,
		},
		{
			name:     "missing date",
			query:    FlightQuery{Number: "AB123", Origin: "DEL", Destination: "BOM"},
			expected: false,
		},
		{
			name:     "missing origin",
			query:    FlightQuery{Number: "AB123", Date: date, Destination: "BOM"},
			expected: false,
		},
		{
			name:     "missing destination",
			query:    FlightQuery{Number: "AB123", Date: date, Origin: "DEL"},
			expected: false,
		},
		{
			name:     "empty query",
			query:    FlightQuery{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Complete(); got != tt.expected {
				t.Errorf("Complete() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestStoreSetGetReset(t *testing.T) {
	store := NewStore()

	initial := store.Get()
	if initial.Number != "" || initial.Origin != "" || initial.Destination != "" {
		t.Errorf("new store should hold empty identifiers, got %+v", initial)
	}
	if !initial.Date.Equal(DateOnly(time.Now())) {
		t.Errorf("new store should default the date to today, got %v", initial.Date)
	}

	query := FlightQuery{
		Number:      "AB123",
		Date:        time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
		Origin:      "DEL",
		Destination: "BOM",
	}
	store.Set(query)
	if got := store.Get(); got != query {
		t.Errorf("Get() after Set() = %+v, expected %+v", got, query)
	}

	store.Reset()
	reset := store.Get()
	if reset.Number != "" || reset.Origin != "" || reset.Destination != "" {
		t.Errorf("Reset() should clear identifiers, got %+v", reset)
	}
	if !reset.Date.Equal(DateOnly(time.Now())) {
		t.Errorf("Reset() should restore today's date, got %v", reset.Date)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()
	date := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Set(FlightQuery{Number: "AB123", Date: date, Origin: "DEL", Destination: "BOM"})
		}()
		go func() {
			defer wg.Done()
			q := store.Get()
			// A read must never observe a torn update
			if q.Number != "" && (q.Origin == "" || q.Destination == "") {
				t.Error("observed partially written query")
			}
		}()
	}
	wg.Wait()
}

func TestParseDate(t *testing.T) {
	expected := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "bare ISO date", input: "2024-06-15", want: expected},
		{name: "ISO date-time", input: "2024-06-15T09:30:00", want: expected},
		{name: "RFC3339", input: "2024-06-15T09:30:00Z", want: expected},
		{name: "surrounding whitespace", input: "  2024-06-15  ", want: expected},
		{name: "garbage", input: "June 15th", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, expected %v", tt.input, got, tt.want)
			}
		})
	}
}
