package cargo

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/qidlabs/flightcapacity/internal/database"
	"github.com/qidlabs/flightcapacity/internal/flightquery"
	"github.com/qidlabs/flightcapacity/pkg/config"
)

func floatPtr(v float64) *float64 { return &v }

func TestRecordFromTransaction(t *testing.T) {
	date := time.Date(2024, time.June, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		tx             database.CapacityTransaction
		expectedWeight float64
	}{
		{
			name: "reported weight only",
			tx: database.CapacityTransaction{
				FltNo: "AB123", FltDate: date, Origin: "DEL", Destination: "BOM",
				ReportWeight: 1450, ReportVolume: 320,
			},
			expectedWeight: 1450,
		},
		{
			name: "departed weight plus underload",
			tx: database.CapacityTransaction{
				FltNo: "AB123", FltDate: date, Origin: "DEL", Destination: "BOM",
				ReportWeight: 1450, ReportVolume: 320,
				DepartedWeight: floatPtr(1200), Underload: floatPtr(300),
			},
			expectedWeight: 1500,
		},
		{
			name: "departed weight with absent underload",
			tx: database.CapacityTransaction{
				FltNo: "AB123", FltDate: date, Origin: "DEL", Destination: "BOM",
				ReportWeight: 1450, ReportVolume: 320,
				DepartedWeight: floatPtr(1200),
			},
			expectedWeight: 1200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := recordFromTransaction(tt.tx)

			if record.Provenance != Actual {
				t.Errorf("transaction records must be tagged Actual, got %s", record.Provenance)
			}
			if record.Weight != tt.expectedWeight {
				t.Errorf("weight = %v, expected %v", record.Weight, tt.expectedWeight)
			}
			if record.Volume != 320 {
				t.Errorf("volume = %v, expected 320", record.Volume)
			}
			if record.Synthetic {
				t.Error("database records must not be flagged synthetic")
			}
			if record.Date.Hour() != 0 {
				t.Errorf("record date should be truncated to date precision, got %v", record.Date)
			}
		})
	}
}

func TestRecordFromForecast(t *testing.T) {
	row := database.ForecastRow{
		FltNo:          "AB123",
		DepartureDate:  time.Date(2024, time.June, 18, 0, 0, 0, 0, time.UTC),
		Origin:         "DEL",
		Destination:    "BOM",
		DepartedWeight: floatPtr(1300),
		Underload:      floatPtr(200),
		HoldVolume:     400,
		ExpectedPax:    180,
	}

	record := recordFromForecast(row, 1.3)

	if record.Provenance != Predicted {
		t.Errorf("forecast records must be tagged Predicted, got %s", record.Provenance)
	}
	if record.Weight != 1500 {
		t.Errorf("weight = %v, expected 1500 (departed + underload)", record.Weight)
	}

	// 400 - 180*1.3*0.067 = 384.322, rounded to 384
	expectedVolume := math.Round(400 - 180*1.3*BagVolumeM3)
	if record.Volume != expectedVolume {
		t.Errorf("volume = %v, expected %v", record.Volume, expectedVolume)
	}
}

func TestSyntheticFetcherProgression(t *testing.T) {
	queryDate := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.June, 20, 10, 0, 0, 0, time.UTC)

	fetcher := NewSyntheticFetcher()
	fetcher.now = func() time.Time { return today }

	records, err := fetcher.Fetch(flightquery.FlightQuery{
		Number: "AB123", Date: queryDate, Origin: "DEL", Destination: "BOM",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 15 {
		t.Fatalf("expected 15 synthetic records, got %d", len(records))
	}

	for i, r := range records {
		expectedDate := queryDate.AddDate(0, 0, i)
		if !r.Date.Equal(expectedDate) {
			t.Errorf("record %d: date %v, expected %v", i, r.Date, expectedDate)
		}

		expectedWeight := 1000 + float64(i)*50 + 100*float64(i%3)
		if r.Weight != expectedWeight {
			t.Errorf("record %d: weight %v, expected %v", i, r.Weight, expectedWeight)
		}

		expectedVolume := 500 + float64(i)*25 + 50*float64(i%4)
		if r.Volume != expectedVolume {
			t.Errorf("record %d: volume %v, expected %v", i, r.Volume, expectedVolume)
		}

		if !r.Synthetic {
			t.Errorf("record %d: synthetic records must be flagged", i)
		}

		expectedProvenance := Predicted
		if expectedDate.Before(flightquery.DateOnly(today)) {
			expectedProvenance = Actual
		}
		if r.Provenance != expectedProvenance {
			t.Errorf("record %d (%v): provenance %s, expected %s",
				i, expectedDate.Format("2006-01-02"), r.Provenance, expectedProvenance)
		}
	}
}

func TestFallbackFetcher(t *testing.T) {
	query := flightquery.FlightQuery{
		Number: "AB123",
		Date:   time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
		Origin: "DEL", Destination: "BOM",
	}

	fetchErr := errors.New("connection refused")
	failing := FetchFunc(func(q flightquery.FlightQuery) ([]Record, error) {
		return nil, fetchErr
	})
	working := FetchFunc(func(q flightquery.FlightQuery) ([]Record, error) {
		return []Record{{FltNo: q.Number, Date: q.Date, Provenance: Actual}}, nil
	})

	t.Run("primary success bypasses fallback", func(t *testing.T) {
		f := NewFallbackFetcher(working, NewSyntheticFetcher(), config.FallbackSynthetic)
		records, err := f.Fetch(query)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 || records[0].Synthetic {
			t.Errorf("expected the primary's single real record, got %+v", records)
		}
	})

	t.Run("synthetic mode substitutes on failure", func(t *testing.T) {
		f := NewFallbackFetcher(failing, NewSyntheticFetcher(), config.FallbackSynthetic)
		records, err := f.Fetch(query)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 15 {
			t.Fatalf("expected 15 synthetic records, got %d", len(records))
		}
		for _, r := range records {
			if !r.Synthetic {
				t.Fatal("fallback records must be flagged synthetic")
			}
		}
	})

	t.Run("error mode surfaces the failure", func(t *testing.T) {
		f := NewFallbackFetcher(failing, NewSyntheticFetcher(), config.FallbackError)
		_, err := f.Fetch(query)
		if !errors.Is(err, fetchErr) {
			t.Errorf("expected the fetch error to surface, got %v", err)
		}
	})
}
