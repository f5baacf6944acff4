package cargo

import (
	"math"
	"time"

	"github.com/qidlabs/flightcapacity/internal/database"
	"github.com/qidlabs/flightcapacity/internal/flightquery"
	"github.com/qidlabs/flightcapacity/internal/log"
	"github.com/qidlabs/flightcapacity/pkg/config"
)

// BagVolumeM3 is the per-bag volume used for baggage displacement
const BagVolumeM3 = 0.067

// Fetcher retrieves cargo records for a flight query
type Fetcher interface {
	Fetch(q flightquery.FlightQuery) ([]Record, error)
}

// FetchFunc adapts a function to the Fetcher interface
type FetchFunc func(q flightquery.FlightQuery) ([]Record, error)

// Fetch implements Fetcher
func (f FetchFunc) Fetch(q flightquery.FlightQuery) ([]Record, error) {
	return f(q)
}

// DBFetcher pulls actuals from the capacity transaction table and
// predictions from the route schedule forecasts joined against passenger
// forecasts.
type DBFetcher struct {
	db         *database.Client
	windowDays int
	bagsPerPax float64
}

// NewDBFetcher creates a database-backed fetcher
func NewDBFetcher(db *database.Client, refreshCfg *config.RefreshData) *DBFetcher {
	return &DBFetcher{
		db:         db,
		windowDays: refreshCfg.Window(),
		bagsPerPax: refreshCfg.BagsPerPax(),
	}
}

// Fetch retrieves all records inside the window [q.Date - windowDays, q.Date]
func (f *DBFetcher) Fetch(q flightquery.FlightQuery) ([]Record, error) {
	to := flightquery.DateOnly(q.Date)
	from := to.AddDate(0, 0, -f.windowDays)

	transactions, err := f.db.GetCapacityTransactions(q.Number, q.Origin, q.Destination, from, to)
	if err != nil {
		return nil, err
	}

	forecasts, err := f.db.GetForecastRows(q.Number, q.Origin, q.Destination, from, to)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(transactions)+len(forecasts))
	for _, tx := range transactions {
		records = append(records, recordFromTransaction(tx))
	}
	for _, row := range forecasts {
		records = append(records, recordFromForecast(row, f.bagsPerPax))
	}

	return records, nil
}

// recordFromTransaction converts a reported capacity transaction into an
// Actual record. Departed weight plus underload is preferred when either
// is present; otherwise the reported weight column stands.
func recordFromTransaction(tx database.CapacityTransaction) Record {
	weight := tx.ReportWeight
	if tx.DepartedWeight != nil || tx.Underload != nil {
		weight = deref(tx.DepartedWeight) + deref(tx.Underload)
	}

	return Record{
		FltNo:       tx.FltNo,
		Date:        flightquery.DateOnly(tx.FltDate),
		Origin:      tx.Origin,
		Destination: tx.Destination,
		Weight:      weight,
		Volume:      tx.ReportVolume,
		Provenance:  Actual,
	}
}

// recordFromForecast derives the reportable cargo figures from a joined
// schedule/passenger forecast row: the hold volume is reduced by the
// estimated baggage displacement and rounded to the nearest whole unit.
func recordFromForecast(row database.ForecastRow, bagsPerPax float64) Record {
	weight := deref(row.DepartedWeight) + deref(row.Underload)
	baggageVolume := row.ExpectedPax * bagsPerPax * BagVolumeM3
	volume := math.Round(row.HoldVolume - baggageVolume)

	return Record{
		FltNo:       row.FltNo,
		Date:        flightquery.DateOnly(row.DepartureDate),
		Origin:      row.Origin,
		Destination: row.Destination,
		Weight:      weight,
		Volume:      volume,
		Provenance:  Predicted,
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// SyntheticFetcher generates a deterministic demo series so the chart
// always renders something when no database is reachable. Its records are
// flagged so downstream consumers can tell them from real data.
type SyntheticFetcher struct {
	days int
	now  func() time.Time
}

// NewSyntheticFetcher creates a synthetic fetcher producing the standard
// 15-day demo window
func NewSyntheticFetcher() *SyntheticFetcher {
	return &SyntheticFetcher{days: 15, now: time.Now}
}

// Fetch generates one record per day starting at the query date. Dates
// before today are tagged Actual, the rest Predicted, so the demo chart
// exercises the bridge segment.
func (f *SyntheticFetcher) Fetch(q flightquery.FlightQuery) ([]Record, error) {
	today := flightquery.DateOnly(f.now())
	start := flightquery.DateOnly(q.Date)

	records := make([]Record, 0, f.days)
	for i := 0; i < f.days; i++ {
		date := start.AddDate(0, 0, i)
		provenance := Predicted
		if date.Before(today) {
			provenance = Actual
		}
		records = append(records, Record{
			FltNo:       q.Number,
			Date:        date,
			Origin:      q.Origin,
			Destination: q.Destination,
			Weight:      1000 + float64(i)*50 + 100*float64(i%3),
			Volume:      500 + float64(i)*25 + 50*float64(i%4),
			Provenance:  provenance,
			Synthetic:   true,
		})
	}

	return records, nil
}

// FallbackFetcher wraps a primary fetcher with the configured failure
// policy: substitute synthetic data, or surface the error for the
// renderer to display.
type FallbackFetcher struct {
	primary  Fetcher
	fallback Fetcher
	mode     string
}

// NewFallbackFetcher creates a fetcher applying the fallback policy
func NewFallbackFetcher(primary, fallback Fetcher, mode string) *FallbackFetcher {
	return &FallbackFetcher{primary: primary, fallback: fallback, mode: mode}
}

// Fetch tries the primary source once; there is no retry loop
func (f *FallbackFetcher) Fetch(q flightquery.FlightQuery) ([]Record, error) {
	records, err := f.primary.Fetch(q)
	if err == nil {
		return records, nil
	}

	if f.mode == config.FallbackError {
		return nil, err
	}

	log.Warnf("cargo fetch failed, substituting synthetic data: %v", err)
	return f.fallback.Fetch(q)
}
