// Package cargo fetches cargo weight/volume figures for a flight and
// reconciles historical and forecast rows into chartable daily series.
package cargo

import "time"

// Provenance marks which side of the actual/forecast divide produced a
// record. It is attached at ingestion from the source that supplied the
// row and never re-derived later from wall-clock time.
type Provenance string

const (
	Actual    Provenance = "Actual"
	Predicted Provenance = "Pred"
)

// Metric names the two charted quantities
type Metric string

const (
	MetricWeight Metric = "weight"
	MetricVolume Metric = "volume"
)

// Record is one flight-day cargo figure
type Record struct {
	FltNo       string
	Date        time.Time
	Origin      string
	Destination string
	Weight      float64 // kg
	Volume      float64 // m³
	Provenance  Provenance
	Synthetic   bool
}

// SeriesPoint is one reconciled (date, weight, volume) triple
type SeriesPoint struct {
	Date   time.Time
	Weight float64
	Volume float64
}

// BridgeSegment is the visual connector between the last actual point and
// the first predicted point for one metric. It is presentation only, not
// an inferred data value.
type BridgeSegment struct {
	Metric    Metric
	FromDate  time.Time
	ToDate    time.Time
	FromValue float64
	ToValue   float64
}

// Reconciled is the output of reconciliation: per-provenance daily series
// on a shared chronological date axis, plus bridge segments.
type Reconciled struct {
	Dates     []time.Time
	Series    map[Provenance][]SeriesPoint
	Bridges   []BridgeSegment
	Synthetic bool
}

// Empty reports whether no records at all matched the query. This is
// distinct from one provenance's series being absent.
func (r Reconciled) Empty() bool {
	return len(r.Series) == 0
}

// MaxWeight returns the largest weight value across both provenances
func (r Reconciled) MaxWeight() float64 {
	var max float64
	for _, series := range r.Series {
		for _, p := range series {
			if p.Weight > max {
				max = p.Weight
			}
		}
	}
	return max
}
