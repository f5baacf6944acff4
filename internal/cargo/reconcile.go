package cargo

import (
	"sort"
	"time"

	"github.com/qidlabs/flightcapacity/internal/flightquery"
)

// Reconcile merges actual and forecast records into one chronological
// series per provenance. Records sharing a (date, provenance) pair are
// summed, which collapses duplicate rows deterministically; the same date
// appearing under both provenances is retained on both sides.
func Reconcile(records []Record) Reconciled {
	type key struct {
		date       time.Time
		provenance Provenance
	}

	grouped := make(map[key]*SeriesPoint)
	synthetic := false
	for _, r := range records {
		k := key{date: flightquery.DateOnly(r.Date), provenance: r.Provenance}
		p, ok := grouped[k]
		if !ok {
			p = &SeriesPoint{Date: k.date}
			grouped[k] = p
		}
		p.Weight += r.Weight
		p.Volume += r.Volume
		if r.Synthetic {
			synthetic = true
		}
	}

	if len(grouped) == 0 {
		return Reconciled{}
	}

	out := Reconciled{
		Series:    make(map[Provenance][]SeriesPoint),
		Synthetic: synthetic,
	}

	dateSet := make(map[time.Time]struct{})
	for k, p := range grouped {
		out.Series[k.provenance] = append(out.Series[k.provenance], *p)
		dateSet[k.date] = struct{}{}
	}
	for provenance := range out.Series {
		series := out.Series[provenance]
		sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
		out.Series[provenance] = series
	}

	for date := range dateSet {
		out.Dates = append(out.Dates, date)
	}
	sort.Slice(out.Dates, func(i, j int) bool { return out.Dates[i].Before(out.Dates[j]) })

	out.Bridges = bridgeSegments(out.Series)

	return out
}

// bridgeSegments connects the last actual point to the first predicted
// point, one segment per metric. If the provenance ranges overlap or
// invert, no bridge is produced: both lines still render, but drawing a
// connector between them would misstate the data.
func bridgeSegments(series map[Provenance][]SeriesPoint) []BridgeSegment {
	actuals := series[Actual]
	predictions := series[Predicted]
	if len(actuals) == 0 || len(predictions) == 0 {
		return nil
	}

	last := actuals[len(actuals)-1]
	first := predictions[0]
	if !first.Date.After(last.Date) {
		return nil
	}

	return []BridgeSegment{
		{
			Metric:    MetricWeight,
			FromDate:  last.Date,
			ToDate:    first.Date,
			FromValue: last.Weight,
			ToValue:   first.Weight,
		},
		{
			Metric:    MetricVolume,
			FromDate:  last.Date,
			ToDate:    first.Date,
			FromValue: last.Volume,
			ToValue:   first.Volume,
		},
	}
}
