package chart

import (
	"strings"
	"time"

	"github.com/qidlabs/flightcapacity/internal/cargo"
	"github.com/qidlabs/flightcapacity/internal/flightquery"
)

// State classifies a render result. The states are mutually exclusive and
// evaluated in order: waiting, error, empty, ok.
type State string

const (
	StateWaiting State = "waiting"
	StateError   State = "error"
	StateEmpty   State = "empty"
	StateOK      State = "ok"
)

// Result is one rendered refresh outcome served to the dashboard
type Result struct {
	State       State     `json:"state"`
	Message     string    `json:"message,omitempty"`
	Synthetic   bool      `json:"synthetic,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Figure      Figure    `json:"figure"`
}

const (
	dateLayout = "2006-01-02"

	// vertical padding above the tallest weight point for the Today label
	todayMarkerPadding = 2000

	colorActualWeight    = "blue"
	colorPredictedWeight = "royalblue"
	colorActualVolume    = "red"
	colorPredictedVolume = "salmon"
)

// Build renders the chart result for one refresh tick. An incomplete
// query wins over everything else, then a fetch/reconcile error, then the
// empty result, then the actual chart.
func Build(q flightquery.FlightQuery, rec cargo.Reconciled, fetchErr error, now time.Time) Result {
	result := Result{GeneratedAt: now}

	switch {
	case !q.Complete():
		result.State = StateWaiting
		result.Figure = placeholderFigure("Waiting for flight data...")
	case fetchErr != nil:
		result.State = StateError
		result.Message = fetchErr.Error()
		result.Figure = placeholderFigure("Error retrieving flight data: " + fetchErr.Error())
	case rec.Empty():
		result.State = StateEmpty
		result.Figure = placeholderFigure("No data found for the given parameters.")
	default:
		result.State = StateOK
		result.Synthetic = rec.Synthetic
		result.Figure = seriesFigure(q, rec, now)
	}

	return result
}

// placeholderFigure builds an empty figure carrying a single centered
// message, with both axes hidden
func placeholderFigure(text string) Figure {
	hidden := false
	return Figure{
		Data: []Trace{},
		Layout: Layout{
			XAxis: &Axis{Visible: &hidden},
			YAxis: &Axis{Visible: &hidden},
			Annotations: []Annotation{
				{
					Text:      text,
					ShowArrow: false,
					Font:      &Font{Size: 16},
					X:         0.5,
					Y:         0.5,
					XRef:      "paper",
					YRef:      "paper",
				},
			},
		},
	}
}

// seriesFigure builds the dual-axis chart: weight on the primary axis,
// volume on the secondary, one trace per (metric, provenance), dotted
// bridge connectors, and a Today marker when today is in range.
func seriesFigure(q flightquery.FlightQuery, rec cargo.Reconciled, now time.Time) Figure {
	fig := Figure{}

	for _, provenance := range []cargo.Provenance{cargo.Actual, cargo.Predicted} {
		series, ok := rec.Series[provenance]
		if !ok {
			continue
		}

		dates := make([]string, len(series))
		weights := make([]float64, len(series))
		volumes := make([]float64, len(series))
		for i, p := range series {
			dates[i] = p.Date.Format(dateLayout)
			weights[i] = p.Weight
			volumes[i] = p.Volume
		}

		weightColor, volumeColor := colorActualWeight, colorActualVolume
		if provenance == cargo.Predicted {
			weightColor, volumeColor = colorPredictedWeight, colorPredictedVolume
		}

		fig.Data = append(fig.Data,
			Trace{
				X:    dates,
				Y:    weights,
				Name: "Weight (" + string(provenance) + ")",
				Mode: "lines+markers",
				Line: &Line{Color: weightColor},
			},
			Trace{
				X:     dates,
				Y:     volumes,
				Name:  "Volume (" + string(provenance) + ")",
				Mode:  "lines+markers",
				Line:  &Line{Color: volumeColor},
				YAxis: "y2",
			},
		)
	}

	fig.Data = append(fig.Data, bridgeTraces(rec.Bridges)...)

	tickVals := make([]string, len(rec.Dates))
	tickText := make([]string, len(rec.Dates))
	for i, d := range rec.Dates {
		tickVals[i] = d.Format(dateLayout)
		tickText[i] = strings.ToUpper(d.Format("02 Jan"))
	}

	windowEnd := flightquery.DateOnly(q.Date)
	windowStart := windowEnd.AddDate(0, 0, -15)

	fig.Layout = Layout{
		XAxis: &Axis{
			Title:      &AxisTitle{Text: "Flight Date"},
			TickFormat: "%d %b",
			TickMode:   "array",
			TickVals:   tickVals,
			TickText:   tickText,
			Range:      []string{windowStart.Format(dateLayout), windowEnd.Format(dateLayout)},
		},
		YAxis: &Axis{
			Title:     &AxisTitle{Text: "Weight (kg)", Font: &Font{Color: "black"}},
			TickFont:  &Font{Color: "black"},
			RangeMode: "tozero",
		},
		YAxis2: &Axis{
			Title:      &AxisTitle{Text: "Volume (cbm)", Font: &Font{Color: "black"}},
			TickFont:   &Font{Color: "black"},
			Anchor:     "x",
			Overlaying: "y",
			Side:       "right",
			RangeMode:  "tozero",
		},
		Legend:    &Legend{X: 0.02, Y: 0.98},
		HoverMode: "x unified",
	}

	addTodayMarker(&fig, rec, now, windowStart, windowEnd)

	if rec.Synthetic {
		fig.Layout.Annotations = append(fig.Layout.Annotations, Annotation{
			Text:      "Synthetic data",
			ShowArrow: false,
			Font:      &Font{Size: 12, Color: "gray"},
			X:         0.0,
			Y:         1.05,
			XRef:      "paper",
			YRef:      "paper",
		})
	}

	return fig
}

// bridgeTraces renders the bridge segments as dotted two-point lines in
// the predicted color family, hidden from the legend
func bridgeTraces(bridges []cargo.BridgeSegment) []Trace {
	hidden := false
	traces := make([]Trace, 0, len(bridges))
	for _, b := range bridges {
		color := colorPredictedWeight
		axis := ""
		if b.Metric == cargo.MetricVolume {
			color = colorPredictedVolume
			axis = "y2"
		}
		traces = append(traces, Trace{
			X:          []string{b.FromDate.Format(dateLayout), b.ToDate.Format(dateLayout)},
			Y:          []float64{b.FromValue, b.ToValue},
			Mode:       "lines",
			Line:       &Line{Color: color, Dash: "dot"},
			YAxis:      axis,
			ShowLegend: &hidden,
		})
	}
	return traces
}

// addTodayMarker draws the vertical today line and its label. The gate is
// the displayed axis range, not the extent of the data: a chart whose
// records cover only part of the axis still shows today's position.
func addTodayMarker(fig *Figure, rec cargo.Reconciled, now time.Time, windowStart, windowEnd time.Time) {
	today := flightquery.DateOnly(now)
	if today.Before(windowStart) || today.After(windowEnd) {
		return
	}

	markerTop := rec.MaxWeight() + todayMarkerPadding
	todayStr := today.Format(dateLayout)

	fig.Layout.Shapes = append(fig.Layout.Shapes, Shape{
		Type: "line",
		X0:   todayStr,
		X1:   todayStr,
		Y0:   0,
		Y1:   markerTop,
		Line: &Line{Color: "gray", Dash: "dash"},
	})
	fig.Layout.Annotations = append(fig.Layout.Annotations, Annotation{
		Text:      "Today",
		ShowArrow: false,
		X:         todayStr,
		Y:         markerTop,
	})
}
