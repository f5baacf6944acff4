// Package chart turns reconciled cargo series into Plotly-style figure
// specifications consumed by the dashboard frontend.
package chart

// Figure is a Plotly figure: traces plus layout
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a single line on the chart
type Trace struct {
	X          []string  `json:"x,omitempty"`
	Y          []float64 `json:"y,omitempty"`
	Name       string    `json:"name,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	Line       *Line     `json:"line,omitempty"`
	YAxis      string    `json:"yaxis,omitempty"`
	ShowLegend *bool     `json:"showlegend,omitempty"`
}

// Line holds trace line styling
type Line struct {
	Color string `json:"color,omitempty"`
	Dash  string `json:"dash,omitempty"`
}

// Layout holds the figure-level configuration
type Layout struct {
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	YAxis2      *Axis        `json:"yaxis2,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	HoverMode   string       `json:"hovermode,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Shapes      []Shape      `json:"shapes,omitempty"`
}

// Axis configures one chart axis
type Axis struct {
	Title      *AxisTitle `json:"title,omitempty"`
	Visible    *bool      `json:"visible,omitempty"`
	TickFormat string     `json:"tickformat,omitempty"`
	TickMode   string     `json:"tickmode,omitempty"`
	TickVals   []string   `json:"tickvals,omitempty"`
	TickText   []string   `json:"ticktext,omitempty"`
	TickFont   *Font      `json:"tickfont,omitempty"`
	RangeMode  string     `json:"rangemode,omitempty"`
	Range      []string   `json:"range,omitempty"`
	Anchor     string     `json:"anchor,omitempty"`
	Overlaying string     `json:"overlaying,omitempty"`
	Side       string     `json:"side,omitempty"`
}

// AxisTitle is an axis title with optional font styling
type AxisTitle struct {
	Text string `json:"text,omitempty"`
	Font *Font  `json:"font,omitempty"`
}

// Font holds text styling
type Font struct {
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

// Legend positions the chart legend
type Legend struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Annotation is a text label placed on the figure. X and Y take either a
// date string (data coordinates) or a number (paper coordinates),
// matching what Plotly accepts.
type Annotation struct {
	Text      string `json:"text"`
	ShowArrow bool   `json:"showarrow"`
	Font      *Font  `json:"font,omitempty"`
	X         any    `json:"x,omitempty"`
	Y         any    `json:"y,omitempty"`
	XRef      string `json:"xref,omitempty"`
	YRef      string `json:"yref,omitempty"`
}

// Shape is a drawn figure element, used for the today marker line
type Shape struct {
	Type string  `json:"type"`
	X0   string  `json:"x0"`
	X1   string  `json:"x1"`
	Y0   float64 `json:"y0"`
	Y1   float64 `json:"y1"`
	Line *Line   `json:"line,omitempty"`
}
