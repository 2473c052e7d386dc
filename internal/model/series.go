package model

import "time"

// TimeSeriesPoint is one observation of a metric on a calendar date.
type TimeSeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TimeSeries is the ordered history of one (ticker, metric) pair, ascending by date.
type TimeSeries struct {
	Ticker string            `json:"ticker"`
	Metric MetricKind        `json:"metric"`
	Points []TimeSeriesPoint `json:"points"`
}

// Empty reports whether the series has no points.
func (s TimeSeries) Empty() bool { return len(s.Points) == 0 }

// Last returns the final point. Callers must check Empty first.
func (s TimeSeries) Last() TimeSeriesPoint { return s.Points[len(s.Points)-1] }

// ForecastPoint is one sample of a fitted projection.
type ForecastPoint struct {
	Date      time.Time `json:"date"`
	Predicted float64   `json:"predicted"`
}

// ForecastCurve runs from the last observed date to the target date.
type ForecastCurve struct {
	Target time.Time       `json:"target"`
	Points []ForecastPoint `json:"points"`
}

// Trace is one labelled line of a chart.
type Trace struct {
	Label  string      `json:"label"`
	Dates  []time.Time `json:"dates"`
	Values []float64   `json:"values"`
}

// AssembledSeries is everything a renderer needs to draw one chart.
type AssembledSeries struct {
	Title      string `json:"title"`
	XLabel     string `json:"x_label"`
	YLabel     string `json:"y_label"`
	Historical Trace  `json:"historical"`
	Forecast   *Trace `json:"forecast,omitempty"`
}

// HasForecast reports whether a projection trace is present.
func (a *AssembledSeries) HasForecast() bool { return a.Forecast != nil }
