package assembler

import (
	"fmt"
	"time"

	"CoinCast/internal/model"
	"CoinCast/internal/projection"
)

// Trace labels used when a projection is drawn next to the history.
const (
	HistoricalLabel = "Historical Data"
	ForecastLabel   = "Prediction (Curve)"
	DateAxisLabel   = "Date"
)

// Assemble combines a history and an optional forecast into chart data.
// targetDate may be nil; when a forecast is given without one, the forecast's
// own target is shown in the title.
func Assemble(series model.TimeSeries, forecast *model.ForecastCurve, metric model.MetricKind, ticker string, targetDate *time.Time) *model.AssembledSeries {
	out := &model.AssembledSeries{
		XLabel:     DateAxisLabel,
		YLabel:     metric.DisplayName(),
		Historical: historicalTrace(series),
	}

	if forecast == nil {
		out.Title = fmt.Sprintf("%s for %s", metric, ticker)
		out.Historical.Label = metric.String()
		return out
	}

	target := forecast.Target
	if targetDate != nil {
		target = *targetDate
	}
	out.Title = fmt.Sprintf("Prediction for %s on %s (%s)", metric, target.Format(projection.DisplayDateLayout), ticker)
	out.Historical.Label = HistoricalLabel
	out.Forecast = forecastTrace(forecast)
	return out
}

func historicalTrace(series model.TimeSeries) model.Trace {
	tr := model.Trace{
		Dates:  make([]time.Time, len(series.Points)),
		Values: make([]float64, len(series.Points)),
	}
	for i, p := range series.Points {
		tr.Dates[i] = p.Date
		tr.Values[i] = p.Value
	}
	return tr
}

func forecastTrace(curve *model.ForecastCurve) *model.Trace {
	tr := &model.Trace{
		Label:  ForecastLabel,
		Dates:  make([]time.Time, len(curve.Points)),
		Values: make([]float64, len(curve.Points)),
	}
	for i, p := range curve.Points {
		tr.Dates[i] = p.Date
		tr.Values[i] = p.Predicted
	}
	return tr
}
