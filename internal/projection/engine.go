package projection

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"CoinCast/internal/calculator"
	"CoinCast/internal/model"
)

// Fixed projection policy.
const (
	TrainingWindowDays = 730
	PolynomialDegree   = 3
	SampleCount        = 200
)

// TargetDateLayout is the accepted target date format (month/day/2-digit year).
// Single digit months and days are accepted as well.
const TargetDateLayout = "1/2/06"

// DisplayDateLayout is used when echoing a target date back in titles.
const DisplayDateLayout = "01/02/06"

// ParseTargetDate parses a user supplied target date.
func ParseTargetDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", model.ErrInvalidDate)
	}
	t, err := time.Parse(TargetDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", model.ErrInvalidDate, s, err)
	}
	return t, nil
}

// TrainingWindow returns the suffix of points within TrainingWindowDays of the
// last point. points must be ascending by date.
func TrainingWindow(points []model.TimeSeriesPoint) []model.TimeSeriesPoint {
	ords := make([]int64, len(points))
	for i, p := range points {
		ords[i] = calculator.DateToOrdinal(p.Date)
	}
	return points[calculator.WindowStart(ords, TrainingWindowDays):]
}

// Project fits a cubic to the recent history of series and samples it from the
// last observed date to target. The curve runs backwards when target precedes
// the last observation.
func Project(series model.TimeSeries, target time.Time) (*model.ForecastCurve, error) {
	if series.Empty() {
		return nil, fmt.Errorf("%w: series for %s is empty", model.ErrInsufficientData, series.Ticker)
	}

	window := TrainingWindow(series.Points)
	xs := make([]float64, len(window))
	ys := make([]float64, len(window))
	for i, p := range window {
		xs[i] = float64(calculator.DateToOrdinal(p.Date))
		ys[i] = p.Value
	}
	if n := calculator.DistinctCount(xs); n < 2 {
		return nil, fmt.Errorf("%w: %d distinct date(s) in training window", model.ErrInsufficientData, n)
	}

	poly, err := calculator.FitPolynomial(xs, ys, PolynomialDegree)
	if err != nil {
		if errors.Is(err, calculator.ErrDegenerate) {
			return nil, fmt.Errorf("%w: %v", model.ErrInsufficientData, err)
		}
		return nil, fmt.Errorf("fit polynomial: %w", err)
	}

	last := float64(calculator.DateToOrdinal(series.Last().Date))
	grid, err := calculator.Linspace(last, float64(calculator.DateToOrdinal(target)), SampleCount)
	if err != nil {
		return nil, fmt.Errorf("sampling grid: %w", err)
	}

	curve := &model.ForecastCurve{
		Target: calculator.OrdinalToDate(calculator.DateToOrdinal(target)),
		Points: make([]model.ForecastPoint, len(grid)),
	}
	for i, x := range grid {
		curve.Points[i] = model.ForecastPoint{
			Date:      calculator.OrdinalToDate(int64(math.Floor(x))),
			Predicted: poly.Evaluate(x),
		}
	}
	return curve, nil
}
