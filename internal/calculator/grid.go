package calculator

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// Linspace returns n evenly spaced values from start to end inclusive.
// end may be smaller than start, in which case the values decrease.
func Linspace(start, end float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, errors.New("linspace needs at least 2 samples")
	}
	grid := floats.Span(make([]float64, n), start, end)
	grid[n-1] = end
	return grid, nil
}
