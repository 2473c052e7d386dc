package calculator

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrDegenerate is returned when x has fewer than two distinct values.
var ErrDegenerate = errors.New("need at least two distinct x values")

// rankTolerance is the relative singular value cutoff used to determine the
// numerical rank of the design matrix.
const rankTolerance = 1e-12

// Polynomial is a least-squares fit y ≈ Σ c_k·u^k with u = (x-center)/scale.
// Fitting in the rescaled variable keeps the design matrix well conditioned
// for day ordinals around 7e5.
type Polynomial struct {
	Coeffs []float64
	center float64
	scale  float64
}

// FitPolynomial fits an ordinary least squares polynomial of the given degree.
// When the window has fewer distinct points than coefficients the minimum-norm
// solution is returned.
func FitPolynomial(x, y []float64, degree int) (*Polynomial, error) {
	if degree < 0 {
		return nil, errors.New("degree must be non-negative")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("length mismatch: %d x values, %d y values", len(x), len(y))
	}
	if DistinctCount(x) < 2 {
		return nil, ErrDegenerate
	}

	center := floats.Sum(x) / float64(len(x))
	scale := 0.0
	for _, v := range x {
		scale = math.Max(scale, math.Abs(v-center))
	}

	n, cols := len(x), degree+1
	a := mat.NewDense(n, cols, nil)
	for i, v := range x {
		u := (v - center) / scale
		p := 1.0
		for k := 0; k < cols; k++ {
			a.Set(i, k, p)
			p *= u
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDFull); !ok {
		return nil, errors.New("svd factorization failed")
	}
	rank := svd.Rank(rankTolerance)
	if rank == 0 {
		return nil, ErrDegenerate
	}

	var c mat.VecDense
	svd.SolveVecTo(&c, mat.NewVecDense(n, y), rank)

	coeffs := make([]float64, cols)
	for k := range coeffs {
		coeffs[k] = c.AtVec(k)
	}
	return &Polynomial{Coeffs: coeffs, center: center, scale: scale}, nil
}

// Evaluate returns the fitted value at x.
func (p *Polynomial) Evaluate(x float64) float64 {
	u := (x - p.center) / p.scale
	v := 0.0
	for k := len(p.Coeffs) - 1; k >= 0; k-- {
		v = v*u + p.Coeffs[k]
	}
	return v
}
