package calculator

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestDateToOrdinal_KnownValues(t *testing.T) {
	tests := []struct {
		date time.Time
		want int64
	}{
		{time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 719163},
		{time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), 738156},
		{time.Date(2022, 1, 1, 23, 59, 59, 0, time.UTC), 738156},
		{time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), 738855},
	}
	for _, tt := range tests {
		if got := DateToOrdinal(tt.date); got != tt.want {
			t.Errorf("DateToOrdinal(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestOrdinalRoundTrip(t *testing.T) {
	start := time.Date(1999, 12, 25, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2000; i += 37 {
		d := start.AddDate(0, 0, i)
		back := OrdinalToDate(DateToOrdinal(d))
		if !back.Equal(d) {
			t.Fatalf("round trip %s -> %s", d, back)
		}
	}
}

func TestWindowStart(t *testing.T) {
	ords := []int64{100, 200, 300, 400, 500}
	if got := WindowStart(ords, 200); got != 2 {
		t.Errorf("WindowStart(200) = %d, want 2", got)
	}
	if got := WindowStart(ords, 1000); got != 0 {
		t.Errorf("WindowStart(1000) = %d, want 0", got)
	}
	if got := WindowStart(ords, 0); got != 4 {
		t.Errorf("WindowStart(0) = %d, want 4", got)
	}
	if got := WindowStart(nil, 10); got != 0 {
		t.Errorf("WindowStart(nil) = %d, want 0", got)
	}
}

func TestFitPolynomial_RecoversCubic(t *testing.T) {
	f := func(x float64) float64 { return 0.002*x*x*x - 0.5*x*x + 3*x + 40 }
	var xs, ys []float64
	for i := 0; i < 120; i++ {
		x := 738000 + float64(i)
		xs = append(xs, x)
		ys = append(ys, f(x-738000))
	}
	p, err := FitPolynomial(xs, ys, 3)
	if err != nil {
		t.Fatalf("FitPolynomial: %v", err)
	}
	if len(p.Coeffs) != 4 {
		t.Fatalf("coefficients = %d, want 4", len(p.Coeffs))
	}
	for _, x := range []float64{738000, 738050.5, 738119, 738200} {
		want := f(x - 738000)
		if got := p.Evaluate(x); math.Abs(got-want) > 1e-6*math.Max(1, math.Abs(want)) {
			t.Errorf("Evaluate(%.1f) = %.9f, want %.9f", x, got, want)
		}
	}
}

func TestFitPolynomial_TwoPointsIsLine(t *testing.T) {
	p, err := FitPolynomial([]float64{10, 20}, []float64{1, 3}, 3)
	if err != nil {
		t.Fatalf("FitPolynomial: %v", err)
	}
	for _, x := range []float64{10, 20} {
		want := 1 + (x-10)*0.2
		if got := p.Evaluate(x); math.Abs(got-want) > 1e-9 {
			t.Errorf("Evaluate(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestFitPolynomial_Degenerate(t *testing.T) {
	_, err := FitPolynomial([]float64{5, 5, 5}, []float64{1, 2, 3}, 3)
	if !errors.Is(err, ErrDegenerate) {
		t.Fatalf("expected ErrDegenerate, got %v", err)
	}
	if _, err := FitPolynomial([]float64{1, 2}, []float64{1}, 1); err == nil {
		t.Fatal("expected length mismatch error")
	}
	if _, err := FitPolynomial([]float64{1, 2}, []float64{1, 2}, -1); err == nil {
		t.Fatal("expected negative degree error")
	}
}

func TestLinspace(t *testing.T) {
	up, err := Linspace(0, 10, 11)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range up {
		if math.Abs(v-float64(i)) > 1e-12 {
			t.Errorf("up[%d] = %v", i, v)
		}
	}

	down, _ := Linspace(10, 0, 200)
	if len(down) != 200 || down[0] != 10 || down[199] != 0 {
		t.Fatalf("unexpected endpoints: %v .. %v (len %d)", down[0], down[len(down)-1], len(down))
	}
	for i := 1; i < len(down); i++ {
		if down[i] > down[i-1] {
			t.Fatalf("descending grid increased at %d", i)
		}
	}

	flat, _ := Linspace(7, 7, 5)
	for _, v := range flat {
		if v != 7 {
			t.Fatalf("flat grid = %v", flat)
		}
	}

	if _, err := Linspace(0, 1, 1); err == nil {
		t.Fatal("expected error for n < 2")
	}
}
