package fminbound

import (
	"math"
	"testing"
)

func TestMinimize_Quadratic(t *testing.T) {
	f := func(x float64) float64 { return (x - 0.7) * (x - 0.7) }

	x, ok := Minimize(f, 0, 1, 1e-5, DefaultMaxIter)
	if !ok {
		t.Fatal("minimization did not converge")
	}
	if math.Abs(x-0.7) > 1e-4 {
		t.Errorf("minimizer = %v, expected 0.7 +/- 1e-4", x)
	}
}

func TestMinimize_Cosine(t *testing.T) {
	x, ok := Minimize(math.Cos, 0, 2*math.Pi, 1e-5, DefaultMaxIter)
	if !ok {
		t.Fatal("minimization did not converge")
	}
	if math.Abs(x-math.Pi) > 1e-4 {
		t.Errorf("minimizer = %v, expected pi +/- 1e-4", x)
	}
}

func TestMinimize_BoundaryMinimum(t *testing.T) {
	// Monotone increasing: the minimum sits on the lower bound.
	f := func(x float64) float64 { return x }

	x, ok := Minimize(f, 0, 1, 1e-5, DefaultMaxIter)
	if !ok {
		t.Fatal("minimization did not converge")
	}
	if x < 0 || x > 1e-3 {
		t.Errorf("minimizer = %v, expected within 1e-3 of the lower bound", x)
	}
}

func TestMinimize_StaysWithinBounds(t *testing.T) {
	f := func(x float64) float64 { return math.Sin(3*x) + 0.5*x }

	x, ok := Minimize(f, -2, 2, 1e-5, DefaultMaxIter)
	if !ok {
		t.Fatal("minimization did not converge")
	}
	if x < -2 || x > 2 {
		t.Errorf("minimizer = %v, outside [-2, 2]", x)
	}
}

func TestMinimize_BudgetExhausted(t *testing.T) {
	f := func(x float64) float64 { return (x - 0.7) * (x - 0.7) }

	x, ok := Minimize(f, 0, 1, 1e-5, 3)
	if ok {
		t.Error("expected budget exhaustion with 3 evaluations")
	}
	if x < 0 || x > 1 {
		t.Errorf("fallback minimizer = %v, outside [0, 1]", x)
	}
}
