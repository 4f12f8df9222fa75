package smooth

import (
	"math"
	"testing"
)

func TestMaxConvergesToExact(t *testing.T) {
	cases := [][2]float64{{0, 1}, {3, -2}, {-1, -1.5}, {2, 2.0001}}
	for _, c := range cases {
		a, b := c[0], c[1]
		exact := math.Max(a, b)
		for _, eps := range []float64{1e-2, 1e-4, 1e-6} {
			got := Max(a, b, eps)
			if math.Abs(got-exact) > eps {
				t.Errorf("Max(%g,%g,%g)=%g, want within %g of %g", a, b, eps, got, eps, exact)
			}
		}
	}
}

func TestMinConvergesToExact(t *testing.T) {
	for _, c := range [][2]float64{{0, 1}, {3, -2}, {-1, -1.5}} {
		a, b := c[0], c[1]
		exact := math.Min(a, b)
		got := Min(a, b, 1e-6)
		if math.Abs(got-exact) > 1e-6 {
			t.Errorf("Min(%g,%g)=%g, want %g", a, b, got, exact)
		}
	}
}

func TestMaxAlwaysAboveExact(t *testing.T) {
	// The sqrt surrogate overestimates max, so the smoothed clamp never
	// dips below the true bound near the corner.
	for x := -2.0; x <= 2.0; x += 0.01 {
		if Max(x, 0, 1e-3) < math.Max(x, 0) {
			t.Fatalf("Max(%g, 0) below exact max", x)
		}
	}
}

func TestClampBounds(t *testing.T) {
	const eps = 1e-4
	for x := -5.0; x <= 5.0; x += 0.05 {
		y := Clamp(x, 0, 1, eps)
		if y < -eps || y > 1+eps {
			t.Fatalf("Clamp(%g,0,1) = %g outside [0,1] beyond eps", x, y)
		}
	}
	if y := Clamp(0.5, 0, 1, eps); math.Abs(y-0.5) > eps {
		t.Errorf("interior point distorted: Clamp(0.5)=%g", y)
	}
}

func TestClampDerivativeContinuous(t *testing.T) {
	// Central-difference slope must change gradually through both corners
	// for eps > 0; the exact clamp's slope jumps from 0 to 1 there.
	const eps = 1e-2
	const h = 1e-5
	prev := math.NaN()
	for x := -0.5; x <= 1.5; x += 1e-3 {
		slope := (Clamp(x+h, 0, 1, eps) - Clamp(x-h, 0, 1, eps)) / (2 * h)
		if !math.IsNaN(prev) && math.Abs(slope-prev) > 0.1 {
			t.Fatalf("derivative jump at x=%g: %g -> %g", x, prev, slope)
		}
		prev = slope
	}
}
