// Package smooth provides differentiable surrogates for min, max, and
// clamp. Solvers that rely on first and second derivatives cannot use the
// exact functions, whose derivative jumps at a == b; these approximations
// are smooth everywhere and converge to the exact value as eps goes to 0.
package smooth

import "math"

// Max approximates math.Max(a, b) with smoothing scale eps > 0.
func Max(a, b, eps float64) float64 {
	d := a - b
	return 0.5 * (a + b + math.Sqrt(d*d+eps*eps))
}

// Min approximates math.Min(a, b) with smoothing scale eps > 0.
func Min(a, b, eps float64) float64 {
	d := a - b
	return 0.5 * (a + b - math.Sqrt(d*d+eps*eps))
}

// Clamp approximates clamping x to [lo, hi] with smoothing scale eps > 0.
func Clamp(x, lo, hi, eps float64) float64 {
	return Min(Max(x, lo, eps), hi, eps)
}
