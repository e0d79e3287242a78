// Package escape estimates how quickly points of the complex plane diverge
// under the Mandelbrot recurrence z = z*z + c.
package escape

import "github.com/willbeason/mandelview/pkg/transforms"

const (
	// DefaultCap is the iteration limit used when none is configured.
	DefaultCap = 512

	// radius2 is the squared escape radius.
	radius2 = 4.0

	// clampBelow guards the correction divisor: magnitudes landing in
	// [radius2, clampBelow) divide by 1 instead of a near-zero value.
	clampBelow = 5.0
)

// Evaluator computes continuous escape counts with a fixed iteration cap.
//
// The zero value uses DefaultCap.
type Evaluator struct {
	Cap int
}

// New returns an Evaluator capped at maxIterations, or DefaultCap if
// maxIterations is not positive.
func New(maxIterations int) Evaluator {
	if maxIterations <= 0 {
		maxIterations = DefaultCap
	}
	return Evaluator{Cap: maxIterations}
}

// Limit returns the effective iteration cap.
func (e Evaluator) Limit() int {
	if e.Cap <= 0 {
		return DefaultCap
	}
	return e.Cap
}

// Count returns the continuous iteration count for c = cr + ci*i.
//
// The result is the number of iterations performed before |z| > 2 plus a
// fractional term derived from how far past the radius the orbit landed.
// Points that never escape return Limit()+1.
func (e Evaluator) Count(cr, ci float64) float64 {
	limit := e.Limit()
	c := complex(cr, ci)

	var step transforms.Mandelbrot
	var z complex128
	mz2 := 0.0
	i := 0
	for mz2 <= radius2 && i < limit {
		z = step.Next(z, c)
		mz2 = real(z)*real(z) + imag(z)*imag(z)
		i++
	}

	divisor := 1.0
	if mz2 >= clampBelow {
		divisor = mz2 - radius2
	}
	return float64(i) + 1/divisor
}

// Inside reports whether code, as returned by Count, means the point did not
// escape within the cap.
func (e Evaluator) Inside(code float64) bool {
	return code >= float64(e.Limit())
}

// CountIterations is Count with DefaultCap.
func CountIterations(cr, ci float64) float64 {
	return Evaluator{}.Count(cr, ci)
}
