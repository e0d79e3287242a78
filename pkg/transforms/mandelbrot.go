// Package transforms holds the small complex maps fractals are built from.
package transforms

// Mandelbrot is one step of the recurrence z -> z*z + c. C is added to every
// step on top of c; it is zero for the Mandelbrot set itself.
type Mandelbrot struct {
	C complex128
}

func (m Mandelbrot) Next(z complex128, c complex128) complex128 {
	return z*z + c + m.C
}
