// Package contrast remaps continuous escape counts so that a chosen range of
// counts stays visually steep while the rest of the range compresses.
//
// The remap is the rational function
//
//	f(x) = (-1/(x/r + 1/b) + b) * r,  r = t / (b - 1/b)
//
// for bias b and target t. It satisfies f(0) = 0 and f(t) = t, with slope b²
// at 0 and 1/b² at t.
package contrast

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is returned by Configure for parameters the remap
// is undefined for. The previous configuration is kept.
var ErrInvalidConfiguration = errors.New("contrast: invalid configuration")

// Mode selects how Apply treats its input.
type Mode int

const (
	// Identity passes counts through unchanged.
	Identity Mode = iota
	// Scaled applies the rational remap.
	Scaled
)

func (m Mode) String() string {
	switch m {
	case Identity:
		return "identity"
	case Scaled:
		return "scaled"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Transform holds the parameters derived from a bias and target.
//
// A Transform must not be reconfigured while another goroutine calls Apply.
type Transform struct {
	mode Mode

	bias        float64
	inverseBias float64
	target      float64

	// ratio is only meaningful in Scaled mode.
	ratio float64
}

// New returns a Transform in its start state: bias 1, the identity.
func New() *Transform {
	return &Transform{
		mode:        Identity,
		bias:        1,
		inverseBias: 1,
	}
}

// Configure derives the remap for bias and target.
//
// A zero bias, a zero target, or non-finite values leave the Transform
// unchanged and return ErrInvalidConfiguration. A bias of 1 (or -1) makes
// the remap degenerate; the Transform then acts as the identity.
func (t *Transform) Configure(bias, target float64) error {
	switch {
	case bias == 0:
		return fmt.Errorf("%w: bias must be non-zero", ErrInvalidConfiguration)
	case target == 0:
		return fmt.Errorf("%w: target must be non-zero", ErrInvalidConfiguration)
	case !finite(bias) || !finite(target):
		return fmt.Errorf("%w: bias=%v target=%v", ErrInvalidConfiguration, bias, target)
	}

	inverseBias := 1 / bias
	spread := bias - inverseBias

	t.bias = bias
	t.inverseBias = inverseBias
	t.target = target
	if spread == 0 {
		t.mode = Identity
		t.ratio = 0
		return nil
	}

	t.mode = Scaled
	t.ratio = target / spread
	return nil
}

// Apply remaps a continuous count.
func (t *Transform) Apply(x float64) float64 {
	if t.mode == Identity {
		return x
	}

	u := x / t.ratio
	unscaled := -1/(u+t.inverseBias) + t.bias
	return unscaled * t.ratio
}

// Mode reports whether Apply is the identity.
func (t *Transform) Mode() Mode {
	return t.mode
}

// Bias returns the configured bias.
func (t *Transform) Bias() float64 {
	return t.bias
}

// Target returns the configured target, or 0 if Configure was never called.
func (t *Transform) Target() float64 {
	return t.target
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
