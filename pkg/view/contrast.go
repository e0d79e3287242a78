package view

const (
	// MinBias and MaxBias bound bias stepping.
	MinBias = 1
	MaxBias = 20

	// DefaultBias and DefaultTarget are the contrast a session starts with.
	DefaultBias   = 5
	DefaultTarget = 512
)

// Contrast is the user-facing contrast setting of a session.
type Contrast struct {
	Bias   float64
	Target float64
}

// NewContrast returns the default contrast setting.
func NewContrast() Contrast {
	return Contrast{Bias: DefaultBias, Target: DefaultTarget}
}

// Step moves the bias by delta whole steps within [MinBias, MaxBias] and
// returns the new bias.
func (c *Contrast) Step(delta int) float64 {
	c.Bias = min(MaxBias, max(MinBias, c.Bias+float64(delta)))
	return c.Bias
}
