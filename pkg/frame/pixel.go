package frame

import (
	"math"

	"github.com/willbeason/mandelview/pkg/contrast"
	"github.com/willbeason/mandelview/pkg/escape"
)

// BandThreshold is the last remapped count drawn in the red-to-green band.
// Counts above it fall in the green-to-blue band.
const BandThreshold = 255

// maxCode is the largest remapped count the gradient can represent.
const maxCode = 2*BandThreshold + 1

// Pixel is a packed color, 0xAABBGGRR. Stored little-endian its bytes are
// R, G, B, A.
type Pixel uint32

// Transparent is the color of points inside the set.
const Transparent Pixel = 0

// Pack builds a Pixel from its channels.
func Pack(r, g, b, a uint8) Pixel {
	return Pixel(uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r))
}

func (p Pixel) R() uint8 { return uint8(p) }
func (p Pixel) G() uint8 { return uint8(p >> 8) }
func (p Pixel) B() uint8 { return uint8(p >> 16) }
func (p Pixel) A() uint8 { return uint8(p >> 24) }

// Gradient maps an integer remapped count onto the two-band gradient.
// Out of range values are clamped to [0, 2*BandThreshold+1].
func Gradient(code int) Pixel {
	code = min(max(code, 0), maxCode)

	if code > BandThreshold {
		b := code - (BandThreshold + 1)
		return Pack(0, uint8(BandThreshold-b), uint8(b), 255)
	}
	return Pack(uint8(BandThreshold-code), uint8(code), 0, 255)
}

// Colorize converts a continuous escape count into a Pixel. Counts at or
// above the evaluator's cap are transparent.
func Colorize(code float64, e escape.Evaluator, t *contrast.Transform) Pixel {
	if e.Inside(code) {
		return Transparent
	}

	mapped := t.Apply(code)
	if math.IsNaN(mapped) {
		mapped = 0
	}
	mapped = math.Max(math.Min(mapped, maxCode), 0)

	return Gradient(int(mapped))
}
