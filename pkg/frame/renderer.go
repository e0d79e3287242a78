// Package frame renders colorized Mandelbrot frames into a fixed-capacity
// pixel buffer.
package frame

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/willbeason/mandelview/pkg/contrast"
	"github.com/willbeason/mandelview/pkg/escape"
	"github.com/willbeason/mandelview/pkg/transforms"
)

var (
	// ErrCapacityExceeded is returned when a frame has more pixels than the
	// buffer holds. Nothing is written.
	ErrCapacityExceeded = errors.New("frame: pixel count exceeds buffer capacity")

	// ErrInvalidViewport is returned for non-positive dimensions, a zoom
	// width that is not a positive finite number, or a zoom so deep the
	// distance between pixels is no longer a normal float64. Nothing is
	// written.
	ErrInvalidViewport = errors.New("frame: invalid viewport")
)

// defaultCancelEvery is how many rows RenderContext draws between context
// checks.
const defaultCancelEvery = 16

// Viewport is the region of the plane mapped onto a Width x Height grid.
// ZoomWidth is the plane width shown; (LeftX, TopY) is the plane coordinate
// of the top-left pixel.
type Viewport struct {
	Width  int32
	Height int32

	ZoomWidth float64
	LeftX     float64
	TopY      float64
}

// Pixels returns Width*Height without overflowing.
func (v Viewport) Pixels() int64 {
	return int64(v.Width) * int64(v.Height)
}

// Scale returns the plane distance between adjacent pixels.
func (v Viewport) Scale() float64 {
	return v.ZoomWidth / float64(v.Width)
}

// Plane returns the map from pixel position to plane coordinate.
func (v Viewport) Plane() transforms.Linear {
	return transforms.Screen(v.Scale(), v.LeftX, v.TopY)
}

// minScale is the smallest normal float64.
const minScale = 0x1p-1022

// Validate reports whether v can be rendered.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, v.Width, v.Height)
	}
	if v.ZoomWidth <= 0 || math.IsInf(v.ZoomWidth, 0) || math.IsNaN(v.ZoomWidth) {
		return fmt.Errorf("%w: zoom width %v", ErrInvalidViewport, v.ZoomWidth)
	}
	if v.Scale() < minScale {
		return fmt.Errorf("%w: zoom width %v over %d pixels", ErrInvalidViewport, v.ZoomWidth, v.Width)
	}
	return nil
}

// Renderer scans viewports into its Buffer.
//
// A Renderer is not safe for concurrent use. Configure must only be called
// between frames.
type Renderer struct {
	eval     escape.Evaluator
	contrast *contrast.Transform
	buf      *Buffer

	cancelEvery int
}

// Option configures a Renderer during creation.
type Option func(*Renderer)

// WithCapacity sizes the buffer to hold n pixels.
func WithCapacity(n int) Option {
	return func(r *Renderer) {
		r.buf = NewBuffer(n)
	}
}

// WithBuffer renders into a caller-owned buffer.
func WithBuffer(b *Buffer) Option {
	return func(r *Renderer) {
		r.buf = b
	}
}

// WithIterationCap sets the escape-time iteration limit.
func WithIterationCap(n int) Option {
	return func(r *Renderer) {
		r.eval = escape.New(n)
	}
}

// WithCancelEvery sets how many rows RenderContext draws between checks of
// its context.
func WithCancelEvery(rows int) Option {
	return func(r *Renderer) {
		if rows > 0 {
			r.cancelEvery = rows
		}
	}
}

// NewRenderer returns a Renderer with an identity contrast transform and a
// buffer of MaxPixelCount pixels unless options say otherwise.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		eval:        escape.New(escape.DefaultCap),
		contrast:    contrast.New(),
		cancelEvery: defaultCancelEvery,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.buf == nil {
		r.buf = NewBuffer(MaxPixelCount)
	}
	return r
}

// Buffer returns the buffer frames are written to.
func (r *Renderer) Buffer() *Buffer {
	return r.buf
}

// Evaluator returns the escape-time evaluator in use.
func (r *Renderer) Evaluator() escape.Evaluator {
	return r.eval
}

// Contrast returns the contrast transform in use.
func (r *Renderer) Contrast() *contrast.Transform {
	return r.contrast
}

// Configure sets the contrast parameters. See [contrast.Transform.Configure].
func (r *Renderer) Configure(bias, target float64) error {
	err := r.contrast.Configure(bias, target)
	if err != nil {
		Logger().Warn("contrast configuration rejected", "bias", bias, "target", target, "err", err)
		return err
	}
	Logger().Debug("contrast configured", "bias", bias, "target", target, "mode", r.contrast.Mode())
	return nil
}

// Render draws v into the buffer and returns the first packed pixel as a
// debugging aid.
func (r *Renderer) Render(v Viewport) (int32, error) {
	return r.RenderContext(context.Background(), v)
}

// RenderContext is Render with cooperative cancellation. A done ctx is
// checked before the first row and then every few rows; once drawing has
// started, the rows drawn so far stay in the buffer and ctx.Err() is
// returned.
func (r *Renderer) RenderContext(ctx context.Context, v Viewport) (int32, error) {
	if err := v.Validate(); err != nil {
		Logger().Warn("frame rejected", "width", v.Width, "height", v.Height, "err", err)
		return 0, err
	}
	if v.Pixels() > int64(r.buf.Cap()) {
		err := fmt.Errorf("%w: %dx%d > %d", ErrCapacityExceeded, v.Width, v.Height, r.buf.Cap())
		Logger().Warn("frame rejected", "width", v.Width, "height", v.Height, "err", err)
		return 0, err
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	start := time.Now()
	width := int(v.Width)
	height := int(v.Height)
	toPlane := v.Plane()

	r.buf.reset(width, height)

	i := 0
	for y := 0; y < height; y++ {
		if y > 0 && y%r.cancelEvery == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}

		for x := 0; x < width; x++ {
			c := toPlane.Next(complex(float64(x), float64(y)))
			code := r.eval.Count(real(c), imag(c))
			r.buf.set(i, Colorize(code, r.eval, r.contrast))
			i++
		}
	}

	Logger().Debug("frame rendered",
		"width", width,
		"height", height,
		"zoom", v.ZoomWidth,
		"elapsed", time.Since(start))

	first, _ := r.buf.Pixel(0)
	return int32(first), nil
}
