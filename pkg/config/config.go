// Package config holds the settings shared by the mandelview commands.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/pflag"

	"github.com/willbeason/mandelview/pkg/escape"
	"github.com/willbeason/mandelview/pkg/frame"
	"github.com/willbeason/mandelview/pkg/view"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("config: invalid")

// Config is the full set of knobs for a session.
type Config struct {
	// Canvas size in pixels.
	Width  int
	Height int

	// Contrast remap parameters.
	Bias   float64
	Target float64

	IterationCap int

	// MaxPixels is the capacity of the pixel buffer.
	MaxPixels int

	// View of the plane. A zero ZoomWidth means "start view for this canvas".
	ZoomWidth float64
	LeftX     float64
	TopY      float64

	// Output file and format for single renders. An empty Format is derived
	// from the Output extension.
	Output string
	Format string

	// Addr is the listen address of the viewer.
	Addr string

	LogLevel string
}

// Default returns the settings a new viewer session starts with.
func Default() Config {
	return Config{
		Width:        1920,
		Height:       1080,
		Bias:         view.DefaultBias,
		Target:       view.DefaultTarget,
		IterationCap: escape.DefaultCap,
		MaxPixels:    frame.MaxPixelCount,
		Output:       "mandel.png",
		Addr:         ":8080",
		LogLevel:     "info",
	}
}

// BindFlags registers a flag for every field, defaulting to the current
// values of c.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "canvas width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "canvas height in pixels")
	fs.Float64Var(&c.Bias, "bias", c.Bias, "contrast bias; 1 disables the remap")
	fs.Float64Var(&c.Target, "target", c.Target, "iteration count the contrast remap leaves unchanged")
	fs.IntVar(&c.IterationCap, "iterations", c.IterationCap, "maximum escape-time iterations per point")
	fs.IntVar(&c.MaxPixels, "max-pixels", c.MaxPixels, "pixel buffer capacity")
	fs.Float64Var(&c.ZoomWidth, "zoom-width", c.ZoomWidth, "plane width shown; 0 uses the start view and requires --left and --top to be unset")
	fs.Float64Var(&c.LeftX, "left", c.LeftX, "real coordinate of the left edge; needs --zoom-width")
	fs.Float64Var(&c.TopY, "top", c.TopY, "imaginary coordinate of the top edge; needs --zoom-width")
	fs.StringVarP(&c.Output, "output", "o", c.Output, "output image path")
	fs.StringVar(&c.Format, "format", c.Format, "output format: png, bmp or tiff")
	fs.StringVar(&c.Addr, "addr", c.Addr, "viewer listen address")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// Validate reports the first setting no renderer could use.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Width, c.Height)
	case c.MaxPixels <= 0 || c.MaxPixels > frame.MaxCapacity:
		return fmt.Errorf("%w: max pixels %d not in [1, %d]", ErrInvalid, c.MaxPixels, frame.MaxCapacity)
	case int64(c.Width)*int64(c.Height) > int64(c.MaxPixels):
		return fmt.Errorf("%w: canvas %dx%d exceeds %d pixels", ErrInvalid, c.Width, c.Height, c.MaxPixels)
	case c.Width > math.MaxInt32 || c.Height > math.MaxInt32:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Bias == 0:
		return fmt.Errorf("%w: bias must be non-zero", ErrInvalid)
	case c.Target == 0:
		return fmt.Errorf("%w: target must be non-zero", ErrInvalid)
	case c.IterationCap <= 0:
		return fmt.Errorf("%w: iterations %d", ErrInvalid, c.IterationCap)
	case c.ZoomWidth < 0:
		return fmt.Errorf("%w: zoom width %v", ErrInvalid, c.ZoomWidth)
	case c.ZoomWidth == 0 && (c.LeftX != 0 || c.TopY != 0):
		return fmt.Errorf("%w: left and top need a zoom width", ErrInvalid)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Viewport returns the frame request described by c. Without an explicit
// zoom width the start view of a camera over the canvas is used.
func (c Config) Viewport() (frame.Viewport, error) {
	if c.ZoomWidth > 0 {
		return frame.Viewport{
			Width:     int32(c.Width),
			Height:    int32(c.Height),
			ZoomWidth: c.ZoomWidth,
			LeftX:     c.LeftX,
			TopY:      c.TopY,
		}, nil
	}

	cam, err := view.NewCamera(c.Width, c.Height)
	if err != nil {
		return frame.Viewport{}, err
	}
	return cam.Viewport(), nil
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, name)
	}
	return level, nil
}
