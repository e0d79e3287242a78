// Package view tracks where a viewer is looking in the plane and how its
// contrast is set, and turns that into frame requests.
package view

import (
	"errors"
	"fmt"
	"math"

	"github.com/willbeason/mandelview/pkg/frame"
	"github.com/willbeason/mandelview/pkg/transforms"
)

const (
	// StartZoomExponent shows a plane width of 2^(8/4) = 4.
	StartZoomExponent = 8

	// MaxZoomExponent bounds zooming out at a plane width of 16.
	MaxZoomExponent = 16

	// StartLeftX puts the real coordinate -2.5 at the left edge.
	StartLeftX = -2.5

	// zoomSteps is how many zoom steps halve the plane width.
	zoomSteps = 4
)

// ErrInvalidSize is returned for canvases without a positive area.
var ErrInvalidSize = errors.New("view: invalid canvas size")

// Camera maps a canvas of pixels onto the plane. The plane width shown is
// 2^(E/4) for an integer zoom exponent E, so each zoom step scales the view
// by the fourth root of two.
type Camera struct {
	width  int
	height int

	leftX float64
	topY  float64

	zoomExp int
}

// NewCamera returns a camera over a width x height canvas showing the
// whole set, with the real axis through the middle of the canvas.
func NewCamera(width, height int) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	c := &Camera{
		width:   width,
		height:  height,
		leftX:   StartLeftX,
		zoomExp: StartZoomExponent,
	}
	c.topY = -c.ZoomHeight() / 2
	return c, nil
}

// Size returns the canvas size in pixels.
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}

// ZoomExponent returns the current zoom exponent.
func (c *Camera) ZoomExponent() int {
	return c.zoomExp
}

// ZoomWidth is the plane width visible on the canvas.
func (c *Camera) ZoomWidth() float64 {
	return math.Pow(2, float64(c.zoomExp)/zoomSteps)
}

// ZoomHeight is the plane height visible on the canvas.
func (c *Camera) ZoomHeight() float64 {
	return c.ZoomWidth() * float64(c.height) / float64(c.width)
}

// TopLeft returns the plane coordinate of the top-left pixel.
func (c *Camera) TopLeft() (x, y float64) {
	return c.leftX, c.topY
}

// PlanePoint returns the plane coordinate under canvas position (px, py).
func (c *Camera) PlanePoint(px, py float64) (x, y float64) {
	z := c.Viewport().Plane().Next(complex(px, py))
	return real(z), imag(z)
}

// ZoomAt zooms one step in, or out if out is set, keeping the plane point
// under (px, py) fixed on the canvas. Zooming out stops at MaxZoomExponent.
func (c *Camera) ZoomAt(px, py float64, out bool) {
	mx, my := c.PlanePoint(px, py)

	if out {
		c.zoomExp = min(MaxZoomExponent, c.zoomExp+1)
	} else {
		c.zoomExp--
	}

	scale := c.Viewport().Scale()
	c.leftX = mx - px*scale
	c.topY = my - py*scale
}

// Pan moves the picture by (dx, dy) pixels, as when it is dragged.
func (c *Camera) Pan(dx, dy float64) {
	drag := transforms.Linear{
		Multiply: complex(-c.Viewport().Scale(), 0),
		Add:      complex(c.leftX, c.topY),
	}
	z := drag.Next(complex(dx, dy))
	c.leftX, c.topY = real(z), imag(z)
}

// Resize changes the canvas size. The plane width and the vertical centre
// of the view are kept.
func (c *Camera) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	centerY := c.topY + c.ZoomHeight()/2
	c.width = width
	c.height = height
	c.topY = centerY - c.ZoomHeight()/2
	return nil
}

// Viewport returns the frame request for the current view.
func (c *Camera) Viewport() frame.Viewport {
	return frame.Viewport{
		Width:     int32(c.width),
		Height:    int32(c.height),
		ZoomWidth: c.ZoomWidth(),
		LeftX:     c.leftX,
		TopY:      c.topY,
	}
}
