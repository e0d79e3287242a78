package frame

import (
	"encoding/binary"
	"image"
	"math"
)

// MaxPixelCount is the default buffer capacity, enough for a 1980x1080 frame.
const MaxPixelCount = 2138400

// bytesPerPixel is the size of a packed Pixel.
const bytesPerPixel = 4

// MaxCapacity is the largest pixel count whose byte size fits in an int.
const MaxCapacity = math.MaxInt / bytesPerPixel

// Buffer is a fixed-capacity pixel store. It is allocated once and
// overwritten in place by every frame; it never grows.
type Buffer struct {
	data []byte

	width  int
	height int
}

// NewBuffer allocates a Buffer holding up to capacity pixels. A non-positive
// capacity selects MaxPixelCount; capacities above MaxCapacity are reduced to
// it.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = MaxPixelCount
	}
	capacity = min(capacity, MaxCapacity)
	return &Buffer{
		data: make([]byte, capacity*bytesPerPixel),
	}
}

// Cap returns the number of pixels the buffer can hold.
func (b *Buffer) Cap() int {
	return len(b.data) / bytesPerPixel
}

// Width returns the width of the last frame written.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the height of the last frame written.
func (b *Buffer) Height() int {
	return b.height
}

// Len returns the number of pixels in the last frame written.
func (b *Buffer) Len() int {
	return b.width * b.height
}

// Bytes returns the RGBA bytes of the last frame, row-major. The slice
// aliases the buffer and is overwritten by the next frame.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.Len()*bytesPerPixel]
}

// Image returns an image.RGBA sharing memory with the buffer. Pixels inside
// the set have alpha 0 and black channels, which is valid premultiplied
// alpha.
func (b *Buffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Bytes(),
		Stride: b.width * bytesPerPixel,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// Pixel returns the i-th pixel of the last frame in row-major order.
func (b *Buffer) Pixel(i int) (Pixel, bool) {
	if i < 0 || i >= b.Len() {
		return 0, false
	}
	return Pixel(binary.LittleEndian.Uint32(b.data[i*bytesPerPixel:])), true
}

// At returns the pixel at (x, y) of the last frame.
func (b *Buffer) At(x, y int) (Pixel, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, false
	}
	return b.Pixel(y*b.width + x)
}

// reset prepares the buffer for a width x height frame. The caller has
// already checked the capacity.
func (b *Buffer) reset(width, height int) {
	b.width = width
	b.height = height
}

func (b *Buffer) set(i int, p Pixel) {
	binary.LittleEndian.PutUint32(b.data[i*bytesPerPixel:], uint32(p))
}
