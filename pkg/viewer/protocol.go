package viewer

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Ops a client can send.
const (
	OpFrame     = "frame"
	OpResize    = "resize"
	OpZoom      = "zoom"
	OpPan       = "pan"
	OpBias      = "bias"
	OpConfigure = "configure"
)

// HeaderSize is the length of the header preceding pixels in a frame
// message: width and height as little-endian uint32.
const HeaderSize = 8

var errUnknownOp = errors.New("viewer: unknown op")

// Command is a JSON message from the client. Fields not used by Op are
// ignored.
type Command struct {
	Op string `json:"op"`

	// resize
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// zoom: canvas position; pan: drag distance in pixels.
	X   float64 `json:"x,omitempty"`
	Y   float64 `json:"y,omitempty"`
	Out bool    `json:"out,omitempty"`

	// bias
	Delta int `json:"delta,omitempty"`

	// configure
	Bias   float64 `json:"bias,omitempty"`
	Target float64 `json:"target,omitempty"`
}

// Status is a JSON message to the client. It is sent when a command is
// rejected.
type Status struct {
	Error string `json:"error,omitempty"`

	Bias         float64 `json:"bias"`
	Target       float64 `json:"target"`
	Iterations   int     `json:"iterations"`
	ZoomExponent int     `json:"zoomExponent"`
}

// encodeHeader returns the frame message header for a width x height frame.
func encodeHeader(width, height int) []byte {
	h := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(h[0:], uint32(width))
	binary.LittleEndian.PutUint32(h[4:], uint32(height))
	return h
}

// DecodeFrame splits a frame message into its dimensions and RGBA bytes.
func DecodeFrame(msg []byte) (width, height int, pix []byte, err error) {
	if len(msg) < HeaderSize {
		return 0, 0, nil, fmt.Errorf("viewer: frame message of %d bytes", len(msg))
	}

	width = int(binary.LittleEndian.Uint32(msg[0:]))
	height = int(binary.LittleEndian.Uint32(msg[4:]))
	pix = msg[HeaderSize:]
	if len(pix) != width*height*4 {
		return 0, 0, nil, fmt.Errorf("viewer: %dx%d frame with %d pixel bytes", width, height, len(pix))
	}
	return width, height, pix, nil
}
