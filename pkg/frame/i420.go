package frame

import (
	"github.com/pkg/errors"
)

// ErrShortBuffer is returned when a buffer holds fewer bytes than one frame.
var ErrShortBuffer = errors.New("frame: buffer too short")

// Planes are the three sample planes of one I420 frame. The slices alias the
// buffer they were split from.
type Planes struct {
	Y, U, V []byte
	// Width and Height are the luma dimensions; chroma planes are half of
	// each, rounded down.
	Width, Height int
}

// ChromaWidth returns the width of the U and V planes.
func (p Planes) ChromaWidth() int { return p.Width / 2 }

// ChromaHeight returns the height of the U and V planes.
func (p Planes) ChromaHeight() int { return p.Height / 2 }

// SplitI420 slices buf into its Y, U and V planes without copying. Bytes past
// the end of the V plane are ignored.
func SplitI420(buf []byte, width, height int) (Planes, error) {
	if width <= 0 || height <= 0 {
		return Planes{}, errors.Errorf("frame: invalid size %dx%d", width, height)
	}
	yi := width * height
	ci := (width / 2) * (height / 2)
	cbi := yi + ci
	cri := cbi + ci

	if cri > len(buf) {
		return Planes{}, errors.Wrapf(ErrShortBuffer, "length (%d) less than expected (%d)", len(buf), cri)
	}

	return Planes{
		Y:      buf[:yi:yi],
		U:      buf[yi:cbi:cbi],
		V:      buf[cbi:cri:cri],
		Width:  width,
		Height: height,
	}, nil
}
