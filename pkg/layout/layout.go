// Package layout maps a fixed size video frame onto a window of arbitrary
// size.
package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Mode is the scaling policy.
type Mode int

const (
	// Fit preserves the aspect ratio and letterboxes or pillarboxes.
	Fit Mode = iota
	// FullFill stretches the frame over the whole window.
	FullFill
)

func (m Mode) String() string {
	switch m {
	case Fit:
		return "fit"
	case FullFill:
		return "fullfill"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == Fit || m == FullFill
}

// ParseMode parses the decimal form used on the command line, 0 for Fit and
// 1 for FullFill.
func ParseMode(s string) (Mode, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid scaling mode %q", s)
	}
	m := Mode(v)
	if !m.Valid() {
		return 0, errors.Errorf("unknown scaling mode %d", v)
	}
	return m, nil
}

// Rect is a destination viewport in window pixels. X and Y are the lower
// left corner, as glViewport takes them.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Compute returns the viewport for a videoW x videoH frame drawn into a
// windowW x windowH window. Any non-positive dimension yields the zero Rect.
func Compute(windowW, windowH, videoW, videoH int, m Mode) Rect {
	if windowW <= 0 || windowH <= 0 || videoW <= 0 || videoH <= 0 {
		return Rect{}
	}
	if m != Fit {
		return Rect{W: windowW, H: windowH}
	}

	windowRatio := float64(windowW) / float64(windowH)
	videoRatio := float64(videoW) / float64(videoH)
	if windowRatio > videoRatio {
		// Window is wider: full height, bars left and right.
		w := windowH * videoW / videoH
		return Rect{X: (windowW - w) / 2, W: w, H: windowH}
	}
	h := windowW * videoH / videoW
	return Rect{Y: (windowH - h) / 2, W: windowW, H: h}
}
