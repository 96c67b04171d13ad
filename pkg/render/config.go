package render

import (
	"github.com/pkg/errors"

	"github.com/yuvgl/yuvgl/pkg/colorspace"
	"github.com/yuvgl/yuvgl/pkg/layout"
	"github.com/yuvgl/yuvgl/pkg/window"
)

// Config is fixed for the lifetime of a Driver.
type Config struct {
	Window     window.Handle
	Mode       layout.Mode
	Background colorspace.Color
	// Width and Height are the dimensions of every frame, agreed with the
	// frame source out of band.
	Width, Height int
	// MaxDropped ends Driver.Run after that many consecutive dropped frames.
	// Zero never gives up.
	MaxDropped int
}

// Validate checks c.
func (c Config) Validate() error {
	if c.Window == window.None {
		return errors.New("render: no window")
	}
	if !c.Mode.Valid() {
		return errors.Errorf("render: unknown scaling mode %d", int(c.Mode))
	}
	if c.Width < 2 || c.Height < 2 || c.Width%2 != 0 || c.Height%2 != 0 {
		return errors.Errorf("render: frame size %dx%d must be even and at least 2x2", c.Width, c.Height)
	}
	if c.MaxDropped < 0 {
		return errors.New("render: negative MaxDropped")
	}
	return nil
}
