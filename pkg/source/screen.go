package source

import (
	"image"

	"github.com/kbinani/screenshot"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/yuvgl/yuvgl/pkg/frame"
)

// Screen captures display and scales every capture to width x height.
func Screen(display, width, height int) (Reader, error) {
	if n := screenshot.NumActiveDisplays(); display < 0 || display >= n {
		return nil, errors.Errorf("source: display %d out of range, %d active", display, n)
	}
	if width < 2 || height < 2 || width%2 != 0 || height%2 != 0 {
		return nil, errors.Errorf("source: frame size %dx%d must be even and at least 2x2", width, height)
	}
	bounds := screenshot.GetDisplayBounds(display)
	logger.Infof("capturing display %d (%dx%d) at %dx%d", display, bounds.Dx(), bounds.Dy(), width, height)

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf []byte
	return ReaderFunc(func() ([]byte, func(), error) {
		img, err := screenshot.CaptureDisplay(display)
		if err != nil {
			return nil, nil, errors.Wrap(err, "source: screen capture")
		}
		if img.Rect.Dx() != width || img.Rect.Dy() != height {
			draw.ApproxBiLinear.Scale(scaled, scaled.Rect, img, img.Rect, draw.Src, nil)
			img = scaled
		}
		// Both the capture and the scaled copy are tightly packed.
		buf, err = frame.ToI420(buf, img.Pix, frame.FormatRGBA, width, height)
		if err != nil {
			return nil, nil, err
		}
		return buf, nil, nil
	}), nil
}
