package frame

import "github.com/pkg/errors"

// sizeFuncs returns the number of bytes one frame occupies in a format.
var sizeFuncs = map[Format]func(width, height int) int{
	FormatI420: I420Size,
	FormatNV21: I420Size, // NV12 and NV21 carry the same samples as I420
	FormatNV12: I420Size,
	FormatYUY2: sizeYUY2,
	FormatUYVY: sizeYUY2, // UYVY and YUY2 have the same frame size
	FormatRGBA: sizeRGBA,
}

// I420Size returns the length of a width x height I420 frame: a full
// resolution luma plane followed by two quarter resolution chroma planes.
func I420Size(width, height int) int {
	yi := width * height
	ci := (width / 2) * (height / 2)
	return yi + 2*ci
}

func sizeYUY2(width, height int) int {
	return 2 * width * height
}

func sizeRGBA(width, height int) int {
	return 4 * width * height
}

// Size returns the frame length of format at width x height.
func Size(f Format, width, height int) (int, error) {
	fn, ok := sizeFuncs[f]
	if !ok {
		return 0, errors.Errorf("frame: %s is not supported", f)
	}
	return fn(width, height), nil
}
