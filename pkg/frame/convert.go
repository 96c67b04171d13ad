package frame

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// ToI420 converts one frame of src in format f to I420, reusing dst when it
// is large enough, and returns the I420 buffer.
func ToI420(dst, src []byte, f Format, width, height int) ([]byte, error) {
	size, err := Size(f, width, height)
	if err != nil {
		return nil, err
	}
	if size > len(src) {
		return nil, errors.Wrapf(ErrShortBuffer, "length (%d) less than expected (%d)", len(src), size)
	}

	dst = grow(dst, I420Size(width, height))
	p, _ := SplitI420(dst, width, height)

	switch f {
	case FormatI420:
		copy(dst, src[:len(dst)])
	case FormatNV12:
		semiPlanarToI420(p, src, false)
	case FormatNV21:
		semiPlanarToI420(p, src, true)
	case FormatYUY2:
		packedToI420(p, src, 0, 1, 3)
	case FormatUYVY:
		packedToI420(p, src, 1, 0, 2)
	case FormatRGBA:
		rgba := &image.RGBA{
			Pix:    src[:size:size],
			Stride: 4 * width,
			Rect:   image.Rect(0, 0, width, height),
		}
		rgbaToI420(p, rgba)
	default:
		return nil, errors.Errorf("frame: %s is not supported", f)
	}
	return dst, nil
}

func grow(b []byte, n int) []byte {
	if cap(b) < n {
		return make([]byte, n)
	}
	return b[:n]
}

func semiPlanarToI420(p Planes, src []byte, vFirst bool) {
	yi := p.Width * p.Height
	copy(p.Y, src[:yi])

	cw, ch := p.ChromaWidth(), p.ChromaHeight()
	// The interleaved plane keeps the full luma stride.
	stride := p.Width
	for y := 0; y < ch; y++ {
		row := src[yi+y*stride:]
		for x := 0; x < cw; x++ {
			a, b := row[2*x], row[2*x+1]
			if vFirst {
				a, b = b, a
			}
			p.U[y*cw+x] = a
			p.V[y*cw+x] = b
		}
	}
}

// packedToI420 handles 4:2:2 packed layouts. y0 is the offset of the first
// luma sample in each 4 byte macropixel; the second sits 2 bytes later.
// Chroma of even and odd rows is averaged.
func packedToI420(p Planes, src []byte, y0, u, v int) {
	w, h := p.Width, p.Height
	stride := 2 * w
	for y := 0; y < h; y++ {
		row := src[y*stride:]
		for x := 0; x < w/2; x++ {
			p.Y[y*w+2*x] = row[4*x+y0]
			p.Y[y*w+2*x+1] = row[4*x+y0+2]
		}
	}

	cw, ch := p.ChromaWidth(), p.ChromaHeight()
	for y := 0; y < ch; y++ {
		even := src[2*y*stride:]
		odd := src[(2*y+1)*stride:]
		for x := 0; x < cw; x++ {
			p.U[y*cw+x] = uint8((uint16(even[4*x+u]) + uint16(odd[4*x+u]) + 1) / 2)
			p.V[y*cw+x] = uint8((uint16(even[4*x+v]) + uint16(odd[4*x+v]) + 1) / 2)
		}
	}
}

func rgbaToI420(p Planes, img *image.RGBA) {
	w, h := p.Width, p.Height
	min := img.Bounds().Min
	cw := p.ChromaWidth()

	// Accumulate chroma of the 2x2 block in 16 bit sums.
	cb := make([]uint16, cw*p.ChromaHeight())
	cr := make([]uint16, len(cb))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.RGBAAt(min.X+x, min.Y+y)
			yy, u, v := color.RGBToYCbCr(c.R, c.G, c.B)
			p.Y[y*w+x] = yy
			if x/2 < cw && y/2 < p.ChromaHeight() {
				ci := (y/2)*cw + x/2
				cb[ci] += uint16(u)
				cr[ci] += uint16(v)
			}
		}
	}
	for i := range cb {
		p.U[i] = uint8((cb[i] + 2) / 4)
		p.V[i] = uint8((cr[i] + 2) / 4)
	}
}
