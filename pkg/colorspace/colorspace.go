// Package colorspace holds the YUV to RGB transform shared by the GPU shader
// and the software pipeline, and the background colour type.
package colorspace

import (
	"image"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/yuvgl/yuvgl/pkg/frame"
)

// BT.601 analog YUV to RGB coefficients. U and V are biased by -0.5 before
// the multiply.
const (
	VToR = 1.13983
	UToG = -0.39465
	VToG = -0.58060
	UToB = 2.03211
)

// Color is a 24 bit RGB colour, 0xRRGGBB. The top byte is ignored.
type Color uint32

// ParseColor parses a hexadecimal colour with an optional "0x" or "#" prefix.
func ParseColor(s string) (Color, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "#")
	if len(t) > 1 && (t[:2] == "0x" || t[:2] == "0X") {
		t = t[2:]
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid colour %q", s)
	}
	if v > 0xFFFFFF {
		return 0, errors.Errorf("colour %q out of range", s)
	}
	return Color(v), nil
}

// Bytes returns the 8 bit components.
func (c Color) Bytes() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGB returns the components scaled to [0, 1], the form glClearColor takes.
func (c Color) RGB() (r, g, b float32) {
	rb, gb, bb := c.Bytes()
	return float32(rb) / 255, float32(gb) / 255, float32(bb) / 255
}

func (c Color) String() string {
	return "0x" + strings.ToUpper(strconv.FormatUint(uint64(c&0xFFFFFF)|1<<24, 16)[1:])
}

// YUVToRGB converts one sample with the same matrix the fragment shader uses.
func YUVToRGB(y, u, v uint8) (r, g, b uint8) {
	fy := float32(y) / 255
	fu := float32(u)/255 - 0.5
	fv := float32(v)/255 - 0.5
	return clamp(fy + VToR*fv), clamp(fy + UToG*fu + VToG*fv), clamp(fy + UToB*fu)
}

func clamp(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}

// I420ToRGBA converts p into dst, which is reallocated when its bounds do not
// match the frame. Chroma is sampled nearest-neighbour.
func I420ToRGBA(dst *image.RGBA, p frame.Planes) *image.RGBA {
	rect := image.Rect(0, 0, p.Width, p.Height)
	if dst == nil || dst.Rect != rect {
		dst = image.NewRGBA(rect)
	}
	cw := p.ChromaWidth()
	ch := p.ChromaHeight()
	for y := 0; y < p.Height; y++ {
		cy := y / 2
		if cy >= ch {
			cy = ch - 1
		}
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < p.Width; x++ {
			cx := x / 2
			if cx >= cw {
				cx = cw - 1
			}
			r, g, b := YUVToRGB(p.Y[y*p.Width+x], p.U[cy*cw+cx], p.V[cy*cw+cx])
			row[4*x+0] = r
			row[4*x+1] = g
			row[4*x+2] = b
			row[4*x+3] = 0xFF
		}
	}
	return dst
}
