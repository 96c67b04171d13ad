package frame

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToI420(t *testing.T) {
	const (
		width  = 2
		height = 2
	)
	expected := []byte{
		0x01, 0x03, 0x05, 0x07,
		0x84,
		0x86,
	}
	cases := map[string]struct {
		format Format
		input  []byte
		want   []byte
	}{
		"I420": {
			format: FormatI420,
			input:  expected,
			want:   expected,
		},
		"NV12": {
			format: FormatNV12,
			input: []byte{
				0x01, 0x03, 0x05, 0x07,
				// U    V
				0x84, 0x86,
			},
			want: expected,
		},
		"NV21": {
			format: FormatNV21,
			input: []byte{
				0x01, 0x03, 0x05, 0x07,
				// V    U
				0x86, 0x84,
			},
			want: expected,
		},
		"YUY2": {
			format: FormatYUY2,
			input: []byte{
				// Y    Cb     Y    Cr
				0x01, 0x82, 0x03, 0x84,
				0x05, 0x86, 0x07, 0x88,
			},
			want: expected,
		},
		"UYVY": {
			format: FormatUYVY,
			input: []byte{
				// Cb    Y    Cr     Y
				0x82, 0x01, 0x84, 0x03,
				0x86, 0x05, 0x88, 0x07,
			},
			want: expected,
		},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			out, err := ToI420(nil, c.input, c.format, width, height)
			require.NoError(t, err)
			assert.Equal(t, c.want, out)
		})
	}
}

func TestToI420ReusesBuffer(t *testing.T) {
	dst := make([]byte, 64)
	src := make([]byte, I420Size(4, 4))
	out, err := ToI420(dst, src, FormatI420, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, I420Size(4, 4), len(out))
	assert.Same(t, &dst[0], &out[0])
}

func TestToI420Errors(t *testing.T) {
	_, err := ToI420(nil, make([]byte, 3), FormatYUY2, 2, 2)
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, err = ToI420(nil, make([]byte, 64), Format("MJPEG"), 2, 2)
	assert.Error(t, err)
}

func TestToI420FromRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	white := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	red := color.RGBA{0xFF, 0x00, 0x00, 0xFF}
	for y := 0; y < 2; y++ {
		img.SetRGBA(0, y, white)
		img.SetRGBA(1, y, white)
		img.SetRGBA(2, y, red)
		img.SetRGBA(3, y, red)
	}

	out, err := ToI420(nil, img.Pix, FormatRGBA, 4, 2)
	require.NoError(t, err)
	p, err := SplitI420(out, 4, 2)
	require.NoError(t, err)

	wy, wu, wv := color.RGBToYCbCr(0xFF, 0xFF, 0xFF)
	ry, ru, rv := color.RGBToYCbCr(0xFF, 0x00, 0x00)
	assert.Equal(t, []byte{wy, wy, ry, ry, wy, wy, ry, ry}, p.Y)
	assert.Equal(t, []byte{wu, ru}, p.U)
	assert.Equal(t, []byte{wv, rv}, p.V)
}

func BenchmarkToI420(b *testing.B) {
	sizes := []struct {
		width, height int
	}{
		{640, 480},
		{1920, 1080},
	}
	for _, sz := range sizes {
		sz := sz
		b.Run(fmt.Sprintf("%dx%d", sz.width, sz.height), func(b *testing.B) {
			input := make([]byte, sz.width*sz.height*2)
			var dst []byte
			for i := 0; i < b.N; i++ {
				var err error
				dst, err = ToI420(dst, input, FormatYUY2, sz.width, sz.height)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
