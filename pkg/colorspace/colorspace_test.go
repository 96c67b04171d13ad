package colorspace

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvgl/yuvgl/pkg/frame"
)

func TestParseColor(t *testing.T) {
	cases := map[string]struct {
		in      string
		want    Color
		wantErr bool
	}{
		"Bare":       {in: "ff8000", want: 0xFF8000},
		"Prefixed":   {in: "0x00ff00", want: 0x00FF00},
		"Hash":       {in: "#0000FF", want: 0x0000FF},
		"Short":      {in: "0", want: 0},
		"OutOfRange": {in: "1000000", wantErr: true},
		"NotHex":     {in: "green", wantErr: true},
		"Empty":      {in: "", wantErr: true},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			got, err := ParseColor(c.in)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestColorComponents(t *testing.T) {
	c := Color(0xFF8000)
	r, g, b := c.Bytes()
	assert.Equal(t, [3]uint8{0xFF, 0x80, 0x00}, [3]uint8{r, g, b})

	fr, fg, fb := c.RGB()
	assert.InDelta(t, 1.0, fr, 1e-6)
	assert.InDelta(t, 128.0/255, fg, 1e-6)
	assert.InDelta(t, 0.0, fb, 1e-6)

	assert.Equal(t, "0xFF8000", c.String())
	assert.Equal(t, "0x00000A", Color(0xA).String())
}

func TestYUVToRGB(t *testing.T) {
	cases := map[string]struct {
		y, u, v uint8
		r, g, b uint8
	}{
		"Black": {0, 128, 128, 0, 0, 0},
		"White": {255, 128, 128, 255, 255, 255},
		"Gray":  {128, 128, 128, 128, 128, 128},
		// Saturates instead of wrapping.
		"Clamp": {255, 255, 255, 255, 131, 255},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			r, g, b := YUVToRGB(c.y, c.u, c.v)
			assert.InDelta(t, c.r, r, 1)
			assert.InDelta(t, c.g, g, 1)
			assert.InDelta(t, c.b, b, 1)
		})
	}
}

func TestI420ToRGBA(t *testing.T) {
	buf := []byte{
		0, 255, 0, 255,
		255, 0, 255, 0,
		128, 128,
		128, 128,
	}
	p, err := frame.SplitI420(buf, 4, 2)
	require.NoError(t, err)

	img := I420ToRGBA(nil, p)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	// Neutral chroma 128 sits 0.5/255 above the -0.5 bias, so black
	// lifts by one step as it does in the shader.
	assert.InDelta(t, 0, int(img.RGBAAt(0, 0).R), 1)
	assert.InDelta(t, 0, int(img.RGBAAt(0, 0).G), 1)
	assert.Equal(t, uint8(255), img.RGBAAt(1, 0).G)
	assert.Equal(t, uint8(255), img.RGBAAt(0, 1).B)
	assert.Equal(t, uint8(0xFF), img.RGBAAt(3, 1).A)

	// Same bounds reuse the destination.
	again := I420ToRGBA(img, p)
	assert.Same(t, img, again)
}
