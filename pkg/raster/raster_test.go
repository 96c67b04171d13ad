package raster_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvgl/yuvgl/pkg/colorspace"
	"github.com/yuvgl/yuvgl/pkg/frame"
	"github.com/yuvgl/yuvgl/pkg/layout"
	"github.com/yuvgl/yuvgl/pkg/raster"
	"github.com/yuvgl/yuvgl/pkg/render"
)

const (
	videoW = 64
	videoH = 36
	bg     = colorspace.Color(0x2050a0)
)

var (
	bgRGBA = color.RGBA{R: 0x20, G: 0x50, B: 0xa0, A: 0xff}
	black  = color.RGBA{A: 0xff}
)

func nearGrey(t *testing.T, c color.RGBA) {
	t.Helper()
	assert.InDelta(t, 128, int(c.R), 1)
	assert.InDelta(t, 128, int(c.G), 1)
	assert.InDelta(t, 128, int(c.B), 1)
}

// greyFrame is mid grey with neutral chroma.
func greyFrame() []byte {
	buf := make([]byte, frame.I420Size(videoW, videoH))
	for i := range buf {
		buf[i] = 128
	}
	return buf
}

func newDriver(t *testing.T, mode layout.Mode, s *raster.Surface) *render.Driver {
	t.Helper()
	b := raster.NewBackend()
	d, err := render.NewDriver(b, render.Config{
		Window:     b.Attach(s),
		Mode:       mode,
		Background: bg,
		Width:      videoW,
		Height:     videoH,
	})
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestFitLetterbox(t *testing.T) {
	s := raster.NewSurface(500, 500)
	d := newDriver(t, layout.Fit, s)

	require.True(t, d.Render(greyFrame()))
	img := s.Image()

	// Viewport (0,109 500x281) from the bottom edge covers rows 110 to 390.
	assert.Equal(t, bgRGBA, img.RGBAAt(250, 0))
	assert.Equal(t, bgRGBA, img.RGBAAt(250, 108))
	assert.Equal(t, bgRGBA, img.RGBAAt(250, 499))
	nearGrey(t, img.RGBAAt(250, 250))
	nearGrey(t, img.RGBAAt(0, 111))
	nearGrey(t, img.RGBAAt(499, 388))
}

func TestFullFill(t *testing.T) {
	s := raster.NewSurface(500, 500)
	d := newDriver(t, layout.FullFill, s)

	require.True(t, d.Render(greyFrame()))
	img := s.Image()
	for _, pt := range [][2]int{{0, 0}, {499, 0}, {0, 499}, {499, 499}, {250, 250}} {
		nearGrey(t, img.RGBAAt(pt[0], pt[1]))
	}
}

func TestFramesAreUpright(t *testing.T) {
	s := raster.NewSurface(100, 100)
	d := newDriver(t, layout.FullFill, s)

	buf := greyFrame()
	p, err := frame.SplitI420(buf, videoW, videoH)
	require.NoError(t, err)
	for i := range p.Y[:videoW*videoH/2] {
		p.Y[i] = 255
	}
	for i := range p.Y[videoW*videoH/2:] {
		p.Y[videoW*videoH/2+i] = 0
	}

	require.True(t, d.Render(buf))
	img := s.Image()
	assert.Greater(t, img.RGBAAt(50, 5).R, uint8(200), "top of the frame at the top")
	assert.Less(t, img.RGBAAt(50, 95).R, uint8(60))
}

func TestResizePillarbox(t *testing.T) {
	s := raster.NewSurface(500, 500)
	d := newDriver(t, layout.Fit, s)
	require.True(t, d.Render(greyFrame()))

	s.Resize(1000, 300)
	require.True(t, d.Render(greyFrame()))
	img := s.Image()

	// Viewport (233,0 533x300).
	assert.Equal(t, bgRGBA, img.RGBAAt(100, 150))
	assert.Equal(t, bgRGBA, img.RGBAAt(900, 150))
	nearGrey(t, img.RGBAAt(500, 150))
	nearGrey(t, img.RGBAAt(234, 0))
	assert.Equal(t, render.Stats{Rendered: 2}, d.Stats())
}

func TestDestroyedSurface(t *testing.T) {
	s := raster.NewSurface(500, 500)
	d := newDriver(t, layout.Fit, s)
	require.True(t, d.Render(greyFrame()))

	s.Destroy()
	assert.False(t, d.Render(greyFrame()))
	assert.False(t, d.Render(greyFrame()))
	assert.Equal(t, render.Stats{Rendered: 1, Dropped: 2}, d.Stats())
}

func TestSurfaceStartsOpaqueBlack(t *testing.T) {
	s := raster.NewSurface(4, 4)
	assert.Equal(t, black, s.Image().RGBAAt(0, 0))
	assert.Equal(t, black, s.Image().RGBAAt(3, 3))

	s.Resize(8, 6)
	img := s.Image()
	assert.Equal(t, 8, img.Rect.Dx())
	assert.Equal(t, 6, img.Rect.Dy())
	assert.Equal(t, black, img.RGBAAt(7, 5))
}

func TestUnknownWindow(t *testing.T) {
	b := raster.NewBackend()
	ctx, err := b.OpenContext(0x42)
	assert.ErrorIs(t, err, raster.ErrUnknownWindow)
	assert.Nil(t, ctx)
}

func TestRendererOnSurface(t *testing.T) {
	b := raster.NewBackend()
	s := raster.NewSurface(50, 50)
	w := b.Attach(s)

	r, err := render.NewRenderer(b, w)
	require.NoError(t, err)
	assert.Equal(t, black, s.Image().RGBAAt(0, 0))

	require.True(t, r.CanRender(w))
	require.True(t, r.RenderFrame(greyFrame(), w, videoW, videoH, layout.FullFill, bg))
	nearGrey(t, s.Image().RGBAAt(25, 25))

	s.Destroy()
	assert.False(t, r.RenderFrame(greyFrame(), w, videoW, videoH, layout.FullFill, bg))
	assert.True(t, r.Invalid())
	require.NoError(t, r.Close())
	assert.Equal(t, render.StateInvalid, r.State())
}
