//go:build linux && cgo

package render_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvgl/yuvgl/pkg/layout"
	"github.com/yuvgl/yuvgl/pkg/render"
	"github.com/yuvgl/yuvgl/pkg/source"
	"github.com/yuvgl/yuvgl/pkg/window"
)

func TestGLDriver(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	conn, err := window.Dial("")
	if err != nil {
		t.Skip("no X display available: ", err)
	}
	defer conn.Close()

	h, err := conn.Create(window.Options{Width: 320, Height: 240, Title: "yuvgl test"})
	require.NoError(t, err)
	defer conn.Destroy(h)

	b, err := render.NewGLBackend()
	require.NoError(t, err)
	first, err := render.NewRenderer(b, h)
	if err != nil {
		t.Skip("GLX unavailable on this display: ", err)
	}
	require.NoError(t, first.Close())

	d, err := render.NewDriver(b, render.Config{
		Window: h,
		Mode:   layout.Fit,
		Width:  128,
		Height: 72,
	})
	require.NoError(t, err)
	defer d.Close()

	frames, err := source.Pattern(128, 72)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		buf, _, err := frames.Read()
		require.NoError(t, err)
		assert.True(t, d.Render(buf))
	}
	assert.Equal(t, render.Stats{Rendered: 3}, d.Stats())
}
