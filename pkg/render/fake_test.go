package render

import (
	"errors"

	"github.com/yuvgl/yuvgl/pkg/colorspace"
	"github.com/yuvgl/yuvgl/pkg/frame"
	"github.com/yuvgl/yuvgl/pkg/layout"
	"github.com/yuvgl/yuvgl/pkg/window"
)

var errFake = errors.New("fake failure")

// fakeWindow is the state shared by every context opened on one window.
type fakeWindow struct {
	width, height int
	gone          bool
	// refuseBind makes IsBindable fail for the next n calls.
	refuseBind int
}

type fakeBackend struct {
	windows   map[window.Handle]*fakeWindow
	failOpen  int
	failBuild int

	opened    []*fakeContext
	pipelines []*fakePipeline
}

func newFakeBackend(w window.Handle, width, height int) *fakeBackend {
	return &fakeBackend{
		windows: map[window.Handle]*fakeWindow{w: {width: width, height: height}},
	}
}

func (b *fakeBackend) OpenContext(w window.Handle) (Context, error) {
	if b.failOpen > 0 {
		b.failOpen--
		return nil, errFake
	}
	fw, ok := b.windows[w]
	if !ok || fw.gone {
		return nil, errFake
	}
	c := &fakeContext{win: fw, handle: w}
	b.opened = append(b.opened, c)
	return c, nil
}

func (b *fakeBackend) BuildPipeline(ctx Context) (Pipeline, error) {
	if b.failBuild > 0 {
		b.failBuild--
		return nil, errFake
	}
	p := &fakePipeline{}
	b.pipelines = append(b.pipelines, p)
	return p, nil
}

type fakeContext struct {
	win    *fakeWindow
	handle window.Handle

	binds      int
	geometries int
	closed     int
}

func (c *fakeContext) IsBindable(w window.Handle) bool {
	c.binds++
	if c.closed > 0 || w != c.handle || c.win.gone {
		return false
	}
	if c.win.refuseBind > 0 {
		c.win.refuseBind--
		return false
	}
	return true
}

func (c *fakeContext) Geometry(w window.Handle) (int, int, error) {
	c.geometries++
	if c.win.gone {
		return 0, 0, errFake
	}
	return c.win.width, c.win.height, nil
}

func (c *fakeContext) Close() error {
	c.closed++
	return nil
}

type fakePipeline struct {
	viewports []layout.Rect
	draws     int
	last      frame.Planes
	bg        colorspace.Color
	released  int
}

func (p *fakePipeline) SetViewport(r layout.Rect) {
	p.viewports = append(p.viewports, r)
}

func (p *fakePipeline) UploadAndDraw(planes frame.Planes, bg colorspace.Color) {
	p.draws++
	p.last = planes
	p.bg = bg
}

func (p *fakePipeline) Release() {
	p.released++
}
