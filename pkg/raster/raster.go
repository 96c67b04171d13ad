// Package raster is a software render.Backend. It draws into in-memory
// surfaces with the same colour matrix and viewport convention as the GPU
// pipeline, which makes it usable without a display server.
package raster

import (
	"image"
	"image/color"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/yuvgl/yuvgl/internal/logging"
	"github.com/yuvgl/yuvgl/pkg/colorspace"
	"github.com/yuvgl/yuvgl/pkg/frame"
	"github.com/yuvgl/yuvgl/pkg/layout"
	"github.com/yuvgl/yuvgl/pkg/render"
	"github.com/yuvgl/yuvgl/pkg/window"
)

var logger = logging.NewLogger("yuvgl/raster")

var (
	// ErrUnknownWindow is returned for handles that were never attached.
	ErrUnknownWindow = errors.New("raster: unknown window")
	// ErrDestroyed is returned once a surface has been destroyed.
	ErrDestroyed = errors.New("raster: surface destroyed")
)

// Surface is an in-memory window.
type Surface struct {
	mu        sync.Mutex
	fb        *image.RGBA
	destroyed bool
}

// NewSurface returns an opaque black width x height surface.
func NewSurface(width, height int) *Surface {
	return &Surface{fb: newFramebuffer(width, height)}
}

// Resize changes the size of s, clearing it to opaque black.
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fb = newFramebuffer(width, height)
}

func newFramebuffer(width, height int) *image.RGBA {
	fb := image.NewRGBA(image.Rect(0, 0, width, height))
	fill(fb, color.RGBA{A: 0xff})
	return fb
}

func fill(fb *image.RGBA, c color.RGBA) {
	draw.Draw(fb, fb.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Destroy makes every later geometry query on s fail.
func (s *Surface) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
}

// Image returns a copy of the current contents.
func (s *Surface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	img := image.NewRGBA(s.fb.Rect)
	copy(img.Pix, s.fb.Pix)
	return img
}

func (s *Surface) size() (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return 0, 0, ErrDestroyed
	}
	return s.fb.Rect.Dx(), s.fb.Rect.Dy(), nil
}

func (s *Surface) alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.destroyed
}

// Backend hands out contexts on attached surfaces.
type Backend struct {
	mu       sync.Mutex
	next     window.Handle
	surfaces map[window.Handle]*Surface
}

var _ render.Backend = (*Backend)(nil)

// NewBackend returns a Backend with no surfaces.
func NewBackend() *Backend {
	return &Backend{
		next:     0x100,
		surfaces: make(map[window.Handle]*Surface),
	}
}

// Attach registers s and returns the handle to render into it.
func (b *Backend) Attach(s *Surface) window.Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.surfaces[b.next] = s
	return b.next
}

func (b *Backend) surface(w window.Handle) (*Surface, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.surfaces[w]
	return s, ok
}

// OpenContext fails when w is unknown or its surface is destroyed.
func (b *Backend) OpenContext(w window.Handle) (render.Context, error) {
	s, ok := b.surface(w)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownWindow, "window %s", w)
	}
	if !s.alive() {
		return nil, errors.Wrapf(ErrDestroyed, "window %s", w)
	}
	logger.Debugf("context opened on window %s", w)
	return &surfaceContext{window: w, surface: s}, nil
}

// BuildPipeline returns a pipeline drawing into ctx's surface.
func (b *Backend) BuildPipeline(ctx render.Context) (render.Pipeline, error) {
	c, ok := ctx.(*surfaceContext)
	if !ok {
		return nil, errors.Errorf("raster: foreign context %T", ctx)
	}
	return &pipeline{surface: c.surface}, nil
}

type surfaceContext struct {
	window  window.Handle
	surface *Surface
	closed  bool
}

func (c *surfaceContext) IsBindable(w window.Handle) bool {
	return !c.closed && w == c.window && c.surface.alive()
}

func (c *surfaceContext) Geometry(w window.Handle) (int, int, error) {
	if c.closed {
		return 0, 0, errors.New("raster: context closed")
	}
	if w != c.window {
		return 0, 0, errors.Wrapf(ErrUnknownWindow, "window %s", w)
	}
	return c.surface.size()
}

func (c *surfaceContext) Close() error {
	c.closed = true
	return nil
}

type pipeline struct {
	surface  *Surface
	viewport layout.Rect
	rgba     *image.RGBA
}

func (p *pipeline) SetViewport(r layout.Rect) {
	p.viewport = r
}

// UploadAndDraw clears the surface to bg and scales the frame into the
// viewport. Viewport Y counts from the bottom edge as in OpenGL.
func (p *pipeline) UploadAndDraw(planes frame.Planes, bg colorspace.Color) {
	p.rgba = colorspace.I420ToRGBA(p.rgba, planes)

	p.surface.mu.Lock()
	defer p.surface.mu.Unlock()
	fb := p.surface.fb

	r, g, b := bg.Bytes()
	fill(fb, color.RGBA{R: r, G: g, B: b, A: 0xff})

	if p.viewport.Empty() {
		return
	}
	top := fb.Rect.Dy() - (p.viewport.Y + p.viewport.H)
	dst := image.Rect(p.viewport.X, top, p.viewport.X+p.viewport.W, top+p.viewport.H)
	draw.ApproxBiLinear.Scale(fb, dst, p.rgba, p.rgba.Rect, draw.Src, nil)
}

func (p *pipeline) Release() {
	p.rgba = nil
}
