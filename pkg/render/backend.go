// Package render draws I420 frames into a native window. A Renderer owns one
// GPU context and one colour conversion pipeline for one window; a Driver
// owns at most one Renderer and replaces it whenever the window stops
// accepting it.
package render

import (
	"github.com/yuvgl/yuvgl/pkg/colorspace"
	"github.com/yuvgl/yuvgl/pkg/frame"
	"github.com/yuvgl/yuvgl/pkg/layout"
	"github.com/yuvgl/yuvgl/pkg/window"
)

// Context is a GPU context bound to one native window.
type Context interface {
	// IsBindable makes the context current on w, reporting false when w is
	// stale or the bind fails.
	IsBindable(w window.Handle) bool
	// Geometry returns the current pixel size of w.
	Geometry(w window.Handle) (width, height int, err error)
	// Close releases the context and its display connection. It must be
	// idempotent.
	Close() error
}

// Pipeline converts planar YUV into RGB on the GPU.
type Pipeline interface {
	SetViewport(r layout.Rect)
	UploadAndDraw(p frame.Planes, bg colorspace.Color)
	// Release deletes the pipeline's GPU objects. It is called with the
	// owning context current and before that context is closed.
	Release()
}

// Backend creates contexts and pipelines.
type Backend interface {
	OpenContext(w window.Handle) (Context, error)
	// BuildPipeline builds a pipeline in ctx, which is current.
	BuildPipeline(ctx Context) (Pipeline, error)
}
