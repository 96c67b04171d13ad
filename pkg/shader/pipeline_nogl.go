//go:build !cgo

package shader

import (
	"github.com/yuvgl/yuvgl/pkg/colorspace"
	"github.com/yuvgl/yuvgl/pkg/frame"
	"github.com/yuvgl/yuvgl/pkg/layout"
)

// Pipeline is a stub; Build always fails in this build.
type Pipeline struct{}

// Build returns ErrNotAvailable.
func Build() (*Pipeline, error) {
	return nil, ErrNotAvailable
}

// SetViewport does nothing.
func (p *Pipeline) SetViewport(r layout.Rect) {}

// UploadAndDraw does nothing.
func (p *Pipeline) UploadAndDraw(planes frame.Planes, bg colorspace.Color) {}

// Release does nothing.
func (p *Pipeline) Release() {}
