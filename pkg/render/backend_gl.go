//go:build linux && cgo

package render

import (
	"github.com/yuvgl/yuvgl/pkg/glx"
	"github.com/yuvgl/yuvgl/pkg/shader"
	"github.com/yuvgl/yuvgl/pkg/window"
)

type glBackend struct{}

// NewGLBackend returns the GLX + OpenGL backend.
func NewGLBackend() (Backend, error) {
	return glBackend{}, nil
}

func (glBackend) OpenContext(w window.Handle) (Context, error) {
	ctx, err := glx.Open(w)
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

func (glBackend) BuildPipeline(Context) (Pipeline, error) {
	p, err := shader.Build()
	if err != nil {
		return nil, err
	}
	return p, nil
}
