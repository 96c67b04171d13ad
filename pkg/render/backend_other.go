//go:build !linux || !cgo

package render

import "github.com/yuvgl/yuvgl/pkg/glx"

// NewGLBackend returns glx.ErrNotAvailable; this build has no GLX.
func NewGLBackend() (Backend, error) {
	return nil, glx.ErrNotAvailable
}
