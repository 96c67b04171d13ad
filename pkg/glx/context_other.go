//go:build !linux || !cgo

package glx

import "github.com/yuvgl/yuvgl/pkg/window"

// Context is a stub; Open always fails in this build.
type Context struct{}

// Open returns ErrNotAvailable.
func Open(w window.Handle) (*Context, error) {
	return nil, ErrNotAvailable
}

// IsBindable returns false.
func (c *Context) IsBindable(w window.Handle) bool { return false }

// Geometry returns ErrNotAvailable.
func (c *Context) Geometry(w window.Handle) (int, int, error) {
	return 0, 0, ErrNotAvailable
}

// Close does nothing.
func (c *Context) Close() error { return nil }
