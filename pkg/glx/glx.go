// Package glx binds an OpenGL context to an existing X11 window through
// Xlib and GLX.
//
// A Context is tied to the OS thread that made it current. Callers must keep
// every call for one Context on a single locked thread (runtime.LockOSThread).
package glx

import (
	"errors"

	"github.com/yuvgl/yuvgl/internal/logging"
)

var logger = logging.NewLogger("yuvgl/glx")

var (
	// ErrNotAvailable is returned when the package was built without cgo or
	// for a platform without GLX.
	ErrNotAvailable = errors.New("glx: not available in this build")
	// ErrWindowGone is returned when the window no longer answers attribute
	// queries, usually because it was destroyed.
	ErrWindowGone = errors.New("glx: window is gone")
	// ErrClosed is returned by calls on a closed Context.
	ErrClosed = errors.New("glx: context is closed")
)
