//go:build linux && cgo

package glx

// #cgo pkg-config: x11 gl
// #include <X11/Xlib.h>
// #include <GL/glx.h>
//
// extern int goXErrorHandler(Display *dp, XErrorEvent *ev);
//
// static void installErrorHandler(void) {
//   XSetErrorHandler(goXErrorHandler);
// }
//
// // RGBA with a 24 bit depth buffer, single buffered.
// static XVisualInfo *chooseVisual(Display *dp) {
//   int attrs[] = { GLX_RGBA, GLX_DEPTH_SIZE, 24, None };
//   return glXChooseVisual(dp, DefaultScreen(dp), attrs);
// }
import "C"

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/yuvgl/yuvgl/pkg/window"
)

// Context is a GLX rendering context bound to one window, together with the
// display connection that owns it.
type Context struct {
	dp     *C.Display
	ctx    C.GLXContext
	window window.Handle
}

// Open connects to the default display, creates a direct rendering context
// and makes it current on w. Nothing is left allocated when Open fails.
func Open(w window.Handle) (*Context, error) {
	dp := C.XOpenDisplay(nil)
	if dp == nil {
		return nil, errors.New("glx: failed to open display")
	}
	C.installErrorHandler()

	vi := C.chooseVisual(dp)
	if vi == nil {
		C.XCloseDisplay(dp)
		return nil, errors.New("glx: no RGBA visual with a 24 bit depth buffer")
	}
	ctx := C.glXCreateContext(dp, vi, nil, C.True)
	C.XFree(unsafe.Pointer(vi))
	if ctx == nil {
		C.XCloseDisplay(dp)
		return nil, errors.New("glx: failed to create context")
	}

	if C.glXMakeCurrent(dp, C.GLXDrawable(w), ctx) == C.False {
		C.glXDestroyContext(dp, ctx)
		C.XCloseDisplay(dp)
		return nil, errors.Errorf("glx: failed to make context current on window %s", w)
	}

	logger.Debugf("opened context on window %s", w)
	return &Context{dp: dp, ctx: ctx, window: w}, nil
}

// IsBindable makes the context current on w and reports whether that
// worked. It fails for a closed context or a stale window.
func (c *Context) IsBindable(w window.Handle) bool {
	if c.dp == nil || c.ctx == nil {
		return false
	}
	return C.glXMakeCurrent(c.dp, C.GLXDrawable(w), c.ctx) != C.False
}

// Geometry returns the current size of w in pixels. A failed query, or a
// window reported with a zero dimension, returns ErrWindowGone.
func (c *Context) Geometry(w window.Handle) (width, height int, err error) {
	if c.dp == nil {
		return 0, 0, ErrClosed
	}
	var attrs C.XWindowAttributes
	status := C.XGetWindowAttributes(c.dp, C.Window(w), &attrs)
	if status == 0 || attrs.width == 0 || attrs.height == 0 {
		return 0, 0, errors.Wrapf(ErrWindowGone, "window %s", w)
	}
	return int(attrs.width), int(attrs.height), nil
}

// Close releases the context and the display connection. Missing resources
// are skipped, so Close may be called more than once.
func (c *Context) Close() error {
	if c.dp != nil && c.ctx != nil {
		C.glXMakeCurrent(c.dp, C.None, nil)
	}
	if c.ctx != nil {
		C.glXDestroyContext(c.dp, c.ctx)
		c.ctx = nil
	}
	if c.dp != nil {
		C.XCloseDisplay(c.dp)
		c.dp = nil
		logger.Debugf("closed context on window %s", c.window)
	}
	return nil
}
