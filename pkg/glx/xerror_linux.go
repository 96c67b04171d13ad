//go:build linux && cgo

package glx

// #include <X11/Xlib.h>
import "C"

// goXErrorHandler logs X protocol errors and swallows them. The default Xlib
// handler exits the process, which is wrong for errors caused by a window
// that disappeared under us.
//
//export goXErrorHandler
func goXErrorHandler(dp *C.Display, ev *C.XErrorEvent) C.int {
	logger.Warnf("X error: type=%d request_code=%d error_code=%d resource=0x%x",
		int(ev._type), int(ev.request_code), int(ev.error_code), uint64(ev.resourceid))
	return 0
}
