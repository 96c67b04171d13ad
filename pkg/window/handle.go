// Package window is the windowing-system side of the renderer: the opaque
// window handle, plus an X11 client used to create, watch and query windows.
package window

import "strconv"

// Handle identifies a native window. On X11 it is the window XID. A Handle
// does not own the window and may go stale at any time.
type Handle uint32

// None is the zero Handle.
const None Handle = 0

func (h Handle) String() string {
	return "0x" + strconv.FormatUint(uint64(h), 16)
}
