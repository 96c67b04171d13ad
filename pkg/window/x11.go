package window

import (
	"context"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/yuvgl/yuvgl/internal/logging"
)

var logger = logging.NewLogger("yuvgl/window")

// Geometry is the position and size of a window relative to its parent.
type Geometry struct {
	X, Y          int
	Width, Height int
}

// Options describe a window created by Conn.Create.
type Options struct {
	X, Y          int
	Width, Height int
	Title         string
	// Background is the 0xRRGGBB fill shown before the first frame.
	Background uint32
}

// Conn is a connection to an X server.
type Conn struct {
	xc     *xgb.Conn
	screen *xproto.ScreenInfo

	wmProtocols    xproto.Atom
	wmDeleteWindow xproto.Atom

	mu      sync.Mutex
	closed  map[Handle]chan struct{}
	pumping bool
	done    chan struct{}
}

// Dial connects to display; an empty display uses $DISPLAY.
func Dial(display string) (*Conn, error) {
	xc, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open display")
	}
	c := &Conn{
		xc:     xc,
		screen: xproto.Setup(xc).DefaultScreen(xc),
		closed: make(map[Handle]chan struct{}),
		done:   make(chan struct{}),
	}
	if c.wmProtocols, err = c.atom("WM_PROTOCOLS"); err != nil {
		xc.Close()
		return nil, err
	}
	if c.wmDeleteWindow, err = c.atom("WM_DELETE_WINDOW"); err != nil {
		xc.Close()
		return nil, err
	}
	return c, nil
}

func (c *Conn) atom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.xc, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to intern %s", name)
	}
	return reply.Atom, nil
}

// Create creates, names and maps a top-level window.
func (c *Conn) Create(o Options) (Handle, error) {
	wid, err := xproto.NewWindowId(c.xc)
	if err != nil {
		return None, errors.Wrap(err, "failed to allocate window id")
	}

	s := c.screen
	mask := uint32(xproto.CwBackPixel | xproto.CwEventMask)
	values := []uint32{
		o.Background & 0xFFFFFF,
		xproto.EventMaskStructureNotify,
	}
	err = xproto.CreateWindowChecked(c.xc, s.RootDepth, wid, s.Root,
		int16(o.X), int16(o.Y), uint16(o.Width), uint16(o.Height), 0,
		xproto.WindowClassInputOutput, s.RootVisual, mask, values).Check()
	if err != nil {
		return None, errors.Wrap(err, "failed to create window")
	}

	h := Handle(wid)
	if o.Title != "" {
		err = xproto.ChangePropertyChecked(c.xc, xproto.PropModeReplace, wid,
			xproto.AtomWmName, xproto.AtomString, 8,
			uint32(len(o.Title)), []byte(o.Title)).Check()
		if err != nil {
			logger.Warnf("failed to set title of window %s: %v", h, err)
		}
	}

	// Ask the window manager for a ClientMessage instead of killing the
	// connection when the user closes the window.
	data := make([]byte, 4)
	xgb.Put32(data, uint32(c.wmDeleteWindow))
	err = xproto.ChangePropertyChecked(c.xc, xproto.PropModeReplace, wid,
		c.wmProtocols, xproto.AtomAtom, 32, 1, data).Check()
	if err != nil {
		logger.Warnf("failed to register WM_DELETE_WINDOW on %s: %v", h, err)
	}

	if err := xproto.MapWindowChecked(c.xc, wid).Check(); err != nil {
		_ = xproto.DestroyWindowChecked(c.xc, wid).Check()
		return None, errors.Wrap(err, "failed to map window")
	}
	c.xc.Sync()

	logger.Infof("created window %s %dx%d", h, o.Width, o.Height)
	return h, nil
}

// Geometry queries the current geometry of h. It fails once the window has
// been destroyed.
func (c *Conn) Geometry(h Handle) (Geometry, error) {
	reply, err := xproto.GetGeometry(c.xc, xproto.Drawable(h)).Reply()
	if err != nil {
		return Geometry{}, errors.Wrapf(err, "failed to query window %s", h)
	}
	return Geometry{
		X:      int(reply.X),
		Y:      int(reply.Y),
		Width:  int(reply.Width),
		Height: int(reply.Height),
	}, nil
}

// Destroy destroys h.
func (c *Conn) Destroy(h Handle) error {
	if err := xproto.DestroyWindowChecked(c.xc, xproto.Window(h)).Check(); err != nil {
		return errors.Wrapf(err, "failed to destroy window %s", h)
	}
	return nil
}

// Closed returns a channel that is closed when h is closed by the window
// manager or destroyed. The first call starts the event pump, which runs
// until the connection is closed or ctx is done.
func (c *Conn) Closed(ctx context.Context, h Handle) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, ok := c.closed[h]
	if !ok {
		ch = make(chan struct{})
		c.closed[h] = ch
	}
	if !c.pumping {
		c.pumping = true
		go c.pump(ctx)
	}
	return ch
}

func (c *Conn) pump(ctx context.Context) {
	events := make(chan xgb.Event)
	go func() {
		defer close(events)
		for {
			ev, xerr := c.xc.WaitForEvent()
			if ev == nil && xerr == nil {
				// Connection closed.
				return
			}
			if xerr != nil {
				logger.Debugf("x error: %v", xerr)
				continue
			}
			select {
			case events <- ev:
			case <-c.done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.handle(ev)
		}
	}
}

func (c *Conn) handle(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.ClientMessageEvent:
		if e.Type == c.wmProtocols && xproto.Atom(e.Data.Data32[0]) == c.wmDeleteWindow {
			logger.Infof("window %s closed by window manager", Handle(e.Window))
			c.markClosed(Handle(e.Window))
		}
	case xproto.DestroyNotifyEvent:
		logger.Infof("window %s destroyed", Handle(e.Window))
		c.markClosed(Handle(e.Window))
	}
}

func (c *Conn) markClosed(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, ok := c.closed[h]
	if !ok {
		ch = make(chan struct{})
		c.closed[h] = ch
	}
	select {
	case <-ch:
	default:
		close(ch)
	}
}

// Close closes the connection. Windows created through c are destroyed by
// the server.
func (c *Conn) Close() {
	c.mu.Lock()
	select {
	case <-c.done:
		c.mu.Unlock()
		return
	default:
		close(c.done)
	}
	c.mu.Unlock()
	c.xc.Close()
}
