package main

import (
	"context"
	"image/png"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/yuvgl/yuvgl/pkg/raster"
	"github.com/yuvgl/yuvgl/pkg/render"
	"github.com/yuvgl/yuvgl/pkg/source"
	"github.com/yuvgl/yuvgl/pkg/window"
)

const (
	windowX      = 100
	windowY      = 100
	windowWidth  = 500
	windowHeight = 500
	windowTitle  = "yuvplay"

	commandReadTimeout = 10 * time.Second
)

// openSource returns the configured frame source.
func openSource(o *options) (source.ReadCloser, error) {
	switch o.source {
	case "file":
		return source.OpenFile(o.file, o.width, o.height)
	case "pattern":
		r, err := source.Pattern(o.width, o.height)
		if err != nil {
			return nil, err
		}
		return source.NopCloser(r), nil
	case "screen":
		r, err := source.Screen(o.display, o.width, o.height)
		if err != nil {
			return nil, err
		}
		return source.NopCloser(r), nil
	case "camera":
		return source.OpenCamera(o.camera, o.width, o.height)
	case "cmd":
		return source.StartCommand(o.command, o.width, o.height, commandReadTimeout)
	}
	return nil, errors.Errorf("unknown source %q", o.source)
}

// target is where frames end up: a backend and the window handle it draws
// into.
type target struct {
	backend render.Backend
	window  window.Handle
	closed  <-chan struct{}
	close   func() error
}

func openGLTarget(ctx context.Context, o *options) (*target, error) {
	b, err := render.NewGLBackend()
	if err != nil {
		return nil, err
	}
	conn, err := window.Dial("")
	if err != nil {
		return nil, err
	}
	h, err := conn.Create(window.Options{
		X:          windowX,
		Y:          windowY,
		Width:      windowWidth,
		Height:     windowHeight,
		Title:      windowTitle,
		Background: uint32(o.background),
	})
	if err != nil {
		conn.Close()
		return nil, err
	}
	// The window manager may have placed or sized it differently.
	if g, err := conn.Geometry(h); err == nil {
		logger.Infof("window %s at %d,%d %dx%d", h, g.X, g.Y, g.Width, g.Height)
	} else {
		logger.Warnf("%v", err)
	}
	return &target{
		backend: b,
		window:  h,
		closed:  conn.Closed(ctx, h),
		close: func() error {
			err := conn.Destroy(h)
			conn.Close()
			return err
		},
	}, nil
}

func openRasterTarget(o *options) *target {
	b := raster.NewBackend()
	s := raster.NewSurface(windowWidth, windowHeight)
	return &target{
		backend: b,
		window:  b.Attach(s),
		close: func() error {
			if o.snapshot == "" {
				return nil
			}
			f, err := os.Create(o.snapshot)
			if err != nil {
				return errors.Wrap(err, "snapshot")
			}
			defer f.Close()
			if err := png.Encode(f, s.Image()); err != nil {
				return errors.Wrap(err, "snapshot")
			}
			logger.Infof("wrote %s", o.snapshot)
			return nil
		},
	}
}

// play renders frames until ctx is done, the window is closed or the source
// ends.
func play(ctx context.Context, cancel func(), o *options) (render.Stats, error) {
	// GLX contexts are current per thread; keep closing on the thread that
	// rendered.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	frames, err := openSource(o)
	if err != nil {
		return render.Stats{}, err
	}
	defer func() {
		if err := frames.Close(); err != nil {
			logger.Warnf("closing source: %v", err)
		}
	}()

	var t *target
	if o.backend == "raster" {
		t = openRasterTarget(o)
	} else if t, err = openGLTarget(ctx, o); err != nil {
		return render.Stats{}, err
	}
	defer func() {
		if err := t.close(); err != nil {
			logger.Warnf("closing window: %v", err)
		}
	}()
	if t.closed != nil {
		go func() {
			select {
			case <-t.closed:
				logger.Info("window closed")
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	d, err := render.NewDriver(t.backend, render.Config{
		Window:     t.window,
		Mode:       o.mode,
		Background: o.background,
		Width:      o.width,
		Height:     o.height,
		MaxDropped: o.maxDropped,
	})
	if err != nil {
		return render.Stats{}, err
	}
	// The renderer goes before the window.
	defer d.Close()

	err = d.Run(ctx, source.Throttle(o.fps)(frames))
	return d.Stats(), err
}
