package render

import (
	"context"
	"io"
	"runtime"

	"github.com/pkg/errors"

	"github.com/yuvgl/yuvgl/pkg/frame"
	"github.com/yuvgl/yuvgl/pkg/source"
)

// ErrTooManyDropped is returned by Run once Config.MaxDropped consecutive
// frames could not be rendered.
var ErrTooManyDropped = errors.New("render: too many consecutive dropped frames")

// Stats counts what a Driver did with the frames it was given.
type Stats struct {
	Rendered uint64
	Dropped  uint64
	// Rebuilds counts renderers successfully created after the first one.
	// Failed attempts are not counted.
	Rebuilds uint64
}

// Driver keeps a Renderer alive for one window, replacing it whenever the
// window stops accepting it. A Driver is not safe for concurrent use and
// must stay on one OS thread; Run takes care of that.
type Driver struct {
	backend Backend
	cfg     Config

	renderer *Renderer
	built    bool
	stats    Stats
}

// NewDriver validates cfg. No renderer is built until the first frame.
func NewDriver(b Backend, cfg Config) (*Driver, error) {
	if b == nil {
		return nil, errors.New("render: nil backend")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Driver{backend: b, cfg: cfg}, nil
}

// Stats returns the counters so far.
func (d *Driver) Stats() Stats {
	return d.stats
}

// rebuild replaces the current renderer. The old one is closed before the
// new one is opened.
func (d *Driver) rebuild() {
	if d.renderer != nil {
		if err := d.renderer.Close(); err != nil {
			logger.Warnf("closing renderer %s: %v", d.renderer.ID(), err)
		}
		d.renderer = nil
	}
	r, err := NewRenderer(d.backend, d.cfg.Window)
	if err != nil {
		logger.Errorf("%v", err)
		return
	}
	if d.built {
		d.stats.Rebuilds++
	}
	d.built = true
	d.renderer = r
}

// Render draws one frame synchronously and reports whether it reached the
// window. When the current renderer cannot draw, it is replaced and the
// frame is tried once more; a second failure drops the frame.
func (d *Driver) Render(buf []byte) bool {
	if need := frame.I420Size(d.cfg.Width, d.cfg.Height); len(buf) < need {
		logger.Errorf("dropping frame of %d bytes, want %d", len(buf), need)
		d.stats.Dropped++
		return false
	}

	if d.renderer != nil && d.draw(buf) {
		d.stats.Rendered++
		return true
	}

	d.rebuild()
	if d.renderer != nil && d.draw(buf) {
		d.stats.Rendered++
		return true
	}
	d.stats.Dropped++
	return false
}

func (d *Driver) draw(buf []byte) bool {
	if !d.renderer.CanRender(d.cfg.Window) {
		return false
	}
	return d.renderer.RenderFrame(buf, d.cfg.Window, d.cfg.Width, d.cfg.Height, d.cfg.Mode, d.cfg.Background)
}

// Run reads frames from r and renders them in order until ctx is done, r
// returns io.EOF, r fails, or too many frames in a row were dropped. The
// calling goroutine is locked to its OS thread for the duration.
func (d *Driver) Run(ctx context.Context, r source.Reader) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	dropped := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		buf, release, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "render: reading frame")
		}

		ok := d.Render(buf)
		if release != nil {
			release()
		}

		if ok {
			dropped = 0
			continue
		}
		dropped++
		if d.cfg.MaxDropped > 0 && dropped >= d.cfg.MaxDropped {
			return ErrTooManyDropped
		}
	}
}

// Close releases the current renderer, if any.
func (d *Driver) Close() error {
	if d.renderer == nil {
		return nil
	}
	err := d.renderer.Close()
	d.renderer = nil
	return err
}
