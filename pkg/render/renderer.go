package render

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/yuvgl/yuvgl/internal/logging"
	"github.com/yuvgl/yuvgl/pkg/colorspace"
	"github.com/yuvgl/yuvgl/pkg/frame"
	"github.com/yuvgl/yuvgl/pkg/layout"
	"github.com/yuvgl/yuvgl/pkg/window"
)

var logger = logging.NewLogger("yuvgl/render")

// Renderer draws frames into one window. Once it becomes StateInvalid it is
// never repaired; build a new one instead. A Renderer must be used from a
// single locked OS thread.
type Renderer struct {
	id     string
	window window.Handle
	ctx    Context
	pipe   Pipeline
	state  State

	// windowGone is set the first time the window geometry query fails.
	// After that RenderFrame returns false without touching the window.
	windowGone bool

	layout layout.Cache
}

// NewRenderer opens a context on w and builds the pipeline in it. When
// either step fails the partially created resources are released and the
// error is returned.
func NewRenderer(b Backend, w window.Handle) (*Renderer, error) {
	r := &Renderer{
		id:     uuid.New().String(),
		window: w,
		state:  StateUninitialized,
	}

	ctx, err := b.OpenContext(w)
	if err != nil {
		return nil, errors.Wrapf(err, "render: failed to open context on window %s", w)
	}
	pipe, err := b.BuildPipeline(ctx)
	if err != nil {
		if cerr := ctx.Close(); cerr != nil {
			logger.Warnf("renderer %s: closing context after failed build: %v", r.id, cerr)
		}
		return nil, errors.Wrapf(err, "render: failed to build pipeline on window %s", w)
	}

	r.ctx, r.pipe = ctx, pipe
	r.setState(StateReady)
	logger.Infof("renderer %s ready on window %s", r.id, w)
	return r, nil
}

// ID identifies the instance in logs.
func (r *Renderer) ID() string {
	return r.id
}

// State returns the current lifecycle state.
func (r *Renderer) State() State {
	return r.state
}

// Invalid reports whether a failed geometry query has permanently disabled
// RenderFrame. It is independent of State.
func (r *Renderer) Invalid() bool {
	return r.windowGone
}

func (r *Renderer) setState(next State) {
	if r.state == next {
		return
	}
	if !r.state.next(next) {
		logger.Errorf("renderer %s: invalid transition %s -> %s", r.id, r.state, next)
		return
	}
	logger.Debugf("renderer %s: %s -> %s", r.id, r.state, next)
	r.state = next
}

// CanRender reports whether the renderer can still draw into w and, if so,
// leaves its context current on the calling thread. A failed bind makes the
// renderer invalid for good.
func (r *Renderer) CanRender(w window.Handle) bool {
	if r.state != StateReady || w != r.window {
		return false
	}
	if !r.ctx.IsBindable(w) {
		logger.Warnf("renderer %s: window %s no longer accepts the context", r.id, w)
		r.setState(StateInvalid)
		return false
	}
	return true
}

// RenderFrame draws one I420 frame of videoW x videoH held in buf. It
// returns false, doing nothing, when the renderer is not ready for w or its
// window is known to be gone. A failed geometry query marks the window gone.
// The viewport is only updated when the window size, video size or mode
// changed since the previous frame.
func (r *Renderer) RenderFrame(buf []byte, w window.Handle, videoW, videoH int, mode layout.Mode, bg colorspace.Color) bool {
	if r.state != StateReady || w != r.window || r.windowGone {
		return false
	}

	ww, wh, err := r.ctx.Geometry(w)
	if err != nil || ww == 0 || wh == 0 {
		logger.Warnf("renderer %s: window %s geometry unavailable, giving up on it: %v", r.id, w, err)
		r.windowGone = true
		return false
	}

	planes, err := frame.SplitI420(buf, videoW, videoH)
	if err != nil {
		logger.Errorf("renderer %s: %v", r.id, err)
		return false
	}

	rect, changed := r.layout.Update(layout.Key{
		WindowW: ww,
		WindowH: wh,
		VideoW:  videoW,
		VideoH:  videoH,
		Mode:    mode,
	})
	if changed {
		logger.Debugf("renderer %s: viewport %s for window %dx%d, %s", r.id, rect, ww, wh, mode)
		r.pipe.SetViewport(rect)
	}

	r.pipe.UploadAndDraw(planes, bg)
	return true
}

// Close releases the pipeline, then the context and its display connection.
// The pipeline is only released when the context can still be made current;
// otherwise its objects go away with the context. Close is idempotent and
// leaves the renderer in StateInvalid.
func (r *Renderer) Close() error {
	if r.pipe != nil {
		if r.ctx.IsBindable(r.window) {
			r.pipe.Release()
		} else {
			logger.Debugf("renderer %s: context not bindable, skipping pipeline release", r.id)
		}
		r.pipe = nil
	}

	var err error
	if r.ctx != nil {
		err = r.ctx.Close()
		r.ctx = nil
		logger.Infof("renderer %s closed", r.id)
	}
	r.setState(StateInvalid)
	return err
}
