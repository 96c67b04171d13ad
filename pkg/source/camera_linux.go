package source

import (
	"context"
	"io"
	"sync"

	"github.com/blackjack/webcam"
	"github.com/pkg/errors"

	"github.com/yuvgl/yuvgl/pkg/frame"
)

func fourcc(a, b, c, d byte) webcam.PixelFormat {
	return webcam.PixelFormat(a) | webcam.PixelFormat(b)<<8 | webcam.PixelFormat(c)<<16 | webcam.PixelFormat(d)<<24
}

// cameraFormats lists the V4L2 pixel formats we can convert, most preferred
// first.
var cameraFormats = []struct {
	pixel webcam.PixelFormat
	frame frame.Format
}{
	{fourcc('Y', 'U', 'Y', 'V'), frame.FormatYUYV},
	{fourcc('N', 'V', '1', '2'), frame.FormatNV12},
	{fourcc('U', 'Y', 'V', 'Y'), frame.FormatUYVY},
	{fourcc('N', 'V', '2', '1'), frame.FormatNV21},
}

// pickFormat returns the most preferred format among supported.
func pickFormat(supported map[webcam.PixelFormat]string) (webcam.PixelFormat, frame.Format, bool) {
	for _, f := range cameraFormats {
		if _, ok := supported[f.pixel]; ok {
			return f.pixel, f.frame, true
		}
	}
	return 0, "", false
}

const (
	maxEmptyFrameCount = 5
	cameraWaitSeconds  = 5
)

var (
	errReadTimeout = errors.New("source: read timeout")
	errEmptyFrame  = errors.New("source: empty frame")
)

// Camera streams packed or semi-planar YUV from a V4L2 device and converts it to I420.
type Camera struct {
	cam    *webcam.Webcam
	path   string
	width  int
	height int
	format frame.Format

	ctx    context.Context
	cancel func()
	mu     sync.Mutex

	raw []byte
	buf []byte
}

// OpenCamera opens the device at path, e.g. /dev/video0, and starts
// streaming width x height in the first of YUYV, NV12, UYVY or NV21 the
// device supports.
func OpenCamera(path string, width, height int) (*Camera, error) {
	cam, err := webcam.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "source: failed to open camera %s", path)
	}
	pf, format, ok := pickFormat(cam.GetSupportedFormats())
	if !ok {
		cam.Close()
		return nil, errors.Errorf("source: camera %s offers no uncompressed YUV format", path)
	}
	_, w, h, err := cam.SetImageFormat(pf, uint32(width), uint32(height))
	if err != nil {
		cam.Close()
		return nil, errors.Wrapf(err, "source: camera %s cannot capture %s", path, format)
	}
	if int(w) != width || int(h) != height {
		cam.Close()
		return nil, errors.Errorf("source: camera %s offers %dx%d instead of %dx%d", path, w, h, width, height)
	}
	if err := cam.StartStreaming(); err != nil {
		cam.Close()
		return nil, errors.Wrapf(err, "source: camera %s failed to stream", path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	logger.Infof("streaming %s at %dx%d %s", path, width, height, format)
	return &Camera{
		cam:    cam,
		path:   path,
		width:  width,
		height: height,
		format: format,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Read waits for the next frame.
func (c *Camera) Read() ([]byte, func(), error) {
	// StopStreaming frees the mmap buffers, so Close waits for us.
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := 0; i < maxEmptyFrameCount; i++ {
		if c.ctx.Err() != nil {
			return nil, nil, io.EOF
		}

		err := c.cam.WaitForFrame(cameraWaitSeconds)
		switch err.(type) {
		case nil:
		case *webcam.Timeout:
			return nil, nil, errReadTimeout
		default:
			return nil, nil, errors.Wrap(err, "source: camera stopped")
		}

		b, err := c.cam.ReadFrame()
		if err != nil {
			return nil, nil, errors.Wrap(err, "source: camera stopped")
		}
		if len(b) == 0 {
			continue
		}

		// Move the frame out of the mmap buffer before it is requeued.
		if len(b) > len(c.raw) {
			c.raw = make([]byte, len(b))
		}
		n := copy(c.raw, b)
		c.buf, err = frame.ToI420(c.buf, c.raw[:n], c.format, c.width, c.height)
		if err != nil {
			return nil, nil, err
		}
		return c.buf, nil, nil
	}
	return nil, nil, errEmptyFrame
}

// Close stops streaming and closes the device.
func (c *Camera) Close() error {
	// A pending Read returns io.EOF at its next loop check.
	c.cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cam == nil {
		return nil
	}

	if err := c.cam.StopStreaming(); err != nil {
		logger.Warnf("%s: stop streaming: %v", c.path, err)
	}
	err := c.cam.Close()
	c.cam = nil
	return err
}
