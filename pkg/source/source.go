// Package source produces raw I420 frames for a render.Driver. Every Reader
// returns frames of one fixed size agreed with the consumer out of band.
package source

import (
	"github.com/yuvgl/yuvgl/internal/logging"
)

var logger = logging.NewLogger("yuvgl/source")

// Reader pulls the next frame. The returned buffer is only valid until
// release is called; release may be nil. io.EOF ends the stream.
type Reader interface {
	Read() (buf []byte, release func(), err error)
}

// ReadCloser is a Reader holding resources that must be released.
type ReadCloser interface {
	Reader
	Close() error
}

type nopCloser struct {
	Reader
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a ReadCloser with a no-op Close wrapping r.
func NopCloser(r Reader) ReadCloser {
	return nopCloser{r}
}

// ReaderFunc adapts a function to Reader.
type ReaderFunc func() (buf []byte, release func(), err error)

func (rf ReaderFunc) Read() (buf []byte, release func(), err error) {
	buf, release, err = rf()
	return
}

// TransformFunc produces a new Reader that transforms the frames of r.
type TransformFunc func(r Reader) Reader

// Merge merges transforms and produces a new TransformFunc that will execute
// transforms in order.
func Merge(transforms ...TransformFunc) TransformFunc {
	return func(r Reader) Reader {
		for _, transform := range transforms {
			if transform == nil {
				continue
			}

			r = transform(r)
		}

		return r
	}
}
