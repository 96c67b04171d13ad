package source

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/yuvgl/yuvgl/pkg/frame"
)

// File plays a file of concatenated raw I420 frames, starting over at the
// beginning whenever fewer than one full frame is left.
type File struct {
	f    *os.File
	path string
	buf  []byte
}

// OpenFile opens path holding width x height I420 frames.
func OpenFile(path string, width, height int) (*File, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("source: invalid frame size %dx%d", width, height)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "source: failed to open frame file")
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "source: failed to stat frame file")
	}
	size := frame.I420Size(width, height)
	if st.Size() < int64(size) {
		f.Close()
		return nil, errors.Errorf("source: %s holds %d bytes, less than one %dx%d frame", path, st.Size(), width, height)
	}
	logger.Infof("playing %s: %d frames of %dx%d", path, st.Size()/int64(size), width, height)
	return &File{f: f, path: path, buf: make([]byte, size)}, nil
}

// Read returns the next frame. The buffer is reused by the following Read.
func (s *File) Read() ([]byte, func(), error) {
	if s.f == nil {
		return nil, nil, io.EOF
	}
	for attempt := 0; attempt < 2; attempt++ {
		_, err := io.ReadFull(s.f, s.buf)
		switch err {
		case nil:
			return s.buf, nil, nil
		case io.EOF, io.ErrUnexpectedEOF:
			logger.Debugf("%s: end of file, rewinding", s.path)
			if _, err := s.f.Seek(0, io.SeekStart); err != nil {
				return nil, nil, errors.Wrap(err, "source: rewinding frame file")
			}
		default:
			return nil, nil, errors.Wrap(err, "source: reading frame file")
		}
	}
	return nil, nil, errors.Errorf("source: %s is shorter than one frame", s.path)
}

// Close closes the file. Further reads return io.EOF.
func (s *File) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
