package frame

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestI420Size(t *testing.T) {
	const (
		width  = 1280
		height = 720
	)
	buf := make([]byte, I420Size(width, height))
	assert.Equal(t, 1382400, len(buf))
	assert.GreaterOrEqual(t, len(buf), width*height*3/2)

	p, err := SplitI420(buf, width, height)
	require.NoError(t, err)
	assert.Equal(t, 921600, len(p.Y))
	assert.Equal(t, 230400, len(p.U))
	assert.Equal(t, 230400, len(p.V))
	assert.Equal(t, 640, p.ChromaWidth())
	assert.Equal(t, 360, p.ChromaHeight())
}

func TestSplitI420(t *testing.T) {
	const (
		width  = 4
		height = 2
	)
	input := []byte{
		// Y
		0x01, 0x02, 0x03, 0x04,
		0x05, 0x06, 0x07, 0x08,
		// U
		0x81, 0x82,
		// V
		0x91, 0x92,
		// trailing bytes are ignored
		0xFF,
	}

	p, err := SplitI420(input, width, height)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, p.Y)
	assert.Equal(t, []byte{0x81, 0x82}, p.U)
	assert.Equal(t, []byte{0x91, 0x92}, p.V)

	// Planes alias the input.
	input[0] = 0x10
	assert.Equal(t, byte(0x10), p.Y[0])
}

func TestSplitI420Short(t *testing.T) {
	_, err := SplitI420(make([]byte, 10), 4, 4)
	if !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}
	assert.Equal(t, ErrShortBuffer, pkgerrors.Cause(err))
	assert.Contains(t, err.Error(), "length (10) less than expected (24)")

	_, err = SplitI420(nil, 0, 4)
	assert.Error(t, err)
}

func TestSize(t *testing.T) {
	cases := map[string]struct {
		format Format
		size   int
	}{
		"I420": {FormatI420, 24},
		"NV12": {FormatNV12, 24},
		"NV21": {FormatNV21, 24},
		"YUY2": {FormatYUY2, 32},
		"UYVY": {FormatUYVY, 32},
		"RGBA": {FormatRGBA, 64},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			n, err := Size(c.format, 4, 4)
			require.NoError(t, err)
			assert.Equal(t, c.size, n)
		})
	}

	_, err := Size("MJPEG", 4, 4)
	assert.Error(t, err)
}
