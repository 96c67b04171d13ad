package window

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleString(t *testing.T) {
	assert.Equal(t, "0x2a00001", Handle(0x2a00001).String())
	assert.Equal(t, "0x0", None.String())
}

func dial(t *testing.T) *Conn {
	t.Helper()
	c, err := Dial("")
	if err != nil {
		t.Skip("no X display available: ", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestCreateGeometryDestroy(t *testing.T) {
	c := dial(t)

	h, err := c.Create(Options{X: 10, Y: 10, Width: 320, Height: 240, Title: "yuvgl test"})
	require.NoError(t, err)
	require.NotEqual(t, None, h)

	g, err := c.Geometry(h)
	require.NoError(t, err)
	assert.Positive(t, g.Width)
	assert.Positive(t, g.Height)

	closed := c.Closed(context.Background(), h)
	require.NoError(t, c.Destroy(h))

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("DestroyNotify was not observed")
	}

	_, err = c.Geometry(h)
	assert.Error(t, err, "destroyed window must fail the geometry query")
}

func TestCloseIdempotent(t *testing.T) {
	c := dial(t)
	c.Close()
	c.Close()
}
