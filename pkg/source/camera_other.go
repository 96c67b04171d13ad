//go:build !linux

package source

import (
	"github.com/pkg/errors"
)

// Camera is only available on linux.
type Camera struct{}

// OpenCamera always fails outside linux.
func OpenCamera(path string, width, height int) (*Camera, error) {
	return nil, errors.New("source: camera capture requires linux")
}

func (c *Camera) Read() ([]byte, func(), error) {
	return nil, nil, errors.New("source: camera capture requires linux")
}

func (c *Camera) Close() error {
	return nil
}
