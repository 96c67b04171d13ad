package source

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/yuvgl/yuvgl/pkg/frame"
)

// Pattern returns an endless Reader of colour bars above a grey ramp and a
// flickering noise block.
func Pattern(width, height int) (Reader, error) {
	if width < 2 || height < 2 || width%2 != 0 || height%2 != 0 {
		return nil, errors.Errorf("source: frame size %dx%d must be even and at least 2x2", width, height)
	}

	colors := [][3]byte{
		{235, 128, 128},
		{210, 16, 146},
		{170, 166, 16},
		{145, 54, 34},
		{107, 202, 222},
		{82, 90, 240},
		{41, 240, 110},
	}

	base := make([]byte, frame.I420Size(width, height))
	p, _ := frame.SplitI420(base, width, height)
	cw := p.ChromaWidth()

	barsEnd := height * 3 / 4
	rampEnd := width * 5 / 7
	for y := 0; y < height; y++ {
		yi := width * y
		ci := cw * (y / 2)
		for x := 0; x < width; x++ {
			u, v := byte(128), byte(128)
			switch {
			case y < barsEnd:
				c := colors[x*7/width]
				p.Y[yi+x] = uint8(uint16(c[0]) * 75 / 100)
				u, v = c[1], c[2]
			case x < rampEnd:
				p.Y[yi+x] = uint8(x * 255 / rampEnd)
			}
			p.U[ci+x/2] = u
			p.V[ci+x/2] = v
		}
	}

	random := rand.New(rand.NewSource(0))
	buf := make([]byte, len(base))
	return ReaderFunc(func() ([]byte, func(), error) {
		copy(buf, base)
		for y := barsEnd; y < height; y++ {
			yi := width * y
			for x := rampEnd; x < width; x++ {
				buf[yi+x] = uint8(random.Int31n(2) * 255)
			}
		}
		return buf, nil, nil
	}), nil
}
