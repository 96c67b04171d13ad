package source

import (
	"time"
)

// Throttle returns a transform that paces reads to fps frames per second.
// Unlike dropping frames, it waits, so file sources play at their nominal
// rate. A non-positive fps disables pacing.
func Throttle(fps float64) TransformFunc {
	return func(r Reader) Reader {
		if fps <= 0 {
			return r
		}
		interval := time.Duration(float64(time.Second) / fps)
		var next time.Time
		return ReaderFunc(func() ([]byte, func(), error) {
			if !next.IsZero() {
				if d := time.Until(next); d > 0 {
					time.Sleep(d)
				}
			}
			buf, release, err := r.Read()
			now := time.Now()
			if next.IsZero() || now.Sub(next) > interval {
				// Fell behind by more than one frame; don't try to catch up.
				next = now
			}
			next = next.Add(interval)
			return buf, release, err
		})
	}
}
