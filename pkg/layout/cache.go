package layout

// Key holds every input of Compute.
type Key struct {
	WindowW, WindowH int
	VideoW, VideoH   int
	Mode             Mode
}

// Cache remembers the last Key and its Rect so callers only touch GPU
// viewport state when the geometry actually changed. The zero value is ready
// to use. A Cache is not safe for concurrent use.
type Cache struct {
	key   Key
	rect  Rect
	valid bool
}

// Update returns the Rect for k. changed is false when k equals the key of
// the previous call, in which case the previous Rect is returned untouched.
func (c *Cache) Update(k Key) (r Rect, changed bool) {
	if c.valid && c.key == k {
		return c.rect, false
	}
	c.key = k
	c.rect = Compute(k.WindowW, k.WindowH, k.VideoW, k.VideoH, k.Mode)
	c.valid = true
	return c.rect, true
}
