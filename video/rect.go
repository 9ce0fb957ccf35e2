package video

// Point is a 2D position in pixels.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle. A rect with non-positive width or
// height covers no pixels.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// HasIntersection reports whether r and other share at least one pixel.
func (r Rect) HasIntersection(other Rect) bool {
	_, ok := r.Intersect(other)
	return ok
}

// Intersect returns the overlap of r and other. ok is false when they do
// not overlap; the returned rect is zero in that case.
func (r Rect) Intersect(other Rect) (out Rect, ok bool) {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X+r.W, other.X+other.W)
	y2 := min(r.Y+r.H, other.Y+other.H)
	out = Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
	if out.Empty() {
		return Rect{}, false
	}
	return out, true
}
