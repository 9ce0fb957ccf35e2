package video

// Fill writes the raw pixel value v over every pixel inside the clip
// rect.
func (s *Surface) Fill(v uint32) {
	s.FillRect(s.Bounds(), v)
}

// FillRect writes v over every pixel of r, clamped to the clip rect. An
// empty intersection is a no-op. A value that does not fit the format
// panics, same as SetPixelAt.
func (s *Surface) FillRect(r Rect, v uint32) {
	s.checkValue(v)
	target, ok := r.Intersect(s.clipRect)
	if !ok {
		return
	}
	bpp := int(s.format.BitsPerPixel())
	if bpp < 8 {
		for y := target.Y; y < target.Y+target.H; y++ {
			for x := target.X; x < target.X+target.W; x++ {
				s.SetPixelAt(x, y, v)
			}
		}
		return
	}
	// Write the first row pixel by pixel, then replicate it downwards.
	n := int(s.format.BytesPerPixel())
	first := target.Y*s.pitch + target.X*n
	row := s.pixels[first : first+target.W*n]
	off := 0
	for x := 0; x < target.W; x++ {
		val := v
		for i := 0; i < n; i++ {
			row[off+i] = byte(val)
			val >>= 8
		}
		off += n
	}
	for y := 1; y < target.H; y++ {
		dst := first + y*s.pitch
		copy(s.pixels[dst:dst+target.W*n], row)
	}
}

// FillRects fills each rect in order with v; overlapping rects simply
// overwrite.
func (s *Surface) FillRects(rects []Rect, v uint32) {
	for _, r := range rects {
		s.FillRect(r, v)
	}
}

// FillColor maps c through the surface format and fills the whole clip
// rect with it.
func (s *Surface) FillColor(c Color) {
	s.Fill(s.mapColor(c))
}

// FillRectColor maps c through the surface format and fills r with it.
func (s *Surface) FillRectColor(r Rect, c Color) {
	s.FillRect(r, s.mapColor(c))
}
