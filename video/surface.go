package video

import "fmt"

// Surface owns a raw pixel buffer together with the format needed to
// interpret it. The buffer holds h rows of pitch bytes each; pitch may
// exceed the minimum row width. All drawing operations mutate the buffer
// in place on the calling goroutine and run to completion before
// returning.
type Surface struct {
	format PixelFormat
	w, h   int
	pitch  int
	pixels []byte

	// clipRect bounds fills and destination blits. Always inside the
	// surface extent.
	clipRect Rect

	colorKey    uint32
	hasColorKey bool
}

// CreateSurface allocates a zero-filled surface. Rows are padded up to
// 4-byte alignment.
func CreateSurface(w, h int, format PixelFormat) (*Surface, error) {
	if format == nil {
		return nil, FormatError{Reason: "nil pixel format"}
	}
	if format.IsIndexed() && format.Palette() == nil {
		return nil, FormatError{Reason: "indexed format has no palette"}
	}
	if w < 1 || h < 1 {
		return nil, allocErrorf("invalid surface size %dx%d", w, h)
	}
	pitch := surfacePitch(w, format.BitsPerPixel())
	return &Surface{
		format:   format,
		w:        w,
		h:        h,
		pitch:    pitch,
		pixels:   make([]byte, pitch*h),
		clipRect: Rect{W: w, H: h},
	}, nil
}

// CreateSurfaceFrom builds a surface from caller-supplied pixel rows,
// copying them into an owned buffer. pitch is the source row stride in
// bytes and may differ from the stride the surface ends up with.
func CreateSurfaceFrom(pixels []byte, w, h, pitch int, format PixelFormat) (*Surface, error) {
	if format == nil {
		return nil, FormatError{Reason: "nil pixel format"}
	}
	if w < 1 || h < 1 {
		return nil, allocErrorf("invalid surface size %dx%d", w, h)
	}
	rowBytes := (w*int(format.BitsPerPixel()) + 7) / 8
	if pitch < rowBytes {
		return nil, allocErrorf("pitch %d too small for %d pixels of %d bpp",
			pitch, w, format.BitsPerPixel())
	}
	if len(pixels) < pitch*(h-1)+rowBytes {
		return nil, allocErrorf("pixel buffer holds %d bytes, need %d",
			len(pixels), pitch*(h-1)+rowBytes)
	}
	s, err := CreateSurface(w, h, format)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		copy(s.pixels[y*s.pitch:y*s.pitch+rowBytes], pixels[y*pitch:y*pitch+rowBytes])
	}
	return s, nil
}

// surfacePitch is the 4-byte aligned stride for w pixels at the given
// depth.
func surfacePitch(w int, bpp uint8) int {
	return ((w*int(bpp)+7)/8 + 3) &^ 3
}

func (s *Surface) W() int     { return s.w }
func (s *Surface) H() int     { return s.h }
func (s *Surface) Pitch() int { return s.pitch }

// Format returns the surface's pixel format.
func (s *Surface) Format() PixelFormat { return s.format }

// Pixels returns the live backing buffer, Pitch()*H() bytes of
// pitch-strided rows. Presentation or upload code may copy it out
// directly; writes through it bypass every check this package does.
func (s *Surface) Pixels() []byte { return s.pixels }

// Bounds returns the full surface extent as a rect at the origin.
func (s *Surface) Bounds() Rect { return Rect{W: s.w, H: s.h} }

// SetClipRect bounds which pixels fills and blits into this surface may
// touch. nil restores the full extent. The return value reports whether
// the requested rect intersects the surface at all; when it does not,
// the clip becomes empty and later fills and blits are no-ops.
func (s *Surface) SetClipRect(r *Rect) bool {
	if r == nil {
		s.clipRect = s.Bounds()
		return true
	}
	clip, ok := r.Intersect(s.Bounds())
	s.clipRect = clip
	return ok
}

// ClipRect returns the current clip rectangle.
func (s *Surface) ClipRect() Rect { return s.clipRect }

// SetColorKey marks the raw pixel value key as transparent for blits
// from this surface. Fills and direct pixel writes are unaffected.
func (s *Surface) SetColorKey(key uint32) {
	s.colorKey = key
	s.hasColorKey = true
}

// ClearColorKey removes the color key.
func (s *Surface) ClearColorKey() {
	s.colorKey = 0
	s.hasColorKey = false
}

// ColorKey returns the color key and whether one is set.
func (s *Surface) ColorKey() (uint32, bool) {
	return s.colorKey, s.hasColorKey
}

func (s *Surface) checkBounds(x, y int) {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		panic(fmt.Sprintf("video: pixel (%d,%d) out of bounds for %dx%d surface", x, y, s.w, s.h))
	}
}

// checkValue panics when v does not fit the surface's pixel storage.
// Whole-byte formats are checked against their storage width, so a
// 24-bit format stored in 4 bytes accepts its padding byte.
func (s *Surface) checkValue(v uint32) {
	width := uint(s.format.BitsPerPixel())
	if n := uint(s.format.BytesPerPixel()); n > 0 {
		width = n * 8
	}
	if width < 32 && v >= 1<<width {
		panic(fmt.Sprintf("video: pixel value %#x exceeds %d-bit storage", v, width))
	}
}

// PixelAt returns the raw pixel value at (x, y). Whole-byte formats are
// read least significant byte first; sub-byte formats extract the bit
// field the format's bitmap order puts the pixel in. Coordinates out of
// bounds panic, like a slice index.
func (s *Surface) PixelAt(x, y int) uint32 {
	s.checkBounds(x, y)
	bpp := int(s.format.BitsPerPixel())
	row := y * s.pitch
	if bpp >= 8 {
		n := int(s.format.BytesPerPixel())
		off := row + x*n
		var v uint32
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint32(s.pixels[off+i])
		}
		return v
	}
	b := s.pixels[row+x*bpp/8]
	mask := byte(1)<<bpp - 1
	shift := uint(x*bpp) % 8
	if s.format.Format().msbFirst() {
		shift = 8 - uint(bpp) - shift
	}
	return uint32(b >> shift & mask)
}

// SetPixelAt stores the raw value v at (x, y). Sub-byte writes clear the
// pixel's bit field and OR the new value in, leaving the neighboring
// pixels of the byte intact. An out-of-bounds coordinate or a value that
// does not fit the format panics.
func (s *Surface) SetPixelAt(x, y int, v uint32) {
	s.checkBounds(x, y)
	s.checkValue(v)
	bpp := int(s.format.BitsPerPixel())
	row := y * s.pitch
	if bpp >= 8 {
		n := int(s.format.BytesPerPixel())
		off := row + x*n
		for i := 0; i < n; i++ {
			s.pixels[off+i] = byte(v)
			v >>= 8
		}
		return
	}
	off := row + x*bpp/8
	mask := byte(1)<<bpp - 1
	shift := uint(x*bpp) % 8
	if s.format.Format().msbFirst() {
		shift = 8 - uint(bpp) - shift
	}
	s.pixels[off] = s.pixels[off]&^(mask<<shift) | byte(v)<<shift
}

// At returns the color of the pixel at (x, y), decoded through the
// surface format.
func (s *Surface) At(x, y int) Color {
	return s.colorFrom(s.PixelAt(x, y))
}

// Set writes c at (x, y), encoded through the surface format. On an
// indexed surface this stores the nearest palette index.
func (s *Surface) Set(x, y int, c Color) {
	s.SetPixelAt(x, y, s.mapColor(c))
}

func (s *Surface) colorFrom(v uint32) Color {
	if s.format.HasAlpha() {
		return s.format.GetRGBA(v)
	}
	return s.format.GetRGB(v)
}

func (s *Surface) mapColor(c Color) uint32 {
	if s.format.HasAlpha() {
		return s.format.MapRGBA(c)
	}
	return s.format.MapRGB(c)
}
