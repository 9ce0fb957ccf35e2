package video

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ScaleMode selects the resampling filter of a scaled blit.
type ScaleMode int

const (
	// ScaleNearest picks the closest source pixel.
	ScaleNearest ScaleMode = iota
	// ScaleLinear resamples bilinearly through golang.org/x/image/draw.
	ScaleLinear
)

// Blit copies a region of src into s at dstPoint. The copied region is
// the intersection of srcRect (nil for all of src), the source bounds,
// and this surface's clip rect shifted by dstPoint; an empty intersection
// is a no-op. Formats that differ are converted pixel by pixel through
// the color API, with indexed values resolved via their palette.
// Source pixels equal to the source's color key are skipped.
//
// Blitting a surface onto itself over overlapping regions gives
// unspecified results.
func (s *Surface) Blit(src *Surface, srcRect *Rect, dstPoint Point) error {
	if src == nil {
		return BlitError{Reason: "nil source surface"}
	}
	if err := checkFormats(src, s); err != nil {
		return err
	}
	sr := src.Bounds()
	if srcRect != nil {
		var ok bool
		if sr, ok = srcRect.Intersect(src.Bounds()); !ok {
			return nil
		}
	}
	dr := Rect{X: dstPoint.X, Y: dstPoint.Y, W: sr.W, H: sr.H}
	dc, ok := dr.Intersect(s.clipRect)
	if !ok {
		return nil
	}
	sr.X += dc.X - dr.X
	sr.Y += dc.Y - dr.Y
	sr.W, sr.H = dc.W, dc.H

	if s.sameLayout(src) && !src.hasColorKey && s.format.BitsPerPixel() >= 8 {
		n := int(s.format.BytesPerPixel())
		rowBytes := dc.W * n
		for y := 0; y < dc.H; y++ {
			so := (sr.Y+y)*src.pitch + sr.X*n
			do := (dc.Y+y)*s.pitch + dc.X*n
			copy(s.pixels[do:do+rowBytes], src.pixels[so:so+rowBytes])
		}
		return nil
	}

	raw := s.sameLayout(src)
	for y := 0; y < dc.H; y++ {
		for x := 0; x < dc.W; x++ {
			v := src.PixelAt(sr.X+x, sr.Y+y)
			if src.hasColorKey && v == src.colorKey {
				continue
			}
			if raw {
				s.SetPixelAt(dc.X+x, dc.Y+y, v)
			} else {
				s.Set(dc.X+x, dc.Y+y, src.colorFrom(v))
			}
		}
	}
	return nil
}

// BlitScaled resamples a region of src to exactly fill dstRect, nearest
// neighbor. Zero-area source or destination rects are a no-op.
func (s *Surface) BlitScaled(src *Surface, srcRect *Rect, dstRect Rect) error {
	return s.BlitScaledMode(src, srcRect, dstRect, ScaleNearest)
}

// BlitScaledMode is BlitScaled with an explicit filter. Linear mode does
// not honor the source color key; mixing filtered samples with a keyed-out
// value has no meaningful result.
func (s *Surface) BlitScaledMode(src *Surface, srcRect *Rect, dstRect Rect, mode ScaleMode) error {
	if src == nil {
		return BlitError{Reason: "nil source surface"}
	}
	if err := checkFormats(src, s); err != nil {
		return err
	}
	sr := src.Bounds()
	if srcRect != nil {
		var ok bool
		if sr, ok = srcRect.Intersect(src.Bounds()); !ok {
			return nil
		}
	}
	if sr.Empty() || dstRect.Empty() {
		return nil
	}

	if mode == ScaleLinear {
		xdraw.BiLinear.Scale(s.Image(),
			image.Rect(dstRect.X, dstRect.Y, dstRect.X+dstRect.W, dstRect.Y+dstRect.H),
			src.Image(),
			image.Rect(sr.X, sr.Y, sr.X+sr.W, sr.Y+sr.H),
			xdraw.Src, nil)
		return nil
	}

	dc, ok := dstRect.Intersect(s.clipRect)
	if !ok {
		return nil
	}
	for y := 0; y < dc.H; y++ {
		sy := sr.Y + (dc.Y+y-dstRect.Y)*sr.H/dstRect.H
		for x := 0; x < dc.W; x++ {
			sx := sr.X + (dc.X+x-dstRect.X)*sr.W/dstRect.W
			v := src.PixelAt(sx, sy)
			if src.hasColorKey && v == src.colorKey {
				continue
			}
			s.Set(dc.X+x, dc.Y+y, src.colorFrom(v))
		}
	}
	return nil
}

// sameLayout reports whether the two surfaces store bit-identical pixel
// values, which allows blitting raw values without color conversion.
// Indexed surfaces only qualify when they share the same palette.
func (s *Surface) sameLayout(o *Surface) bool {
	if s.format.Format() != o.format.Format() {
		return false
	}
	if s.format.IsIndexed() {
		return s.format.Palette() == o.format.Palette()
	}
	return true
}

// checkFormats rejects surfaces whose indexed format lost its palette,
// the one state where no color-level fallback exists. The constructors
// do not produce it; a zero-value IndexedFormat does.
func checkFormats(src, dst *Surface) error {
	if src.format.IsIndexed() && src.format.Palette() == nil {
		return BlitError{Reason: "source indexed format has no palette"}
	}
	if dst.format.IsIndexed() && dst.format.Palette() == nil {
		return BlitError{Reason: "destination indexed format has no palette"}
	}
	return nil
}
