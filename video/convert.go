package video

import "github.com/pkg/errors"

// Convert produces a new surface of the same dimensions holding this
// surface's pixels re-encoded in format. The copy always goes through
// the color API: raw indices of an indexed source are resolved, never
// carried over. The receiver is left untouched, also on failure.
//
// A set color key is re-mapped into the new format and set on the
// result.
func (s *Surface) Convert(format PixelFormat) (*Surface, error) {
	if format == nil {
		return nil, FormatError{Reason: "nil pixel format"}
	}
	if format.IsIndexed() && format.Palette() == nil {
		return nil, FormatError{Reason: "indexed target format has no palette"}
	}
	out, err := CreateSurface(s.w, s.h, format)
	if err != nil {
		return nil, errors.Wrap(err, "allocating conversion target")
	}
	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			out.Set(x, y, s.At(x, y))
		}
	}
	if s.hasColorKey {
		out.SetColorKey(out.mapColor(s.colorFrom(s.colorKey)))
	}
	return out, nil
}

// Duplicate returns a deep copy of the surface. The pixel format, and
// with it any palette, is shared with the original.
func (s *Surface) Duplicate() *Surface {
	return &Surface{
		format:      s.format,
		w:           s.w,
		h:           s.h,
		pitch:       s.pitch,
		pixels:      append([]byte(nil), s.pixels...),
		clipRect:    s.clipRect,
		colorKey:    s.colorKey,
		hasColorKey: s.hasColorKey,
	}
}
