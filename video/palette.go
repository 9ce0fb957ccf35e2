package video

// Freshly allocated palette entries default to opaque white, matching the
// placeholder SDL uses.
var placeholderColor = Color{R: 255, G: 255, B: 255, A: 255}

// Palette is an ordered, fixed-length list of colors addressed by pixel
// index. A single Palette may be shared by any number of indexed pixel
// formats; an edit is immediately visible through every surface holding a
// reference, which is what makes palette-cycling effects work. The *Palette
// pointer itself is the sharing handle.
//
// A Palette never resizes; build a new one to change the length.
type Palette struct {
	colors  []Color
	version uint32
}

// NewPalette allocates a palette of n placeholder entries.
func NewPalette(n int) (*Palette, error) {
	if n < 1 {
		return nil, allocErrorf("palette length %d, need at least 1", n)
	}
	p := &Palette{colors: make([]Color, n), version: 1}
	for i := range p.colors {
		p.colors[i] = placeholderColor
	}
	return p, nil
}

// NewPaletteFromColors builds a palette holding a copy of colors.
func NewPaletteFromColors(colors []Color) (*Palette, error) {
	if len(colors) < 1 {
		return nil, allocErrorf("palette length %d, need at least 1", len(colors))
	}
	p := &Palette{colors: make([]Color, len(colors)), version: 1}
	copy(p.colors, colors)
	return p, nil
}

// Len returns the number of entries.
func (p *Palette) Len() int { return len(p.colors) }

// At returns entry i. An index outside [0, Len) panics, like a slice index.
func (p *Palette) At(i int) Color {
	return p.colors[i]
}

// SetColor overwrites entry i. An index outside [0, Len) panics.
func (p *Palette) SetColor(i int, c Color) {
	p.colors[i] = c
	p.version++
}

// SetColors overwrites the entries [first, first+len(colors)).
func (p *Palette) SetColors(colors []Color, first int) error {
	if first < 0 || first+len(colors) > len(p.colors) {
		return allocErrorf("%d colors at offset %d do not fit a %d-entry palette",
			len(colors), first, len(p.colors))
	}
	copy(p.colors[first:], colors)
	p.version++
	return nil
}

// Version is a counter bumped on every mutation. Presenters and blit
// caches can poll it to notice palette cycling without comparing entries.
func (p *Palette) Version() uint32 { return p.version }

// findColor returns the index of the entry closest to c by squared
// distance over R, G and B. Ties go to the lowest index. Alpha does not
// take part in the metric.
func (p *Palette) findColor(c Color) uint32 {
	best := 0
	bestDist := int(^uint(0) >> 1)
	for i, pc := range p.colors {
		dr := int(pc.R) - int(c.R)
		dg := int(pc.G) - int(c.G)
		db := int(pc.B) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint32(best)
}
