package video

// Color is an 8-bit-per-channel RGBA value. Channels are not
// premultiplied by alpha.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements color.Color with the same conversion as color.NRGBA.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	r *= uint32(c.A)
	r /= 0xff
	g = uint32(c.G)
	g |= g << 8
	g *= uint32(c.A)
	g /= 0xff
	b = uint32(c.B)
	b |= b << 8
	b *= uint32(c.A)
	b /= 0xff
	a = uint32(c.A)
	a |= a << 8
	return
}
