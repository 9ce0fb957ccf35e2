package video

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Format identifies one pixel encoding. The value packs the pixel type,
// component order, packed layout, bits per pixel and bytes per pixel into
// separate fields, so an identifier can be inspected without a lookup
// table and masks can be derived from it as a pure function.
//
// Layout: bit 28 marker, bits 24-27 pixel type, 20-23 component order,
// 16-19 packed layout, 8-15 bits per pixel, 0-7 bytes per pixel.
type Format uint32

const (
	pixelTypeUnknown = iota
	pixelTypeIndex1
	pixelTypeIndex4
	pixelTypeIndex8
	pixelTypePacked8
	pixelTypePacked16
	pixelTypePacked32
	pixelTypeArrayU8
)

// Bitmap pixel order within a byte, for the sub-byte indexed types.
const (
	bitmapOrderNone = iota
	bitmapOrder4321 // least significant bits hold the leftmost pixel
	bitmapOrder1234 // most significant bits hold the leftmost pixel
)

// Packed component order, most significant field first.
const (
	packedOrderNone = iota
	packedOrderXRGB
	packedOrderRGBX
	packedOrderARGB
	packedOrderRGBA
	packedOrderXBGR
	packedOrderBGRX
	packedOrderABGR
	packedOrderBGRA
)

// Array component order, low byte first.
const (
	arrayOrderNone = iota
	arrayOrderRGB
	arrayOrderBGR
)

// Packed component layout.
const (
	packedLayoutNone = iota
	packedLayout332
	packedLayout4444
	packedLayout1555
	packedLayout5551
	packedLayout565
	packedLayout8888
)

const FormatUnknown Format = 0

const (
	FormatIndex1LSB Format = 1<<28 | pixelTypeIndex1<<24 | bitmapOrder4321<<20 | 1<<8
	FormatIndex1MSB Format = 1<<28 | pixelTypeIndex1<<24 | bitmapOrder1234<<20 | 1<<8
	FormatIndex4LSB Format = 1<<28 | pixelTypeIndex4<<24 | bitmapOrder4321<<20 | 4<<8
	FormatIndex4MSB Format = 1<<28 | pixelTypeIndex4<<24 | bitmapOrder1234<<20 | 4<<8
	FormatIndex8    Format = 1<<28 | pixelTypeIndex8<<24 | 8<<8 | 1

	FormatRGB332   Format = 1<<28 | pixelTypePacked8<<24 | packedOrderXRGB<<20 | packedLayout332<<16 | 8<<8 | 1
	FormatRGB565   Format = 1<<28 | pixelTypePacked16<<24 | packedOrderXRGB<<20 | packedLayout565<<16 | 16<<8 | 2
	FormatARGB1555 Format = 1<<28 | pixelTypePacked16<<24 | packedOrderARGB<<20 | packedLayout1555<<16 | 16<<8 | 2
	FormatRGBA5551 Format = 1<<28 | pixelTypePacked16<<24 | packedOrderRGBA<<20 | packedLayout5551<<16 | 16<<8 | 2
	FormatARGB4444 Format = 1<<28 | pixelTypePacked16<<24 | packedOrderARGB<<20 | packedLayout4444<<16 | 16<<8 | 2

	FormatRGB24 Format = 1<<28 | pixelTypeArrayU8<<24 | arrayOrderRGB<<20 | 24<<8 | 3
	FormatBGR24 Format = 1<<28 | pixelTypeArrayU8<<24 | arrayOrderBGR<<20 | 24<<8 | 3

	FormatRGB888   Format = 1<<28 | pixelTypePacked32<<24 | packedOrderXRGB<<20 | packedLayout8888<<16 | 24<<8 | 4
	FormatRGBX8888 Format = 1<<28 | pixelTypePacked32<<24 | packedOrderRGBX<<20 | packedLayout8888<<16 | 24<<8 | 4
	FormatBGR888   Format = 1<<28 | pixelTypePacked32<<24 | packedOrderXBGR<<20 | packedLayout8888<<16 | 24<<8 | 4
	FormatARGB8888 Format = 1<<28 | pixelTypePacked32<<24 | packedOrderARGB<<20 | packedLayout8888<<16 | 32<<8 | 4
	FormatRGBA8888 Format = 1<<28 | pixelTypePacked32<<24 | packedOrderRGBA<<20 | packedLayout8888<<16 | 32<<8 | 4
	FormatABGR8888 Format = 1<<28 | pixelTypePacked32<<24 | packedOrderABGR<<20 | packedLayout8888<<16 | 32<<8 | 4
	FormatBGRA8888 Format = 1<<28 | pixelTypePacked32<<24 | packedOrderBGRA<<20 | packedLayout8888<<16 | 32<<8 | 4
)

func (f Format) pixelType() uint32 { return uint32(f >> 24 & 0xF) }
func (f Format) order() uint32     { return uint32(f >> 20 & 0xF) }
func (f Format) layout() uint32    { return uint32(f >> 16 & 0xF) }

// msbFirst reports whether the leftmost pixel of a sub-byte indexed
// format sits in the most significant bits of its byte.
func (f Format) msbFirst() bool { return f.order() == bitmapOrder1234 }

// BitsPerPixel returns the depth encoded in the identifier.
func (f Format) BitsPerPixel() uint8 { return uint8(f >> 8) }

// BytesPerPixel returns the per-pixel storage width in bytes. The
// sub-byte indexed formats report 0; those are addressed at the bit level.
func (f Format) BytesPerPixel() uint8 { return uint8(f) }

// IsIndexed reports whether pixel values are palette indices.
func (f Format) IsIndexed() bool {
	switch f.pixelType() {
	case pixelTypeIndex1, pixelTypeIndex4, pixelTypeIndex8:
		return true
	}
	return false
}

// HasAlpha reports whether the encoding carries an alpha channel.
func (f Format) HasAlpha() bool {
	switch f.pixelType() {
	case pixelTypePacked8, pixelTypePacked16, pixelTypePacked32:
		switch f.order() {
		case packedOrderARGB, packedOrderRGBA, packedOrderABGR, packedOrderBGRA:
			return true
		}
	}
	return false
}

// packedOrderString names the four fields of a packed order, most
// significant first. 'X' marks padding bits.
func packedOrderString(order uint32) string {
	switch order {
	case packedOrderXRGB:
		return "XRGB"
	case packedOrderRGBX:
		return "RGBX"
	case packedOrderARGB:
		return "ARGB"
	case packedOrderRGBA:
		return "RGBA"
	case packedOrderXBGR:
		return "XBGR"
	case packedOrderBGRX:
		return "BGRX"
	case packedOrderABGR:
		return "ABGR"
	case packedOrderBGRA:
		return "BGRA"
	}
	return ""
}

// packedLayoutSizes gives the bit width of each field, most significant
// first, lining up with the letters of the packed order string.
func packedLayoutSizes(layout uint32) ([4]uint8, bool) {
	switch layout {
	case packedLayout332:
		return [4]uint8{0, 3, 3, 2}, true
	case packedLayout4444:
		return [4]uint8{4, 4, 4, 4}, true
	case packedLayout1555:
		return [4]uint8{1, 5, 5, 5}, true
	case packedLayout5551:
		return [4]uint8{5, 5, 5, 1}, true
	case packedLayout565:
		return [4]uint8{0, 5, 6, 5}, true
	case packedLayout8888:
		return [4]uint8{8, 8, 8, 8}, true
	}
	return [4]uint8{}, false
}

// Masks expands the identifier into its channel bit masks, as seen by a
// little-endian read of BytesPerPixel bytes. Masks round-trips with
// MasksToFormat.
func (f Format) Masks() (bpp uint8, rMask, gMask, bMask, aMask uint32, err error) {
	bpp = f.BitsPerPixel()
	switch f.pixelType() {
	case pixelTypeArrayU8:
		// Byte arrays have no inherent packing; the masks follow from
		// reading the three bytes least significant first.
		switch f.order() {
		case arrayOrderRGB:
			return bpp, 0x0000FF, 0x00FF00, 0xFF0000, 0, nil
		case arrayOrderBGR:
			return bpp, 0xFF0000, 0x00FF00, 0x0000FF, 0, nil
		}
	case pixelTypePacked8, pixelTypePacked16, pixelTypePacked32:
		sizes, ok := packedLayoutSizes(f.layout())
		order := packedOrderString(f.order())
		if !ok || order == "" {
			break
		}
		total := uint32(0)
		for _, n := range sizes {
			total += uint32(n)
		}
		shift := total
		for i := 0; i < 4; i++ {
			shift -= uint32(sizes[i])
			mask := (uint32(1)<<sizes[i] - 1) << shift
			switch order[i] {
			case 'R':
				rMask = mask
			case 'G':
				gMask = mask
			case 'B':
				bMask = mask
			case 'A':
				aMask = mask
			}
		}
		return bpp, rMask, gMask, bMask, aMask, nil
	}
	return 0, 0, 0, 0, 0, formatErrorf("format %#08x has no channel masks", uint32(f))
}

// The named packed formats, in the order MasksToFormat canonicalizes
// colliding mask sets (RGB24 before BGR888, which read identically on a
// little-endian walk).
var packedFormats = []Format{
	FormatRGB332,
	FormatRGB565,
	FormatARGB1555,
	FormatRGBA5551,
	FormatARGB4444,
	FormatRGB24,
	FormatBGR24,
	FormatRGB888,
	FormatRGBX8888,
	FormatBGR888,
	FormatARGB8888,
	FormatRGBA8888,
	FormatABGR8888,
	FormatBGRA8888,
}

// MasksToFormat resolves a depth and channel mask set to its canonical
// Format identifier. Depths 1, 4 and 8 with zero masks resolve to the
// indexed formats, MSB-first for the sub-byte depths. The mapping is
// round-trip stable with Masks.
func MasksToFormat(bpp uint8, rMask, gMask, bMask, aMask uint32) (Format, error) {
	if rMask|gMask|bMask|aMask == 0 {
		switch bpp {
		case 1:
			return FormatIndex1MSB, nil
		case 4:
			return FormatIndex4MSB, nil
		case 8:
			return FormatIndex8, nil
		}
	}
	for _, f := range packedFormats {
		fb, fr, fg, fbl, fa, err := f.Masks()
		if err == nil && fb == bpp && fr == rMask && fg == gMask && fbl == bMask && fa == aMask {
			return f, nil
		}
	}
	return FormatUnknown, formatErrorf("no format for %d bpp, masks %08x/%08x/%08x/%08x",
		bpp, rMask, gMask, bMask, aMask)
}

// PixelFormat translates between raw pixel values, as stored in a surface
// buffer, and colors. It comes in exactly two variants: DirectFormat for
// mask/shift channel packings and IndexedFormat for palette lookups, so
// an indexed format can never exist without a palette.
type PixelFormat interface {
	Format() Format
	BitsPerPixel() uint8
	BytesPerPixel() uint8
	HasAlpha() bool
	IsIndexed() bool
	// Palette returns the bound palette, nil for direct formats.
	Palette() *Palette

	// MapRGB encodes c with alpha forced opaque; for indexed formats it
	// returns the nearest palette index instead.
	MapRGB(c Color) uint32
	// MapRGBA encodes c including alpha when the format carries one.
	MapRGBA(c Color) uint32
	// GetRGB decodes v. Direct formats report it fully opaque; indexed
	// formats return the palette entry as is.
	GetRGB(v uint32) Color
	// GetRGBA decodes v including alpha. A direct format without an alpha
	// channel decodes as opaque.
	GetRGBA(v uint32) Color
}

// DirectFormat encodes each channel at a fixed mask/shift position inside
// a packed pixel value.
type DirectFormat struct {
	format                         Format
	bitsPerPixel, bytesPerPixel    uint8
	rMask, gMask, bMask, aMask     uint32
	rShift, gShift, bShift, aShift uint8
	rLoss, gLoss, bLoss, aLoss     uint8
}

// NewFormat builds the direct-color PixelFormat described by f. Indexed
// identifiers are rejected; those need a palette, see NewIndexedFormat.
func NewFormat(f Format) (*DirectFormat, error) {
	if f.IsIndexed() {
		return nil, formatErrorf("format %#08x is indexed, use NewIndexedFormat", uint32(f))
	}
	bpp, rMask, gMask, bMask, aMask, err := f.Masks()
	if err != nil {
		return nil, err
	}
	df := &DirectFormat{
		format:        f,
		bitsPerPixel:  bpp,
		bytesPerPixel: f.BytesPerPixel(),
		rMask:         rMask,
		gMask:         gMask,
		bMask:         bMask,
		aMask:         aMask,
	}
	df.rShift, df.rLoss = maskShiftLoss(rMask)
	df.gShift, df.gLoss = maskShiftLoss(gMask)
	df.bShift, df.bLoss = maskShiftLoss(bMask)
	df.aShift, df.aLoss = maskShiftLoss(aMask)
	return df, nil
}

// NewFormatFromMasks builds a direct format straight from a depth and
// channel masks, resolving them to their canonical identifier first.
func NewFormatFromMasks(bpp uint8, rMask, gMask, bMask, aMask uint32) (*DirectFormat, error) {
	f, err := MasksToFormat(bpp, rMask, gMask, bMask, aMask)
	if err != nil {
		return nil, errors.Wrap(err, "resolving channel masks")
	}
	return NewFormat(f)
}

// maskShiftLoss derives the shift down to bit 0 and the precision lost
// from 8 bits for one contiguous channel mask. An absent channel (zero
// mask) reports a loss of 8.
func maskShiftLoss(mask uint32) (shift, loss uint8) {
	if mask == 0 {
		return 0, 8
	}
	shift = uint8(bits.TrailingZeros32(mask))
	loss = uint8(8 - bits.OnesCount32(mask>>shift))
	return shift, loss
}

// expandChannel widens a width-bit value to 8 bits by replicating its
// high bits into the freed low positions, so full intensity maps to 255,
// zero stays zero, and the expansion is monotonic.
func expandChannel(v uint32, width uint8) uint8 {
	if width == 0 {
		return 0
	}
	if width >= 8 {
		return uint8(v)
	}
	v <<= 8 - width
	for sh := width; sh < 8; sh += width {
		v |= v >> sh
	}
	return uint8(v)
}

func (f *DirectFormat) Format() Format       { return f.format }
func (f *DirectFormat) BitsPerPixel() uint8  { return f.bitsPerPixel }
func (f *DirectFormat) BytesPerPixel() uint8 { return f.bytesPerPixel }
func (f *DirectFormat) HasAlpha() bool       { return f.aMask != 0 }
func (f *DirectFormat) IsIndexed() bool      { return false }
func (f *DirectFormat) Palette() *Palette    { return nil }

// Masks returns the channel masks of the format.
func (f *DirectFormat) Masks() (rMask, gMask, bMask, aMask uint32) {
	return f.rMask, f.gMask, f.bMask, f.aMask
}

func (f *DirectFormat) MapRGB(c Color) uint32 {
	c.A = 255
	return f.MapRGBA(c)
}

func (f *DirectFormat) MapRGBA(c Color) uint32 {
	v := uint32(c.R)>>f.rLoss<<f.rShift |
		uint32(c.G)>>f.gLoss<<f.gShift |
		uint32(c.B)>>f.bLoss<<f.bShift
	if f.aMask != 0 {
		v |= uint32(c.A) >> f.aLoss << f.aShift
	}
	return v
}

func (f *DirectFormat) GetRGB(v uint32) Color {
	c := f.GetRGBA(v)
	c.A = 255
	return c
}

func (f *DirectFormat) GetRGBA(v uint32) Color {
	c := Color{
		R: expandChannel(v&f.rMask>>f.rShift, 8-f.rLoss),
		G: expandChannel(v&f.gMask>>f.gShift, 8-f.gLoss),
		B: expandChannel(v&f.bMask>>f.bShift, 8-f.bLoss),
		A: 255,
	}
	if f.aMask != 0 {
		c.A = expandChannel(v&f.aMask>>f.aShift, 8-f.aLoss)
	}
	return c
}

// IndexedFormat stores pixels as indices into a shared Palette. The 1-
// and 4-bit depths pack several pixels per byte; the identifier's bitmap
// order says whether the leftmost pixel sits in the high or low bits.
type IndexedFormat struct {
	format       Format
	bitsPerPixel uint8
	palette      *Palette
}

// NewIndexedFormat binds palette to the indexed encoding f. The palette
// must fit the depth: at most 1<<BitsPerPixel entries.
func NewIndexedFormat(f Format, palette *Palette) (*IndexedFormat, error) {
	if !f.IsIndexed() {
		return nil, formatErrorf("format %#08x is not indexed", uint32(f))
	}
	ixf := &IndexedFormat{format: f, bitsPerPixel: f.BitsPerPixel()}
	if err := ixf.SetPalette(palette); err != nil {
		return nil, err
	}
	return ixf, nil
}

// SetPalette rebinds the format to palette. The format's depth does not
// change; a palette that cannot be addressed by it is rejected and the
// previous binding stays in place.
func (f *IndexedFormat) SetPalette(palette *Palette) error {
	if palette == nil {
		return FormatError{Reason: "nil palette"}
	}
	if palette.Len() > 1<<f.bitsPerPixel {
		return formatErrorf("%d-entry palette does not fit %d-bit indices",
			palette.Len(), f.bitsPerPixel)
	}
	f.palette = palette
	return nil
}

func (f *IndexedFormat) Format() Format       { return f.format }
func (f *IndexedFormat) BitsPerPixel() uint8  { return f.bitsPerPixel }
func (f *IndexedFormat) BytesPerPixel() uint8 { return f.format.BytesPerPixel() }
func (f *IndexedFormat) HasAlpha() bool       { return false }
func (f *IndexedFormat) IsIndexed() bool      { return true }
func (f *IndexedFormat) Palette() *Palette    { return f.palette }

// MapRGB returns the index of the palette entry nearest to c. This is the
// fallback for painting an indexed surface with a color instead of an
// index.
func (f *IndexedFormat) MapRGB(c Color) uint32 { return f.palette.findColor(c) }

func (f *IndexedFormat) MapRGBA(c Color) uint32 { return f.palette.findColor(c) }

// GetRGB resolves v as a palette index, keeping the entry's alpha. An
// index beyond the bound palette is a programmer error and panics.
func (f *IndexedFormat) GetRGB(v uint32) Color { return f.palette.At(int(v)) }

func (f *IndexedFormat) GetRGBA(v uint32) Color { return f.palette.At(int(v)) }
