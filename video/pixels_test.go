package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatProperties(t *testing.T) {
	tests := []struct {
		f       Format
		bits    uint8
		bytes   uint8
		indexed bool
		alpha   bool
	}{
		{FormatIndex1LSB, 1, 0, true, false},
		{FormatIndex1MSB, 1, 0, true, false},
		{FormatIndex4LSB, 4, 0, true, false},
		{FormatIndex4MSB, 4, 0, true, false},
		{FormatIndex8, 8, 1, true, false},
		{FormatRGB332, 8, 1, false, false},
		{FormatRGB565, 16, 2, false, false},
		{FormatARGB1555, 16, 2, false, true},
		{FormatRGBA5551, 16, 2, false, true},
		{FormatARGB4444, 16, 2, false, true},
		{FormatRGB24, 24, 3, false, false},
		{FormatBGR24, 24, 3, false, false},
		{FormatRGB888, 24, 4, false, false},
		{FormatRGBX8888, 24, 4, false, false},
		{FormatBGR888, 24, 4, false, false},
		{FormatARGB8888, 32, 4, false, true},
		{FormatRGBA8888, 32, 4, false, true},
		{FormatABGR8888, 32, 4, false, true},
		{FormatBGRA8888, 32, 4, false, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.bits, tt.f.BitsPerPixel(), "%#08x bits", uint32(tt.f))
		assert.Equal(t, tt.bytes, tt.f.BytesPerPixel(), "%#08x bytes", uint32(tt.f))
		assert.Equal(t, tt.indexed, tt.f.IsIndexed(), "%#08x indexed", uint32(tt.f))
		assert.Equal(t, tt.alpha, tt.f.HasAlpha(), "%#08x alpha", uint32(tt.f))
	}
}

func TestFormatMasks(t *testing.T) {
	tests := []struct {
		f                          Format
		rMask, gMask, bMask, aMask uint32
	}{
		{FormatRGB332, 0xE0, 0x1C, 0x03, 0},
		{FormatRGB565, 0xF800, 0x07E0, 0x001F, 0},
		{FormatARGB1555, 0x7C00, 0x03E0, 0x001F, 0x8000},
		{FormatRGBA5551, 0xF800, 0x07C0, 0x003E, 0x0001},
		{FormatARGB4444, 0x0F00, 0x00F0, 0x000F, 0xF000},
		{FormatRGB24, 0x0000FF, 0x00FF00, 0xFF0000, 0},
		{FormatBGR24, 0xFF0000, 0x00FF00, 0x0000FF, 0},
		{FormatRGB888, 0xFF0000, 0x00FF00, 0x0000FF, 0},
		{FormatRGBX8888, 0xFF000000, 0x00FF0000, 0x0000FF00, 0},
		{FormatARGB8888, 0x00FF0000, 0x0000FF00, 0x000000FF, 0xFF000000},
		{FormatRGBA8888, 0xFF000000, 0x00FF0000, 0x0000FF00, 0x000000FF},
		{FormatABGR8888, 0x000000FF, 0x0000FF00, 0x00FF0000, 0xFF000000},
		{FormatBGRA8888, 0x0000FF00, 0x00FF0000, 0xFF000000, 0x000000FF},
	}
	for _, tt := range tests {
		bpp, r, g, b, a, err := tt.f.Masks()
		require.NoError(t, err)
		assert.Equal(t, tt.f.BitsPerPixel(), bpp)
		assert.Equal(t, tt.rMask, r, "%#08x rMask", uint32(tt.f))
		assert.Equal(t, tt.gMask, g, "%#08x gMask", uint32(tt.f))
		assert.Equal(t, tt.bMask, b, "%#08x bMask", uint32(tt.f))
		assert.Equal(t, tt.aMask, a, "%#08x aMask", uint32(tt.f))
	}

	_, _, _, _, _, err := FormatIndex8.Masks()
	var ferr FormatError
	assert.ErrorAs(t, err, &ferr)
}

// Masks -> MasksToFormat -> Masks must reproduce the same mask set for
// every named packed format, even where two identifiers read identically
// (RGB24 and BGR888 on a little-endian walk).
func TestMasksRoundTripStable(t *testing.T) {
	for _, f := range packedFormats {
		bpp, r, g, b, a, err := f.Masks()
		require.NoError(t, err)
		canon, err := MasksToFormat(bpp, r, g, b, a)
		require.NoError(t, err, "%#08x", uint32(f))
		bpp2, r2, g2, b2, a2, err := canon.Masks()
		require.NoError(t, err)
		assert.Equal(t, bpp, bpp2)
		assert.Equal(t, [4]uint32{r, g, b, a}, [4]uint32{r2, g2, b2, a2}, "%#08x", uint32(f))
	}
}

func TestMasksToFormatIndexed(t *testing.T) {
	f, err := MasksToFormat(1, 0, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, FormatIndex1MSB, f)
	f, err = MasksToFormat(4, 0, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, FormatIndex4MSB, f)
	f, err = MasksToFormat(8, 0, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, FormatIndex8, f)

	_, err = MasksToFormat(16, 0xF00, 0xF0, 0xF, 0) // no 444 format modeled
	var ferr FormatError
	assert.ErrorAs(t, err, &ferr)
}

func TestDirectFormatARGB8888Exact(t *testing.T) {
	f, err := NewFormat(FormatARGB8888)
	require.NoError(t, err)

	c := Color{R: 1, G: 2, B: 3, A: 4}
	v := f.MapRGBA(c)
	assert.Equal(t, uint32(0x04010203), v)
	assert.Equal(t, c, f.GetRGBA(v))

	// MapRGB forces opaque
	assert.Equal(t, uint32(0xFF010203), f.MapRGB(c))
	// GetRGB reports opaque
	assert.Equal(t, Color{1, 2, 3, 255}, f.GetRGB(v))
}

func TestDirectFormatNoAlpha(t *testing.T) {
	f, err := NewFormat(FormatRGB565)
	require.NoError(t, err)
	assert.False(t, f.HasAlpha())

	// without an alpha mask MapRGBA degrades to MapRGB
	c := Color{R: 255, G: 255, B: 255, A: 0}
	assert.Equal(t, uint32(0xFFFF), f.MapRGBA(c))
	assert.Equal(t, f.MapRGB(c), f.MapRGBA(c))
	assert.Equal(t, Color{255, 255, 255, 255}, f.GetRGBA(0xFFFF))
	assert.Equal(t, Color{0, 0, 0, 255}, f.GetRGBA(0))
}

// Reduced-precision formats must round-trip within the quantization
// bound of each channel and decode monotonically.
func TestDirectFormatLossyBound(t *testing.T) {
	formats := []Format{FormatRGB332, FormatRGB565, FormatARGB1555, FormatARGB4444, FormatRGBA5551}
	for _, id := range formats {
		f, err := NewFormat(id)
		require.NoError(t, err)

		bound := func(loss uint8) int { return 1<<loss - 1 }
		prev := -1
		for v := 0; v < 256; v++ {
			in := Color{R: uint8(v), G: uint8(v), B: uint8(v), A: uint8(v)}
			out := f.GetRGBA(f.MapRGBA(in))
			assert.LessOrEqual(t, abs(int(out.R)-v), bound(f.rLoss), "%#08x r=%d", uint32(id), v)
			assert.LessOrEqual(t, abs(int(out.G)-v), bound(f.gLoss), "%#08x g=%d", uint32(id), v)
			assert.LessOrEqual(t, abs(int(out.B)-v), bound(f.bLoss), "%#08x b=%d", uint32(id), v)
			if f.aMask != 0 {
				assert.LessOrEqual(t, abs(int(out.A)-v), bound(f.aLoss), "%#08x a=%d", uint32(id), v)
			}
			assert.GreaterOrEqual(t, int(out.R), prev, "%#08x monotonic at %d", uint32(id), v)
			prev = int(out.R)
		}

		// endpoints are exact
		assert.Equal(t, uint8(0), f.GetRGBA(f.MapRGB(Color{})).R)
		assert.Equal(t, uint8(255), f.GetRGBA(f.MapRGB(Color{R: 255})).R)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestNewFormatRejectsIndexed(t *testing.T) {
	_, err := NewFormat(FormatIndex8)
	var ferr FormatError
	assert.ErrorAs(t, err, &ferr)
}

func TestNewFormatFromMasks(t *testing.T) {
	f, err := NewFormatFromMasks(16, 0xF800, 0x07E0, 0x001F, 0)
	require.NoError(t, err)
	assert.Equal(t, FormatRGB565, f.Format())

	_, err = NewFormatFromMasks(16, 0xBEEF, 0, 0, 0)
	var ferr FormatError
	assert.ErrorAs(t, err, &ferr)
}

func TestIndexedFormatPaletteBinding(t *testing.T) {
	pal, err := NewPalette(16)
	require.NoError(t, err)

	f, err := NewIndexedFormat(FormatIndex4MSB, pal)
	require.NoError(t, err)
	assert.True(t, f.IsIndexed())
	assert.Equal(t, uint8(4), f.BitsPerPixel())
	assert.Same(t, pal, f.Palette())

	// too many entries for the depth
	big, err := NewPalette(17)
	require.NoError(t, err)
	err = f.SetPalette(big)
	var ferr FormatError
	assert.ErrorAs(t, err, &ferr)
	// failed rebind leaves the old palette in place
	assert.Same(t, pal, f.Palette())

	assert.Error(t, f.SetPalette(nil))

	// a direct identifier is not accepted
	_, err = NewIndexedFormat(FormatRGB565, pal)
	assert.ErrorAs(t, err, &ferr)

	// oversized palette rejected at construction
	_, err = NewIndexedFormat(FormatIndex1MSB, big)
	assert.ErrorAs(t, err, &ferr)
}

func TestIndexedFormatNearestColor(t *testing.T) {
	pal, err := NewPaletteFromColors([]Color{
		{0, 0, 0, 255},       // 0: black
		{255, 255, 255, 255}, // 1: white
		{128, 128, 128, 255}, // 2: gray
	})
	require.NoError(t, err)
	f, err := NewIndexedFormat(FormatIndex8, pal)
	require.NoError(t, err)

	assert.Equal(t, uint32(0), f.MapRGB(Color{10, 10, 10, 255}))
	assert.Equal(t, uint32(1), f.MapRGB(Color{220, 220, 220, 255}))
	assert.Equal(t, uint32(2), f.MapRGB(Color{128, 140, 120, 255}))

	// exact hit
	assert.Equal(t, uint32(1), f.MapRGBA(Color{255, 255, 255, 255}))

	// ties resolve to the lowest index
	dup, err := NewPaletteFromColors([]Color{{9, 9, 9, 255}, {9, 9, 9, 255}})
	require.NoError(t, err)
	df, err := NewIndexedFormat(FormatIndex8, dup)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), df.MapRGB(Color{9, 9, 9, 255}))

	// lookups go straight through the palette
	assert.Equal(t, Color{255, 255, 255, 255}, f.GetRGB(1))
	assert.Equal(t, Color{128, 128, 128, 255}, f.GetRGBA(2))
	assert.Panics(t, func() { f.GetRGBA(3) })
}

func TestExpandChannel(t *testing.T) {
	// full intensity always widens to 255
	for _, width := range []uint8{1, 2, 3, 4, 5, 6, 7, 8} {
		assert.Equal(t, uint8(255), expandChannel(1<<width-1, width), "width %d", width)
		assert.Equal(t, uint8(0), expandChannel(0, width), "width %d", width)
	}
	assert.Equal(t, uint8(0x88), expandChannel(0x8, 4))
	assert.Equal(t, uint8(8), expandChannel(1, 5))
}
