package video

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"
)

// surfaceImage adapts a Surface to the stdlib image interfaces. It is a
// live view: reads and writes go straight to the surface buffer.
type surfaceImage struct {
	s *Surface
}

func (si surfaceImage) ColorModel() color.Model { return color.NRGBAModel }

func (si surfaceImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, si.s.w, si.s.h)
}

func (si surfaceImage) At(x, y int) color.Color {
	if x < 0 || x >= si.s.w || y < 0 || y >= si.s.h {
		return color.NRGBA{}
	}
	c := si.s.At(x, y)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Set honors the surface clip rect, like any other bulk write into a
// surface. Coordinates outside it are dropped silently, per image.Image
// convention.
func (si surfaceImage) Set(x, y int, c color.Color) {
	clip := si.s.clipRect
	if x < clip.X || x >= clip.X+clip.W || y < clip.Y || y >= clip.Y+clip.H {
		return
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	si.s.Set(x, y, Color{R: nc.R, G: nc.G, B: nc.B, A: nc.A})
}

// Image exposes the surface as a draw.Image, so stdlib image code and
// golang.org/x/image can read or paint the buffer in place.
func (s *Surface) Image() draw.Image {
	return surfaceImage{s: s}
}

// SurfaceFromImage copies img into a fresh surface of the given format,
// for taking over the output of an external image decoder.
func SurfaceFromImage(img image.Image, format PixelFormat) (*Surface, error) {
	b := img.Bounds()
	s, err := CreateSurface(b.Dx(), b.Dy(), format)
	if err != nil {
		return nil, errors.Wrap(err, "allocating surface for image")
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			nc := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			s.Set(x, y, Color{R: nc.R, G: nc.G, B: nc.B, A: nc.A})
		}
	}
	return s, nil
}
