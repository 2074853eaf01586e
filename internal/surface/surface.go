// Package surface provides the opaque RGBA pixel buffer fractals render into.
package surface

import (
	"image"
	"image/color"
)

// Surface is a W×H pixel buffer. Alpha is always fully opaque. The owner of
// a Surface (a frontend) decides its size; renderers only write pixels.
type Surface struct {
	img *image.RGBA
}

// New allocates a w×h surface cleared to opaque black. Dimensions below 1
// are raised to 1.
func New(w, h int) *Surface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	s := &Surface{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	s.Clear(color.RGBA{A: 0xff})
	return s
}

func (s *Surface) Width() int  { return s.img.Rect.Dx() }
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Aspect returns width / height.
func (s *Surface) Aspect() float64 {
	return float64(s.Width()) / float64(s.Height())
}

// Image exposes the backing image. Frontends read it to present a frame.
func (s *Surface) Image() *image.RGBA { return s.img }

// Row returns the pixel bytes of scanline y (4 bytes per pixel). Workers
// rendering disjoint rows may write into their rows concurrently.
func (s *Surface) Row(y int) []byte {
	start := s.img.PixOffset(0, y)
	return s.img.Pix[start : start+4*s.Width()]
}

func (s *Surface) At(x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}

// Clear fills the whole surface with c, forcing alpha to opaque.
func (s *Surface) Clear(c color.RGBA) {
	c.A = 0xff
	w := s.Width()
	if w == 0 {
		return
	}
	first := s.Row(0)
	for x := 0; x < w; x++ {
		o := 4 * x
		first[o], first[o+1], first[o+2], first[o+3] = c.R, c.G, c.B, c.A
	}
	for y := 1; y < s.Height(); y++ {
		copy(s.Row(y), first)
	}
}
