package fractal

import (
	"fmt"
	"image/color"
	"math"
	"math/bits"

	"github.com/san-kum/fractview/internal/config"
	"github.com/san-kum/fractview/internal/surface"
	"github.com/san-kum/fractview/internal/viewport"
)

const (
	// MaxRefinement bounds the number of binary digits read per pixel.
	MaxRefinement = 30
	minRefinement = 1

	degenerateDet = 1e-20
	maxShadeSteps = 10
	shadeStep     = 0.07
)

type point struct{ X, Y float64 }

var (
	sierpinskiA = point{0.5, 0.05}
	sierpinskiB = point{0.05, 0.95}
	sierpinskiC = point{0.95, 0.95}
)

// Sierpinski renders the gasket by writing each pixel's barycentric
// coordinates (s, t) in binary and marking the pixel as a hole when some
// digit is 1 in both.
type Sierpinski struct {
	A, B, C    point
	Base       color.RGBA
	Hole       color.RGBA
	Background color.RGBA
}

func NewSierpinski(cfg config.SierpinskiConfig) *Sierpinski {
	return &Sierpinski{
		A:          sierpinskiA,
		B:          sierpinskiB,
		C:          sierpinskiC,
		Base:       parseHex(cfg.BaseColor, color.RGBA{200, 220, 255, 0xff}),
		Hole:       parseHex(cfg.HoleColor, color.RGBA{A: 0xff}),
		Background: parseHex(cfg.Background, color.RGBA{A: 0xff}),
	}
}

func (s *Sierpinski) ID() string   { return "sierpinski" }
func (s *Sierpinski) Name() string { return "Sierpinski" }

func (s *Sierpinski) DefaultView(aspect float64) viewport.View {
	return viewport.Centered(0.5, 0.5, 1.2, aspect)
}

// Depth is the number of binary digits needed for the smallest visible
// sub-triangle to be about one pixel, clamped to [1, MaxRefinement].
func (s *Sierpinski) Depth(view viewport.View, w, h int) int {
	xScale := view.XSpan() / float64(max(1, w-1))
	yScale := view.YSpan() / float64(max(1, h-1))
	pixelWorld := math.Max(minSpan, math.Min(xScale, yScale))

	e1 := point{s.B.X - s.A.X, s.B.Y - s.A.Y}
	e2 := point{s.C.X - s.A.X, s.C.Y - s.A.Y}
	triSpan := math.Max(math.Hypot(e1.X, e1.Y), math.Hypot(e2.X, e2.Y))

	n := math.Floor(math.Log2(math.Max(minSpan, triSpan/pixelWorld)))
	switch {
	case math.IsNaN(n) || n < minRefinement:
		return minRefinement
	case n > MaxRefinement:
		return MaxRefinement
	}
	return int(n)
}

func (s *Sierpinski) Detail(view viewport.View, w, h int) string {
	return fmt.Sprintf("depth %d", s.Depth(view, w, h))
}

// Classify reads n binary digits of s and t. The point lies in a hole when
// any digit position is 1 in both expansions.
func Classify(s, t float64, n int) (uint32, uint32, bool) {
	var iBits, jBits uint32
	for k := 0; k < n; k++ {
		s *= 2
		t *= 2
		iBits <<= 1
		jBits <<= 1
		if s >= 1 {
			iBits |= 1
			s--
		}
		if t >= 1 {
			jBits |= 1
			t--
		}
	}
	return iBits, jBits, iBits&jBits != 0
}

// shade dims deeper sub-triangles slightly so the structure stays readable.
func shade(iBits, jBits uint32) float64 {
	tz := min(bits.TrailingZeros32(iBits|jBits), maxShadeSteps)
	return 1 - float64(tz)*shadeStep
}

func (s *Sierpinski) Render(surf *surface.Surface, view viewport.View) {
	e1 := point{s.B.X - s.A.X, s.B.Y - s.A.Y}
	e2 := point{s.C.X - s.A.X, s.C.Y - s.A.Y}
	det := e1.X*e2.Y - e1.Y*e2.X
	if math.Abs(det) < degenerateDet {
		surf.Clear(s.Background)
		return
	}
	ia, ib := e2.Y/det, -e2.X/det
	ic, id := -e1.Y/det, e1.X/det

	w, h := surf.Width(), surf.Height()
	xScale := view.XSpan() / float64(max(1, w-1))
	yScale := view.YSpan() / float64(max(1, h-1))
	n := s.Depth(view, w, h)

	parallelRows(h, func(start, end int) {
		for py := start; py < end; py++ {
			row := surf.Row(py)
			dy := view.YMin + float64(py)*yScale - s.A.Y
			for px := 0; px < w; px++ {
				dx := view.XMin + float64(px)*xScale - s.A.X
				bs := ia*dx + ib*dy
				bt := ic*dx + id*dy

				c := s.Background
				if bs >= 0 && bt >= 0 && bs+bt <= 1 {
					iBits, jBits, hole := Classify(bs, bt, n)
					if hole {
						c = s.Hole
					} else {
						br := shade(iBits, jBits)
						c = color.RGBA{
							R: uint8(float64(s.Base.R) * br),
							G: uint8(float64(s.Base.G) * br),
							B: uint8(float64(s.Base.B) * br),
						}
					}
				}
				o := 4 * px
				row[o], row[o+1], row[o+2], row[o+3] = c.R, c.G, c.B, 0xff
			}
		}
	})
}
