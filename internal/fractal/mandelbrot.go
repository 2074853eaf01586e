package fractal

import (
	"fmt"
	"math"

	"github.com/san-kum/fractview/internal/config"
	"github.com/san-kum/fractview/internal/surface"
	"github.com/san-kum/fractview/internal/viewport"
)

const (
	mandelbrotCenterX = -0.75
	mandelbrotCenterY = 0.0
	mandelbrotSpan    = 3.0

	// baseHue is where the smooth palette starts, in degrees.
	baseHue = 240.0
	// minSpan keeps the iteration budget finite for a collapsed view.
	minSpan = 1e-18
)

// Mandelbrot renders the escape-time set z -> z² + c with smooth colouring.
type Mandelbrot struct {
	BaseIterations int
	ReferenceSpan  float64
	MaxIterCap     int
	EscapeRadius   float64
	ColorScale     float64
	Saturation     float64
	Lightness      float64
}

func NewMandelbrot(cfg config.MandelbrotConfig) *Mandelbrot {
	return &Mandelbrot{
		BaseIterations: cfg.BaseIterations,
		ReferenceSpan:  cfg.ReferenceSpan,
		MaxIterCap:     cfg.MaxIterations,
		EscapeRadius:   cfg.EscapeRadius,
		ColorScale:     cfg.ColorScale,
		Saturation:     cfg.Saturation,
		Lightness:      cfg.Lightness,
	}
}

func (m *Mandelbrot) ID() string   { return "mandelbrot" }
func (m *Mandelbrot) Name() string { return "Mandelbrot" }

func (m *Mandelbrot) DefaultView(aspect float64) viewport.View {
	return viewport.Centered(mandelbrotCenterX, mandelbrotCenterY, mandelbrotSpan, aspect)
}

// MaxIterations is the iteration budget for view: base·(ref/span), capped
// at MaxIterCap and never below 1.
func (m *Mandelbrot) MaxIterations(view viewport.View) int {
	span := math.Max(minSpan, view.Span())
	budget := math.Floor(float64(m.BaseIterations) * (m.ReferenceSpan / span))
	if budget > float64(m.MaxIterCap) {
		budget = float64(m.MaxIterCap)
	}
	if budget < 1 {
		return 1
	}
	return int(budget)
}

func (m *Mandelbrot) Detail(view viewport.View, w, h int) string {
	return fmt.Sprintf("%d iterations", m.MaxIterations(view))
}

// Iterate runs z -> z² + c from z = 0 for at most maxIter steps. It returns
// the number of steps taken, |z|² after the last step and whether |z|
// exceeded the escape radius.
func (m *Mandelbrot) Iterate(cx, cy float64, maxIter int) (int, float64, bool) {
	r2 := m.EscapeRadius * m.EscapeRadius
	var x, y, x2, y2 float64
	for iter := 0; iter < maxIter; iter++ {
		y = 2*x*y + cy
		x = x2 - y2 + cx
		x2 = x * x
		y2 = y * y
		if x2+y2 > r2 {
			return iter + 1, x2 + y2, true
		}
	}
	return maxIter, x2 + y2, false
}

// smoothHue maps a fractional escape count to a palette hue in degrees.
func (m *Mandelbrot) smoothHue(iter int, x2y2 float64) float64 {
	logZn := math.Log(x2y2) / 2
	nu := math.Log(logZn/math.Ln2) / math.Ln2
	smooth := float64(iter) + 1 - nu
	return baseHue + m.ColorScale*smooth
}

func (m *Mandelbrot) Render(surf *surface.Surface, view viewport.View) {
	w, h := surf.Width(), surf.Height()
	xScale := view.XSpan() / float64(max(1, w-1))
	yScale := view.YSpan() / float64(max(1, h-1))
	maxIter := m.MaxIterations(view)

	parallelRows(h, func(start, end int) {
		for j := start; j < end; j++ {
			row := surf.Row(j)
			cy := view.YMin + float64(j)*yScale
			for i := 0; i < w; i++ {
				cx := view.XMin + float64(i)*xScale
				iter, x2y2, escaped := m.Iterate(cx, cy, maxIter)

				// escaping on the final step still counts as interior
				var r, g, b uint8
				if escaped && iter < maxIter {
					r, g, b = hslRGB(m.smoothHue(iter, x2y2), m.Saturation, m.Lightness)
				}
				o := 4 * i
				row[o], row[o+1], row[o+2], row[o+3] = r, g, b, 0xff
			}
		}
	})
}
