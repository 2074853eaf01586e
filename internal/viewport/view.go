// Package viewport holds the world-coordinate rectangle mapped onto the
// drawing surface and the zoom operations that mutate it.
//
// Every operation is total: degenerate inputs are clamped into a valid View
// rather than reported as errors. Callers are expected to drop drag
// selections smaller than MinSelectPixels before calling ZoomToRect.
package viewport

import "math"

// Eps is the smallest span a View may have on either axis.
const Eps = 2.220446049250313e-16 * 1e6

// MinSelectPixels is the minimum drag distance, per axis, that frontends
// should accept as a zoom selection.
const MinSelectPixels = 5

// minZoomStep is the relative span change forced when a zoom would
// otherwise leave the span untouched.
const minZoomStep = 1e-6

// View is the rectangle of the complex plane shown on the surface, with X
// growing right and Y growing down the screen.
type View struct {
	XMin float64 `json:"x_min" yaml:"x_min"`
	XMax float64 `json:"x_max" yaml:"x_max"`
	YMin float64 `json:"y_min" yaml:"y_min"`
	YMax float64 `json:"y_max" yaml:"y_max"`
}

// Centered returns a view of the given height around (cx, cy) whose width
// follows aspect (width / height).
func Centered(cx, cy, ySpan, aspect float64) View {
	xSpan := ySpan * aspect
	return View{
		XMin: cx - xSpan/2,
		XMax: cx + xSpan/2,
		YMin: cy - ySpan/2,
		YMax: cy + ySpan/2,
	}
}

func (v View) XSpan() float64 { return v.XMax - v.XMin }
func (v View) YSpan() float64 { return v.YMax - v.YMin }

// Span returns the larger of the two spans.
func (v View) Span() float64 { return math.Max(v.XSpan(), v.YSpan()) }

func (v View) Center() (float64, float64) {
	return (v.XMin + v.XMax) / 2, (v.YMin + v.YMax) / 2
}

func (v View) Aspect() float64 {
	if v.YSpan() == 0 {
		return 1
	}
	return v.XSpan() / v.YSpan()
}

// Valid reports whether v is ordered and above the span floor on both axes.
func (v View) Valid() bool {
	return v.XMin < v.XMax && v.YMin < v.YMax && v.XSpan() >= Eps && v.YSpan() >= Eps
}

// ScreenToWorld maps a pixel position on a w×h surface to world
// coordinates. Positions outside the surface extrapolate linearly.
func ScreenToWorld(px, py float64, w, h int, v View) (float64, float64) {
	x := v.XMin + (px/float64(w))*v.XSpan()
	y := v.YMin + (py/float64(h))*v.YSpan()
	return x, y
}

// WorldToScreen is the inverse of ScreenToWorld.
func WorldToScreen(x, y float64, w, h int, v View) (float64, float64) {
	px := (x - v.XMin) / v.XSpan() * float64(w)
	py := (y - v.YMin) / v.YSpan() * float64(h)
	return px, py
}

// SelectionLargeEnough reports whether a drag of (dx, dy) surface pixels
// passes the minimum selection threshold. scale is the device pixel ratio.
func SelectionLargeEnough(dx, dy, scale float64) bool {
	if scale <= 0 {
		scale = 1
	}
	min := MinSelectPixels * scale
	return math.Abs(dx) >= min && math.Abs(dy) >= min
}
