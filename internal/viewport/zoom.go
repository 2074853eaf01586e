package viewport

import "math"

// Resize adapts v to a new surface aspect ratio. The horizontal center and
// the full vertical span are kept, so the zoom level does not change.
func Resize(v View, aspect float64) View {
	cx := (v.XMin + v.XMax) / 2
	xSpan := v.YSpan() * aspect
	v.XMin = cx - xSpan/2
	v.XMax = cx + xSpan/2
	return clampSpans(v)
}

// ZoomAt scales both spans by scale while keeping the world point (wx, wy)
// at the same relative position inside the view.
func ZoomAt(v View, wx, wy, scale float64) View {
	xSpan, ySpan := v.XSpan(), v.YSpan()

	tX, tY := 0.5, 0.5
	if xSpan != 0 {
		tX = (wx - v.XMin) / xSpan
	}
	if ySpan != 0 {
		tY = (wy - v.YMin) / ySpan
	}

	newX := scaleSpan(xSpan, scale)
	newY := scaleSpan(ySpan, scale)

	v.XMin = wx - tX*newX
	v.XMax = v.XMin + newX
	v.YMin = wy - tY*newY
	v.YMax = v.YMin + newY
	return v
}

// scaleSpan multiplies span by scale. Near the precision floor the product
// can round back to span itself; a small relative step in the requested
// direction is forced so zooming never stalls.
func scaleSpan(span, scale float64) float64 {
	next := span * scale
	if next == span && scale != 1 {
		if scale < 1 {
			next = span * (1 - minZoomStep)
		} else {
			next = span * (1 + minZoomStep)
		}
	}
	return math.Max(next, Eps)
}

// ZoomToRect returns a view containing the world rectangle spanned by the
// two corners, widened on one axis so that its aspect matches targetAspect.
func ZoomToRect(x0, x1, y0, y1, targetAspect float64) View {
	xmin, xmax := math.Min(x0, x1), math.Max(x0, x1)
	ymin, ymax := math.Min(y0, y1), math.Max(y0, y1)

	xSpan := xmax - xmin
	ySpan := ymax - ymin

	var v View
	if xSpan > ySpan*targetAspect {
		newY := xSpan / targetAspect
		cy := (ymin + ymax) / 2
		v = View{XMin: xmin, XMax: xmax, YMin: cy - newY/2, YMax: cy + newY/2}
	} else {
		newX := ySpan * targetAspect
		cx := (xmin + xmax) / 2
		v = View{XMin: cx - newX/2, XMax: cx + newX/2, YMin: ymin, YMax: ymax}
	}
	return clampSpans(v)
}

// Pan shifts v by fractions of its own spans.
func Pan(v View, dxFrac, dyFrac float64) View {
	dx := v.XSpan() * dxFrac
	dy := v.YSpan() * dyFrac
	v.XMin += dx
	v.XMax += dx
	v.YMin += dy
	v.YMax += dy
	return v
}

// clampSpans raises any span below Eps to Eps around the current center.
func clampSpans(v View) View {
	if !(v.XSpan() >= Eps) {
		cx := (v.XMin + v.XMax) / 2
		v.XMin = cx - Eps/2
		v.XMax = cx + Eps/2
	}
	if !(v.YSpan() >= Eps) {
		cy := (v.YMin + v.YMax) / 2
		v.YMin = cy - Eps/2
		v.YMax = cy + Eps/2
	}
	return v
}
