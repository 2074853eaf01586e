// Package fractal implements the renderers and the registry that dispatches
// to them.
//
// Three rendering strategies are provided:
//
//   - [Mandelbrot]: per-pixel escape-time iteration with smooth colouring
//   - [Sierpinski]: per-pixel classification by binary refinement of the
//     barycentric coordinates inside a base triangle
//   - [Koch]: recursive subdivision of a triangle into line segments that
//     are stroked onto the surface
//
// Each renderer adapts its work to the view: the iteration budget or the
// refinement depth grows as the visible span shrinks, and is clamped before
// any work starts.
//
// # Thread Safety
//
// Renderers are stateless after construction. Render fills the surface
// completely before returning; pixel renderers may use several goroutines
// internally, each writing disjoint rows.
package fractal

import (
	"errors"

	"github.com/san-kum/fractview/internal/surface"
	"github.com/san-kum/fractview/internal/viewport"
)

// ErrUnknownFractal is returned by Registry.Lookup for ids that were never
// registered.
var ErrUnknownFractal = errors.New("fractal: unknown fractal")

// Fractal is a renderable fractal family.
type Fractal interface {
	ID() string
	Name() string
	// DefaultView returns the initial view for a surface of the given
	// aspect (width / height).
	DefaultView(aspect float64) viewport.View
	// Render overwrites every pixel of surf with the region of the plane
	// covered by view.
	Render(surf *surface.Surface, view viewport.View)
}

// Detailer is implemented by fractals whose amount of work depends on the
// view. Detail returns a short human-readable description, e.g. the
// iteration budget.
type Detailer interface {
	Detail(view viewport.View, w, h int) string
}
