package fractal

import (
	"fmt"
	"image/color"

	"github.com/san-kum/fractview/internal/config"
	"github.com/san-kum/fractview/internal/logx"
	"github.com/san-kum/fractview/internal/surface"
	"github.com/san-kum/fractview/internal/viewport"
)

// Neutral is the colour an unknown fractal renders as.
var Neutral = color.RGBA{A: 0xff}

// Registry maps fractal ids to renderers. It is filled at startup and only
// read afterwards.
type Registry struct {
	fractals map[string]Fractal
	order    []string
}

func NewRegistry(fractals ...Fractal) *Registry {
	r := &Registry{fractals: make(map[string]Fractal)}
	for _, f := range fractals {
		r.Register(f)
	}
	return r
}

// Default builds the registry with the built-in fractals configured from
// cfg.
func Default(cfg *config.Config) *Registry {
	return NewRegistry(
		NewMandelbrot(cfg.Mandelbrot),
		NewSierpinski(cfg.Sierpinski),
		NewKoch(cfg.Koch),
	)
}

// Register adds f. Registering an id twice replaces the earlier fractal
// but keeps its position.
func (r *Registry) Register(f Fractal) {
	id := f.ID()
	if _, ok := r.fractals[id]; !ok {
		r.order = append(r.order, id)
	}
	r.fractals[id] = f
}

func (r *Registry) Lookup(id string) (Fractal, error) {
	f, ok := r.fractals[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFractal, id)
	}
	return f, nil
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// DefaultView returns the fractal's initial view, or a unit-height view
// centred on the origin for an unknown id.
func (r *Registry) DefaultView(id string, aspect float64) viewport.View {
	f, ok := r.fractals[id]
	if !ok {
		return viewport.Centered(0, 0, 1, aspect)
	}
	return f.DefaultView(aspect)
}

// Render draws fractal id into surf. An unknown id clears surf to Neutral.
func (r *Registry) Render(id string, surf *surface.Surface, view viewport.View) {
	f, ok := r.fractals[id]
	if !ok {
		logx.Logger().Warn("render requested for unknown fractal", "id", id)
		surf.Clear(Neutral)
		return
	}
	f.Render(surf, view)
}

// Detail describes the work a render of id at view would do, or "" when
// the fractal does not report it.
func (r *Registry) Detail(id string, view viewport.View, w, h int) string {
	d, ok := r.fractals[id].(Detailer)
	if !ok {
		return ""
	}
	return d.Detail(view, w, h)
}
