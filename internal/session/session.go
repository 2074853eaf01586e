// Package session owns the viewer state: the active fractal, the current
// view and the surface the frontend draws from. Input events arrive as
// method calls and every state change ends in a render request.
package session

import (
	"github.com/san-kum/fractview/internal/fractal"
	"github.com/san-kum/fractview/internal/logx"
	"github.com/san-kum/fractview/internal/scheduler"
	"github.com/san-kum/fractview/internal/surface"
	"github.com/san-kum/fractview/internal/viewport"
)

type Session struct {
	registry *fractal.Registry
	sched    *scheduler.Scheduler

	fractalID string
	surf      *surface.Surface
	view      viewport.View
	hasView   bool
}

// New creates a session showing fractalID. No view exists until the first
// ViewportResized call provides a surface.
func New(registry *fractal.Registry, fractalID string, opts scheduler.Options) *Session {
	s := &Session{
		registry:  registry,
		fractalID: fractalID,
	}
	s.sched = scheduler.New(s.render, opts)
	return s
}

func (s *Session) render() {
	if s.surf == nil {
		return
	}
	s.registry.Render(s.fractalID, s.surf, s.view)
}

func (s *Session) View() viewport.View             { return s.view }
func (s *Session) FractalID() string               { return s.fractalID }
func (s *Session) Surface() *surface.Surface       { return s.surf }
func (s *Session) Scheduler() *scheduler.Scheduler { return s.sched }
func (s *Session) Registry() *fractal.Registry     { return s.registry }

// Detail describes the work the next render will do.
func (s *Session) Detail() string {
	if s.surf == nil {
		return ""
	}
	return s.registry.Detail(s.fractalID, s.view, s.surf.Width(), s.surf.Height())
}

func (s *Session) aspect() float64 {
	if s.surf == nil {
		return 1
	}
	return s.surf.Aspect()
}

// FractalSelected switches the active fractal and resets the view to its
// default for the current aspect.
func (s *Session) FractalSelected(id string) {
	s.fractalID = id
	s.view = s.registry.DefaultView(id, s.aspect())
	s.hasView = true
	logx.Logger().Debug("fractal selected", "id", id)
	s.sched.RequestRender()
}

// CycleFractal selects the registered fractal step positions away from the
// current one, wrapping around.
func (s *Session) CycleFractal(step int) {
	ids := s.registry.IDs()
	if len(ids) == 0 {
		return
	}
	cur := -1
	for i, id := range ids {
		if id == s.fractalID {
			cur = i
			break
		}
	}
	if cur < 0 {
		cur = 0
		step = 0
	}
	next := ((cur+step)%len(ids) + len(ids)) % len(ids)
	s.FractalSelected(ids[next])
}

// ViewportResized adopts surf as the drawing target. The first call creates
// the default view; later calls keep the vertical span and horizontal
// center and refit the width to the new aspect.
func (s *Session) ViewportResized(surf *surface.Surface) {
	s.surf = surf
	if !s.hasView {
		s.view = s.registry.DefaultView(s.fractalID, surf.Aspect())
		s.hasView = true
	} else {
		s.view = viewport.Resize(s.view, surf.Aspect())
	}
	s.sched.RequestRender()
}

// RectangleSelected zooms to a rectangle given in surface pixels. Callers
// drop selections under viewport.MinSelectPixels first.
func (s *Session) RectangleSelected(x0, y0, x1, y1 float64) {
	if s.surf == nil {
		return
	}
	w, h := s.surf.Width(), s.surf.Height()
	wx0, wy0 := viewport.ScreenToWorld(x0, y0, w, h, s.view)
	wx1, wy1 := viewport.ScreenToWorld(x1, y1, w, h, s.view)
	s.view = viewport.ZoomToRect(wx0, wx1, wy0, wy1, s.aspect())
	s.sched.RequestRender()
}

// PanZoomRequested scales the view by scale around the world point
// (wx, wy), which stays fixed on screen.
func (s *Session) PanZoomRequested(wx, wy, scale float64) {
	s.view = viewport.ZoomAt(s.view, wx, wy, scale)
	s.sched.RequestRender()
}

// ZoomAtPixel is PanZoomRequested anchored at a surface pixel.
func (s *Session) ZoomAtPixel(px, py, scale float64) {
	if s.surf == nil {
		return
	}
	wx, wy := viewport.ScreenToWorld(px, py, s.surf.Width(), s.surf.Height(), s.view)
	s.PanZoomRequested(wx, wy, scale)
}

// ZoomCenter zooms around the middle of the view.
func (s *Session) ZoomCenter(scale float64) {
	cx, cy := s.view.Center()
	s.PanZoomRequested(cx, cy, scale)
}

// Pan shifts the view by fractions of its span.
func (s *Session) Pan(dxFrac, dyFrac float64) {
	s.view = viewport.Pan(s.view, dxFrac, dyFrac)
	s.sched.RequestRender()
}

// Reset restores the active fractal's default view.
func (s *Session) Reset() {
	s.FractalSelected(s.fractalID)
}

// ApplyPreset replaces the view, refitted to the surface aspect. Unordered
// or collapsed views are ignored.
func (s *Session) ApplyPreset(view viewport.View) {
	if !view.Valid() {
		logx.Logger().Warn("ignoring invalid preset view", "view", view)
		return
	}
	s.view = viewport.Resize(view, s.aspect())
	s.hasView = true
	s.sched.RequestRender()
}
