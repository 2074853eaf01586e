package session

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/fractview/internal/config"
	"github.com/san-kum/fractview/internal/fractal"
	"github.com/san-kum/fractview/internal/scheduler"
	"github.com/san-kum/fractview/internal/surface"
	"github.com/san-kum/fractview/internal/viewport"
)

var now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestSession(id string) *Session {
	return New(fractal.Default(config.DefaultConfig()), id, scheduler.Options{})
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func contains(v viewport.View, x, y float64) bool {
	return x >= v.XMin && x <= v.XMax && y >= v.YMin && y <= v.YMax
}

func TestNoRenderWithoutSurface(t *testing.T) {
	s := newTestSession("mandelbrot")
	s.Scheduler().PerformRender()
	if s.Surface() != nil {
		t.Error("expected no surface before resize")
	}
	if s.Detail() != "" {
		t.Error("expected no detail before resize")
	}
}

func TestFirstResizeCreatesDefaultView(t *testing.T) {
	s := newTestSession("koch")
	surf := surface.New(40, 20)
	s.ViewportResized(surf)

	want := s.Registry().DefaultView("koch", 2)
	if s.View() != want {
		t.Errorf("view = %+v, want %+v", s.View(), want)
	}
	if !s.Scheduler().Pending() {
		t.Fatal("resize should request a render")
	}

	s.Scheduler().Frame(now)
	if s.Scheduler().Stats().Renders != 1 {
		t.Errorf("expected a render on the next frame")
	}
}

func TestResizeKeepsCenterAndHeight(t *testing.T) {
	s := newTestSession("mandelbrot")
	s.ViewportResized(surface.New(30, 30))
	s.PanZoomRequested(-0.5, 0.25, 0.5)
	before := s.View()

	s.ViewportResized(surface.New(60, 30))
	after := s.View()

	bx, _ := before.Center()
	ax, _ := after.Center()
	if !near(ax, bx) {
		t.Errorf("horizontal center moved from %g to %g", bx, ax)
	}
	if after.YMin != before.YMin || after.YMax != before.YMax {
		t.Errorf("vertical range changed: %+v -> %+v", before, after)
	}
	if !near(after.Aspect(), 2) {
		t.Errorf("expected aspect 2, got %g", after.Aspect())
	}
}

func TestFractalSelectedResetsView(t *testing.T) {
	s := newTestSession("mandelbrot")
	s.ViewportResized(surface.New(30, 20))
	s.PanZoomRequested(0, 0, 0.1)

	s.FractalSelected("sierpinski")
	if s.FractalID() != "sierpinski" {
		t.Errorf("fractal = %s", s.FractalID())
	}
	if want := s.Registry().DefaultView("sierpinski", 1.5); s.View() != want {
		t.Errorf("view = %+v, want %+v", s.View(), want)
	}
}

func TestUnknownFractalFallsBack(t *testing.T) {
	s := newTestSession("mandelbrot")
	surf := surface.New(8, 8)
	s.ViewportResized(surf)

	s.FractalSelected("julia")
	if want := viewport.Centered(0, 0, 1, 1); s.View() != want {
		t.Errorf("view = %+v, want unit square %+v", s.View(), want)
	}
	s.Scheduler().Frame(now)
	if got := surf.At(3, 3); got != fractal.Neutral {
		t.Errorf("expected neutral surface, got %v", got)
	}
}

func TestRectangleSelected(t *testing.T) {
	s := newTestSession("mandelbrot")
	s.ViewportResized(surface.New(100, 50))
	before := s.View()

	s.RectangleSelected(75, 40, 25, 10)
	v := s.View()

	if !near(v.Aspect(), 2) {
		t.Errorf("expected aspect 2, got %g", v.Aspect())
	}
	x0, y0 := viewport.ScreenToWorld(25, 10, 100, 50, before)
	x1, y1 := viewport.ScreenToWorld(75, 40, 100, 50, before)
	if !contains(v, x0, y0) || !contains(v, x1, y1) {
		t.Errorf("view %+v does not contain the selection", v)
	}
	if v.YSpan() >= before.YSpan() {
		t.Error("selection should zoom in")
	}
}

func TestZoomAtPixelKeepsPointFixed(t *testing.T) {
	s := newTestSession("mandelbrot")
	s.ViewportResized(surface.New(200, 100))
	wx, wy := viewport.ScreenToWorld(50, 30, 200, 100, s.View())

	s.ZoomAtPixel(50, 30, 0.8)

	px, py := viewport.WorldToScreen(wx, wy, 200, 100, s.View())
	if !near(px, 50) || !near(py, 30) {
		t.Errorf("anchor moved to (%g, %g)", px, py)
	}
}

func TestZoomCenterAndPan(t *testing.T) {
	s := newTestSession("koch")
	s.ViewportResized(surface.New(10, 10))

	s.ZoomCenter(0.5)
	if !near(s.View().YSpan(), 0.7) {
		t.Errorf("expected ySpan 0.7, got %g", s.View().YSpan())
	}

	s.Pan(0.5, 0)
	cx, cy := s.View().Center()
	if !near(cx, 0.35) || !near(cy, 0) {
		t.Errorf("center = (%g, %g)", cx, cy)
	}

	s.Reset()
	if want := s.Registry().DefaultView("koch", 1); s.View() != want {
		t.Errorf("reset view = %+v", s.View())
	}
}

func TestCycleFractal(t *testing.T) {
	s := newTestSession("mandelbrot")
	s.ViewportResized(surface.New(10, 10))

	s.CycleFractal(1)
	if s.FractalID() != "sierpinski" {
		t.Errorf("got %s", s.FractalID())
	}
	s.CycleFractal(-2)
	if s.FractalID() != "koch" {
		t.Errorf("got %s", s.FractalID())
	}
	s.CycleFractal(1)
	if s.FractalID() != "mandelbrot" {
		t.Errorf("got %s", s.FractalID())
	}

	s.FractalSelected("julia")
	s.CycleFractal(1)
	if s.FractalID() != "mandelbrot" {
		t.Errorf("cycling from an unknown fractal should land on the first, got %s", s.FractalID())
	}
}

func TestApplyPreset(t *testing.T) {
	s := newTestSession("mandelbrot")
	s.ViewportResized(surface.New(20, 10))

	p, _ := config.GetPreset("mandelbrot", "seahorse")
	s.ApplyPreset(p.View(1))

	cx, cy := s.View().Center()
	if !near(cx, p.CX) || !near(cy, p.CY) {
		t.Errorf("center = (%g, %g), want (%g, %g)", cx, cy, p.CX, p.CY)
	}
	if !near(s.View().Aspect(), 2) {
		t.Errorf("preset should be refitted to aspect 2, got %g", s.View().Aspect())
	}
}
func TestApplyPresetIgnoresInvalidView(t *testing.T) {
	s := newTestSession("mandelbrot")
	s.ViewportResized(surface.New(20, 10))
	s.Scheduler().Frame(now)
	before := s.View()

	s.ApplyPreset(viewport.View{XMin: 1, XMax: -1, YMin: 0, YMax: 1})
	s.ApplyPreset(viewport.View{XMin: 0.5, XMax: 0.5, YMin: 0.5, YMax: 0.5})

	if s.View() != before {
		t.Errorf("view changed to %+v", s.View())
	}
	if s.Scheduler().Pending() {
		t.Error("an ignored preset should not request a render")
	}
}

func TestEventsCoalesceIntoOneRender(t *testing.T) {
	s := newTestSession("koch")
	s.ViewportResized(surface.New(16, 16))
	for i := 0; i < 20; i++ {
		s.ZoomCenter(0.9)
		s.Pan(0.01, 0.01)
	}
	s.Scheduler().Frame(now)

	if got := s.Scheduler().Stats().Renders; got != 1 {
		t.Errorf("expected 1 render, got %d", got)
	}
}
