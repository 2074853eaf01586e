package fractal

import (
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/fractview/internal/config"
	"github.com/san-kum/fractview/internal/surface"
	"github.com/san-kum/fractview/internal/viewport"
)

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
)

func newTestSierpinski() *Sierpinski {
	return NewSierpinski(config.SierpinskiConfig{
		BaseColor:  "#c8dcff",
		HoleColor:  "#ff0000",
		Background: "#00ff00",
	})
}

// pixelAt renders a 1×1 surface whose only pixel samples world (x, y) at
// roughly span-sized pixels.
func pixelAt(f Fractal, x, y, span float64) color.RGBA {
	surf := surface.New(1, 1)
	f.Render(surf, viewport.View{XMin: x, XMax: x + span, YMin: y, YMax: y + span})
	return surf.At(0, 0)
}

func TestClassifyVerticesAreSolid(t *testing.T) {
	vertices := [][2]float64{{0, 0}, {1, 0}, {0, 1}}
	for n := 1; n <= MaxRefinement; n++ {
		for _, v := range vertices {
			if _, _, hole := Classify(v[0], v[1], n); hole {
				t.Errorf("vertex (%g,%g) classified as hole at n=%d", v[0], v[1], n)
			}
		}
	}
}

func TestClassifyHoles(t *testing.T) {
	tests := []struct {
		name string
		s, t float64
		n    int
		hole bool
	}{
		{"edge midpoint", 0.5, 0.5, 1, true},
		{"edge midpoint deep", 0.5, 0.5, 30, true},
		{"centroid shallow", 1.0 / 3, 1.0 / 3, 1, false},
		{"centroid", 1.0 / 3, 1.0 / 3, 2, true},
		{"centroid deep", 1.0 / 3, 1.0 / 3, 30, true},
		{"near vertex", 1e-6, 1e-6, 10, false},
		{"along edge", 0.75, 0, 30, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, hole := Classify(tt.s, tt.t, tt.n); hole != tt.hole {
				t.Errorf("Classify(%g, %g, %d) hole = %v, want %v", tt.s, tt.t, tt.n, hole, tt.hole)
			}
		})
	}
}

func TestClassifyBits(t *testing.T) {
	i, j, _ := Classify(0.75, 0.25, 2)
	if i != 0b11 || j != 0b01 {
		t.Errorf("got iBits=%b jBits=%b", i, j)
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		i, j uint32
		want float64
	}{
		{1, 0, 1},
		{0, 3, 1},
		{4, 0, 0.86},
		{0b1000, 0b0100, 0.86},
		{0, 0, 0.3},
		{1 << 20, 0, 0.3},
	}
	for _, tt := range tests {
		if got := shade(tt.i, tt.j); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("shade(%b, %b) = %f, want %f", tt.i, tt.j, got, tt.want)
		}
	}
}

func TestSierpinskiDepth(t *testing.T) {
	s := newTestSierpinski()
	if n := s.Depth(viewport.Centered(0.5, 0.5, 1e6, 1), 100, 100); n != 1 {
		t.Errorf("wide view should clamp to 1, got %d", n)
	}
	if n := s.Depth(viewport.Centered(0.5, 0.5, 1e-14, 1), 100, 100); n != MaxRefinement {
		t.Errorf("deep view should clamp to %d, got %d", MaxRefinement, n)
	}
	shallow := s.Depth(s.DefaultView(1), 100, 100)
	deep := s.Depth(viewport.Centered(0.5, 0.5, 0.01, 1), 100, 100)
	if deep <= shallow {
		t.Errorf("zooming in should refine: %d then %d", shallow, deep)
	}
}

func TestSierpinskiRender(t *testing.T) {
	s := newTestSierpinski()

	if got := pixelAt(s, 0.5, 0.65, 1e-3); got != red {
		t.Errorf("centre of the middle hole should be hole colour, got %v", got)
	}
	if got := pixelAt(s, 0.05, 0.05, 1e-3); got != green {
		t.Errorf("point outside the triangle should be background, got %v", got)
	}
	got := pixelAt(s, 0.5, 0.06, 0.05)
	if got == red || got == green {
		t.Errorf("point near the apex should be solid, got %v", got)
	}
	if got.B == 0 {
		t.Errorf("solid pixel should carry the base colour, got %v", got)
	}
}

func TestSierpinskiDegenerateTriangle(t *testing.T) {
	s := newTestSierpinski()
	s.C = s.B
	surf := surface.New(4, 4)
	s.Render(surf, s.DefaultView(1))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := surf.At(x, y); got != green {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, got)
			}
		}
	}
}
