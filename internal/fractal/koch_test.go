package fractal

import (
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/fractview/internal/config"
	"github.com/san-kum/fractview/internal/surface"
	"github.com/san-kum/fractview/internal/viewport"
)

func TestSegmentsCount(t *testing.T) {
	want := 3
	for depth := 0; depth <= MaxKochDepth; depth++ {
		if got := len(Segments(depth)); got != want {
			t.Errorf("depth %d: got %d segments, want %d", depth, got, want)
		}
		want *= 4
	}
}

func TestSegmentsClampDepth(t *testing.T) {
	if got := len(Segments(-3)); got != 3 {
		t.Errorf("negative depth should clamp to 0, got %d segments", got)
	}
	if got, want := len(Segments(MaxKochDepth+4)), len(Segments(MaxKochDepth)); got != want {
		t.Errorf("depth above max should clamp, got %d want %d", got, want)
	}
}

func TestSegmentsClosedCurve(t *testing.T) {
	for depth := 0; depth <= 5; depth++ {
		segs := Segments(depth)
		var sx, sy float64
		for i, s := range segs {
			sx += s.X1 - s.X0
			sy += s.Y1 - s.Y0
			next := segs[(i+1)%len(segs)]
			if math.Abs(next.X0-s.X1) > 1e-12 || math.Abs(next.Y0-s.Y1) > 1e-12 {
				t.Fatalf("depth %d: segment %d does not connect to the next", depth, i)
			}
		}
		if math.Abs(sx) > 1e-9 || math.Abs(sy) > 1e-9 {
			t.Errorf("depth %d: net displacement (%g, %g)", depth, sx, sy)
		}
	}
}

func TestSegmentsBumpOutward(t *testing.T) {
	h := math.Sqrt(3) / 2 * KochSide
	inradius := h / 3
	for _, s := range Segments(1) {
		for _, p := range [][2]float64{{s.X0, s.Y0}, {s.X1, s.Y1}} {
			if r := math.Hypot(p[0], p[1]); r < inradius-1e-9 {
				t.Errorf("point (%g, %g) lies inside the base triangle's incircle", p[0], p[1])
			}
		}
	}
}

func TestSegmentLength(t *testing.T) {
	for depth := 0; depth <= 4; depth++ {
		want := KochSide / math.Pow(3, float64(depth))
		for _, s := range Segments(depth) {
			if l := math.Hypot(s.X1-s.X0, s.Y1-s.Y0); math.Abs(l-want) > 1e-9 {
				t.Fatalf("depth %d: segment length %g, want %g", depth, l, want)
			}
		}
	}
}

func TestKochDepth(t *testing.T) {
	k := NewKoch(config.DefaultConfig().Koch)
	tests := []struct {
		name string
		view viewport.View
		want int
	}{
		{"default view", k.DefaultView(1.5), 5},
		{"far away", viewport.Centered(0, 0, 1e4, 1.5), 0},
		{"deep zoom", viewport.Centered(0, 0, 1e-9, 1.5), MaxKochDepth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := k.Depth(tt.view, 960, 640); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLineWidth(t *testing.T) {
	if got := LineWidth(100, 100); got != 1 {
		t.Errorf("small surface should stroke 1px, got %f", got)
	}
	if got := LineWidth(4000, 2000); got != 3 {
		t.Errorf("expected 3px, got %f", got)
	}
}

func TestKochRender(t *testing.T) {
	k := NewKoch(config.DefaultConfig().Koch)
	surf := surface.New(200, 200)
	surf.Clear(color.RGBA{R: 0xff})

	k.Render(surf, k.DefaultView(1))

	bg := color.RGBA{A: 0xff}
	if got := surf.At(100, 100); got != bg {
		t.Errorf("centre should be background, got %v", got)
	}
	stroked := 0
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			c := surf.At(x, y)
			if c.A != 0xff {
				t.Fatalf("pixel (%d,%d) not opaque: %v", x, y, c)
			}
			if c != bg {
				stroked++
			}
		}
	}
	if stroked == 0 {
		t.Error("expected stroked pixels")
	}
}
