package fractal

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/san-kum/fractview/internal/config"
	"github.com/san-kum/fractview/internal/logx"
	"github.com/san-kum/fractview/internal/surface"
	"github.com/san-kum/fractview/internal/viewport"
)

const (
	// KochSide is the side length of the base triangle in world units.
	KochSide = 2.0
	// MaxKochDepth bounds the recursion; 3·4^8 segments is the most drawn.
	MaxKochDepth = 8

	minKochWorld   = 1e-12
	lineWidthRatio = 0.0015
)

type Segment struct {
	X0, Y0, X1, Y1 float64
}

// Koch renders the snowflake as stroked line segments.
type Koch struct {
	Stroke     color.RGBA
	Background color.RGBA
}

func NewKoch(cfg config.KochConfig) *Koch {
	return &Koch{
		Stroke:     parseHex(cfg.StrokeColor, color.RGBA{0x9f, 0xd3, 0xff, 0xff}),
		Background: parseHex(cfg.Background, color.RGBA{A: 0xff}),
	}
}

func (k *Koch) ID() string   { return "koch" }
func (k *Koch) Name() string { return "Koch Snowflake" }

func (k *Koch) DefaultView(aspect float64) viewport.View {
	return viewport.Centered(0, 0, 1.4, aspect)
}

// Depth picks the recursion depth so the shortest segment is about two
// pixels long, clamped to [0, MaxKochDepth].
func (k *Koch) Depth(view viewport.View, w, h int) int {
	pixelWorld := math.Min(view.XSpan()/float64(max(1, w)), view.YSpan()/float64(max(1, h)))
	ratio := KochSide / math.Max(minKochWorld, 2*pixelWorld)
	n := math.Floor(math.Log(math.Max(minKochWorld, ratio)) / math.Log(3))
	switch {
	case math.IsNaN(n) || n < 0:
		return 0
	case n > MaxKochDepth:
		return MaxKochDepth
	}
	return int(n)
}

func (k *Koch) Detail(view viewport.View, w, h int) string {
	return fmt.Sprintf("depth %d", k.Depth(view, w, h))
}

// Segments returns the 3·4^depth segments of the snowflake outline in
// drawing order. Consecutive segments share endpoints and the last one
// ends where the first starts. depth is clamped to [0, MaxKochDepth].
func Segments(depth int) []Segment {
	depth = max(0, min(depth, MaxKochDepth))
	h := math.Sqrt(3) / 2 * KochSide
	a := point{-KochSide / 2, -h / 3}
	b := point{KochSide / 2, -h / 3}
	c := point{0, 2 * h / 3}

	n := 3
	for i := 0; i < depth; i++ {
		n *= 4
	}
	out := make([]Segment, 0, n)
	// a -> c -> b keeps the outside of the triangle on the side the
	// +60° rotation in subdivide points to.
	out = subdivide(out, depth, a, c)
	out = subdivide(out, depth, c, b)
	out = subdivide(out, depth, b, a)
	return out
}

func subdivide(out []Segment, depth int, p0, p1 point) []Segment {
	if depth <= 0 {
		return append(out, Segment{p0.X, p0.Y, p1.X, p1.Y})
	}
	dx := (p1.X - p0.X) / 3
	dy := (p1.Y - p0.Y) / 3
	a := point{p0.X + dx, p0.Y + dy}
	b := point{p0.X + 2*dx, p0.Y + 2*dy}

	sin, cos := math.Sincos(math.Pi / 3)
	peak := point{
		X: a.X + dx*cos - dy*sin,
		Y: a.Y + dx*sin + dy*cos,
	}

	out = subdivide(out, depth-1, p0, a)
	out = subdivide(out, depth-1, a, peak)
	out = subdivide(out, depth-1, peak, b)
	return subdivide(out, depth-1, b, p1)
}

// LineWidth is the stroke width in pixels for a w×h surface.
func LineWidth(w, h int) float64 {
	return math.Max(1, math.Floor(float64(min(w, h))*lineWidthRatio))
}

func (k *Koch) Render(surf *surface.Surface, view viewport.View) {
	w, h := surf.Width(), surf.Height()
	segs := Segments(k.Depth(view, w, h))

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.FromColor(k.Background))
	dc.SetColor(k.Stroke)
	dc.SetLineWidth(LineWidth(w, h))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	var lastX, lastY float64
	for i, s := range segs {
		x0, y0 := viewport.WorldToScreen(s.X0, s.Y0, w, h, view)
		x1, y1 := viewport.WorldToScreen(s.X1, s.Y1, w, h, view)
		if i == 0 || x0 != lastX || y0 != lastY {
			dc.MoveTo(x0, y0)
		}
		dc.LineTo(x1, y1)
		lastX, lastY = x1, y1
	}

	if err := dc.Stroke(); err != nil {
		logx.Logger().Warn("koch stroke failed", "err", err, "segments", len(segs))
		surf.Clear(k.Background)
		return
	}
	// gg draws into its own pixmap; copy the frame out once
	dst, src := surf.Image(), dc.Image()
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
}
