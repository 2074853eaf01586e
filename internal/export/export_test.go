package export

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/fractview/internal/config"
	"github.com/san-kum/fractview/internal/fractal"
	"github.com/san-kum/fractview/internal/surface"
	"github.com/san-kum/fractview/internal/viewport"
)

func TestSegmentsToSVG(t *testing.T) {
	segs := fractal.Segments(2)
	view := viewport.Centered(0, 0, 1.4, 1)

	svg := SegmentsToSVG(segs, view, 300, 300, "#9fd3ff", "#000000", 1)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected a complete SVG document")
	}
	if got := strings.Count(svg, " L"); got != len(segs) {
		t.Errorf("expected %d line commands, got %d", len(segs), got)
	}
	if got := strings.Count(svg, "M"); got != 1 {
		t.Errorf("connected outline should need one move, got %d", got)
	}
	if !strings.Contains(svg, `stroke="#9fd3ff"`) {
		t.Error("missing stroke colour")
	}
}

func TestSegmentsToSVGEmpty(t *testing.T) {
	svg := SegmentsToSVG(nil, viewport.Centered(0, 0, 1, 1), 10, 10, "#fff", "#000", 1)
	if strings.Contains(svg, "<path") {
		t.Error("empty input should not emit a path")
	}
}

func TestKochSVG(t *testing.T) {
	k := fractal.NewKoch(config.DefaultConfig().Koch)
	svg := KochSVG(k, k.DefaultView(1), 200, 200)
	if !strings.Contains(svg, `stroke="#9fd3ff"`) || !strings.Contains(svg, `fill="#000000"`) {
		t.Errorf("unexpected colours in %q", svg[:200])
	}
}

func TestWritePNG(t *testing.T) {
	surf := surface.New(12, 7)
	path := filepath.Join(t.TempDir(), "out.png")

	if err := WritePNG(path, surf.Image()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Width != 12 || cfg.Height != 7 {
		t.Errorf("got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestWritePNGBadPath(t *testing.T) {
	surf := surface.New(1, 1)
	if err := WritePNG(filepath.Join(t.TempDir(), "missing", "out.png"), surf.Image()); err == nil {
		t.Error("expected error for missing directory")
	}
}
