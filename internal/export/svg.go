package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/fractview/internal/fractal"
	"github.com/san-kum/fractview/internal/viewport"
)

// SegmentsToSVG draws connected line segments, given in world coordinates,
// as a single SVG path on a width×height canvas covering view.
func SegmentsToSVG(segs []fractal.Segment, view viewport.View, width, height int, stroke, background string, lineWidth float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	if len(segs) == 0 {
		sb.WriteString("</svg>")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%g" stroke-linecap="round" stroke-linejoin="round" d="`,
		stroke, lineWidth))

	var lastX, lastY float64
	for i, s := range segs {
		x0, y0 := viewport.WorldToScreen(s.X0, s.Y0, width, height, view)
		x1, y1 := viewport.WorldToScreen(s.X1, s.Y1, width, height, view)
		if i == 0 || x0 != lastX || y0 != lastY {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("M%.2f,%.2f", x0, y0))
		}
		sb.WriteString(fmt.Sprintf(" L%.2f,%.2f", x1, y1))
		lastX, lastY = x1, y1
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// KochSVG renders the Koch outline for view the same way the raster
// renderer does: same depth, stroke colour and line width.
func KochSVG(k *fractal.Koch, view viewport.View, width, height int) string {
	segs := fractal.Segments(k.Depth(view, width, height))
	return SegmentsToSVG(segs, view, width, height, hex(k.Stroke.R, k.Stroke.G, k.Stroke.B),
		hex(k.Background.R, k.Background.G, k.Background.B), fractal.LineWidth(width, height))
}

func hex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
