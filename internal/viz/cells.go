package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/san-kum/fractview/internal/control"
)

// Supersample is the number of surface pixels per half-cell along each
// axis.
const Supersample = 2

const halfBlock = "▀"

// cellGrid holds the two colours of every terminal cell.
type cellGrid struct {
	cols, rows int
	top        []color.RGBA
	bottom     []color.RGBA
}

// sampleCells filters img down to cols × 2·rows pixels and splits them into
// cell halves.
func sampleCells(img *image.RGBA, cols, rows int) cellGrid {
	g := cellGrid{cols: cols, rows: rows}
	if cols < 1 || rows < 1 {
		return g
	}
	small := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.BiLinear.Scale(small, small.Bounds(), img, img.Bounds(), draw.Src, nil)

	g.top = make([]color.RGBA, cols*rows)
	g.bottom = make([]color.RGBA, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.top[r*cols+c] = small.RGBAAt(c, 2*r)
			g.bottom[r*cols+c] = small.RGBAAt(c, 2*r+1)
		}
	}
	return g
}

// cellRect converts a selection in surface pixels to an inclusive cell
// range.
func cellRect(r control.Rect) (c0, r0, c1, r1 int) {
	return int(r.X0 / Supersample), int(r.Y0 / (2 * Supersample)),
		int(r.X1 / Supersample), int(r.Y1 / (2 * Supersample))
}

// render draws the grid. Cells on the border of sel, when given, are drawn
// as solid blocks in the selection colour.
func (g cellGrid) render(sel *control.Rect) string {
	if len(g.top) == 0 {
		return ""
	}
	var c0, r0, c1, r1 int
	if sel != nil {
		c0, r0, c1, r1 = cellRect(*sel)
	}
	border := lipgloss.NewStyle().Foreground(CurrentTheme.Selection)

	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if sel != nil && onBorder(c, r, c0, r0, c1, r1) {
				sb.WriteString(border.Render("█"))
				continue
			}
			top, bottom := g.top[r*g.cols+c], g.bottom[r*g.cols+c]
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top.R, top.G, top.B))).
				Background(lipgloss.Color(hexColor(bottom.R, bottom.G, bottom.B)))
			sb.WriteString(style.Render(halfBlock))
		}
		if r < g.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func onBorder(c, r, c0, r0, c1, r1 int) bool {
	if c < c0 || c > c1 || r < r0 || r > r1 {
		return false
	}
	return c == c0 || c == c1 || r == r0 || r == r1
}
