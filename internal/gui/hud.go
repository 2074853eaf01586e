package gui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/san-kum/fractview/internal/control"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColPanel   = color.RGBA{10, 10, 10, 200}
	ColAccent  = color.RGBA{180, 180, 180, 255}
	ColSelect  = color.RGBA{255, 255, 255, 255}
	ColText    = color.RGBA{140, 140, 140, 255}
	ColTextDim = color.RGBA{90, 90, 90, 255}
	ColBusy    = color.RGBA{255, 200, 60, 255}
)

const (
	hudMargin  = 12
	hudLine    = 18
	chartW     = 240
	chartH     = 50
	selectLine = 2
)

// statusText is the overlay shown in the top-left corner.
func statusText(st control.Status) []string {
	title := st.FractalName
	if st.Preset != "" {
		title += " [" + st.Preset + "]"
	}
	lines := []string{
		title,
		fmt.Sprintf("center %.10g, %.10g", st.CenterX, st.CenterY),
		fmt.Sprintf("span %.3g", st.Span),
	}
	if st.Detail != "" {
		lines = append(lines, st.Detail)
	}
	if st.Busy {
		lines = append(lines, "rendering...")
	} else {
		lines = append(lines, fmt.Sprintf("ready  %s  (%d renders)", st.LastRender.Round(time.Microsecond), st.Renders))
	}
	return lines
}

func helpText() []string {
	lines := make([]string, 0, len(control.HelpLines()))
	for _, l := range control.HelpLines() {
		lines = append(lines, fmt.Sprintf("%-14s %s", l[0], l[1]))
	}
	return lines
}

// chartPoints maps render durations onto a w×h box at (x, y). Fewer than
// two samples give no points.
func chartPoints(history []time.Duration, x, y, w, h float32) [][2]float32 {
	if len(history) < 2 {
		return nil
	}

	minVal, maxVal := history[0], history[0]
	for _, d := range history {
		minVal = min(minVal, d)
		maxVal = max(maxVal, d)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([][2]float32, len(history))
	for i, d := range history {
		px := x + float32(i)/float32(len(history)-1)*w
		norm := float32(d-minVal) / float32(maxVal-minVal)
		points[i] = [2]float32{px, y + h - norm*h}
	}
	return points
}
