// Package viz provides the terminal frontend for fractview.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the viewer, drawing the surface with half-block cells
//   - [Menu]: a fractal picker that hands over to the viewer
//   - Theme selection with 5 built-in color schemes
//
// Each terminal cell shows two vertically stacked pixels: the upper one as
// the foreground of "▀" and the lower one as its background. The surface
// is rendered at Supersample times the cell resolution and filtered down.
//
// # Key Bindings
//
//	Tab   - Next fractal
//	1-3   - Select fractal
//	+/-   - Zoom around the centre
//	Arrows, hjkl - Pan
//	R     - Reset view
//	P     - Cycle presets
//	G     - Toggle render-time chart
//	T     - Cycle color themes
//	?     - Show help overlay
//
// The mouse zooms too: drag a rectangle to zoom into it, or use the wheel
// to zoom at the cursor.
package viz
