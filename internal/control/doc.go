// Package control turns frontend input into session operations.
//
// Frontends translate their native events (terminal keys and mouse
// reports, window key codes) into calls on a [Controller]:
//
//   - [Action]: discrete commands such as zoom, pan or fractal switch
//   - pointer drags: rectangle selection with a minimum size
//   - wheel notches: zoom anchored at the cursor
//
// All coordinates are surface pixels. The Controller is not safe for
// concurrent use; call it from the frontend's update loop.
//
// # Key Bindings
//
//	tab / shift+tab  - next / previous fractal
//	1-9              - select fractal by position
//	+ / -            - zoom in / out around the centre
//	arrows, hjkl     - pan by a tenth of the view
//	r                - reset view
//	p                - cycle presets
//	g                - toggle render-time chart
//	t                - cycle theme
//	?                - help
//	q                - quit
package control
