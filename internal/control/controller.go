package control

import (
	"math"
	"time"

	"github.com/san-kum/fractview/internal/config"
	"github.com/san-kum/fractview/internal/session"
	"github.com/san-kum/fractview/internal/surface"
	"github.com/san-kum/fractview/internal/viewport"
)

const (
	ZoomInFactor  = 0.8
	ZoomOutFactor = 1.25
	PanStep       = 0.1
)

// Rect is a selection in surface pixels, normalised so X0 <= X1 and
// Y0 <= Y1.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

type drag struct {
	active         bool
	startX, startY float64
	curX, curY     float64
}

type Status struct {
	FractalID   string
	FractalName string
	CenterX     float64
	CenterY     float64
	Span        float64
	Detail      string
	Preset      string
	Busy        bool
	Renders     int
	LastRender  time.Duration
	History     []time.Duration
}

type Controller struct {
	sess *session.Session

	// SelectScale is the number of input pixels per surface pixel, used
	// for the minimum selection size.
	SelectScale float64

	drag      drag
	presetIdx int
	preset    string
	showHelp  bool
}

func New(sess *session.Session) *Controller {
	return &Controller{sess: sess, SelectScale: 1, presetIdx: -1}
}

func (c *Controller) Session() *session.Session { return c.sess }
func (c *Controller) ShowHelp() bool            { return c.showHelp }

// Resize gives the session a fresh w×h surface.
func (c *Controller) Resize(w, h int) *surface.Surface {
	surf := surface.New(w, h)
	c.sess.ViewportResized(surf)
	return surf
}

// Frame forwards a display refresh to the scheduler.
func (c *Controller) Frame(now time.Time) {
	c.sess.Scheduler().Frame(now)
}

// Apply runs a. It reports false when the frontend should quit. Chart and
// theme toggles belong to the frontend and are ignored here.
func (c *Controller) Apply(a Action) bool {
	switch a {
	case ActionQuit:
		return false
	case ActionCancel:
		c.drag = drag{}
		c.showHelp = false
	case ActionNextFractal:
		c.sess.CycleFractal(1)
		c.clearPreset()
	case ActionPrevFractal:
		c.sess.CycleFractal(-1)
		c.clearPreset()
	case ActionZoomIn:
		c.sess.ZoomCenter(ZoomInFactor)
	case ActionZoomOut:
		c.sess.ZoomCenter(ZoomOutFactor)
	case ActionPanLeft:
		c.sess.Pan(-PanStep, 0)
	case ActionPanRight:
		c.sess.Pan(PanStep, 0)
	case ActionPanUp:
		c.sess.Pan(0, -PanStep)
	case ActionPanDown:
		c.sess.Pan(0, PanStep)
	case ActionReset:
		c.sess.Reset()
		c.clearPreset()
	case ActionNextPreset:
		c.nextPreset()
	case ActionToggleHelp:
		c.showHelp = !c.showHelp
	default:
		if a >= ActionSelect1 && a <= ActionSelect9 {
			ids := c.sess.Registry().IDs()
			if i := int(a - ActionSelect1); i < len(ids) {
				c.sess.FractalSelected(ids[i])
				c.clearPreset()
			}
		}
	}
	return true
}

func (c *Controller) clearPreset() {
	c.presetIdx = -1
	c.preset = ""
}

func (c *Controller) nextPreset() {
	names := config.ListPresets(c.sess.FractalID())
	if len(names) == 0 {
		return
	}
	c.presetIdx = (c.presetIdx + 1) % len(names)
	name := names[c.presetIdx]
	p, _ := config.GetPreset(c.sess.FractalID(), name)

	aspect := 1.0
	if surf := c.sess.Surface(); surf != nil {
		aspect = surf.Aspect()
	}
	c.sess.ApplyPreset(p.View(aspect))
	c.preset = name
}

func (c *Controller) PointerDown(x, y float64) {
	c.drag = drag{active: true, startX: x, startY: y, curX: x, curY: y}
}

func (c *Controller) PointerMove(x, y float64) {
	if !c.drag.active {
		return
	}
	c.drag.curX, c.drag.curY = x, y
}

// PointerUp ends a drag. Selections under viewport.MinSelectPixels on
// either axis are dropped; larger ones zoom the view. It reports whether a
// zoom happened.
func (c *Controller) PointerUp(x, y float64) bool {
	if !c.drag.active {
		return false
	}
	c.drag.curX, c.drag.curY = x, y
	d := c.drag
	c.drag = drag{}

	if !viewport.SelectionLargeEnough(d.curX-d.startX, d.curY-d.startY, c.SelectScale) {
		return false
	}
	c.sess.RectangleSelected(d.startX, d.startY, d.curX, d.curY)
	c.clearPreset()
	return true
}

// Selection returns the drag rectangle while a drag is in progress.
func (c *Controller) Selection() (Rect, bool) {
	if !c.drag.active {
		return Rect{}, false
	}
	d := c.drag
	return Rect{
		X0: math.Min(d.startX, d.curX),
		Y0: math.Min(d.startY, d.curY),
		X1: math.Max(d.startX, d.curX),
		Y1: math.Max(d.startY, d.curY),
	}, true
}

// Wheel zooms at (x, y): in for positive notches, out for negative.
func (c *Controller) Wheel(x, y, notches float64) {
	switch {
	case notches > 0:
		c.sess.ZoomAtPixel(x, y, ZoomInFactor)
	case notches < 0:
		c.sess.ZoomAtPixel(x, y, ZoomOutFactor)
	default:
		return
	}
	c.clearPreset()
}

func (c *Controller) Status() Status {
	v := c.sess.View()
	cx, cy := v.Center()
	st := c.sess.Scheduler().Stats()

	name := c.sess.FractalID()
	if f, err := c.sess.Registry().Lookup(name); err == nil {
		name = f.Name()
	}

	return Status{
		FractalID:   c.sess.FractalID(),
		FractalName: name,
		CenterX:     cx,
		CenterY:     cy,
		Span:        v.YSpan(),
		Detail:      c.sess.Detail(),
		Preset:      c.preset,
		Busy:        c.sess.Scheduler().Busy(),
		Renders:     st.Renders,
		LastRender:  st.Last,
		History:     st.History,
	}
}
