package gui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/fractview/internal/control"
)

var ebitenKeys = map[ebiten.Key]control.Action{
	ebiten.KeyQ:              control.ActionQuit,
	ebiten.KeyEscape:         control.ActionCancel,
	ebiten.KeyEqual:          control.ActionZoomIn,
	ebiten.KeyNumpadAdd:      control.ActionZoomIn,
	ebiten.KeyMinus:          control.ActionZoomOut,
	ebiten.KeyNumpadSubtract: control.ActionZoomOut,
	ebiten.KeyArrowLeft:      control.ActionPanLeft,
	ebiten.KeyH:              control.ActionPanLeft,
	ebiten.KeyArrowRight:     control.ActionPanRight,
	ebiten.KeyL:              control.ActionPanRight,
	ebiten.KeyArrowUp:        control.ActionPanUp,
	ebiten.KeyK:              control.ActionPanUp,
	ebiten.KeyArrowDown:      control.ActionPanDown,
	ebiten.KeyJ:              control.ActionPanDown,
	ebiten.KeyR:              control.ActionReset,
	ebiten.KeyP:              control.ActionNextPreset,
	ebiten.KeySlash:          control.ActionToggleHelp,
	ebiten.KeyG:              control.ActionToggleChart,
	ebiten.KeyDigit1:         control.ActionSelect1,
	ebiten.KeyDigit2:         control.ActionSelect2,
	ebiten.KeyDigit3:         control.ActionSelect3,
	ebiten.KeyDigit4:         control.ActionSelect4,
	ebiten.KeyDigit5:         control.ActionSelect5,
	ebiten.KeyDigit6:         control.ActionSelect6,
	ebiten.KeyDigit7:         control.ActionSelect7,
	ebiten.KeyDigit8:         control.ActionSelect8,
	ebiten.KeyDigit9:         control.ActionSelect9,
}

// Game is the ebiten window. Layout reports the outside size so surface
// pixels map 1:1 to logical screen pixels.
type Game struct {
	ctrl      *control.Controller
	showChart bool

	width, height int
	canvas        *ebiten.Image
	canvasRenders int
}

// RunEbiten opens the window and blocks until it is closed or the user
// quits.
func RunEbiten(ctrl *control.Controller, opts Options) error {
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(NewGame(ctrl))
}

func NewGame(ctrl *control.Controller) *Game {
	return &Game{ctrl: ctrl, canvasRenders: -1}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return max(1, outsideWidth), max(1, outsideHeight)
}

func (g *Game) Update() error {
	w, h := ebiten.WindowSize()
	if w > 0 && h > 0 && (w != g.width || h != g.height) {
		g.width, g.height = w, h
		g.ctrl.Resize(w, h)
		g.canvas = nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			g.ctrl.Apply(control.ActionPrevFractal)
		} else {
			g.ctrl.Apply(control.ActionNextFractal)
		}
	}
	for key, action := range ebitenKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if action == control.ActionToggleChart {
			g.showChart = !g.showChart
			continue
		}
		if !g.ctrl.Apply(action) {
			return ebiten.Termination
		}
	}

	cx, cy := ebiten.CursorPosition()
	mx, my := float64(cx), float64(cy)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.ctrl.PointerDown(mx, my)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.ctrl.PointerMove(mx, my)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.ctrl.PointerUp(mx, my)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.ctrl.Wheel(mx, my, wy)
	}

	g.ctrl.Frame(time.Now())
	return nil
}

func (g *Game) syncCanvas() {
	surf := g.ctrl.Session().Surface()
	if surf == nil {
		return
	}
	renders := g.ctrl.Session().Scheduler().Stats().Renders
	if g.canvas != nil && renders == g.canvasRenders {
		return
	}
	if g.canvas == nil || g.canvas.Bounds().Dx() != surf.Width() || g.canvas.Bounds().Dy() != surf.Height() {
		g.canvas = ebiten.NewImage(surf.Width(), surf.Height())
	}
	g.canvas.WritePixels(surf.Image().Pix)
	g.canvasRenders = renders
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.syncCanvas()
	if g.canvas != nil {
		screen.DrawImage(g.canvas, nil)
	}

	if r, ok := g.ctrl.Selection(); ok {
		vector.StrokeRect(screen, float32(r.X0), float32(r.Y0), float32(r.X1-r.X0), float32(r.Y1-r.Y0), selectLine, ColSelect, false)
	}

	st := g.ctrl.Status()
	drawLines(screen, statusText(st), hudMargin, hudMargin)
	if g.ctrl.ShowHelp() {
		drawLines(screen, helpText(), hudMargin, hudMargin+7*hudLine)
	}
	if g.showChart {
		y := float32(screen.Bounds().Dy() - hudMargin - chartH)
		pts := chartPoints(st.History, hudMargin, y, chartW, chartH)
		for i := 1; i < len(pts); i++ {
			vector.StrokeLine(screen, pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1], 1, ColAccent, true)
		}
	}
}

func drawLines(screen *ebiten.Image, lines []string, x, y int) {
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, x, y+i*hudLine)
	}
}
