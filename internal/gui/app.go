package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/fractview/internal/control"
	"github.com/san-kum/fractview/internal/logx"
)

var raylibKeys = map[int32]control.Action{
	rl.KeyQ:          control.ActionQuit,
	rl.KeyEscape:     control.ActionCancel,
	rl.KeyEqual:      control.ActionZoomIn,
	rl.KeyKpAdd:      control.ActionZoomIn,
	rl.KeyMinus:      control.ActionZoomOut,
	rl.KeyKpSubtract: control.ActionZoomOut,
	rl.KeyLeft:       control.ActionPanLeft,
	rl.KeyH:          control.ActionPanLeft,
	rl.KeyRight:      control.ActionPanRight,
	rl.KeyL:          control.ActionPanRight,
	rl.KeyUp:         control.ActionPanUp,
	rl.KeyK:          control.ActionPanUp,
	rl.KeyDown:       control.ActionPanDown,
	rl.KeyJ:          control.ActionPanDown,
	rl.KeyR:          control.ActionReset,
	rl.KeyP:          control.ActionNextPreset,
	rl.KeySlash:      control.ActionToggleHelp,
	rl.KeyG:          control.ActionToggleChart,
	rl.KeyOne:        control.ActionSelect1,
	rl.KeyTwo:        control.ActionSelect2,
	rl.KeyThree:      control.ActionSelect3,
	rl.KeyFour:       control.ActionSelect4,
	rl.KeyFive:       control.ActionSelect5,
	rl.KeySix:        control.ActionSelect6,
	rl.KeySeven:      control.ActionSelect7,
	rl.KeyEight:      control.ActionSelect8,
	rl.KeyNine:       control.ActionSelect9,
}

// App is the raylib window. The surface is uploaded to a texture after
// every render and drawn 1:1 under the overlays.
type App struct {
	Ctrl      *control.Controller
	Running   bool
	ShowChart bool

	tex        rl.Texture2D
	texRenders int
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// RunRaylib opens the window and blocks until it is closed or the user
// quits.
func RunRaylib(ctrl *control.Controller, opts Options) {
	initWindow(opts)
	defer rl.CloseWindow()

	app := NewApp(ctrl)
	defer app.unloadTexture()
	app.RunLoop()
}

func NewApp(ctrl *control.Controller) *App {
	a := &App{Ctrl: ctrl, Running: true, texRenders: -1}
	a.resize()
	return a
}

func (a *App) RunLoop() {
	for a.Running && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) resize() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	a.Ctrl.Resize(w, h)
	logx.Logger().Debug("window resized", "width", w, "height", h)
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		a.resize()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			a.Ctrl.Apply(control.ActionPrevFractal)
		} else {
			a.Ctrl.Apply(control.ActionNextFractal)
		}
	}
	for key, action := range raylibKeys {
		if !rl.IsKeyPressed(key) {
			continue
		}
		if action == control.ActionToggleChart {
			a.ShowChart = !a.ShowChart
			continue
		}
		if !a.Ctrl.Apply(action) {
			a.Running = false
			return
		}
	}

	mouse := rl.GetMousePosition()
	mx, my := float64(mouse.X), float64(mouse.Y)
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.Ctrl.PointerDown(mx, my)
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		a.Ctrl.PointerMove(mx, my)
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.Ctrl.PointerUp(mx, my)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Ctrl.Wheel(mx, my, float64(wheel))
	}

	a.Ctrl.Frame(time.Now())
}

// syncTexture re-uploads the surface when a render finished since the
// last upload.
func (a *App) syncTexture() {
	surf := a.Ctrl.Session().Surface()
	if surf == nil {
		return
	}
	renders := a.Ctrl.Session().Scheduler().Stats().Renders
	if renders == a.texRenders && a.tex.ID != 0 {
		return
	}
	a.unloadTexture()
	img := rl.NewImageFromImage(surf.Image())
	a.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	a.texRenders = renders
}

func (a *App) unloadTexture() {
	if a.tex.ID != 0 {
		rl.UnloadTexture(a.tex)
		a.tex = rl.Texture2D{}
	}
}

func (a *App) Draw() {
	a.syncTexture()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	if a.tex.ID != 0 {
		rl.DrawTexture(a.tex, 0, 0, rl.White)
	}

	if r, ok := a.Ctrl.Selection(); ok {
		rect := rl.NewRectangle(float32(r.X0), float32(r.Y0), float32(r.X1-r.X0), float32(r.Y1-r.Y0))
		rl.DrawRectangleLinesEx(rect, selectLine, ColSelect)
	}

	st := a.Ctrl.Status()
	a.drawPanel(statusText(st), hudMargin, hudMargin, st.Busy)
	if a.Ctrl.ShowHelp() {
		a.drawPanel(helpText(), hudMargin, hudMargin+7*hudLine, false)
	}
	if a.ShowChart {
		a.DrawTelemetry(st.History)
	}
	rl.EndDrawing()
}

func (a *App) drawPanel(lines []string, x, y int, busy bool) {
	width := 0
	for _, l := range lines {
		width = max(width, int(rl.MeasureText(l, 16)))
	}
	rl.DrawRectangle(int32(x-6), int32(y-6), int32(width+12), int32(len(lines)*hudLine+8), ColPanel)
	for i, l := range lines {
		col := ColText
		switch {
		case i == 0:
			col = ColSelect
		case busy && i == len(lines)-1:
			col = ColBusy
		}
		a.drawText(l, x, y+i*hudLine, 16, col)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}

// DrawTelemetry plots recent render durations in the bottom-left corner.
func (a *App) DrawTelemetry(history []time.Duration) {
	x := float32(hudMargin)
	y := float32(rl.GetScreenHeight() - hudMargin - chartH)
	pts := chartPoints(history, x, y, chartW, chartH)
	if pts == nil {
		return
	}

	points := make([]rl.Vector2, len(pts))
	for i, p := range pts {
		points[i] = rl.NewVector2(p[0], p[1])
	}
	rl.DrawLineStrip(points, ColAccent)
	last := history[len(history)-1].Round(time.Microsecond)
	a.drawText(last.String(), hudMargin+chartW+10, int(y)+chartH-14, 14, ColTextDim)
}
