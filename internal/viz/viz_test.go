package viz

import (
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fractview/internal/config"
	"github.com/san-kum/fractview/internal/control"
	"github.com/san-kum/fractview/internal/fractal"
	"github.com/san-kum/fractview/internal/scheduler"
	"github.com/san-kum/fractview/internal/session"
)

func newTestController(id string) *control.Controller {
	sess := session.New(fractal.Default(config.DefaultConfig()), id, scheduler.Options{})
	return control.New(sess)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return model, cmd
}

func sizedModel(t *testing.T, id string, w, h int) Model {
	t.Helper()
	m := NewModel(newTestController(id))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: w, Height: h})
	m, _ = update(t, m, TickMsg(time.Now()))
	return m
}

func TestWindowSizeResizesSurface(t *testing.T) {
	m := sizedModel(t, "koch", 40, 12)

	surf := m.ctrl.Session().Surface()
	if surf == nil {
		t.Fatal("expected a surface after resize")
	}
	if surf.Width() != 40*Supersample || surf.Height() != 10*2*Supersample {
		t.Errorf("unexpected surface size %dx%d", surf.Width(), surf.Height())
	}
	if m.cols != 40 || m.rows != 10 {
		t.Errorf("expected 40x10 cells, got %dx%d", m.cols, m.rows)
	}
}

func TestTickRendersAndSamples(t *testing.T) {
	m := sizedModel(t, "mandelbrot", 20, 8)

	if got := m.ctrl.Session().Scheduler().Stats().Renders; got != 1 {
		t.Errorf("expected 1 render, got %d", got)
	}
	if len(m.grid.top) != 20*6 {
		t.Errorf("expected %d cells, got %d", 20*6, len(m.grid.top))
	}
	if m.frame != 1 {
		t.Errorf("expected frame 1, got %d", m.frame)
	}

	out := m.View()
	if !strings.Contains(out, halfBlock) {
		t.Error("view should contain half-block cells")
	}
	if !strings.Contains(out, "Mandelbrot") {
		t.Error("status line should name the fractal")
	}
}

func TestQuitKey(t *testing.T) {
	m := sizedModel(t, "koch", 20, 8)
	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestUnknownKeyIgnored(t *testing.T) {
	m := sizedModel(t, "koch", 20, 8)
	before := m.ctrl.Session().View()
	m, cmd := update(t, m, key("x"))
	if cmd != nil {
		t.Error("unknown key should not produce a command")
	}
	if m.ctrl.Session().View() != before {
		t.Error("unknown key should not change the view")
	}
}

func TestChartToggleShrinksCanvas(t *testing.T) {
	m := sizedModel(t, "koch", 40, 20)
	m, _ = update(t, m, key("g"))
	if !m.showChart {
		t.Fatal("expected chart on")
	}
	if m.rows != 20-statusLines-chartLines {
		t.Errorf("expected %d rows, got %d", 20-statusLines-chartLines, m.rows)
	}
	m, _ = update(t, m, TickMsg(time.Now()))
	if !strings.Contains(m.View(), "render ms") {
		t.Error("chart should be captioned")
	}
}

func TestThemeKeyCycles(t *testing.T) {
	defer SetTheme(ThemeCyberpunk.Name)
	SetTheme(ThemeCyberpunk.Name)

	m := sizedModel(t, "koch", 20, 8)
	update(t, m, key("t"))
	if CurrentTheme.Name != ThemeRetroGreen.Name {
		t.Errorf("expected retro theme, got %s", CurrentTheme.Name)
	}
}

func TestTabSwitchesFractal(t *testing.T) {
	m := sizedModel(t, "mandelbrot", 20, 8)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.ctrl.Session().FractalID(); got != "sierpinski" {
		t.Errorf("expected sierpinski, got %s", got)
	}
}

func TestMouseDragZooms(t *testing.T) {
	m := sizedModel(t, "mandelbrot", 40, 12)
	before := m.ctrl.Session().View().YSpan()

	m, _ = update(t, m, tea.MouseMsg{X: 2, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m, _ = update(t, m, tea.MouseMsg{X: 20, Y: 6, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	if _, ok := m.ctrl.Selection(); !ok {
		t.Fatal("expected an active selection")
	}
	m, _ = update(t, m, tea.MouseMsg{X: 30, Y: 8, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	if _, ok := m.ctrl.Selection(); ok {
		t.Error("selection should end on release")
	}
	if after := m.ctrl.Session().View().YSpan(); after >= before {
		t.Errorf("expected zoom in, span %g -> %g", before, after)
	}
}

func TestMouseWheelZooms(t *testing.T) {
	m := sizedModel(t, "mandelbrot", 40, 12)
	before := m.ctrl.Session().View().YSpan()
	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if after := m.ctrl.Session().View().YSpan(); after >= before {
		t.Errorf("wheel up should zoom in, span %g -> %g", before, after)
	}
}

func TestHelpOverlay(t *testing.T) {
	m := sizedModel(t, "koch", 60, 30)
	m, _ = update(t, m, key("?"))
	if !strings.Contains(m.View(), "zoom to rectangle") {
		t.Error("help overlay should list bindings")
	}
}

func TestSampleCellsUniform(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	red := color.RGBA{R: 0xff, A: 0xff}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 0xff, 0xff
	}

	g := sampleCells(img, 4, 2)
	if len(g.top) != 8 || len(g.bottom) != 8 {
		t.Fatalf("expected 8 cells, got %d/%d", len(g.top), len(g.bottom))
	}
	for i := range g.top {
		if g.top[i] != red || g.bottom[i] != red {
			t.Errorf("cell %d: got %v/%v", i, g.top[i], g.bottom[i])
		}
	}

	if empty := sampleCells(img, 0, 2); len(empty.top) != 0 || empty.render(nil) != "" {
		t.Error("zero columns should give an empty grid")
	}
}

func TestOnBorder(t *testing.T) {
	tests := []struct {
		c, r int
		want bool
	}{
		{2, 2, true},
		{4, 2, true},
		{6, 3, true},
		{4, 3, false},
		{6, 6, true},
		{7, 3, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		if got := onBorder(tt.c, tt.r, 2, 2, 6, 6); got != tt.want {
			t.Errorf("onBorder(%d, %d) = %v, want %v", tt.c, tt.r, got, tt.want)
		}
	}
}

func TestCellRect(t *testing.T) {
	c0, r0, c1, r1 := cellRect(control.Rect{X0: 4, Y0: 8, X1: 21, Y1: 17})
	if c0 != 2 || r0 != 2 || c1 != 10 || r1 != 4 {
		t.Errorf("got %d,%d %d,%d", c0, r0, c1, r1)
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeCyberpunk.Name)

	if GetTheme("ocean").Name != "ocean" {
		t.Error("expected ocean theme")
	}
	if GetTheme("nonexistent").Name != ThemeCyberpunk.Name {
		t.Error("unknown theme should fall back to cyberpunk")
	}

	SetTheme(ThemeSunset.Name)
	NextTheme()
	if CurrentTheme.Name != Themes[0].Name {
		t.Errorf("expected wrap to %s, got %s", Themes[0].Name, CurrentTheme.Name)
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names should match themes")
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor(0xff, 0x08, 0xa0); got != "#ff08a0" {
		t.Errorf("got %s", got)
	}
}

func TestMenuStartsViewer(t *testing.T) {
	ctrl := newTestController("mandelbrot")
	var m tea.Model = NewMenu(ctrl)

	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	if !strings.Contains(m.View(), "Sierpinski") {
		t.Error("menu should list every fractal")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("starting the viewer should schedule a tick")
	}
	if got := ctrl.Session().FractalID(); got != "sierpinski" {
		t.Errorf("expected sierpinski, got %s", got)
	}
	if surf := ctrl.Session().Surface(); surf == nil || surf.Width() != 40*Supersample {
		t.Error("viewer should size the surface from the menu's window")
	}

	m, _ = m.Update(TickMsg(time.Now()))
	if !strings.Contains(m.View(), halfBlock) {
		t.Error("menu should now draw the viewer")
	}
}

func TestMenuQuit(t *testing.T) {
	m := NewMenu(newTestController("koch"))
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
