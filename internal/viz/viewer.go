package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fractview/internal/control"
)

const (
	statusLines = 2
	chartLines  = 6
	frameRate   = time.Second / 60
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the interactive fractal viewer.
type Model struct {
	ctrl          *control.Controller
	width, height int
	cols, rows    int
	grid          cellGrid
	rendered      int
	frame         int
	showChart     bool
}

func NewModel(ctrl *control.Controller) Model {
	return Model{ctrl: ctrl, width: 80, height: 24}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and drives the render scheduler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
	case tea.KeyMsg:
		a, ok := control.ParseKey(msg.String())
		if !ok {
			return m, nil
		}
		switch a {
		case control.ActionToggleChart:
			m.showChart = !m.showChart
			m.layout()
		case control.ActionNextTheme:
			NextTheme()
		default:
			if !m.ctrl.Apply(a) {
				return m, tea.Quit
			}
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		m.ctrl.Frame(time.Time(msg))
		m.frame++
		m.refresh()
		return m, tick()
	}
	return m, nil
}

// layout sizes the canvas to the terminal and hands the session a
// matching surface.
func (m *Model) layout() {
	rows := m.height - statusLines
	if m.showChart {
		rows -= chartLines
	}
	m.cols, m.rows = max(1, m.width), max(1, rows)
	m.ctrl.Resize(m.cols*Supersample, m.rows*2*Supersample)
	m.grid = cellGrid{}
	m.rendered = -1
}

// refresh resamples the surface after a render completed.
func (m *Model) refresh() {
	surf := m.ctrl.Session().Surface()
	if surf == nil {
		return
	}
	renders := m.ctrl.Session().Scheduler().Stats().Renders
	if renders == m.rendered {
		return
	}
	m.rendered = renders
	m.grid = sampleCells(surf.Image(), m.cols, m.rows)
}

// cellToSurface maps the centre of a terminal cell to surface pixels.
func cellToSurface(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * Supersample, (float64(y)*2 + 1) * Supersample
}

func (m *Model) mouse(msg tea.MouseMsg) {
	if msg.Y >= m.rows && msg.Action == tea.MouseActionPress {
		return
	}
	px, py := cellToSurface(msg.X, min(msg.Y, m.rows-1))

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ctrl.Wheel(px, py, 1)
		return
	case tea.MouseButtonWheelDown:
		m.ctrl.Wheel(px, py, -1)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.ctrl.PointerDown(px, py)
		}
	case tea.MouseActionMotion:
		m.ctrl.PointerMove(px, py)
	case tea.MouseActionRelease:
		m.ctrl.PointerUp(px, py)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	var s strings.Builder

	if m.ctrl.ShowHelp() {
		s.WriteString(m.helpView())
	} else {
		var sel *control.Rect
		if r, ok := m.ctrl.Selection(); ok {
			sel = &r
		}
		s.WriteString(m.grid.render(sel))
	}
	s.WriteString("\n")

	if m.showChart {
		s.WriteString(m.chartView())
		s.WriteString("\n")
	}
	s.WriteString(m.statusView())
	return s.String()
}

func (m Model) statusView() string {
	st := m.ctrl.Status()

	var s strings.Builder
	s.WriteString(titleStyle().Render(st.FractalName))
	if st.Preset != "" {
		s.WriteString(hintStyle().Render(" [" + st.Preset + "]"))
	}
	s.WriteString(labelStyle().Render("  center "))
	s.WriteString(valueStyle().Render(fmt.Sprintf("%.10g, %.10g", st.CenterX, st.CenterY)))
	s.WriteString(labelStyle().Render("  span "))
	s.WriteString(valueStyle().Render(fmt.Sprintf("%.3g", st.Span)))
	if st.Detail != "" {
		s.WriteString(labelStyle().Render("  " + st.Detail))
	}
	s.WriteString("\n")

	if st.Busy {
		s.WriteString(fgStyle(CurrentTheme.Busy).Render(AnimatedSpinner(m.frame) + " rendering"))
	} else {
		s.WriteString(fgStyle(CurrentTheme.Idle).Render("● ready"))
	}
	s.WriteString(labelStyle().Render(fmt.Sprintf("  last %s  renders %d  ", st.LastRender.Round(time.Microsecond), st.Renders)))
	s.WriteString(hintStyle().Render("? help  q quit"))
	return s.String()
}

func (m Model) chartView() string {
	hist := m.ctrl.Status().History
	if len(hist) == 0 {
		return hintStyle().Render(strings.Repeat("\n", chartLines-2) + "no renders yet")
	}
	ms := make([]float64, len(hist))
	for i, d := range hist {
		ms[i] = float64(d) / float64(time.Millisecond)
	}
	chart := asciigraph.Plot(ms,
		asciigraph.Height(chartLines-2),
		asciigraph.Width(max(10, m.width-12)),
		asciigraph.Caption("render ms"))
	return fgStyle(CurrentTheme.Chart).Render(chart)
}

func (m Model) helpView() string {
	var s strings.Builder
	s.WriteString(titleStyle().Render("fractview") + "\n\n")
	for _, line := range control.HelpLines() {
		s.WriteString(valueStyle().Render(fmt.Sprintf("%-14s", line[0])))
		s.WriteString(labelStyle().Render(line[1]) + "\n")
	}
	s.WriteString("\n" + hintStyle().Render("theme: "+CurrentTheme.Name))
	return panelStyle.Render(s.String())
}
