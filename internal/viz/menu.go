package viz

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fractview/internal/config"
	"github.com/san-kum/fractview/internal/control"
)

var fractalInfo = map[string]string{
	"mandelbrot": "escape-time set, smooth colouring",
	"sierpinski": "binary refinement gasket",
	"koch":       "recursive snowflake curve",
}

// Menu lets the user pick a fractal, then becomes the viewer.
type Menu struct {
	ctrl          *control.Controller
	ids           []string
	cursor        int
	width, height int
	viewer        *Model
}

func NewMenu(ctrl *control.Controller) Menu {
	return Menu{
		ctrl:   ctrl,
		ids:    ctrl.Session().Registry().IDs(),
		width:  80,
		height: 24,
	}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.viewer != nil {
		next, cmd := m.viewer.Update(msg)
		v := next.(Model)
		m.viewer = &v
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.ids)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.start()
		}
	}
	return m, nil
}

func (m Menu) start() (tea.Model, tea.Cmd) {
	if len(m.ids) == 0 {
		return m, tea.Quit
	}
	m.ctrl.Session().FractalSelected(m.ids[m.cursor])

	v := NewModel(m.ctrl)
	next, _ := v.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	v = next.(Model)
	m.viewer = &v
	return m, v.Init()
}

func (m Menu) View() string {
	if m.viewer != nil {
		return m.viewer.View()
	}

	var s strings.Builder
	s.WriteString(titleStyle().Render("FRACTVIEW") + "\n")
	s.WriteString(Separator(40) + "\n\n")
	if len(m.ids) == 0 {
		s.WriteString(errorStyle.Render("no fractals registered") + "\n")
	}
	for i, id := range m.ids {
		name := id
		if f, err := m.ctrl.Session().Registry().Lookup(id); err == nil {
			name = f.Name()
		}
		cursor := "  "
		line := labelStyle().Render(name)
		if i == m.cursor {
			cursor = valueStyle().Render("▸ ")
			line = valueStyle().Render(name)
		}
		s.WriteString(cursor + line)
		if info, ok := fractalInfo[id]; ok {
			s.WriteString(hintStyle().Render("  " + info))
		}
		if presets := config.ListPresets(id); len(presets) > 0 {
			s.WriteString(hintStyle().Render("  (" + strings.Join(presets, ", ") + ")"))
		}
		s.WriteString("\n")
	}
	s.WriteString("\n" + hintStyle().Render("↑/↓ select  enter view  q quit"))
	return panelStyle.Render(s.String())
}
