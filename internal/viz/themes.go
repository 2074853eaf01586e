package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI chrome around the fractal.
type Theme struct {
	Name      string
	Title     lipgloss.Color
	Label     lipgloss.Color
	Value     lipgloss.Color
	Hint      lipgloss.Color
	Busy      lipgloss.Color
	Idle      lipgloss.Color
	Selection lipgloss.Color
	Chart     lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Title:     lipgloss.Color("#ff00ff"),
		Label:     lipgloss.Color("#888899"),
		Value:     lipgloss.Color("#00ffff"),
		Hint:      lipgloss.Color("#666688"),
		Busy:      lipgloss.Color("#ffff00"),
		Idle:      lipgloss.Color("#00ff88"),
		Selection: lipgloss.Color("#ff00ff"),
		Chart:     lipgloss.Color("#00ffff"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Title:     lipgloss.Color("#00ff00"),
		Label:     lipgloss.Color("#00aa00"),
		Value:     lipgloss.Color("#88ff88"),
		Hint:      lipgloss.Color("#005500"),
		Busy:      lipgloss.Color("#ffff00"),
		Idle:      lipgloss.Color("#88ff88"),
		Selection: lipgloss.Color("#00ff00"),
		Chart:     lipgloss.Color("#00cc00"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Title:     lipgloss.Color("#ffffff"),
		Label:     lipgloss.Color("#888888"),
		Value:     lipgloss.Color("#cccccc"),
		Hint:      lipgloss.Color("#666666"),
		Busy:      lipgloss.Color("#ffaa00"),
		Idle:      lipgloss.Color("#888888"),
		Selection: lipgloss.Color("#ffffff"),
		Chart:     lipgloss.Color("#0088ff"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Title:     lipgloss.Color("#00a8cc"),
		Label:     lipgloss.Color("#4488aa"),
		Value:     lipgloss.Color("#e0f0ff"),
		Hint:      lipgloss.Color("#336688"),
		Busy:      lipgloss.Color("#ffcc00"),
		Idle:      lipgloss.Color("#00ff88"),
		Selection: lipgloss.Color("#ffd700"),
		Chart:     lipgloss.Color("#0077be"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Title:     lipgloss.Color("#ff6b6b"),
		Label:     lipgloss.Color("#8b6b8c"),
		Value:     lipgloss.Color("#fff5f5"),
		Hint:      lipgloss.Color("#6b4b6c"),
		Busy:      lipgloss.Color("#ffc048"),
		Idle:      lipgloss.Color("#5fd068"),
		Selection: lipgloss.Color("#ff9ff3"),
		Chart:     lipgloss.Color("#feca57"),
	}

	// Default theme
	CurrentTheme = ThemeCyberpunk

	// All available themes
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	CurrentTheme = Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
