package control

type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionNextFractal
	ActionPrevFractal
	ActionZoomIn
	ActionZoomOut
	ActionPanLeft
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionReset
	ActionNextPreset
	ActionToggleHelp
	ActionToggleChart
	ActionNextTheme
	ActionCancel

	// ActionSelect1 selects the first registered fractal; ActionSelect1+n
	// selects fractal n+1.
	ActionSelect1
	ActionSelect2
	ActionSelect3
	ActionSelect4
	ActionSelect5
	ActionSelect6
	ActionSelect7
	ActionSelect8
	ActionSelect9
)

var keyActions = map[string]Action{
	"q":         ActionQuit,
	"ctrl+c":    ActionQuit,
	"esc":       ActionCancel,
	"tab":       ActionNextFractal,
	"shift+tab": ActionPrevFractal,
	"+":         ActionZoomIn,
	"=":         ActionZoomIn,
	"-":         ActionZoomOut,
	"_":         ActionZoomOut,
	"left":      ActionPanLeft,
	"h":         ActionPanLeft,
	"right":     ActionPanRight,
	"l":         ActionPanRight,
	"up":        ActionPanUp,
	"k":         ActionPanUp,
	"down":      ActionPanDown,
	"j":         ActionPanDown,
	"r":         ActionReset,
	"p":         ActionNextPreset,
	"?":         ActionToggleHelp,
	"g":         ActionToggleChart,
	"t":         ActionNextTheme,
}

// ParseKey maps a key name as bubbletea spells it ("tab", "ctrl+c", "3")
// to an Action.
func ParseKey(key string) (Action, bool) {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return ActionSelect1 + Action(key[0]-'1'), true
	}
	a, ok := keyActions[key]
	return a, ok
}

// HelpLines lists the bindings for help overlays.
func HelpLines() [][2]string {
	return [][2]string{
		{"tab", "next fractal"},
		{"1-9", "select fractal"},
		{"+ / -", "zoom"},
		{"arrows / hjkl", "pan"},
		{"drag", "zoom to rectangle"},
		{"wheel", "zoom at cursor"},
		{"r", "reset view"},
		{"p", "next preset"},
		{"g", "render chart"},
		{"t", "theme"},
		{"?", "help"},
		{"q", "quit"},
	}
}
