package config

import (
	"sort"

	"github.com/san-kum/fractview/internal/viewport"
)

// Preset is a named location: a world-space center and the vertical span
// to show around it.
type Preset struct {
	CX   float64 `yaml:"cx"`
	CY   float64 `yaml:"cy"`
	Span float64 `yaml:"span"`
}

// View returns the preset as a viewport of the given aspect (width / height).
func (p Preset) View(aspect float64) viewport.View {
	return viewport.Centered(p.CX, p.CY, p.Span, aspect)
}

var Presets = map[string]map[string]Preset{
	"mandelbrot": {
		"home":     {CX: -0.75, CY: 0, Span: 3.0},
		"seahorse": {CX: -0.7453, CY: 0.1127, Span: 0.0065},
		"elephant": {CX: 0.2549, CY: 0.0005, Span: 0.012},
		"spiral":   {CX: -0.743643887037151, CY: 0.13182590420533, Span: 0.00012},
		"minibrot": {CX: -1.7687788, CY: 0.0017389, Span: 0.00003},
	},
	"sierpinski": {
		"home":   {CX: 0.5, CY: 0.5, Span: 1.2},
		"corner": {CX: 0.08, CY: 0.93, Span: 0.05},
		"deep":   {CX: 0.4999, CY: 0.0502, Span: 1e-6},
	},
	"koch": {
		"home": {CX: 0, CY: 0, Span: 1.4},
		"edge": {CX: 0, CY: -0.74, Span: 0.15},
		"tip":  {CX: -0.5, CY: 0.2887, Span: 0.02},
	},
}

func GetPreset(fractal, name string) (Preset, bool) {
	presets, ok := Presets[fractal]
	if !ok {
		return Preset{}, false
	}
	p, ok := presets[name]
	return p, ok
}

// ListPresets returns the preset names for a fractal in sorted order, or nil
// when the fractal has none.
func ListPresets(fractal string) []string {
	presets, ok := Presets[fractal]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
