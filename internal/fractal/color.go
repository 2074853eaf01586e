package fractal

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// parseHex converts "#rrggbb" to an opaque colour, falling back when the
// string is malformed. Config validation rejects bad colours before they
// get here.
func parseHex(hex string, fallback color.RGBA) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// hslRGB converts a hue in degrees (any real value, wrapped into [0, 360))
// with saturation and lightness in [0, 1] to 8-bit RGB.
func hslRGB(hue, s, l float64) (uint8, uint8, uint8) {
	if math.IsNaN(hue) || math.IsInf(hue, 0) {
		hue = 0
	}
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	return colorful.Hsl(hue, s, l).RGB255()
}
