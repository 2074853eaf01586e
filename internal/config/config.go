package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth          = 960
	DefaultHeight         = 640
	DefaultSettleFrames   = 1
	DefaultIdleDelayMs    = 80
	DefaultBaseIterations = 500
	DefaultReferenceSpan  = 3.0
	DefaultMaxIterations  = 4000
	DefaultEscapeRadius   = 2.0
	DefaultColorScale     = 12.0
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Fractal      string           `yaml:"fractal"`
	Width        int              `yaml:"width"`
	Height       int              `yaml:"height"`
	SettleFrames int              `yaml:"settle_frames"`
	IdleDelayMs  int              `yaml:"idle_delay_ms"`
	Mandelbrot   MandelbrotConfig `yaml:"mandelbrot"`
	Sierpinski   SierpinskiConfig `yaml:"sierpinski"`
	Koch         KochConfig       `yaml:"koch"`
}

type MandelbrotConfig struct {
	BaseIterations int     `yaml:"base_iterations"`
	ReferenceSpan  float64 `yaml:"reference_span"`
	MaxIterations  int     `yaml:"max_iterations"`
	EscapeRadius   float64 `yaml:"escape_radius"`
	ColorScale     float64 `yaml:"color_scale"`
	Saturation     float64 `yaml:"saturation"`
	Lightness      float64 `yaml:"lightness"`
}

type SierpinskiConfig struct {
	BaseColor  string `yaml:"base_color"`
	HoleColor  string `yaml:"hole_color"`
	Background string `yaml:"background"`
}

type KochConfig struct {
	StrokeColor string `yaml:"stroke_color"`
	Background  string `yaml:"background"`
}

func DefaultConfig() *Config {
	return &Config{
		Fractal:      "mandelbrot",
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		SettleFrames: DefaultSettleFrames,
		IdleDelayMs:  DefaultIdleDelayMs,
		Mandelbrot: MandelbrotConfig{
			BaseIterations: DefaultBaseIterations,
			ReferenceSpan:  DefaultReferenceSpan,
			MaxIterations:  DefaultMaxIterations,
			EscapeRadius:   DefaultEscapeRadius,
			ColorScale:     DefaultColorScale,
			Saturation:     0.6,
			Lightness:      0.5,
		},
		Sierpinski: SierpinskiConfig{
			BaseColor:  "#c8dcff",
			HoleColor:  "#000000",
			Background: "#000000",
		},
		Koch: KochConfig{
			StrokeColor: "#9fd3ff",
			Background:  "#000000",
		},
	}
}

// Load reads a yaml file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.SettleFrames < 0 || c.IdleDelayMs < 0 {
		return fmt.Errorf("%w: settle_frames and idle_delay_ms must be >= 0", ErrInvalidConfig)
	}
	m := c.Mandelbrot
	if m.BaseIterations < 1 || m.MaxIterations < 1 {
		return fmt.Errorf("%w: iteration counts must be positive", ErrInvalidConfig)
	}
	if m.ReferenceSpan <= 0 {
		return fmt.Errorf("%w: reference_span must be positive", ErrInvalidConfig)
	}
	// the smooth colouring takes log(log|z|) and needs |z| > 1 at escape
	if m.EscapeRadius <= 1 {
		return fmt.Errorf("%w: escape_radius must be > 1, got %g", ErrInvalidConfig, m.EscapeRadius)
	}
	if m.Saturation < 0 || m.Saturation > 1 || m.Lightness < 0 || m.Lightness > 1 {
		return fmt.Errorf("%w: saturation and lightness must be in [0, 1]", ErrInvalidConfig)
	}
	for _, hex := range []string{c.Sierpinski.BaseColor, c.Sierpinski.HoleColor, c.Sierpinski.Background, c.Koch.StrokeColor, c.Koch.Background} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: bad colour %q", ErrInvalidConfig, hex)
		}
	}
	return nil
}

func (c *Config) IdleDelay() time.Duration {
	return time.Duration(c.IdleDelayMs) * time.Millisecond
}
