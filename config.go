package curved

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the editor settings. Zero fields are replaced by the
// DefaultConfig values when the editor is created.
type Config struct {
	// Width and Height are the editor size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// FPS is the frame rate frames are picked at.
	FPS int `yaml:"fps"`
	// XRange is the visible time range in seconds.
	XRange float64 `yaml:"xRange"`
	// YRange is half the visible value range.
	YRange float64 `yaml:"yRange"`
	// MinTickSpacing and MaxTickSpacing bound the pixel spacing of time ticks.
	MinTickSpacing float64 `yaml:"minTickSpacing"`
	MaxTickSpacing float64 `yaml:"maxTickSpacing"`
	// DragStartDistance is the pointer travel in pixels that starts a drag.
	DragStartDistance int `yaml:"dragStartDistance"`
	ReadOnly          bool `yaml:"readOnly"`
	Debug             bool `yaml:"debug"`
	// ScreenshotDir receives screenshots taken with Editor.Screenshot.
	ScreenshotDir string `yaml:"screenshotDir"`
	Style         Style  `yaml:"style"`
}

// DefaultConfig returns the default editor settings.
func DefaultConfig() Config {
	return Config{
		Width:             800,
		Height:            400,
		FPS:               60,
		XRange:            60,
		YRange:            10,
		MinTickSpacing:    DefaultMinTickSpacing,
		MaxTickSpacing:    DefaultMaxTickSpacing,
		DragStartDistance: DefaultDragStartDistance,
		ScreenshotDir:     "screenshots",
		Style:             DefaultStyle(),
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.FPS <= 0 {
		c.FPS = d.FPS
	}
	if c.XRange <= 0 {
		c.XRange = d.XRange
	}
	if c.YRange <= 0 {
		c.YRange = d.YRange
	}
	if c.MinTickSpacing <= 0 {
		c.MinTickSpacing = d.MinTickSpacing
	}
	if c.MaxTickSpacing <= c.MinTickSpacing {
		c.MaxTickSpacing = max(d.MaxTickSpacing, c.MinTickSpacing+1)
	}
	if c.DragStartDistance <= 0 {
		c.DragStartDistance = d.DragStartDistance
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = d.ScreenshotDir
	}
	if c.Style == (Style{}) {
		c.Style = d.Style
	}
	return c
}

// LoadConfig reads a YAML config file. Keys absent from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("curved: load config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("curved: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig writes cfg to path as YAML.
func WriteConfig(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("curved: encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("curved: write config %s: %w", path, err)
	}
	return nil
}
