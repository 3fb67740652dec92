package app

import (
	"flag"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// ErrTypeInvalidConfig is returned by Config.Validate.
const ErrTypeInvalidConfig = "app-invalid-config"

// Config represents the command-line parameters for the editor.
type Config struct {
	TPS      int
	Width    int
	Height   int
	HUD      bool
	HUDWidth int
	LogLevel string
	Layout   string
	SavePath string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		TPS:      10,
		Width:    1280,
		Height:   720,
		HUD:      true,
		HUDWidth: 240,
		LogLevel: "info",
		SavePath: "circuit.yaml",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.TPS, "tps", c.TPS, "circuit evaluations per second")
	fs.IntVar(&c.Width, "width", c.Width, "editor view width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "editor view height in pixels")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the parameter panel")
	fs.IntVar(&c.HUDWidth, "hud-width", c.HUDWidth, "parameter panel width in pixels")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug|info|warning|error)")
	fs.StringVar(&c.Layout, "layout", c.Layout, "YAML layout to open")
	fs.StringVar(&c.SavePath, "save", c.SavePath, "file written when pressing S")
}

// Validate reports the first unusable value.
func (c *Config) Validate() error {
	switch {
	case c.TPS < minTPS || c.TPS > maxTPS:
		return errors.Newf("tps must be between %d and %d", minTPS, maxTPS).
			WithType(ErrTypeInvalidConfig).
			WithTag("tps", c.TPS)
	case c.Width <= 0 || c.Height <= 0:
		return errors.New("view size must be positive").
			WithType(ErrTypeInvalidConfig).
			WithTag("width", c.Width).
			WithTag("height", c.Height)
	case c.HUD && c.HUDWidth <= 0:
		return errors.New("hud width must be positive").
			WithType(ErrTypeInvalidConfig).
			WithTag("hud_width", c.HUDWidth)
	case c.SavePath == "":
		return errors.New("save path is required").
			WithType(ErrTypeInvalidConfig)
	}
	return nil
}

// PanelWidth is the HUD width, or zero when the HUD is off.
func (c *Config) PanelWidth() int {
	if !c.HUD {
		return 0
	}
	return c.HUDWidth
}
