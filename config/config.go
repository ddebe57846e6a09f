// Package config loads inspector settings from a TOML file with TERMCORE_* environment
// overrides, and reloads them when the file changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/termcore/terminal"
	"github.com/lixenwraith/termcore/theme"
	"github.com/lixenwraith/termcore/vision"
)

// ErrInvalidConfig wraps every validation and environment failure
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix starts every recognised environment variable
const EnvPrefix = "TERMCORE_"

// Config is the full settings tree
type Config struct {
	Color  ColorConfig  `toml:"color"`
	Theme  ThemeConfig  `toml:"theme"`
	Vision VisionConfig `toml:"vision"`
	Screen ScreenConfig `toml:"screen"`
	Log    LogConfig    `toml:"log"`
}

type ColorConfig struct {
	// Mode is auto, truecolor, 256 or 16
	Mode            string `toml:"mode"`
	PaintBackground bool   `toml:"paint_background"`
}

type ThemeConfig struct {
	Name string `toml:"name"`
	// Colors overrides roles with color specifiers
	Colors map[string]string `toml:"colors"`
}

type VisionConfig struct {
	Deficiency string  `toml:"deficiency"`
	Severity   float64 `toml:"severity"`
}

type ScreenConfig struct {
	SkipUnchanged bool `toml:"skip_unchanged"`
	AltScreen     bool `toml:"alt_screen"`
}

type LogConfig struct {
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir"`
}

// Default returns the settings used when no file or variable overrides them
func Default() Config {
	return Config{
		Color: ColorConfig{
			Mode:            "auto",
			PaintBackground: true,
		},
		Theme: ThemeConfig{
			Name: "dark",
		},
		Vision: VisionConfig{
			Deficiency: "none",
			Severity:   1.0,
		},
		Screen: ScreenConfig{
			AltScreen: true,
		},
		Log: LogConfig{
			Dir: "logs",
		},
	}
}

// Load reads path over the defaults, applies the process environment and validates.
// A missing file is not an error.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.Getenv)
}

// LoadWithEnv is Load with an injectable environment lookup
func LoadWithEnv(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Defaults only
		case err != nil:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := decode(path, data, &cfg); err != nil {
				return Config{}, err
			}
		}
	}

	if err := ApplyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates, without the environment
func Parse(source string, data []byte) (Config, error) {
	cfg := Default()
	if err := decode(source, data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode rejects unknown keys
func decode(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return pe
	}
	return nil
}

// envBinding maps a variable suffix to a setter
type envBinding struct {
	name string
	set  func(c *Config, v string) error
}

var envBindings = []envBinding{
	{"COLOR_MODE", func(c *Config, v string) error { c.Color.Mode = v; return nil }},
	{"PAINT_BACKGROUND", func(c *Config, v string) error { return setBool(&c.Color.PaintBackground, v) }},
	{"THEME", func(c *Config, v string) error { c.Theme.Name = v; return nil }},
	{"DEFICIENCY", func(c *Config, v string) error { c.Vision.Deficiency = v; return nil }},
	{"SEVERITY", func(c *Config, v string) error { return setFloat(&c.Vision.Severity, v) }},
	{"SKIP_UNCHANGED", func(c *Config, v string) error { return setBool(&c.Screen.SkipUnchanged, v) }},
	{"ALT_SCREEN", func(c *Config, v string) error { return setBool(&c.Screen.AltScreen, v) }},
	{"DEBUG", func(c *Config, v string) error { return setBool(&c.Log.Debug, v) }},
	{"LOG_DIR", func(c *Config, v string) error { c.Log.Dir = v; return nil }},
}

// ApplyEnv overlays TERMCORE_* variables; empty values are treated as unset
func ApplyEnv(c *Config, getenv func(string) string) error {
	for _, b := range envBindings {
		v := strings.TrimSpace(getenv(EnvPrefix + b.name))
		if v == "" {
			continue
		}
		if err := b.set(c, v); err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, EnvPrefix, b.name, err)
		}
	}
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func setFloat(dst *float64, v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

// Validate checks every field that is resolved later
func (c Config) Validate() error {
	if _, err := c.ColorMode(); err != nil {
		return err
	}
	if _, err := c.Simulation(); err != nil {
		return err
	}
	if _, err := c.ResolveTheme(); err != nil {
		return err
	}
	return nil
}

// ColorMode resolves color.mode, "auto" detects from the environment
func (c Config) ColorMode() (terminal.ColorMode, error) {
	m, err := terminal.ParseColorMode(c.Color.Mode)
	if err != nil {
		return 0, fmt.Errorf("%w: color.mode: %v", ErrInvalidConfig, err)
	}
	return m, nil
}

// Simulation resolves the vision section
func (c Config) Simulation() (vision.Simulation, error) {
	d, err := vision.ParseDeficiency(c.Vision.Deficiency)
	if err != nil {
		return vision.Simulation{}, fmt.Errorf("%w: vision.deficiency: %w", ErrInvalidConfig, err)
	}
	sim := vision.Simulation{Deficiency: d, Severity: c.Vision.Severity}
	if err := sim.Valid(); err != nil {
		return vision.Simulation{}, fmt.Errorf("%w: vision.severity: %w", ErrInvalidConfig, err)
	}
	return sim, nil
}

// ResolveTheme loads the named built-in and applies color overrides
func (c Config) ResolveTheme() (*theme.Theme, error) {
	t, err := theme.Builtin(c.Theme.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: theme.name: %w", ErrInvalidConfig, err)
	}
	if len(c.Theme.Colors) == 0 {
		return t, nil
	}
	t, err = t.Override(c.Theme.Colors)
	if err != nil {
		return nil, fmt.Errorf("%w: theme.colors: %w", ErrInvalidConfig, err)
	}
	return t, nil
}
