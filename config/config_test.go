package config

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/termcore/terminal"
	"github.com/lixenwraith/termcore/theme"
	"github.com/lixenwraith/termcore/vision"
)

func noEnv(string) string { return "" }

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "termcore.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.toml"), noEnv)
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	want := Default()
	if cfg.Color != want.Color || cfg.Vision != want.Vision || cfg.Screen != want.Screen || cfg.Theme.Name != want.Theme.Name {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), `
[color]
mode = "256"
paint_background = false

[theme]
name = "light"
[theme.colors]
accent = "#ff0000"

[vision]
deficiency = "deuteranopia"
severity = 0.5

[screen]
skip_unchanged = true
`)

	cfg, err := LoadWithEnv(path, noEnv)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if mode, _ := cfg.ColorMode(); mode != terminal.ColorMode256 {
		t.Errorf("Expected 256 color mode, got %v", mode)
	}
	if cfg.Color.PaintBackground {
		t.Error("Expected background painting disabled")
	}
	if !cfg.Screen.SkipUnchanged || !cfg.Screen.AltScreen {
		t.Errorf("Expected skip_unchanged set and alt_screen default kept, got %+v", cfg.Screen)
	}

	sim, err := cfg.Simulation()
	if err != nil || sim != (vision.Simulation{Deficiency: vision.Deutan, Severity: 0.5}) {
		t.Errorf("Unexpected simulation %+v %v", sim, err)
	}

	th, err := cfg.ResolveTheme()
	if err != nil {
		t.Fatalf("Unexpected theme error: %v", err)
	}
	if th.Name() != "light" {
		t.Errorf("Expected light theme, got %s", th.Name())
	}
	if r, g, b := th.Color(theme.Accent).RGB(); r != 255 || g != 0 || b != 0 {
		t.Errorf("Expected accent override, got (%d,%d,%d)", r, g, b)
	}
}

func TestEnvOverlay(t *testing.T) {
	path := writeFile(t, t.TempDir(), "[color]\nmode = \"256\"\n")
	cfg, err := LoadWithEnv(path, envOf(map[string]string{
		"TERMCORE_COLOR_MODE":       "16",
		"TERMCORE_PAINT_BACKGROUND": "false",
		"TERMCORE_DEFICIENCY":       "tritan",
		"TERMCORE_SEVERITY":         "0.25",
		"TERMCORE_DEBUG":            "1",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Color.Mode != "16" || cfg.Color.PaintBackground {
		t.Errorf("Expected env to win over file, got %+v", cfg.Color)
	}
	if cfg.Vision.Deficiency != "tritan" || cfg.Vision.Severity != 0.25 || !cfg.Log.Debug {
		t.Errorf("Unexpected overlay result %+v %+v", cfg.Vision, cfg.Log)
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{"Bad color mode", "[color]\nmode = \"rainbow\"\n", nil},
		{"Severity over one", "[vision]\ndeficiency = \"protan\"\nseverity = 1.5\n", nil},
		{"Unknown deficiency", "[vision]\ndeficiency = \"sepia\"\n", nil},
		{"Unknown theme", "[theme]\nname = \"neon\"\n", nil},
		{"Bad override", "[theme.colors]\naccent = \"hsl:999;0;0\"\n", nil},
		{"Bad env bool", "", map[string]string{"TERMCORE_DEBUG": "maybe"}},
		{"Bad env float", "", map[string]string{"TERMCORE_SEVERITY": "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.content)
			_, err := LoadWithEnv(path, envOf(tt.env))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Syntax", "[color\nmode = 1\n"},
		{"Unknown key", "[color]\nmood = \"256\"\n"},
		{"Wrong type", "[vision]\nseverity = \"high\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("inline.toml", []byte(tt.content))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Expected *ParseError, got %v", err)
			}
			if pe.Path != "inline.toml" || pe.Err == nil {
				t.Errorf("Unexpected parse error %+v", pe)
			}
		})
	}

	_, err := Parse("inline.toml", []byte("[color\n"))
	var pe *ParseError
	if errors.As(err, &pe) && pe.Line != 1 {
		t.Errorf("Expected syntax error on line 1, got %d", pe.Line)
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "[color]\nmode = \"256\"\n")

	w, err := NewWatcher(path, noEnv, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reloads := make(chan Config, 8)
	go w.Run(ctx, func(cfg Config, err error) {
		if err == nil {
			reloads <- cfg
		}
	})

	writeFile(t, dir, "[color]\nmode = \"16\"\n")

	for {
		select {
		case cfg := <-reloads:
			if cfg.Color.Mode == "16" {
				return
			}
		case <-ctx.Done():
			t.Fatal("Timed out waiting for reload")
		}
	}
}
