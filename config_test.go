package nova

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestDefaultAppConfig(t *testing.T) {
	want := AppConfig{
		WindowDesc: WindowDesc{
			Width:           1920,
			Height:          1080,
			Title:           "Nova Renderer",
			Mode:            WindowModeNormal,
			ResizableWindow: true,
			EnableVSync:     false,
		},
		TimeScale:     1.0,
		ShowUI:        true,
		ScreenshotDir: "screenshots",
	}
	if diff := cmp.Diff(want, DefaultAppConfig()); diff != "" {
		t.Errorf("DefaultAppConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAppConfig(t *testing.T) {
	data := []byte(`
headless: true
timeScale: 0.5
pauseTime: true
shaderPreciseFloat: true
unknownKey: ignored
windowDesc:
  width: 800
  height: 600
  mode: minimized
`)
	got, err := ParseAppConfig(data)
	if err != nil {
		t.Fatalf("ParseAppConfig: %v", err)
	}

	want := DefaultAppConfig()
	want.Headless = true
	want.TimeScale = 0.5
	want.PauseTime = true
	want.ShaderPreciseFloat = true
	want.WindowDesc.Width = 800
	want.WindowDesc.Height = 600
	want.WindowDesc.Mode = WindowModeMinimized
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAppConfigEmpty(t *testing.T) {
	got, err := ParseAppConfig(nil)
	if err != nil {
		t.Fatalf("ParseAppConfig: %v", err)
	}
	if diff := cmp.Diff(DefaultAppConfig(), got); diff != "" {
		t.Errorf("empty config differs from defaults (-want +got):\n%s", diff)
	}
}

func TestParseAppConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad mode", "windowDesc: {mode: sideways}"},
		{"zero width", "windowDesc: {width: 0}"},
		{"negative time scale", "timeScale: -1"},
		{"not yaml", "windowDesc: [1, 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAppConfig([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.WindowDesc.Width = 0
	cfg.WindowDesc.Mode = WindowModeFullScreen
	if err := cfg.Validate(); err != nil {
		t.Errorf("fullscreen ignores size, got %v", err)
	}

	cfg = DefaultAppConfig()
	cfg.TimeScale = math.NaN()
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate(NaN time scale) = %v, want ErrInvalidConfig", err)
	}

	cfg = DefaultAppConfig()
	cfg.WindowDesc.Mode = WindowMode(9)
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate(mode 9) = %v, want ErrInvalidConfig", err)
	}
}

func TestWindowModeYAML(t *testing.T) {
	for _, m := range []WindowMode{WindowModeNormal, WindowModeMinimized, WindowModeFullScreen} {
		out, err := yaml.Marshal(WindowDesc{Mode: m})
		if err != nil {
			t.Fatal(err)
		}
		var back WindowDesc
		if err := yaml.Unmarshal(out, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", out, err)
		}
		if back.Mode != m {
			t.Errorf("mode %v round-tripped to %v", m, back.Mode)
		}
	}
}

func TestParseWindowMode(t *testing.T) {
	tests := []struct {
		in   string
		want WindowMode
		err  bool
	}{
		{"", WindowModeNormal, false},
		{"Normal", WindowModeNormal, false},
		{" FULLSCREEN ", WindowModeFullScreen, false},
		{"minimized", WindowModeMinimized, false},
		{"maximized", WindowModeNormal, true},
	}
	for _, tt := range tests {
		got, err := ParseWindowMode(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseWindowMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte("showUI: false\nscreenshotDir: shots\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg.ShowUI || cfg.ScreenshotDir != "shots" {
		t.Errorf("got ShowUI=%v ScreenshotDir=%q", cfg.ShowUI, cfg.ScreenshotDir)
	}

	if _, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
