package nova

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// WindowMode selects how the window is presented.
type WindowMode uint8

const (
	WindowModeNormal     WindowMode = iota // regular decorated window
	WindowModeMinimized                    // starts minimized
	WindowModeFullScreen                   // monitor resolution; Width/Height are ignored
)

func (m WindowMode) String() string {
	switch m {
	case WindowModeNormal:
		return "normal"
	case WindowModeMinimized:
		return "minimized"
	case WindowModeFullScreen:
		return "fullscreen"
	default:
		return fmt.Sprintf("WindowMode(%d)", uint8(m))
	}
}

// ParseWindowMode parses "normal", "minimized" or "fullscreen".
func ParseWindowMode(s string) (WindowMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return WindowModeNormal, nil
	case "minimized":
		return WindowModeMinimized, nil
	case "fullscreen":
		return WindowModeFullScreen, nil
	}
	return WindowModeNormal, fmt.Errorf("%w: unknown window mode %q", ErrInvalidConfig, s)
}

// UnmarshalYAML decodes a window mode from its name.
func (m *WindowMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	mode, err := ParseWindowMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// MarshalYAML encodes a window mode as its name.
func (m WindowMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

// WindowDesc describes a window to create.
type WindowDesc struct {
	Width           int        `yaml:"width"`
	Height          int        `yaml:"height"`
	Title           string     `yaml:"title"`
	Mode            WindowMode `yaml:"mode"`
	ResizableWindow bool       `yaml:"resizableWindow"`
	EnableVSync     bool       `yaml:"enableVSync"`
}

// DefaultWindowDesc returns a 1920x1080 resizable window titled
// "Nova Renderer" with VSync off.
func DefaultWindowDesc() WindowDesc {
	return WindowDesc{
		Width:           1920,
		Height:          1080,
		Title:           "Nova Renderer",
		Mode:            WindowModeNormal,
		ResizableWindow: true,
		EnableVSync:     false,
	}
}

// AppConfig configures an Application.
type AppConfig struct {
	WindowDesc WindowDesc `yaml:"windowDesc"`
	// Headless disables window creation; frames render without a target.
	Headless bool `yaml:"headless"`
	// TimeScale multiplies real time on the application clock.
	TimeScale float64 `yaml:"timeScale"`
	// PauseTime starts the clock paused.
	PauseTime bool `yaml:"pauseTime"`
	// ShowUI draws the statistics overlay.
	ShowUI                  bool `yaml:"showUI"`
	GenerateShaderDebugInfo bool `yaml:"generateShaderDebugInfo"`
	ShaderPreciseFloat      bool `yaml:"shaderPreciseFloat"`
	// IconPath is a PNG file for the window icon. Empty leaves the default.
	IconPath string `yaml:"iconPath"`
	// ScreenshotDir receives screenshots captured with F12 or Screenshot.
	ScreenshotDir string `yaml:"screenshotDir"`
}

// DefaultAppConfig returns the documented defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		WindowDesc:    DefaultWindowDesc(),
		TimeScale:     1.0,
		ShowUI:        true,
		ScreenshotDir: "screenshots",
	}
}

// Validate checks the config for values the application cannot run with.
func (c AppConfig) Validate() error {
	d := c.WindowDesc
	if d.Mode != WindowModeFullScreen && (d.Width <= 0 || d.Height <= 0) {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, d.Width, d.Height)
	}
	if d.Mode > WindowModeFullScreen {
		return fmt.Errorf("%w: window mode %d", ErrInvalidConfig, d.Mode)
	}
	if math.IsNaN(c.TimeScale) || c.TimeScale < 0 {
		return fmt.Errorf("%w: time scale %v", ErrInvalidConfig, c.TimeScale)
	}
	return nil
}

// ParseAppConfig decodes YAML over the defaults. Keys that are absent keep
// their default; unknown keys are ignored.
func ParseAppConfig(data []byte) (AppConfig, error) {
	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse app config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("parse app config: %w", err)
	}
	return cfg, nil
}

// LoadAppConfig reads and parses a YAML config file.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("load app config: %w", err)
	}
	return ParseAppConfig(data)
}
