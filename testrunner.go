package nova

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string   `yaml:"action"`
	Label  string   `yaml:"label,omitempty"`
	Key    string   `yaml:"key,omitempty"`
	Mods   []string `yaml:"mods,omitempty"`
	X      float64  `yaml:"x,omitempty"`
	Y      float64  `yaml:"y,omitempty"`
	FromX  float64  `yaml:"fromX,omitempty"`
	FromY  float64  `yaml:"fromY,omitempty"`
	ToX    float64  `yaml:"toX,omitempty"`
	ToY    float64  `yaml:"toY,omitempty"`
	Frames int      `yaml:"frames,omitempty"`
	Width  int      `yaml:"width,omitempty"`
	Height int      `yaml:"height,omitempty"`
	Code   int      `yaml:"code,omitempty"`

	key  Key
	mods KeyModifiers
}

// testScript is the top-level structure of a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// TestRunner sequences injected input, resizes and screenshots across frames
// for automated testing. Attach it with Application.SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML or JSON test script:
//
//	steps:
//	  - {action: key, key: F2}
//	  - {action: click, x: 100, y: 40}
//	  - {action: wait, frames: 10}
//	  - {action: screenshot, label: after-click}
//	  - {action: shutdown, code: 0}
//
// Actions are key, click, move, drag, wait, screenshot, resize and shutdown.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		if err := script.Steps[i].resolve(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// LoadTestScriptFile reads and parses a test script file.
func LoadTestScriptFile(path string) (*TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load test script: %w", err)
	}
	return LoadTestScript(data)
}

func (st *testStep) resolve() error {
	switch st.Action {
	case "key":
		k, ok := ParseKey(st.Key)
		if !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
		st.key = k
		for _, m := range st.Mods {
			switch strings.ToLower(m) {
			case "shift":
				st.mods |= ModShift
			case "ctrl", "control":
				st.mods |= ModCtrl
			case "alt":
				st.mods |= ModAlt
			default:
				return fmt.Errorf("unknown modifier %q", m)
			}
		}
	case "resize":
		if st.Width <= 0 || st.Height <= 0 {
			return fmt.Errorf("resize to %dx%d", st.Width, st.Height)
		}
	case "click", "move", "drag", "wait", "screenshot", "shutdown":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(a *Application) {
	if r.done {
		return
	}
	// Pending injections drain before the script advances.
	if len(a.inject) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "key":
		a.InjectKeyTap(st.key, st.mods)
	case "click":
		a.InjectClick(st.X, st.Y)
	case "move":
		a.InjectMouseMove(st.X, st.Y)
	case "drag":
		a.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		a.Screenshot(st.Label)
	case "resize":
		a.ResizeFrameBuffer(st.Width, st.Height)
	case "shutdown":
		a.Shutdown(st.Code)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(a.inject) == 0 {
		r.done = true
	}
}
