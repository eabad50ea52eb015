package rowan

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptSource is a deterministic input Source fed from a JSON step list.
// It replays press/release/tap/wait steps one tick at a time, which makes
// demo runs reproducible and gives tests a scriptable keyboard.
//
// Supported actions: "press" and "release" take effect immediately and the
// next step runs on the same tick; "tap" presses a key and releases it
// after the given number of frames (default 1); "wait" holds the current
// key state for the given number of frames.
type ScriptSource struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	held      map[Action]bool
	tapTimers map[Action]int
	prevJump  bool
	done      bool
}

// actionNames maps script key names to logical actions.
var actionNames = map[string]Action{
	"forward": ActionForward,
	"back":    ActionBack,
	"left":    ActionLeft,
	"right":   ActionRight,
	"jump":    ActionJump,
}

// LoadScript parses a JSON input script and returns a ScriptSource ready to
// be used as a Source. Steps are validated up front so a typo fails at load
// time, not mid-replay.
func LoadScript(jsonData []byte) (*ScriptSource, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "release", "tap":
			if _, ok := actionNames[st.Key]; !ok {
				return nil, fmt.Errorf("parse input script: step %d: unknown key %q", i, st.Key)
			}
		case "wait":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptSource{
		steps:     script.Steps,
		held:      make(map[Action]bool),
		tapTimers: make(map[Action]int),
	}, nil
}

// Done reports whether every step has been executed and no tap is pending.
func (s *ScriptSource) Done() bool {
	return s.done
}

// Sample advances the script by one tick and returns the resulting input
// state. After the script finishes it keeps returning the final held state
// (normally all keys released).
func (s *ScriptSource) Sample() InputState {
	// Execute instantaneous steps until a wait (or the end) is reached.
	for s.waitCount == 0 && s.cursor < len(s.steps) {
		st := s.steps[s.cursor]
		s.cursor++

		switch st.Action {
		case "press":
			s.held[actionNames[st.Key]] = true
		case "release":
			s.held[actionNames[st.Key]] = false
		case "tap":
			a := actionNames[st.Key]
			s.held[a] = true
			frames := st.Frames
			if frames < 1 {
				frames = 1
			}
			s.tapTimers[a] = frames
		case "wait":
			if st.Frames > 0 {
				s.waitCount = st.Frames
			}
		}
	}
	if s.waitCount > 0 {
		s.waitCount--
	}

	in := InputState{
		Forward:  s.held[ActionForward],
		Back:     s.held[ActionBack],
		Left:     s.held[ActionLeft],
		Right:    s.held[ActionRight],
		JumpHeld: s.held[ActionJump],
	}
	in.JumpJustPressed = in.JumpHeld && !s.prevJump
	s.prevJump = in.JumpHeld

	// Count down pending tap releases after this tick's state is built.
	for a, frames := range s.tapTimers {
		frames--
		if frames <= 0 {
			delete(s.tapTimers, a)
			s.held[a] = false
		} else {
			s.tapTimers[a] = frames
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(s.tapTimers) == 0 {
		s.done = true
	}
	return in
}
