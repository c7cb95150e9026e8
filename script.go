package flick

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action   string  `json:"action"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	CX       float64 `json:"cx,omitempty"`
	CY       float64 `json:"cy,omitempty"`
	FromDist float64 `json:"fromDist,omitempty"`
	ToDist   float64 `json:"toDist,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected gestures across frames for automated demos and
// replayable interaction recordings. Drive it once per frame with Step,
// passing the Injector whose output feeds your Detector.
//
// Scripts are JSON documents of the form:
//
//	{"steps": [
//	  {"action": "tap", "x": 100, "y": 40},
//	  {"action": "wait", "frames": 30},
//	  {"action": "drag", "fromX": 200, "fromY": 64, "toX": 40, "toY": 64, "frames": 12}
//	]}
//
// Supported actions are press, move, release, tap, drag, pinch, and wait.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script. Unknown actions and empty scripts
// are rejected at load time.
func LoadScript(jsonData []byte) (*Script, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for idx, st := range script.Steps {
		switch st.Action {
		case "press", "move", "release", "tap", "drag", "pinch", "wait":
		default:
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", idx, st.Action)
		}
	}
	return &Script{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed and the
// injector has drained.
func (r *Script) Done() bool {
	return r.done
}

// Step advances the script by one frame, queueing gestures on the injector
// as their turn comes up. Call once per frame before draining the injector.
func (r *Script) Step(inj *Injector) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if inj.Pending() > 0 {
		return
	}
	// Count down wait frames.
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
	case "press":
		inj.Press(st.X, st.Y)
	case "move":
		inj.Move(st.X, st.Y)
	case "release":
		inj.Release(st.X, st.Y)
	case "tap":
		inj.Tap(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		inj.Drag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "pinch":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		inj.Pinch(st.CX, st.CY, st.FromDist, st.ToDist, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && inj.Pending() == 0 {
		r.done = true
	}
}
