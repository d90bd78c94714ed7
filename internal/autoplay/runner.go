package autoplay

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/playroot/daily-arcade-go/internal/session"
)

// DefaultStepCap bounds one Play. A strategy that cannot terminate its
// session within the cap is reported as an error instead of spinning.
const DefaultStepCap = 10000

// Runner drives one session with a strategy script until the terminal
// transition.
type Runner struct {
	vm      *VM
	StepCap int
}

// NewRunner compiles the strategy source into a fresh sandboxed VM.
func NewRunner(source string) (*Runner, error) {
	vm := NewVM()
	if err := vm.Execute(source); err != nil {
		return nil, fmt.Errorf("compile strategy: %w", err)
	}
	return &Runner{vm: vm, StepCap: DefaultStepCap}, nil
}

// Logs returns the strategy's buffered log output.
func (r *Runner) Logs() []LogEntry {
	return r.vm.GetLogs()
}

// Play runs the session to completion. Each step passes the state snapshot
// to onState(state) and applies the returned action. A nil action (script
// returned undefined) falls back to a 100ms tick.
func (r *Runner) Play(sess *session.Session) (session.Result, error) {
	if !sess.State().Started {
		if err := sess.Start(); err != nil {
			return session.Result{}, fmt.Errorf("start session: %w", err)
		}
	}

	for step := 0; step < r.StepCap; step++ {
		if res, done := sess.Result(); done {
			return res, nil
		}

		snapshot, err := stateSnapshot(sess)
		if err != nil {
			return session.Result{}, err
		}
		action, err := r.vm.CallOnState(snapshot)
		if err != nil {
			return session.Result{}, fmt.Errorf("step %d: %w", step, err)
		}

		if err := applyAction(sess, action); err != nil {
			// A completed session ends the run cleanly even when the
			// strategy raced the terminal transition.
			if err == session.ErrCompleted {
				break
			}
			return session.Result{}, fmt.Errorf("step %d: %w", step, err)
		}
	}

	if res, done := sess.Result(); done {
		return res, nil
	}
	return session.Result{}, fmt.Errorf("session not terminal after %d steps", r.StepCap)
}

// stateSnapshot converts the session state into plain maps and slices so the
// script sees the same shapes the HTTP API serves.
func stateSnapshot(sess *session.Session) (map[string]any, error) {
	raw, err := json.Marshal(sess.State())
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return out, nil
}

func applyAction(sess *session.Session, action map[string]any) error {
	if action == nil {
		return sess.HandleTick(100 * time.Millisecond)
	}

	typ, _ := action["type"].(string)
	switch typ {
	case "tick":
		ms := numField(action, "deltaMs")
		if ms <= 0 {
			ms = 100
		}
		return sess.HandleTick(time.Duration(ms) * time.Millisecond)

	case "input":
		in := session.Input{
			Type:      session.InputType(strField(action, "input", "type")),
			Index:     int(numNested(action, "input", "index")),
			Direction: session.Direction(strField(action, "input", "direction")),
			X:         numNested(action, "input", "x"),
			Y:         numNested(action, "input", "y"),
		}
		return sess.HandleInput(in)

	default:
		return fmt.Errorf("unknown action type %q", typ)
	}
}

// toNumber accepts every numeric kind goja's Export produces: integral JS
// numbers export as int64, fractional ones as float64.
func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func numField(m map[string]any, key string) float64 {
	return toNumber(m[key])
}

func nested(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

func strField(m map[string]any, key, sub string) string {
	v, _ := nested(m, key)[sub].(string)
	return v
}

func numNested(m map[string]any, key, sub string) float64 {
	return toNumber(nested(m, key)[sub])
}
