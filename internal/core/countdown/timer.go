package countdown

import (
	"fmt"

	"multitimer/internal/core/model"
)

// Timer is a single countdown entity. It owns its remaining-time
// bookkeeping and never performs I/O; completion is surfaced as a
// one-shot edge from Tick. All mutation happens through the Manager,
// which serializes access.
type Timer struct {
	id        string
	label     string
	duration  int
	remaining int
	state     model.State
	hotkey    string
	visual    model.VisualAlerts
	audio     model.AudioAlert
}

func newTimer(id string, defaults model.TimerDefaults) *Timer {
	return &Timer{
		id:        id,
		label:     defaults.Label,
		duration:  defaults.DurationSeconds,
		remaining: defaults.DurationSeconds,
		state:     model.StateStopped,
		visual:    defaults.VisualAlerts,
		audio:     defaults.AudioAlert,
	}
}

func newTimerFromConfig(config model.TimerConfig) *Timer {
	return &Timer{
		id:        config.ID,
		label:     config.Label,
		duration:  config.DurationSeconds,
		remaining: config.DurationSeconds,
		state:     model.StateStopped,
		hotkey:    config.Hotkey,
		visual:    config.VisualAlerts,
		audio:     config.AudioAlert,
	}
}

// ID returns the stable unique identifier assigned at creation.
func (timer *Timer) ID() string { return timer.id }

// Label returns the display label.
func (timer *Timer) Label() string { return timer.label }

// Duration returns the configured countdown length in seconds.
func (timer *Timer) Duration() int { return timer.duration }

// Remaining returns the remaining seconds, always within [0, Duration].
func (timer *Timer) Remaining() int { return timer.remaining }

// State returns the current lifecycle state.
func (timer *Timer) State() model.State { return timer.state }

// Hotkey returns the canonical hotkey string, or "" when unbound.
func (timer *Timer) Hotkey() string { return timer.hotkey }

// VisualAlerts returns the completion flash settings.
func (timer *Timer) VisualAlerts() model.VisualAlerts { return timer.visual }

// AudioAlert returns the completion sound settings.
func (timer *Timer) AudioAlert() model.AudioAlert { return timer.audio }

// Start begins or resumes the countdown. From STOPPED or COMPLETED the
// timer restarts from its full duration; from PAUSED it resumes. A
// RUNNING timer is left untouched.
func (timer *Timer) Start() {
	switch timer.state {
	case model.StateStopped, model.StateCompleted:
		timer.remaining = timer.duration
		timer.state = model.StateRunning
	case model.StatePaused:
		timer.state = model.StateRunning
	}
}

// Pause freezes a RUNNING countdown; any other state is a no-op.
func (timer *Timer) Pause() {
	if timer.state == model.StateRunning {
		timer.state = model.StatePaused
	}
}

// Toggle is the single action bound to hotkeys and buttons: pause when
// RUNNING, start otherwise.
func (timer *Timer) Toggle() {
	if timer.state == model.StateRunning {
		timer.Pause()
		return
	}
	timer.Start()
}

// Reset returns the timer to STOPPED with its full duration, from any state.
func (timer *Timer) Reset() {
	timer.state = model.StateStopped
	timer.remaining = timer.duration
}

// Tick advances a RUNNING countdown by one second. It reports true
// exactly once, on the tick that drives remaining to zero; the timer is
// COMPLETED afterwards and further ticks are no-ops.
func (timer *Timer) Tick() bool {
	if timer.state != model.StateRunning {
		return false
	}

	timer.remaining--
	if timer.remaining > 0 {
		return false
	}

	timer.remaining = 0
	timer.state = model.StateCompleted
	return true
}

// DisplayTime formats the remaining time as MM:SS.
func (timer *Timer) DisplayTime() string {
	seconds := timer.remaining
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Config snapshots the timer definition for persistence.
func (timer *Timer) Config() model.TimerConfig {
	return model.TimerConfig{
		ID:              timer.id,
		Label:           timer.label,
		DurationSeconds: timer.duration,
		Hotkey:          timer.hotkey,
		VisualAlerts:    timer.visual,
		AudioAlert:      timer.audio,
	}
}
