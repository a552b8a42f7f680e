package alert

import (
	"context"
	"sync"
	"time"

	"multitimer/internal/core/model"
)

// FlashFrame is one on/off step of a completion flash sequence.
type FlashFrame struct {
	TimerID string
	Visual  model.VisualAlerts
	On      bool
	// Final marks the last frame; it always carries On=false so the
	// presentation layer ends in the normal state.
	Final bool
}

// FlashConfig contains flash timing values.
type FlashConfig struct {
	Interval time.Duration
	Duration time.Duration
}

// DefaultFlashConfig mirrors a 3 second alert flashing twice per second.
func DefaultFlashConfig() FlashConfig {
	return FlashConfig{
		Interval: 500 * time.Millisecond,
		Duration: 3 * time.Second,
	}
}

// Flasher drives completion flash sequences. The core only guarantees a
// single completion edge per run; the flasher expands that edge into the
// repeated on/off frames the presentation layer renders.
type Flasher struct {
	mu     sync.Mutex
	config FlashConfig
	apply  func(FlashFrame)
	active map[string]context.CancelFunc
}

// NewFlasher creates a flasher delivering frames through apply.
func NewFlasher(config FlashConfig, apply func(FlashFrame)) *Flasher {
	if config.Interval <= 0 {
		config.Interval = 500 * time.Millisecond
	}
	if config.Duration <= 0 {
		config.Duration = 3 * time.Second
	}
	return &Flasher{
		config: config,
		apply:  apply,
		active: map[string]context.CancelFunc{},
	}
}

// Start begins a flash sequence for a timer, replacing any sequence
// already running for it.
func (flasher *Flasher) Start(timerID string, visual model.VisualAlerts) {
	if !visual.FlashNumbers && !visual.FlashBackground && !visual.FlashTaskbar {
		return
	}

	flasher.mu.Lock()
	if cancel, ok := flasher.active[timerID]; ok {
		cancel()
	}
	runCtx, cancel := context.WithCancel(context.Background())
	flasher.active[timerID] = cancel
	flasher.mu.Unlock()

	go flasher.run(runCtx, timerID, visual)
}

// Stop cancels the flash sequence for a timer, if any.
func (flasher *Flasher) Stop(timerID string) {
	flasher.mu.Lock()
	if cancel, ok := flasher.active[timerID]; ok {
		cancel()
		delete(flasher.active, timerID)
	}
	flasher.mu.Unlock()
}

// StopAll cancels every running sequence.
func (flasher *Flasher) StopAll() {
	flasher.mu.Lock()
	for timerID, cancel := range flasher.active {
		cancel()
		delete(flasher.active, timerID)
	}
	flasher.mu.Unlock()
}

func (flasher *Flasher) run(ctx context.Context, timerID string, visual model.VisualAlerts) {
	deadline := time.Now().Add(flasher.config.Duration)
	on := true

	for time.Now().Before(deadline) {
		flasher.apply(FlashFrame{TimerID: timerID, Visual: visual, On: on})
		if !sleepWithContext(ctx, flasher.config.Interval) {
			break
		}
		on = !on
	}

	flasher.apply(FlashFrame{TimerID: timerID, Visual: visual, Final: true})

	flasher.mu.Lock()
	if _, ok := flasher.active[timerID]; ok {
		delete(flasher.active, timerID)
	}
	flasher.mu.Unlock()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
