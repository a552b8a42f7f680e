package alert

import (
	"github.com/charmbracelet/log"

	"multitimer/internal/core/model"
)

// Dispatcher consumes timer completion edges and fans them out to the
// audio player and the flash scheduler. Alert failures are logged and
// never propagate back into timer logic.
type Dispatcher struct {
	player  Player
	flasher *Flasher
	logger  *log.Logger
}

// NewDispatcher wires the alert boundary.
func NewDispatcher(player Player, flasher *Flasher, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{
		player:  player,
		flasher: flasher,
		logger:  logger,
	}
}

// Completed handles one completion edge for a timer.
func (dispatcher *Dispatcher) Completed(timerID string, visual model.VisualAlerts, audio model.AudioAlert) {
	if dispatcher.flasher != nil {
		dispatcher.flasher.Start(timerID, visual)
	}

	if dispatcher.player == nil || !audio.Enabled || audio.FilePath == "" {
		return
	}
	go func() {
		if err := dispatcher.player.Play(audio.FilePath, audio.Volume); err != nil {
			dispatcher.logger.Warn("completion sound failed", "timer", timerID, "err", err)
		}
	}()
}

// Dismiss stops any visual alert still running for a timer, for example
// when the user resets it mid-flash.
func (dispatcher *Dispatcher) Dismiss(timerID string) {
	if dispatcher.flasher != nil {
		dispatcher.flasher.Stop(timerID)
	}
}
