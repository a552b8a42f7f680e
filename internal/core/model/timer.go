package model

// State represents the current lifecycle phase of a timer.
type State string

const (
	StateStopped   State = "stopped"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// VisualAlerts selects which visual cues fire on completion.
type VisualAlerts struct {
	FlashNumbers    bool `json:"flash_numbers" yaml:"flash_numbers"`
	FlashBackground bool `json:"flash_background" yaml:"flash_background"`
	FlashTaskbar    bool `json:"flash_taskbar" yaml:"flash_taskbar"`
}

// AudioAlert configures completion sound playback.
type AudioAlert struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	FilePath string `json:"file_path" yaml:"file_path"`
	Volume   int    `json:"volume" yaml:"volume"`
}

// TimerConfig is the persisted definition of a single timer.
type TimerConfig struct {
	ID              string       `json:"id"`
	Label           string       `json:"label"`
	DurationSeconds int          `json:"duration_seconds"`
	Hotkey          string       `json:"hotkey,omitempty"`
	VisualAlerts    VisualAlerts `json:"visual_alerts"`
	AudioAlert      AudioAlert   `json:"audio_alert"`
}

// TimerDefaults seeds newly created timers.
type TimerDefaults struct {
	Label           string
	DurationSeconds int
	VisualAlerts    VisualAlerts
	AudioAlert      AudioAlert
}

// DefaultTimerDefaults returns the built-in template for new timers.
func DefaultTimerDefaults() TimerDefaults {
	return TimerDefaults{
		Label:           "New Timer",
		DurationSeconds: 60,
		VisualAlerts: VisualAlerts{
			FlashNumbers: true,
			FlashTaskbar: true,
		},
		AudioAlert: AudioAlert{
			Enabled: true,
			Volume:  80,
		},
	}
}
