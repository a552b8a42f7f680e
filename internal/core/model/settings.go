package model

// Theme selects the UI color scheme.
type Theme string

const (
	ThemeDark         Theme = "dark"
	ThemeLight        Theme = "light"
	ThemeHighContrast Theme = "high_contrast"
)

// WindowGeometry is the best-effort persisted window position and size.
// Restoration may be approximate; values are never authoritative.
type WindowGeometry struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GlobalSettings is process-wide state loaded at startup and flushed on
// every settings change and on shutdown.
type GlobalSettings struct {
	Theme               Theme
	AlwaysOnTop         bool
	Autostart           bool
	DefaultVisualAlerts VisualAlerts
	DefaultAudioAlert   AudioAlert
	WindowGeometry      WindowGeometry
	ActiveProfileName   string
}

// DefaultGlobalSettings returns settings used when no file exists yet.
func DefaultGlobalSettings() GlobalSettings {
	defaults := DefaultTimerDefaults()
	return GlobalSettings{
		Theme:               ThemeDark,
		AlwaysOnTop:         true,
		Autostart:           false,
		DefaultVisualAlerts: defaults.VisualAlerts,
		DefaultAudioAlert:   defaults.AudioAlert,
		WindowGeometry:      WindowGeometry{X: 100, Y: 100, Width: 400, Height: 300},
		ActiveProfileName:   DefaultProfileName,
	}
}

// TimerDefaults builds the template applied to newly created timers.
func (settings GlobalSettings) TimerDefaults() TimerDefaults {
	defaults := DefaultTimerDefaults()
	defaults.VisualAlerts = settings.DefaultVisualAlerts
	defaults.AudioAlert = settings.DefaultAudioAlert
	return defaults
}
