package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"multitimer/internal/core/model"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Theme             string             `yaml:"theme"`
	AlwaysOnTop       bool               `yaml:"always_on_top"`
	Autostart         bool               `yaml:"autostart"`
	DefaultVisual     model.VisualAlerts `yaml:"default_visual_alerts"`
	DefaultAudio      model.AudioAlert   `yaml:"default_audio_alert"`
	WindowGeometry    yamlWindowGeometry `yaml:"window_geometry"`
	ActiveProfileName string             `yaml:"active_profile_name"`
}

type yamlWindowGeometry struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LoadSettings reads global settings from YAML.
// If the settings file does not exist, default settings are returned.
func LoadSettings(configDir string) (model.GlobalSettings, error) {
	settings := model.DefaultGlobalSettings()
	settingsPath := filepath.Join(configDir, settingsFileName)

	rawData, err := os.ReadFile(settingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes global settings to YAML.
func SaveSettings(configDir string, settings model.GlobalSettings) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		Theme:         string(settings.Theme),
		AlwaysOnTop:   settings.AlwaysOnTop,
		Autostart:     settings.Autostart,
		DefaultVisual: settings.DefaultVisualAlerts,
		DefaultAudio:  settings.DefaultAudioAlert,
		WindowGeometry: yamlWindowGeometry{
			X:      settings.WindowGeometry.X,
			Y:      settings.WindowGeometry.Y,
			Width:  settings.WindowGeometry.Width,
			Height: settings.WindowGeometry.Height,
		},
		ActiveProfileName: settings.ActiveProfileName,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, settingsFileName), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *model.GlobalSettings, fileData yamlSettings) {
	switch model.Theme(fileData.Theme) {
	case model.ThemeDark, model.ThemeLight, model.ThemeHighContrast:
		settings.Theme = model.Theme(fileData.Theme)
	}

	settings.AlwaysOnTop = fileData.AlwaysOnTop
	settings.Autostart = fileData.Autostart
	settings.DefaultVisualAlerts = fileData.DefaultVisual

	if fileData.DefaultAudio.Volume >= 0 && fileData.DefaultAudio.Volume <= 100 {
		settings.DefaultAudioAlert = fileData.DefaultAudio
	}

	if fileData.WindowGeometry.Width > 0 && fileData.WindowGeometry.Height > 0 {
		settings.WindowGeometry = model.WindowGeometry{
			X:      fileData.WindowGeometry.X,
			Y:      fileData.WindowGeometry.Y,
			Width:  fileData.WindowGeometry.Width,
			Height: fileData.WindowGeometry.Height,
		}
	}

	if fileData.ActiveProfileName != "" {
		settings.ActiveProfileName = fileData.ActiveProfileName
	}
}
