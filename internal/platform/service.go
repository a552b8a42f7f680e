package platform

import (
	"fmt"
	"os"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	SetAutostart(enabled bool, appName, execPath string) error
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// SetAutostart installs or removes a login launch entry for the app.
func (service *platformService) SetAutostart(enabled bool, appName, execPath string) error {
	if appName == "" {
		return fmt.Errorf("autostart: app name is empty")
	}
	if enabled {
		if execPath == "" {
			return fmt.Errorf("autostart: exec path is empty")
		}
		return service.enableAutostart(appName, execPath)
	}
	return service.disableAutostart(appName)
}
