package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowWindow    func()
	OnPauseAll      func()
	OnResetAll      func()
	OnSwitchProfile func(name string)
	OnSaveProfile   func()
	OnSettings      func()
	OnQuit          func()
}

// Manager handles system tray state: a status line with the running
// timer count and a submenu for switching the active profile.
type Manager struct {
	app           desktop.App
	callbacks     Callbacks
	statusLabel   string
	profileNames  []string
	activeProfile string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "starting...",
	}
	manager.rebuildMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.rebuildMenu()
}

// SetTimerCounts renders a running/total summary in the status line.
func (manager *Manager) SetTimerCounts(running, total int) {
	manager.SetStatus(fmt.Sprintf("%d of %d timers running", running, total))
}

// SetProfiles replaces the profile submenu entries.
func (manager *Manager) SetProfiles(names []string, active string) {
	manager.profileNames = append([]string(nil), names...)
	manager.activeProfile = active
	manager.rebuildMenu()
}

func (manager *Manager) rebuildMenu() {
	if manager.app == nil {
		return
	}

	statusItem := fyne.NewMenuItem("Status: "+manager.statusLabel, nil)
	statusItem.Disabled = true

	showItem := fyne.NewMenuItem("Show timers", func() {
		if manager.callbacks.OnShowWindow != nil {
			manager.callbacks.OnShowWindow()
		}
	})

	profilesItem := fyne.NewMenuItem("Profiles", nil)
	profilesItem.ChildMenu = fyne.NewMenu("", manager.profileItems()...)

	pauseItem := fyne.NewMenuItem("Pause all timers", func() {
		if manager.callbacks.OnPauseAll != nil {
			manager.callbacks.OnPauseAll()
		}
	})

	resetItem := fyne.NewMenuItem("Reset all timers", func() {
		if manager.callbacks.OnResetAll != nil {
			manager.callbacks.OnResetAll()
		}
	})

	saveItem := fyne.NewMenuItem("Save profile now", func() {
		if manager.callbacks.OnSaveProfile != nil {
			manager.callbacks.OnSaveProfile()
		}
	})

	settingsItem := fyne.NewMenuItem("Settings...", func() {
		if manager.callbacks.OnSettings != nil {
			manager.callbacks.OnSettings()
		}
	})

	quitItem := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})

	manager.app.SetSystemTrayMenu(fyne.NewMenu("MultiTimer",
		statusItem,
		showItem,
		profilesItem,
		pauseItem,
		resetItem,
		saveItem,
		settingsItem,
		quitItem,
	))
}

func (manager *Manager) profileItems() []*fyne.MenuItem {
	items := make([]*fyne.MenuItem, 0, len(manager.profileNames))
	for _, name := range manager.profileNames {
		profileName := name
		item := fyne.NewMenuItem(profileName, func() {
			if manager.callbacks.OnSwitchProfile != nil {
				manager.callbacks.OnSwitchProfile(profileName)
			}
		})
		item.Checked = profileName == manager.activeProfile
		items = append(items, item)
	}
	return items
}
