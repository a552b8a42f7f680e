package main

import (
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"multitimer/internal/alert"
	"multitimer/internal/config"
	"multitimer/internal/core/countdown"
	"multitimer/internal/core/hotkey"
	"multitimer/internal/core/model"
	"multitimer/internal/logging"
	"multitimer/internal/platform"
	"multitimer/internal/ui/preferences"
	"multitimer/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	charmlog "github.com/charmbracelet/log"
)

const appName = "MultiTimer"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		stdlog.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	service := platform.NewService()
	baseDir, err := service.GetConfigDir()
	if err != nil {
		stdlog.Printf("config dir: %v", err)
		return
	}
	configDir := filepath.Join(baseDir, appName)

	logger, err := logging.New(logging.Config{
		Debug:     os.Getenv("MULTITIMER_DEBUG") != "",
		ConfigDir: configDir,
	})
	if err != nil {
		stdlog.Printf("logging: %v", err)
		return
	}

	fyneApp := app.NewWithID("com.multitimer.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Error("system tray unsupported on this platform")
		return
	}

	// Hotkey events arrive on the listener goroutine; dispatch is
	// marshaled onto the UI loop so timer state stays single-writer.
	var timers *countdown.Manager
	var alerts *alert.Dispatcher
	hotkeys := hotkey.NewManager(platform.NewKeySource(), func(timerID string) {
		fyne.Do(func() {
			alerts.Dismiss(timerID)
			timers.DispatchHotkeyAction(timerID)
		})
	})
	timers = countdown.NewManager(hotkeys, logger)

	profiles, err := config.New(configDir, timers, logger)
	if err != nil {
		logger.Error("load configuration", "err", err)
		return
	}
	settings := profiles.Settings()

	if execPath, execErr := os.Executable(); execErr == nil {
		if autoErr := service.SetAutostart(settings.Autostart, appName, execPath); autoErr != nil {
			logger.Warn("autostart", "err", autoErr)
		}
	}

	mainWindow := fyneApp.NewWindow(appName)
	mainWindow.SetContent(widget.NewLabel("MultiTimer is running in the system tray."))
	if settings.WindowGeometry.Width > 0 && settings.WindowGeometry.Height > 0 {
		mainWindow.Resize(fyne.NewSize(
			float32(settings.WindowGeometry.Width),
			float32(settings.WindowGeometry.Height),
		))
	}
	mainWindow.SetCloseIntercept(func() {
		mainWindow.Hide()
	})
	mainWindow.Hide()
	desktopApp.SetSystemTrayWindow(mainWindow)

	flasher := alert.NewFlasher(alert.DefaultFlashConfig(), func(frame alert.FlashFrame) {
		if frame.Visual.FlashTaskbar && frame.On {
			fyne.Do(func() {
				mainWindow.RequestFocus()
			})
		}
	})
	alerts = alert.NewDispatcher(alert.NewPlayer(), flasher, logger)

	prefsWindow := preferences.New(fyneApp, settings, func(updated model.GlobalSettings) {
		if err := profiles.UpdateSettings(updated); err != nil {
			logger.Warn("save settings", "err", err)
			return
		}
		if execPath, execErr := os.Executable(); execErr == nil {
			if autoErr := service.SetAutostart(updated.Autostart, appName, execPath); autoErr != nil {
				logger.Warn("autostart", "err", autoErr)
			}
		}
	})

	stopTick := make(chan struct{})

	var trayManager *tray.Manager
	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnShowWindow: func() {
			mainWindow.Show()
		},
		OnPauseAll: func() {
			timers.PauseAll()
		},
		OnResetAll: func() {
			timers.ResetAll()
			flasher.StopAll()
		},
		OnSwitchProfile: func(name string) {
			if switchErr := profiles.SwitchActive(name); switchErr != nil {
				logger.Warn("switch profile", "profile", name, "err", switchErr)
				return
			}
			refreshTrayProfiles(trayManager, profiles, logger)
		},
		OnSaveProfile: func() {
			if saveErr := profiles.SaveActive(); saveErr != nil {
				logger.Warn("save profile", "err", saveErr)
			}
		},
		OnSettings: func() {
			prefsWindow.UpdateSettings(profiles.Settings())
			prefsWindow.Show()
		},
		OnQuit: func() {
			close(stopTick)
			hotkeys.Stop()
			flasher.StopAll()
			if flushErr := profiles.Shutdown(); flushErr != nil {
				logger.Warn("flush state on quit", "err", flushErr)
			}
			timers.Close()
			fyneApp.Quit()
		},
	})
	refreshTrayProfiles(trayManager, profiles, logger)

	if startErr := hotkeys.Start(); startErr != nil {
		logger.Warn("global hotkeys unavailable", "err", startErr)
	}

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stopTick:
				return
			case <-ticker.C:
				fyne.Do(func() {
					completed := timers.AdvanceAll()
					for _, timer := range completed {
						alerts.Completed(timer.ID(), timer.VisualAlerts(), timer.AudioAlert())
					}
					trayManager.SetTimerCounts(runningCount(timers), timers.Len())
				})
			}
		}
	}()

	fyneApp.Run()
}

func runningCount(timers *countdown.Manager) int {
	count := 0
	for _, timer := range timers.Timers() {
		if timer.State() == model.StateRunning {
			count++
		}
	}
	return count
}

func refreshTrayProfiles(trayManager *tray.Manager, profiles *config.Manager, logger *charmlog.Logger) {
	names, err := profiles.ListProfiles()
	if err != nil {
		logger.Warn("list profiles", "err", err)
		return
	}
	trayManager.SetProfiles(names, profiles.ActiveProfileName())
}
