package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"multitimer/internal/core/model"
)

var themeOptions = []string{
	string(model.ThemeDark),
	string(model.ThemeLight),
	string(model.ThemeHighContrast),
}

// Window handles the global settings UI. It edits a copy of the settings
// and hands the result to onSave; validation and persistence stay with
// the configuration layer.
type Window struct {
	window   fyne.Window
	settings model.GlobalSettings
	onSave   func(model.GlobalSettings)

	theme       *widget.Select
	alwaysOnTop *widget.Check
	autostart   *widget.Check

	flashNumbers    *widget.Check
	flashBackground *widget.Check
	flashTaskbar    *widget.Check

	audioEnabled *widget.Check
	audioFile    *widget.Entry
	audioVolume  *widget.Slider
}

// New creates a settings window.
func New(app fyne.App, settings model.GlobalSettings, onSave func(model.GlobalSettings)) *Window {
	window := app.NewWindow("MultiTimer Settings")

	theme := widget.NewSelect(themeOptions, nil)
	theme.SetSelected(string(settings.Theme))

	alwaysOnTop := widget.NewCheck("Keep window on top", nil)
	alwaysOnTop.SetChecked(settings.AlwaysOnTop)

	autostart := widget.NewCheck("Start with the system", nil)
	autostart.SetChecked(settings.Autostart)

	flashNumbers := widget.NewCheck("Flash timer numbers", nil)
	flashNumbers.SetChecked(settings.DefaultVisualAlerts.FlashNumbers)

	flashBackground := widget.NewCheck("Flash background", nil)
	flashBackground.SetChecked(settings.DefaultVisualAlerts.FlashBackground)

	flashTaskbar := widget.NewCheck("Flash taskbar", nil)
	flashTaskbar.SetChecked(settings.DefaultVisualAlerts.FlashTaskbar)

	audioEnabled := widget.NewCheck("Play a sound", nil)
	audioEnabled.SetChecked(settings.DefaultAudioAlert.Enabled)

	audioFile := widget.NewEntry()
	audioFile.SetPlaceHolder("sound file path")
	audioFile.SetText(settings.DefaultAudioAlert.FilePath)

	audioVolume := widget.NewSlider(0, 100)
	audioVolume.Value = float64(settings.DefaultAudioAlert.Volume)
	audioVolume.Step = 1

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Theme"), theme),
		alwaysOnTop,
		autostart,
		widget.NewLabelWithStyle("New timer alerts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		flashNumbers,
		flashBackground,
		flashTaskbar,
		audioEnabled,
		audioFile,
		widget.NewLabel("Volume"),
		audioVolume,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 480))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs := &Window{
		window:          window,
		settings:        settings,
		onSave:          onSave,
		theme:           theme,
		alwaysOnTop:     alwaysOnTop,
		autostart:       autostart,
		flashNumbers:    flashNumbers,
		flashBackground: flashBackground,
		flashTaskbar:    flashTaskbar,
		audioEnabled:    audioEnabled,
		audioFile:       audioFile,
		audioVolume:     audioVolume,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.GlobalSettings) {
	prefs.settings = settings
	prefs.theme.SetSelected(string(settings.Theme))
	prefs.alwaysOnTop.SetChecked(settings.AlwaysOnTop)
	prefs.autostart.SetChecked(settings.Autostart)
	prefs.flashNumbers.SetChecked(settings.DefaultVisualAlerts.FlashNumbers)
	prefs.flashBackground.SetChecked(settings.DefaultVisualAlerts.FlashBackground)
	prefs.flashTaskbar.SetChecked(settings.DefaultVisualAlerts.FlashTaskbar)
	prefs.audioEnabled.SetChecked(settings.DefaultAudioAlert.Enabled)
	prefs.audioFile.SetText(settings.DefaultAudioAlert.FilePath)
	prefs.audioVolume.Value = float64(settings.DefaultAudioAlert.Volume)
	prefs.audioVolume.Refresh()
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	settings.Theme = model.Theme(prefs.theme.Selected)
	settings.AlwaysOnTop = prefs.alwaysOnTop.Checked
	settings.Autostart = prefs.autostart.Checked
	settings.DefaultVisualAlerts = model.VisualAlerts{
		FlashNumbers:    prefs.flashNumbers.Checked,
		FlashBackground: prefs.flashBackground.Checked,
		FlashTaskbar:    prefs.flashTaskbar.Checked,
	}
	settings.DefaultAudioAlert = model.AudioAlert{
		Enabled:  prefs.audioEnabled.Checked,
		FilePath: prefs.audioFile.Text,
		Volume:   int(prefs.audioVolume.Value),
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
