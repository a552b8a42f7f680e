package platform

import "multitimer/internal/core/hotkey"

// NewKeySource returns a platform-specific global key-event listener.
// Environments without a usable capture mechanism return a source whose
// Start fails with hotkey.ErrCaptureUnsupported; the application then
// degrades to UI-only timer control.
func NewKeySource() hotkey.KeySource {
	return newKeySource()
}

type unsupportedKeySource struct {
	events chan hotkey.KeyEvent
}

func newUnsupportedKeySource() hotkey.KeySource {
	return &unsupportedKeySource{events: make(chan hotkey.KeyEvent)}
}

func (source *unsupportedKeySource) Start() error {
	return hotkey.ErrCaptureUnsupported
}

func (source *unsupportedKeySource) Events() <-chan hotkey.KeyEvent {
	return source.events
}

func (source *unsupportedKeySource) Stop() {}
