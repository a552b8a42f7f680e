//go:build darwin

package platform

import "multitimer/internal/core/hotkey"

// Global key capture on macOS needs an event tap with accessibility
// permissions, which this build does not carry.
func newKeySource() hotkey.KeySource {
	return newUnsupportedKeySource()
}
