//go:build windows

package platform

import (
	"sync"
	"syscall"
	"time"

	"multitimer/internal/core/hotkey"
)

// pollInterval is how often key states are sampled. Hotkey chords are
// held for far longer than this, so polling does not miss combinations.
const pollInterval = 20 * time.Millisecond

type keySource struct {
	mu      sync.Mutex
	events  chan hotkey.KeyEvent
	stopCh  chan struct{}
	held    map[hotkey.Code]bool
	running bool
}

func newKeySource() hotkey.KeySource {
	return &keySource{
		events: make(chan hotkey.KeyEvent, 64),
		held:   map[hotkey.Code]bool{},
	}
}

func (source *keySource) Start() error {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.running {
		return nil
	}
	source.running = true
	source.stopCh = make(chan struct{})
	go source.poll()
	return nil
}

func (source *keySource) Events() <-chan hotkey.KeyEvent {
	return source.events
}

func (source *keySource) Stop() {
	source.mu.Lock()
	defer source.mu.Unlock()
	if !source.running {
		return
	}
	source.running = false
	close(source.stopCh)
}

func (source *keySource) poll() {
	user32 := syscall.NewLazyDLL("user32.dll")
	getAsyncKeyState := user32.NewProc("GetAsyncKeyState")
	tracked := hotkey.TrackedCodes()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-source.stopCh:
			return
		case <-ticker.C:
			for _, code := range tracked {
				state, _, _ := getAsyncKeyState.Call(uintptr(code))
				down := state&0x8000 != 0
				if down == source.held[code] {
					continue
				}
				source.held[code] = down
				select {
				case source.events <- hotkey.KeyEvent{Code: code, Pressed: down}:
				default:
				}
			}
		}
	}
}
