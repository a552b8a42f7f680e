package hotkey

import (
	"errors"
	"sync"

	"multitimer/internal/core/validate"
)

// ErrCaptureUnsupported indicates global key capture is not available on
// this system. The application degrades to UI-only timer control.
var ErrCaptureUnsupported = errors.New("global key capture unsupported")

// Binding associates a canonical hotkey string with a timer id.
type Binding struct {
	TimerID string
	Hotkey  string
}

// Manager owns the live mapping from canonical hotkey string to timer id
// and routes raw key events from the OS listener to the dispatch callback.
//
// Key events arrive on the listener goroutine; all internal state is
// mutex-guarded. The dispatch callback is also invoked on that goroutine,
// so callers must marshal into their own execution context (the UI loop)
// before touching timer state.
type Manager struct {
	mu       sync.Mutex
	source   KeySource
	dispatch func(timerID string)
	bindings map[string]string
	byTimer  map[string]string
	pressed  map[Code]struct{}
	session  *captureSession
	stopCh   chan struct{}
	running  bool
}

// NewManager creates a hotkey manager. Dispatch is invoked with the bound
// timer id whenever a registered combination is pressed.
func NewManager(source KeySource, dispatch func(timerID string)) *Manager {
	return &Manager{
		source:   source,
		dispatch: dispatch,
		bindings: map[string]string{},
		byTimer:  map[string]string{},
		pressed:  map[Code]struct{}{},
	}
}

// Start launches the listener loop.
func (manager *Manager) Start() error {
	manager.mu.Lock()
	if manager.running {
		manager.mu.Unlock()
		return nil
	}
	if manager.source == nil {
		manager.mu.Unlock()
		return ErrCaptureUnsupported
	}
	manager.running = true
	manager.stopCh = make(chan struct{})
	manager.mu.Unlock()

	if err := manager.source.Start(); err != nil {
		manager.mu.Lock()
		manager.running = false
		manager.mu.Unlock()
		return err
	}

	go manager.run()
	return nil
}

// Stop terminates the listener loop.
func (manager *Manager) Stop() {
	manager.mu.Lock()
	if !manager.running {
		manager.mu.Unlock()
		return
	}
	manager.running = false
	close(manager.stopCh)
	if session := manager.session; session != nil {
		manager.session = nil
		session.finish(Snapshot{Canceled: true, Done: true})
	}
	manager.mu.Unlock()

	manager.source.Stop()
}

// Register validates hotkey shape and profile-scoped uniqueness, then
// updates the live dispatch map. An empty hotkey clears the binding.
func (manager *Manager) Register(timerID, canonical string) error {
	if err := validate.HotkeyString(canonical); err != nil {
		return err
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()

	if canonical == "" {
		manager.unregisterLocked(timerID)
		return nil
	}
	if owner, taken := manager.bindings[canonical]; taken && owner != timerID {
		return &validate.Error{Field: "hotkey", Rule: "already in use"}
	}

	manager.unregisterLocked(timerID)
	manager.bindings[canonical] = timerID
	manager.byTimer[timerID] = canonical
	return nil
}

// Unregister removes the binding held by timerID, if any.
func (manager *Manager) Unregister(timerID string) {
	manager.mu.Lock()
	manager.unregisterLocked(timerID)
	manager.mu.Unlock()
}

// Clear removes all bindings.
func (manager *Manager) Clear() {
	manager.mu.Lock()
	manager.bindings = map[string]string{}
	manager.byTimer = map[string]string{}
	manager.mu.Unlock()
}

// ReplaceAll atomically swaps the dispatch map for a profile switch. The
// first binding wins when stored data carries a duplicate; the conflict is
// reported so the caller can log it.
func (manager *Manager) ReplaceAll(bindings []Binding) error {
	fresh := map[string]string{}
	freshByTimer := map[string]string{}
	var conflict error

	for _, binding := range bindings {
		if binding.Hotkey == "" {
			continue
		}
		if err := validate.HotkeyString(binding.Hotkey); err != nil {
			conflict = err
			continue
		}
		if _, taken := fresh[binding.Hotkey]; taken {
			conflict = &validate.Error{Field: "hotkey", Rule: "already in use"}
			continue
		}
		fresh[binding.Hotkey] = binding.TimerID
		freshByTimer[binding.TimerID] = binding.Hotkey
	}

	manager.mu.Lock()
	manager.bindings = fresh
	manager.byTimer = freshByTimer
	manager.mu.Unlock()
	return conflict
}

// BindingFor returns the canonical hotkey bound to timerID, or "".
func (manager *Manager) BindingFor(timerID string) string {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.byTimer[timerID]
}

func (manager *Manager) unregisterLocked(timerID string) {
	if canonical, ok := manager.byTimer[timerID]; ok {
		delete(manager.bindings, canonical)
		delete(manager.byTimer, timerID)
	}
}

func (manager *Manager) run() {
	events := manager.source.Events()
	for {
		select {
		case <-manager.stopCh:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			manager.HandleEvent(event)
		}
	}
}

// HandleEvent processes one raw key transition. Exported so tests and
// in-process feeders can drive the manager without an OS listener.
func (manager *Manager) HandleEvent(event KeyEvent) {
	manager.mu.Lock()

	if event.Pressed {
		manager.pressed[event.Code] = struct{}{}
	} else {
		delete(manager.pressed, event.Code)
	}

	if manager.session != nil {
		manager.handleCaptureEventLocked(event)
		manager.mu.Unlock()
		return
	}

	if !event.Pressed {
		manager.mu.Unlock()
		return
	}

	canonical, err := Normalize(manager.pressedLocked())
	if err != nil {
		// Most global keypresses are not bound combinations.
		manager.mu.Unlock()
		return
	}
	timerID, matched := manager.bindings[canonical]
	dispatch := manager.dispatch
	manager.mu.Unlock()

	if matched && dispatch != nil {
		dispatch(timerID)
	}
}

func (manager *Manager) pressedLocked() []Code {
	codes := make([]Code, 0, len(manager.pressed))
	for code := range manager.pressed {
		codes = append(codes, code)
	}
	return codes
}
