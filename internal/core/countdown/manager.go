package countdown

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"multitimer/internal/core/hotkey"
	"multitimer/internal/core/model"
	"multitimer/internal/core/validate"
)

// HotkeyRegistry is the binding surface the manager needs. Implemented by
// hotkey.Manager.
type HotkeyRegistry interface {
	Register(timerID, canonical string) error
	Unregister(timerID string)
	ReplaceAll(bindings []hotkey.Binding) error
}

// Manager owns the ordered timer set of the active profile, advances it
// on a periodic tick and routes hotkey-triggered commands to the right
// timer.
type Manager struct {
	mu       sync.Mutex
	timers   []*Timer
	byID     map[string]*Timer
	registry HotkeyRegistry
	events   []chan Event
	logger   *log.Logger
}

// NewManager creates an empty timer manager.
func NewManager(registry HotkeyRegistry, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		byID:     map[string]*Timer{},
		registry: registry,
		logger:   logger,
	}
}

// Subscribe registers a new observer channel.
func (manager *Manager) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	manager.mu.Lock()
	manager.events = append(manager.events, ch)
	manager.mu.Unlock()
	return ch
}

// Close shuts down all observer channels.
func (manager *Manager) Close() {
	manager.mu.Lock()
	events := manager.events
	manager.events = nil
	manager.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// CreateTimer allocates a new timer with a process-unique id, appended to
// the active set. Defaults are assumed already validated.
func (manager *Manager) CreateTimer(defaults model.TimerDefaults) *Timer {
	timer := newTimer(uuid.NewString(), defaults)

	manager.mu.Lock()
	manager.timers = append(manager.timers, timer)
	manager.byID[timer.id] = timer
	manager.emitLocked(Event{Type: EventSetChanged, TimerID: timer.id, At: time.Now()})
	manager.mu.Unlock()

	return timer
}

// DeleteTimer removes a timer and releases any hotkey binding it held.
// An unknown id is a logged no-op.
func (manager *Manager) DeleteTimer(timerID string) {
	manager.mu.Lock()
	timer, ok := manager.byID[timerID]
	if !ok {
		manager.mu.Unlock()
		manager.logger.Warn("delete timer: unknown id", "timer", timerID)
		return
	}
	delete(manager.byID, timerID)
	for index, candidate := range manager.timers {
		if candidate == timer {
			manager.timers = append(manager.timers[:index], manager.timers[index+1:]...)
			break
		}
	}
	manager.emitLocked(Event{Type: EventSetChanged, TimerID: timerID, At: time.Now()})
	manager.mu.Unlock()

	if manager.registry != nil {
		manager.registry.Unregister(timerID)
	}
}

// Get returns the timer with the given id.
func (manager *Manager) Get(timerID string) (*Timer, bool) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	timer, ok := manager.byID[timerID]
	return timer, ok
}

// Timers returns the ordered timer set.
func (manager *Manager) Timers() []*Timer {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return append([]*Timer(nil), manager.timers...)
}

// Len returns the number of timers.
func (manager *Manager) Len() int {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return len(manager.timers)
}

// AdvanceAll ticks every RUNNING timer by one second and returns the
// timers that just completed this cycle, for the alert boundary to
// consume. Timers never affect each other, so iteration order does not
// matter for the outcome.
func (manager *Manager) AdvanceAll() []*Timer {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	now := time.Now()
	var completed []*Timer
	for _, timer := range manager.timers {
		if timer.state != model.StateRunning {
			continue
		}
		if timer.Tick() {
			completed = append(completed, timer)
			manager.emitLocked(Event{
				Type:    EventCompleted,
				TimerID: timer.id,
				Label:   timer.label,
				State:   timer.state,
				At:      now,
			})
			continue
		}
		manager.emitLocked(Event{
			Type:      EventTick,
			TimerID:   timer.id,
			Label:     timer.label,
			State:     timer.state,
			Remaining: timer.remaining,
			At:        now,
		})
	}
	return completed
}

// DispatchHotkeyAction toggles the addressed timer. Invoked by the hotkey
// manager; an unknown id is a logged no-op, never fatal, since a timer
// can be deleted while its hotkey fires.
func (manager *Manager) DispatchHotkeyAction(timerID string) {
	manager.mu.Lock()
	timer, ok := manager.byID[timerID]
	if !ok {
		manager.mu.Unlock()
		manager.logger.Warn("hotkey action: unknown timer id", "timer", timerID)
		return
	}
	timer.Toggle()
	manager.emitStateLocked(timer)
	manager.mu.Unlock()
}

// Toggle starts or pauses a timer by id.
func (manager *Manager) Toggle(timerID string) {
	manager.withTimer(timerID, "toggle", func(timer *Timer) { timer.Toggle() })
}

// Reset returns a timer to STOPPED at full duration.
func (manager *Manager) Reset(timerID string) {
	manager.withTimer(timerID, "reset", func(timer *Timer) { timer.Reset() })
}

// PauseAll pauses every RUNNING timer.
func (manager *Manager) PauseAll() {
	manager.mu.Lock()
	for _, timer := range manager.timers {
		if timer.state == model.StateRunning {
			timer.Pause()
			manager.emitStateLocked(timer)
		}
	}
	manager.mu.Unlock()
}

// ResetAll resets every timer.
func (manager *Manager) ResetAll() {
	manager.mu.Lock()
	for _, timer := range manager.timers {
		timer.Reset()
		manager.emitStateLocked(timer)
	}
	manager.mu.Unlock()
}

// SetLabel updates a timer's display label.
func (manager *Manager) SetLabel(timerID, label string) error {
	if err := validate.TimerLabel(label); err != nil {
		return err
	}
	return manager.configure(timerID, func(timer *Timer) { timer.label = label })
}

// SetDuration updates the configured countdown length. A timer that is
// not mid-countdown also has its remaining time refreshed.
func (manager *Manager) SetDuration(timerID string, seconds int) error {
	if err := validate.Duration(seconds); err != nil {
		return err
	}
	return manager.configure(timerID, func(timer *Timer) {
		timer.duration = seconds
		if timer.state == model.StateStopped || timer.state == model.StateCompleted {
			timer.remaining = seconds
			timer.state = model.StateStopped
		}
		if timer.remaining > timer.duration {
			timer.remaining = timer.duration
		}
	})
}

// SetAlerts updates completion alert settings.
func (manager *Manager) SetAlerts(timerID string, visual model.VisualAlerts, audio model.AudioAlert) error {
	if err := validate.Volume(audio.Volume); err != nil {
		return err
	}
	return manager.configure(timerID, func(timer *Timer) {
		timer.visual = visual
		timer.audio = audio
	})
}

// SetHotkey binds a canonical hotkey to a timer, delegating shape and
// uniqueness checks to the hotkey registry. The binding is written to the
// timer only after the registry accepts it.
func (manager *Manager) SetHotkey(timerID, canonical string) error {
	manager.mu.Lock()
	timer, ok := manager.byID[timerID]
	manager.mu.Unlock()
	if !ok {
		return validate.ErrNotFound
	}

	if manager.registry != nil {
		if err := manager.registry.Register(timerID, canonical); err != nil {
			return err
		}
	}

	manager.mu.Lock()
	timer.hotkey = canonical
	manager.mu.Unlock()
	return nil
}

// ReplaceTimerSet wholesale-swaps the timer set on a profile switch. The
// hotkey registry map is rebuilt in the same step, so no window exists
// where two profiles' bindings coexist.
func (manager *Manager) ReplaceTimerSet(configs []model.TimerConfig) {
	timers := make([]*Timer, 0, len(configs))
	byID := make(map[string]*Timer, len(configs))
	bindings := make([]hotkey.Binding, 0, len(configs))

	for _, config := range configs {
		if config.ID == "" {
			config.ID = uuid.NewString()
		}
		timer := newTimerFromConfig(config)
		timers = append(timers, timer)
		byID[timer.id] = timer
		bindings = append(bindings, hotkey.Binding{TimerID: timer.id, Hotkey: timer.hotkey})
	}

	if manager.registry != nil {
		if err := manager.registry.ReplaceAll(bindings); err != nil {
			manager.logger.Warn("profile hotkeys partially registered", "err", err)
		}
	}

	manager.mu.Lock()
	manager.timers = timers
	manager.byID = byID
	manager.emitLocked(Event{Type: EventSetChanged, At: time.Now()})
	manager.mu.Unlock()
}

// Snapshot returns the ordered timer configurations for persistence.
func (manager *Manager) Snapshot() []model.TimerConfig {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	configs := make([]model.TimerConfig, 0, len(manager.timers))
	for _, timer := range manager.timers {
		configs = append(configs, timer.Config())
	}
	return configs
}

func (manager *Manager) withTimer(timerID, action string, apply func(*Timer)) {
	manager.mu.Lock()
	timer, ok := manager.byID[timerID]
	if !ok {
		manager.mu.Unlock()
		manager.logger.Warn(action+": unknown timer id", "timer", timerID)
		return
	}
	apply(timer)
	manager.emitStateLocked(timer)
	manager.mu.Unlock()
}

func (manager *Manager) configure(timerID string, apply func(*Timer)) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	timer, ok := manager.byID[timerID]
	if !ok {
		return validate.ErrNotFound
	}
	apply(timer)
	manager.emitLocked(Event{Type: EventSetChanged, TimerID: timerID, At: time.Now()})
	return nil
}

func (manager *Manager) emitStateLocked(timer *Timer) {
	manager.emitLocked(Event{
		Type:      EventStateChange,
		TimerID:   timer.id,
		Label:     timer.label,
		State:     timer.state,
		Remaining: timer.remaining,
		At:        time.Now(),
	})
}

func (manager *Manager) emitLocked(event Event) {
	for _, ch := range manager.events {
		select {
		case ch <- event:
		default:
		}
	}
}
