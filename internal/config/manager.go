package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"multitimer/internal/core/model"
	"multitimer/internal/core/validate"
	"multitimer/internal/storage"
)

// TimerSet is the slice of the timer manager the profile layer needs:
// snapshot the live set before a switch, replace it after.
type TimerSet interface {
	Snapshot() []model.TimerConfig
	ReplaceTimerSet(configs []model.TimerConfig)
}

// Manager owns the set of named profiles, the active profile pointer and
// the global settings. It is the only component allowed to touch either.
type Manager struct {
	mu        sync.Mutex
	configDir string
	store     *storage.ProfileStore
	settings  model.GlobalSettings
	timers    TimerSet
	logger    *log.Logger
}

// New loads settings and profiles from configDir, creating the default
// profile on first run, and populates the timer set from the active
// profile. Persistence failures during startup fall back to defaults and
// are logged rather than fatal.
func New(configDir string, timers TimerSet, logger *log.Logger) (*Manager, error) {
	if logger == nil {
		logger = log.Default()
	}

	store, err := storage.NewProfileStore(filepath.Join(configDir, "profiles"))
	if err != nil {
		return nil, err
	}

	settings, err := storage.LoadSettings(configDir)
	if err != nil {
		logger.Warn("load settings failed, using defaults", "err", err)
	}

	manager := &Manager{
		configDir: configDir,
		store:     store,
		settings:  settings,
		timers:    timers,
		logger:    logger,
	}

	if !store.Exists(model.DefaultProfileName) {
		if err := store.Save(model.NewProfile(model.DefaultProfileName)); err != nil {
			return nil, fmt.Errorf("create default profile: %w", err)
		}
	}

	active, err := store.Load(manager.settings.ActiveProfileName)
	if err != nil {
		logger.Warn("active profile missing, falling back to default",
			"profile", manager.settings.ActiveProfileName, "err", err)
		manager.settings.ActiveProfileName = model.DefaultProfileName
		active, err = store.Load(model.DefaultProfileName)
		if err != nil {
			return nil, fmt.Errorf("load default profile: %w", err)
		}
	}
	timers.ReplaceTimerSet(active.Timers)

	return manager, nil
}

// ActiveProfileName returns the name of the currently active profile.
func (manager *Manager) ActiveProfileName() string {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.settings.ActiveProfileName
}

// Settings returns the current global settings.
func (manager *Manager) Settings() model.GlobalSettings {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.settings
}

// UpdateSettings applies new global settings and flushes them to disk.
// The active profile pointer is owned by SwitchActive and preserved.
func (manager *Manager) UpdateSettings(settings model.GlobalSettings) error {
	if err := validate.Volume(settings.DefaultAudioAlert.Volume); err != nil {
		return err
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()

	settings.ActiveProfileName = manager.settings.ActiveProfileName
	previous := manager.settings
	manager.settings = settings
	if err := storage.SaveSettings(manager.configDir, manager.settings); err != nil {
		manager.settings = previous
		return err
	}
	return nil
}

// ListProfiles returns all stored profile names.
func (manager *Manager) ListProfiles() ([]string, error) {
	return manager.store.List()
}

// CreateProfile creates a new empty profile.
func (manager *Manager) CreateProfile(name string) (*model.Profile, error) {
	if err := manager.checkNewName(name); err != nil {
		return nil, err
	}
	profile := model.NewProfile(name)
	if err := manager.store.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DuplicateProfile copies an existing profile under a new name. Copied
// timers receive fresh ids so the two profiles never share identities.
func (manager *Manager) DuplicateProfile(srcName, newName string) (*model.Profile, error) {
	if err := manager.checkNewName(newName); err != nil {
		return nil, err
	}
	source, err := manager.loadCurrent(srcName)
	if err != nil {
		return nil, err
	}

	duplicate := source.Clone()
	duplicate.Name = newName
	now := time.Now().UTC()
	duplicate.CreatedAt = now
	duplicate.ModifiedAt = now
	for index := range duplicate.Timers {
		duplicate.Timers[index].ID = ""
	}

	if err := manager.store.Save(duplicate); err != nil {
		return nil, err
	}
	return duplicate, nil
}

// RenameProfile renames a stored profile. The default profile keeps its
// name; renaming the active profile updates the persisted pointer.
func (manager *Manager) RenameProfile(oldName, newName string) error {
	if oldName == model.DefaultProfileName {
		return &validate.Error{Field: "profile", Rule: "default profile cannot be renamed"}
	}
	if err := manager.checkNewName(newName); err != nil {
		return err
	}
	if err := manager.store.Rename(oldName, newName); err != nil {
		return err
	}

	profile, err := manager.store.Load(newName)
	if err == nil {
		profile.ModifiedAt = time.Now().UTC()
		if err := manager.store.Save(profile); err != nil {
			manager.logger.Warn("stamp renamed profile", "profile", newName, "err", err)
		}
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.settings.ActiveProfileName == oldName {
		manager.settings.ActiveProfileName = newName
		if err := storage.SaveSettings(manager.configDir, manager.settings); err != nil {
			return err
		}
	}
	return nil
}

// DeleteProfile removes a stored profile. The default profile and the
// active profile cannot be deleted.
func (manager *Manager) DeleteProfile(name string) error {
	if name == model.DefaultProfileName {
		return &validate.Error{Field: "profile", Rule: "default profile cannot be deleted"}
	}
	if name == manager.ActiveProfileName() {
		return &validate.Error{Field: "profile", Rule: "active profile cannot be deleted"}
	}
	return manager.store.Delete(name)
}

// ExportProfile serializes a profile to a JSON blob. Exporting the active
// profile includes the live, not-yet-saved timer set.
func (manager *Manager) ExportProfile(name string) ([]byte, error) {
	profile, err := manager.loadCurrent(name)
	if err != nil {
		return nil, err
	}
	return storage.EncodeProfile(profile)
}

// ImportProfile stores a previously exported blob under a new name, which
// must be distinct from every existing profile.
func (manager *Manager) ImportProfile(blob []byte, newName string) (*model.Profile, error) {
	if err := manager.checkNewName(newName); err != nil {
		return nil, err
	}
	profile, err := storage.DecodeProfile(blob)
	if err != nil {
		return nil, fmt.Errorf("parse profile blob: %w", err)
	}

	profile.Name = newName
	profile.ModifiedAt = time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = profile.ModifiedAt
	}

	if err := manager.store.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SwitchActive persists the outgoing profile's live timer set, loads the
// named profile into the timer manager and updates the persisted active
// pointer. On any failure the prior in-memory state stays authoritative.
func (manager *Manager) SwitchActive(name string) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if name == manager.settings.ActiveProfileName {
		return nil
	}

	incoming, err := manager.store.Load(name)
	if err != nil {
		return err
	}

	if err := manager.saveActiveLocked(); err != nil {
		return err
	}

	manager.timers.ReplaceTimerSet(incoming.Timers)
	manager.settings.ActiveProfileName = name
	if err := storage.SaveSettings(manager.configDir, manager.settings); err != nil {
		// The switch already happened in memory; the stale pointer only
		// affects the next startup.
		manager.logger.Warn("persist active profile pointer", "err", err)
		return err
	}
	return nil
}

// SaveActive flushes the live timer set into the active profile document.
func (manager *Manager) SaveActive() error {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.saveActiveLocked()
}

// Shutdown flushes the live timer set and the global settings.
func (manager *Manager) Shutdown() error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	saveErr := manager.saveActiveLocked()
	if err := storage.SaveSettings(manager.configDir, manager.settings); err != nil && saveErr == nil {
		saveErr = err
	}
	return saveErr
}

func (manager *Manager) saveActiveLocked() error {
	name := manager.settings.ActiveProfileName
	profile, err := manager.store.Load(name)
	if err != nil {
		if !errors.Is(err, validate.ErrNotFound) {
			return err
		}
		profile = model.NewProfile(name)
	}
	profile.Timers = manager.timers.Snapshot()
	profile.ModifiedAt = time.Now().UTC()
	return manager.store.Save(profile)
}

// loadCurrent loads a stored profile, substituting the live timer set
// when name addresses the active profile.
func (manager *Manager) loadCurrent(name string) (*model.Profile, error) {
	profile, err := manager.store.Load(name)
	if err != nil {
		return nil, err
	}
	if name == manager.ActiveProfileName() {
		profile.Timers = manager.timers.Snapshot()
	}
	return profile, nil
}

func (manager *Manager) checkNewName(name string) error {
	if err := validate.ProfileName(name); err != nil {
		return err
	}
	if manager.store.Exists(name) {
		return &validate.Error{Field: "profile name", Rule: "already exists"}
	}
	return nil
}
