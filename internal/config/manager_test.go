package config

import (
	"errors"
	"strings"
	"testing"

	"multitimer/internal/core/model"
	"multitimer/internal/core/validate"
	"multitimer/internal/storage"
)

// fakeTimerSet stands in for the countdown manager.
type fakeTimerSet struct {
	live     []model.TimerConfig
	replaced int
}

func (set *fakeTimerSet) Snapshot() []model.TimerConfig {
	return append([]model.TimerConfig(nil), set.live...)
}

func (set *fakeTimerSet) ReplaceTimerSet(configs []model.TimerConfig) {
	set.live = append([]model.TimerConfig(nil), configs...)
	set.replaced++
}

func newTestManager(t *testing.T) (*Manager, *fakeTimerSet, string) {
	t.Helper()
	configDir := t.TempDir()
	timers := &fakeTimerSet{}
	manager, err := New(configDir, timers, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return manager, timers, configDir
}

func sampleTimers() []model.TimerConfig {
	return []model.TimerConfig{
		{ID: "a", Label: "Pearl", DurationSeconds: 240, Hotkey: "ctrl+1"},
		{ID: "b", Label: "Bed", DurationSeconds: 300},
		{ID: "c", Label: "Eye", DurationSeconds: 45},
	}
}

func TestNew_FirstRunCreatesDefaultProfile(t *testing.T) {
	manager, timers, _ := newTestManager(t)

	if got := manager.ActiveProfileName(); got != model.DefaultProfileName {
		t.Fatalf("ActiveProfileName = %q, want %q", got, model.DefaultProfileName)
	}
	names, err := manager.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if len(names) != 1 || names[0] != model.DefaultProfileName {
		t.Fatalf("ListProfiles = %v", names)
	}
	if timers.replaced != 1 {
		t.Fatalf("timer set replacements = %d, want 1", timers.replaced)
	}
}

func TestNew_MissingActiveProfileFallsBackToDefault(t *testing.T) {
	configDir := t.TempDir()

	settings := model.DefaultGlobalSettings()
	settings.ActiveProfileName = "vanished"
	if err := storage.SaveSettings(configDir, settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	manager, err := New(configDir, &fakeTimerSet{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := manager.ActiveProfileName(); got != model.DefaultProfileName {
		t.Fatalf("ActiveProfileName = %q, want default", got)
	}
}

func TestCreateProfile_Validation(t *testing.T) {
	manager, _, _ := newTestManager(t)

	if _, err := manager.CreateProfile("Work Sprints"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	if _, err := manager.CreateProfile("Work Sprints"); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("duplicate name: err = %v", err)
	}
	if _, err := manager.CreateProfile(""); err == nil {
		t.Error("empty name accepted")
	}
	if _, err := manager.CreateProfile("bad/name"); err == nil {
		t.Error("unsafe name accepted")
	}
	if _, err := manager.CreateProfile("CON"); err == nil {
		t.Error("reserved name accepted")
	}
}

func TestSwitchActive_SnapshotsOutgoingSet(t *testing.T) {
	manager, timers, _ := newTestManager(t)

	if _, err := manager.CreateProfile("other"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	// Live edits accumulate in the timer manager, not on disk.
	timers.live = sampleTimers()

	if err := manager.SwitchActive("other"); err != nil {
		t.Fatalf("SwitchActive: %v", err)
	}
	if got := manager.ActiveProfileName(); got != "other" {
		t.Fatalf("ActiveProfileName = %q, want other", got)
	}
	if len(timers.live) != 0 {
		t.Fatalf("incoming empty profile left %d timers live", len(timers.live))
	}

	// The outgoing set was persisted and must come back on switch-back.
	if err := manager.SwitchActive(model.DefaultProfileName); err != nil {
		t.Fatalf("switch back: %v", err)
	}
	if len(timers.live) != 3 {
		t.Fatalf("outgoing set lost: %d timers restored", len(timers.live))
	}
	for index, want := range sampleTimers() {
		if timers.live[index] != want {
			t.Errorf("restored[%d] = %+v, want %+v", index, timers.live[index], want)
		}
	}
}

func TestSwitchActive_UnknownProfileLeavesStateIntact(t *testing.T) {
	manager, timers, _ := newTestManager(t)
	timers.live = sampleTimers()
	replacedBefore := timers.replaced

	err := manager.SwitchActive("no-such-profile")
	if !errors.Is(err, validate.ErrNotFound) {
		t.Fatalf("SwitchActive = %v, want ErrNotFound", err)
	}
	if manager.ActiveProfileName() != model.DefaultProfileName {
		t.Fatal("active pointer moved on failed switch")
	}
	if timers.replaced != replacedBefore {
		t.Fatal("timer set replaced on failed switch")
	}
}

func TestSwitchActive_SameProfileIsNoOp(t *testing.T) {
	manager, timers, _ := newTestManager(t)
	replacedBefore := timers.replaced

	if err := manager.SwitchActive(model.DefaultProfileName); err != nil {
		t.Fatalf("SwitchActive: %v", err)
	}
	if timers.replaced != replacedBefore {
		t.Fatal("timer set replaced on no-op switch")
	}
}

func TestDeleteProfile_Protections(t *testing.T) {
	manager, _, _ := newTestManager(t)

	err := manager.DeleteProfile(model.DefaultProfileName)
	if err == nil || !strings.Contains(err.Error(), "default profile cannot be deleted") {
		t.Errorf("delete default: err = %v", err)
	}

	if _, err := manager.CreateProfile("other"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if err := manager.SwitchActive("other"); err != nil {
		t.Fatalf("SwitchActive: %v", err)
	}

	err = manager.DeleteProfile("other")
	if err == nil || !strings.Contains(err.Error(), "active profile cannot be deleted") {
		t.Errorf("delete active: err = %v", err)
	}

	if err := manager.SwitchActive(model.DefaultProfileName); err != nil {
		t.Fatalf("switch back: %v", err)
	}
	if err := manager.DeleteProfile("other"); err != nil {
		t.Errorf("delete inactive: %v", err)
	}
}

func TestRenameProfile_RulesAndActivePointer(t *testing.T) {
	manager, _, _ := newTestManager(t)

	if err := manager.RenameProfile(model.DefaultProfileName, "main"); err == nil {
		t.Error("default profile rename accepted")
	}

	if _, err := manager.CreateProfile("sprints"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if err := manager.SwitchActive("sprints"); err != nil {
		t.Fatalf("SwitchActive: %v", err)
	}
	if err := manager.RenameProfile("sprints", "deep work"); err != nil {
		t.Fatalf("RenameProfile: %v", err)
	}
	if got := manager.ActiveProfileName(); got != "deep work" {
		t.Fatalf("ActiveProfileName = %q, want deep work", got)
	}

	names, err := manager.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	for _, name := range names {
		if name == "sprints" {
			t.Fatal("old name still listed")
		}
	}
}

func TestDuplicateProfile_FreshTimerIdentities(t *testing.T) {
	manager, timers, _ := newTestManager(t)
	timers.live = sampleTimers()
	if err := manager.SaveActive(); err != nil {
		t.Fatalf("SaveActive: %v", err)
	}

	duplicate, err := manager.DuplicateProfile(model.DefaultProfileName, "copy")
	if err != nil {
		t.Fatalf("DuplicateProfile: %v", err)
	}
	if len(duplicate.Timers) != 3 {
		t.Fatalf("duplicated timers = %d, want 3", len(duplicate.Timers))
	}
	for index, timer := range duplicate.Timers {
		if timer.ID != "" {
			t.Errorf("Timers[%d] kept id %q, want cleared", index, timer.ID)
		}
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	manager, timers, _ := newTestManager(t)
	timers.live = sampleTimers()

	// Export of the active profile carries the live, unsaved timer set.
	blob, err := manager.ExportProfile(model.DefaultProfileName)
	if err != nil {
		t.Fatalf("ExportProfile: %v", err)
	}

	imported, err := manager.ImportProfile(blob, "restored")
	if err != nil {
		t.Fatalf("ImportProfile: %v", err)
	}
	if imported.Name != "restored" {
		t.Errorf("Name = %q, want restored", imported.Name)
	}
	if len(imported.Timers) != 3 {
		t.Fatalf("imported timers = %d, want 3", len(imported.Timers))
	}

	if _, err := manager.ImportProfile(blob, model.DefaultProfileName); err == nil {
		t.Error("import over an existing profile accepted")
	}
	if _, err := manager.ImportProfile([]byte("junk"), "fresh"); err == nil {
		t.Error("malformed blob accepted")
	}
}

func TestUpdateSettings_PreservesActivePointer(t *testing.T) {
	manager, _, configDir := newTestManager(t)

	if _, err := manager.CreateProfile("other"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if err := manager.SwitchActive("other"); err != nil {
		t.Fatalf("SwitchActive: %v", err)
	}

	updated := manager.Settings()
	updated.Theme = model.ThemeLight
	updated.ActiveProfileName = "stale-value"
	if err := manager.UpdateSettings(updated); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	if got := manager.ActiveProfileName(); got != "other" {
		t.Fatalf("ActiveProfileName = %q, want other", got)
	}

	persisted, err := storage.LoadSettings(configDir)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if persisted.Theme != model.ThemeLight {
		t.Errorf("persisted theme = %q, want light", persisted.Theme)
	}
	if persisted.ActiveProfileName != "other" {
		t.Errorf("persisted active = %q, want other", persisted.ActiveProfileName)
	}
}

func TestUpdateSettings_RejectsBadVolume(t *testing.T) {
	manager, _, _ := newTestManager(t)

	updated := manager.Settings()
	updated.DefaultAudioAlert.Volume = 101
	if err := manager.UpdateSettings(updated); err == nil {
		t.Fatal("volume 101 accepted")
	}
}

func TestShutdown_FlushesLiveState(t *testing.T) {
	manager, timers, configDir := newTestManager(t)
	timers.live = sampleTimers()

	if err := manager.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	// A fresh manager over the same directory sees the flushed timers.
	reopenedTimers := &fakeTimerSet{}
	if _, err := New(configDir, reopenedTimers, nil); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(reopenedTimers.live) != 3 {
		t.Fatalf("restart restored %d timers, want 3", len(reopenedTimers.live))
	}
}
