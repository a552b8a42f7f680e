package validate

import (
	"errors"
	"strings"
	"testing"
)

func TestDuration_Bounds(t *testing.T) {
	cases := []struct {
		seconds int
		rule    string
	}{
		{1, ""},
		{240, ""},
		{MaxDurationSeconds, ""},
		{0, "must be greater than 0"},
		{-5, "must be greater than 0"},
		{MaxDurationSeconds + 1, "must be at most 24 hours"},
	}

	for _, tc := range cases {
		err := Duration(tc.seconds)
		if tc.rule == "" {
			if err != nil {
				t.Errorf("Duration(%d) = %v, want nil", tc.seconds, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("Duration(%d) = nil, want rule %q", tc.seconds, tc.rule)
			continue
		}
		if !strings.Contains(err.Error(), tc.rule) {
			t.Errorf("Duration(%d) = %q, want rule %q", tc.seconds, err, tc.rule)
		}
	}
}

func TestVolume_Range(t *testing.T) {
	for _, volume := range []int{0, 50, 100} {
		if err := Volume(volume); err != nil {
			t.Errorf("Volume(%d) = %v, want nil", volume, err)
		}
	}
	for _, volume := range []int{-1, 101} {
		err := Volume(volume)
		if err == nil {
			t.Errorf("Volume(%d) = nil, want error", volume)
			continue
		}
		if err.Error() != "volume must be between 0 and 100" {
			t.Errorf("Volume(%d) = %q", volume, err)
		}
	}
}

func TestTimerLabel(t *testing.T) {
	if err := TimerLabel("Pearl"); err != nil {
		t.Errorf("TimerLabel(Pearl) = %v, want nil", err)
	}
	if err := TimerLabel(""); err == nil {
		t.Error("TimerLabel(\"\") = nil, want error")
	}
	if err := TimerLabel(strings.Repeat("a", 31)); err == nil {
		t.Error("expected error for a 31-character label")
	}
}

func TestProfileName_Rules(t *testing.T) {
	cases := []struct {
		name string
		rule string
	}{
		{"default", ""},
		{"Work Sprints", ""},
		{"", "cannot be empty"},
		{strings.Repeat("x", 51), "must be at most 50 characters"},
		{"bad/name", "contains invalid characters"},
		{"a:b", "contains invalid characters"},
		{"CON", "'CON' is a reserved name"},
		{"com1", "'com1' is a reserved name"},
		{"lpt9", "'lpt9' is a reserved name"},
	}

	for _, tc := range cases {
		err := ProfileName(tc.name)
		if tc.rule == "" {
			if err != nil {
				t.Errorf("ProfileName(%q) = %v, want nil", tc.name, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("ProfileName(%q) = nil, want rule %q", tc.name, tc.rule)
			continue
		}
		if !strings.Contains(err.Error(), tc.rule) {
			t.Errorf("ProfileName(%q) = %q, want rule %q", tc.name, err, tc.rule)
		}
	}
}

func TestHotkeyString(t *testing.T) {
	cases := []struct {
		hotkey string
		rule   string
	}{
		{"", ""},
		{"f5", ""},
		{"ctrl+shift+p", ""},
		{"ctrl+alt", "must include at least one regular key"},
		{"shift", "must include at least one regular key"},
		{"ctrl+a+b", "can only have one regular key"},
		{"ctrl++a", "has an invalid format"},
	}

	for _, tc := range cases {
		err := HotkeyString(tc.hotkey)
		if tc.rule == "" {
			if err != nil {
				t.Errorf("HotkeyString(%q) = %v, want nil", tc.hotkey, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("HotkeyString(%q) = nil, want rule %q", tc.hotkey, tc.rule)
			continue
		}
		if !strings.Contains(err.Error(), tc.rule) {
			t.Errorf("HotkeyString(%q) = %q, want rule %q", tc.hotkey, err, tc.rule)
		}
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		value   string
		seconds int
		wantErr bool
	}{
		{"240", 240, false},
		{" 45 ", 45, false},
		{"4:00", 240, false},
		{"0:45", 45, false},
		{"1:00:00", 3600, false},
		{"24:00:00", 86400, false},
		{"0", 0, true},
		{"24:00:01", 0, true},
		{"1:2:3:4", 0, true},
		{"abc", 0, true},
		{"1:-5", 0, true},
	}

	for _, tc := range cases {
		seconds, err := ParseDuration(tc.value)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDuration(%q) = %d, want error", tc.value, seconds)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDuration(%q) error: %v", tc.value, err)
			continue
		}
		if seconds != tc.seconds {
			t.Errorf("ParseDuration(%q) = %d, want %d", tc.value, seconds, tc.seconds)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"default", "default"},
		{"Work Sprints", "Work Sprints"},
		{`a/b\c`, "a_b_c"},
		{"trailing. ", "trailing"},
		{"???", "___"},
		{" .. ", "unnamed"},
	}

	for _, tc := range cases {
		if got := SanitizeFilename(tc.name); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(Duration(0)) {
		t.Error("expected Duration(0) to be a validation error")
	}
	if IsValidation(errors.New("disk full")) {
		t.Error("plain errors must not be validation errors")
	}
	if IsValidation(ErrNotFound) {
		t.Error("ErrNotFound must not be a validation error")
	}
}
