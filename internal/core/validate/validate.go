package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotFound marks operations on unknown timer or profile names. Callers
// treat it as a logged no-op since races with the UI are expected.
var ErrNotFound = errors.New("not found")

// Error describes a rejected user input. The Rule text is part of the
// user-facing contract and is rendered verbatim by the presentation layer.
type Error struct {
	Field string
	Rule  string
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s %s", err.Field, err.Rule)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

// MaxDurationSeconds caps timers at 24 hours.
const MaxDurationSeconds = 86400

const (
	maxProfileNameLength = 50
	maxTimerLabelLength  = 30
)

var reservedProfileNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

const unsafeNameCharacters = `<>:"/\|?*`

// Duration checks a countdown length in seconds.
func Duration(seconds int) error {
	if seconds <= 0 {
		return &Error{Field: "duration", Rule: "must be greater than 0"}
	}
	if seconds > MaxDurationSeconds {
		return &Error{Field: "duration", Rule: "must be at most 24 hours"}
	}
	return nil
}

// Volume checks an audio volume percentage.
func Volume(volume int) error {
	if volume < 0 || volume > 100 {
		return &Error{Field: "volume", Rule: "must be between 0 and 100"}
	}
	return nil
}

// TimerLabel checks a timer display label.
func TimerLabel(label string) error {
	if label == "" {
		return &Error{Field: "timer label", Rule: "cannot be empty"}
	}
	if len(label) > maxTimerLabelLength {
		return &Error{Field: "timer label", Rule: fmt.Sprintf("must be at most %d characters", maxTimerLabelLength)}
	}
	return nil
}

// ProfileName checks a profile name against emptiness, length, unsafe
// filesystem characters and reserved device names (case-insensitive).
func ProfileName(name string) error {
	if name == "" {
		return &Error{Field: "profile name", Rule: "cannot be empty"}
	}
	if len(name) > maxProfileNameLength {
		return &Error{Field: "profile name", Rule: fmt.Sprintf("must be at most %d characters", maxProfileNameLength)}
	}
	if strings.ContainsAny(name, unsafeNameCharacters) {
		return &Error{Field: "profile name", Rule: "contains invalid characters"}
	}
	if _, reserved := reservedProfileNames[strings.ToUpper(name)]; reserved {
		return &Error{Field: "profile name", Rule: fmt.Sprintf("'%s' is a reserved name", name)}
	}
	return nil
}

var hotkeyModifiers = map[string]struct{}{
	"ctrl": {}, "shift": {}, "alt": {}, "win": {},
}

// HotkeyString checks the shape of a canonical hotkey string. The empty
// string is valid and means "no hotkey assigned".
func HotkeyString(hotkey string) error {
	if hotkey == "" {
		return nil
	}

	var regular int
	for _, part := range strings.Split(hotkey, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			return &Error{Field: "hotkey", Rule: "has an invalid format"}
		}
		if _, isModifier := hotkeyModifiers[part]; isModifier {
			continue
		}
		regular++
	}

	if regular == 0 {
		return &Error{Field: "hotkey", Rule: "must include at least one regular key"}
	}
	if regular > 1 {
		return &Error{Field: "hotkey", Rule: "can only have one regular key"}
	}
	return nil
}

// ParseDuration parses "240", "MM:SS" or "HH:MM:SS" into seconds.
func ParseDuration(value string) (int, error) {
	value = strings.TrimSpace(value)

	if seconds, err := strconv.Atoi(value); err == nil {
		if verr := Duration(seconds); verr != nil {
			return 0, verr
		}
		return seconds, nil
	}

	parts := strings.Split(value, ":")
	fields := make([]int, 0, len(parts))
	for _, part := range parts {
		number, err := strconv.Atoi(part)
		if err != nil || number < 0 {
			return 0, &Error{Field: "duration", Rule: "has an invalid format"}
		}
		fields = append(fields, number)
	}

	var seconds int
	switch len(fields) {
	case 2:
		seconds = fields[0]*60 + fields[1]
	case 3:
		seconds = fields[0]*3600 + fields[1]*60 + fields[2]
	default:
		return 0, &Error{Field: "duration", Rule: "has an invalid format"}
	}

	if err := Duration(seconds); err != nil {
		return 0, err
	}
	return seconds, nil
}

// SanitizeFilename replaces filesystem-unsafe characters so a profile name
// can be used as a file name.
func SanitizeFilename(name string) string {
	sanitized := strings.Map(func(char rune) rune {
		if strings.ContainsRune(unsafeNameCharacters, char) {
			return '_'
		}
		return char
	}, name)

	sanitized = strings.Trim(sanitized, " .")
	if sanitized == "" {
		return "unnamed"
	}
	return sanitized
}
