package model

import "time"

// DefaultProfileName is the profile that always exists and cannot be deleted.
const DefaultProfileName = "default"

// Profile is a named, switchable collection of timer definitions.
// Timer order is display order and is preserved across save/load.
type Profile struct {
	Name       string        `json:"name"`
	Timers     []TimerConfig `json:"timers"`
	CreatedAt  time.Time     `json:"created_at"`
	ModifiedAt time.Time     `json:"modified_at"`
}

// NewProfile creates an empty profile stamped with the current time.
func NewProfile(name string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		Name:       name,
		Timers:     []TimerConfig{},
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// Clone returns a deep copy so callers can mutate freely.
func (profile *Profile) Clone() *Profile {
	copied := *profile
	copied.Timers = append([]TimerConfig(nil), profile.Timers...)
	return &copied
}
