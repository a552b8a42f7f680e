package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"multitimer/internal/core/model"
	"multitimer/internal/core/validate"
)

const profileExtension = ".json"

// ProfileStore persists profiles as one JSON document per profile under
// the application's config directory.
type ProfileStore struct {
	dir string
}

// NewProfileStore creates a store rooted at dir, creating it if needed.
func NewProfileStore(dir string) (*ProfileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profiles directory: %w", err)
	}
	return &ProfileStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (store *ProfileStore) Dir() string { return store.dir }

// Load reads a profile by name. A missing file yields ErrNotFound.
func (store *ProfileStore) Load(name string) (*model.Profile, error) {
	rawData, err := os.ReadFile(store.profilePath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, validate.ErrNotFound
		}
		return nil, fmt.Errorf("read profile %q: %w", name, err)
	}

	profile, err := DecodeProfile(rawData)
	if err != nil {
		return nil, fmt.Errorf("parse profile %q: %w", name, err)
	}
	// The file name is authoritative for identity.
	profile.Name = name
	return profile, nil
}

// Save writes a profile to disk.
func (store *ProfileStore) Save(profile *model.Profile) error {
	serialized, err := EncodeProfile(profile)
	if err != nil {
		return fmt.Errorf("marshal profile %q: %w", profile.Name, err)
	}
	if err := os.WriteFile(store.profilePath(profile.Name), serialized, 0o644); err != nil {
		return fmt.Errorf("write profile %q: %w", profile.Name, err)
	}
	return nil
}

// Delete removes a profile file. Deleting a missing profile yields
// ErrNotFound.
func (store *ProfileStore) Delete(name string) error {
	err := os.Remove(store.profilePath(name))
	if errors.Is(err, os.ErrNotExist) {
		return validate.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete profile %q: %w", name, err)
	}
	return nil
}

// Rename moves a profile file to a new name.
func (store *ProfileStore) Rename(oldName, newName string) error {
	err := os.Rename(store.profilePath(oldName), store.profilePath(newName))
	if errors.Is(err, os.ErrNotExist) {
		return validate.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("rename profile %q: %w", oldName, err)
	}
	return nil
}

// List returns the stored profile names, sorted.
func (store *ProfileStore) List() ([]string, error) {
	entries, err := os.ReadDir(store.dir)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), profileExtension) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), profileExtension))
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether a profile file is present.
func (store *ProfileStore) Exists(name string) bool {
	_, err := os.Stat(store.profilePath(name))
	return err == nil
}

func (store *ProfileStore) profilePath(name string) string {
	return filepath.Join(store.dir, validate.SanitizeFilename(name)+profileExtension)
}

// EncodeProfile serializes a profile to the export blob format.
func EncodeProfile(profile *model.Profile) ([]byte, error) {
	return json.MarshalIndent(profile, "", "  ")
}

// DecodeProfile parses an export blob back into a profile.
func DecodeProfile(blob []byte) (*model.Profile, error) {
	var profile model.Profile
	if err := json.Unmarshal(blob, &profile); err != nil {
		return nil, err
	}
	if profile.Timers == nil {
		profile.Timers = []model.TimerConfig{}
	}
	return &profile, nil
}
