package flatfile

import (
	"context"
	"encoding/json"
	"os"

	"github.com/nmantri/spendwise/internal/settings"
	apperrors "github.com/nmantri/spendwise/internal/shared/errors"
)

// SettingsStore implements settings.Store on a per-user JSON file.
type SettingsStore struct {
	db *DB
}

var _ settings.Store = (*SettingsStore)(nil)

// Init writes default settings for the user if no settings file exists.
func (s *SettingsStore) Init(ctx context.Context, user string) error {
	lock := s.db.lockFor(user)
	lock.Lock()
	defer lock.Unlock()

	path := s.db.settingsPath(user)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return apperrors.IO(err, "checking settings file for %q", user)
	}
	return s.write(user, settings.Default())
}

// Load returns the user's stored settings, or defaults when none exist.
func (s *SettingsStore) Load(ctx context.Context, user string) (settings.Settings, error) {
	lock := s.db.lockFor(user)
	lock.Lock()
	defer lock.Unlock()

	data, err := os.ReadFile(s.db.settingsPath(user))
	if os.IsNotExist(err) {
		return settings.Default(), nil
	}
	if err != nil {
		return settings.Settings{}, apperrors.IO(err, "reading settings file for %q", user)
	}

	var out settings.Settings
	if err := json.Unmarshal(data, &out); err != nil {
		return settings.Settings{}, apperrors.Parse(err, "parsing settings file for %q", user)
	}
	return out, nil
}

// Save overwrites the user's settings file wholesale.
func (s *SettingsStore) Save(ctx context.Context, user string, v settings.Settings) error {
	lock := s.db.lockFor(user)
	lock.Lock()
	defer lock.Unlock()
	return s.write(user, v)
}

func (s *SettingsStore) write(user string, v settings.Settings) error {
	data, err := json.Marshal(v)
	if err != nil {
		return apperrors.Internal("encoding settings", err)
	}
	if err := os.WriteFile(s.db.settingsPath(user), data, 0o644); err != nil {
		return apperrors.IO(err, "writing settings file for %q", user)
	}
	return nil
}
