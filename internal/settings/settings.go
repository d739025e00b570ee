// Package settings holds per-user preferences: the category list, the
// currency display label, and the day of month that starts a tracking cycle.
package settings

import (
	"context"

	apperrors "github.com/nmantri/spendwise/internal/shared/errors"
)

// Settings are saved wholesale: callers read-modify-write the whole object
// even to change one field.
type Settings struct {
	Categories []string `json:"categories"`
	Currency   string   `json:"currency"`
	StartDate  int      `json:"start_date"`
}

// Default returns the settings a user starts with.
func Default() Settings {
	return Settings{
		Categories: []string{
			"Food", "Groceries", "Travel", "Rent", "Utilities",
			"Entertainment", "Healthcare", "Shopping", "Miscellaneous", "Income",
		},
		Currency:  "INR (₹)",
		StartDate: 1,
	}
}

// Validate checks field constraints before a save.
func (s Settings) Validate() error {
	if s.StartDate < 1 || s.StartDate > 31 {
		return apperrors.Validation("start_date must be between 1 and 31")
	}
	return nil
}

// Store defines the interface for settings persistence.
type Store interface {
	// Init writes default settings for the user if none exist yet.
	Init(ctx context.Context, user string) error

	// Load returns the user's stored settings, or defaults if none exist.
	Load(ctx context.Context, user string) (Settings, error)

	// Save overwrites the user's settings wholesale.
	Save(ctx context.Context, user string, s Settings) error
}
