package driving

import "github.com/custodia-labs/docdecode/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Keys lists the recognised configuration keys.
	Keys() []string

	// GetValue returns the effective value of one key, default included.
	GetValue(key string) (any, error)

	// SetValue validates and persists one key.
	SetValue(key string, value any) error

	// Path returns where settings are stored.
	Path() string
}
