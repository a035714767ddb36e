package services

import (
	"fmt"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/core/ports/driven"
	"github.com/custodia-labs/docdecode/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyDecodeMaxBytes   = "decode.max_bytes"
	KeyDecodeWorkers    = "decode.workers"
	KeyDecodersDisabled = "decoders.disabled"
	KeyLoggingVerbose   = "logging.verbose"
)

var settingKeys = []string{
	KeyDecodeMaxBytes,
	KeyDecodeWorkers,
	KeyDecodersDisabled,
	KeyLoggingVerbose,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or non-positive
// numeric values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Decode: domain.DecodeSettings{
			MaxBytes:         s.getInt64(KeyDecodeMaxBytes, defaults.Decode.MaxBytes),
			Workers:          s.getInt(KeyDecodeWorkers, defaults.Decode.Workers),
			DisabledDecoders: s.configStore.GetStringSlice(KeyDecodersDisabled),
		},
		Logging: domain.LoggingSettings{
			Verbose: s.getBool(KeyLoggingVerbose, defaults.Logging.Verbose),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(KeyDecodeMaxBytes, settings.Decode.MaxBytes); err != nil {
		return fmt.Errorf("save %s: %w", KeyDecodeMaxBytes, err)
	}
	if err := s.configStore.Set(KeyDecodeWorkers, settings.Decode.Workers); err != nil {
		return fmt.Errorf("save %s: %w", KeyDecodeWorkers, err)
	}
	disabled := settings.Decode.DisabledDecoders
	if disabled == nil {
		disabled = []string{}
	}
	if err := s.configStore.Set(KeyDecodersDisabled, disabled); err != nil {
		return fmt.Errorf("save %s: %w", KeyDecodersDisabled, err)
	}
	if err := s.configStore.Set(KeyLoggingVerbose, settings.Logging.Verbose); err != nil {
		return fmt.Errorf("save %s: %w", KeyLoggingVerbose, err)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys lists the recognised configuration keys.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// GetValue returns the effective value of key.
func (s *SettingsService) GetValue(key string) (any, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	switch key {
	case KeyDecodeMaxBytes:
		return settings.Decode.MaxBytes, nil
	case KeyDecodeWorkers:
		return settings.Decode.Workers, nil
	case KeyDecodersDisabled:
		if settings.Decode.DisabledDecoders == nil {
			return []string{}, nil
		}
		return settings.Decode.DisabledDecoders, nil
	case KeyLoggingVerbose:
		return settings.Logging.Verbose, nil
	default:
		return nil, unknownKey(key)
	}
}

// SetValue validates and persists one key. The value must have the type
// the key holds: an integer, a bool, or a list of decoder names.
func (s *SettingsService) SetValue(key string, value any) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeyDecodeMaxBytes:
		n, ok := toInt64(value)
		if !ok {
			return invalidType(key, "an integer", value)
		}
		settings.Decode.MaxBytes = n
	case KeyDecodeWorkers:
		n, ok := toInt64(value)
		if !ok {
			return invalidType(key, "an integer", value)
		}
		settings.Decode.Workers = int(n)
	case KeyDecodersDisabled:
		names, ok := toStrings(value)
		if !ok {
			return invalidType(key, "a list of decoder names", value)
		}
		settings.Decode.DisabledDecoders = names
	case KeyLoggingVerbose:
		b, ok := value.(bool)
		if !ok {
			return invalidType(key, "true or false", value)
		}
		settings.Logging.Verbose = b
	default:
		return unknownKey(key)
	}

	return s.Save(settings)
}

// Path returns where settings are stored.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func unknownKey(key string) error {
	return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidSetting, key)
}

func invalidType(key, want string, value any) error {
	return fmt.Errorf("%w: %s must be %s, got %v", domain.ErrInvalidSetting, key, want, value)
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

func toStrings(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	case string:
		if list == "" {
			return []string{}, true
		}
		return []string{list}, true
	default:
		return nil, false
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt64(key string, defaultVal int64) int64 {
	return int64(s.getInt(key, int(defaultVal)))
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
