package domain

import (
	"fmt"
	"runtime"
)

// DefaultMaxBytes is the default upper bound on decoded input size (100 MiB).
const DefaultMaxBytes int64 = 100 * 1024 * 1024

// DecodeSettings holds decoder-related settings.
type DecodeSettings struct {
	// MaxBytes is the largest input accepted, in bytes.
	MaxBytes int64

	// Workers bounds how many documents the CLI decodes at once.
	Workers int

	// DisabledDecoders lists decoder names that must not be registered.
	DisabledDecoders []string
}

// LoggingSettings holds logging settings.
type LoggingSettings struct {
	// Verbose enables debug output on stderr.
	Verbose bool
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	Decode  DecodeSettings
	Logging LoggingSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Decode: DecodeSettings{
			MaxBytes: DefaultMaxBytes,
			Workers:  defaultWorkers(),
		},
	}
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n > 8 {
		return 8
	}
	return n
}

// Validate checks that settings are usable.
func (s *AppSettings) Validate() error {
	if s.Decode.MaxBytes <= 0 {
		return fmt.Errorf("%w: decode.max_bytes must be positive, got %d", ErrInvalidSetting, s.Decode.MaxBytes)
	}
	if s.Decode.Workers <= 0 {
		return fmt.Errorf("%w: decode.workers must be positive, got %d", ErrInvalidSetting, s.Decode.Workers)
	}
	return nil
}

// IsDecoderDisabled reports whether the named decoder is switched off.
func (s DecodeSettings) IsDecoderDisabled(name string) bool {
	for _, d := range s.DisabledDecoders {
		if d == name {
			return true
		}
	}
	return false
}
