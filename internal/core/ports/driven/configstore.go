package driven

// ConfigStore provides access to application configuration.
// Keys are dot separated ("decode.workers"); file-backed stores map the
// first segment to a table. Getters never fail: a missing key or a value
// of the wrong type yields the zero value.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	GetBool(key string) bool

	// GetStringSlice retrieves a list of strings, or nil.
	GetStringSlice(key string) []string

	// Set stores a configuration value and persists it.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load rereads configuration from storage.
	Load() error

	// Path returns where configuration is stored.
	Path() string
}
