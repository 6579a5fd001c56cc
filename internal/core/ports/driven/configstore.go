package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g. TOML files) and type conversion.
type ConfigStore interface {
	// GetString retrieves a string configuration value.
	// Returns empty string if the key doesn't exist or isn't a string.
	GetString(key string) string

	// GetFloat retrieves a floating-point configuration value.
	// Returns 0 if the key doesn't exist or isn't numeric.
	GetFloat(key string) float64

	// Set stores a configuration value in memory.
	Set(key string, value any)

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
