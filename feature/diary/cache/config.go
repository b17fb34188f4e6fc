package cache

// Config holds configuration for the parsed-entry cache.
type Config struct {
	// Enabled toggles the cache. When false the engine loads and decodes
	// from the store on every transaction.
	Enabled bool `mapstructure:"enabled" default:"true"`
}
