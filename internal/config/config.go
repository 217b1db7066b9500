// Package config handles asset tool configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Loader  LoaderConfig  `yaml:"loader"`
	Catalog CatalogConfig `yaml:"catalog"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoaderConfig holds asset loader settings.
type LoaderConfig struct {
	Root          string `yaml:"root"`           // Directory asset paths are relative to
	Decoder       string `yaml:"decoder"`        // "gltf" or "none"
	DefaultColor  Color  `yaml:"default_color"`  // Material color when a request names none
	MaxConcurrent int    `yaml:"max_concurrent"` // Preload limit, 0 = unbounded
	Watch         bool   `yaml:"watch"`          // Drop cache entries when files change
}

// CatalogConfig holds the location of the site fixtures.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Loader: LoaderConfig{
			Root:          ".",
			Decoder:       "gltf",
			DefaultColor:  0x00ff40,
			MaxConcurrent: 0,
			Watch:         false,
		},
		Catalog: CatalogConfig{
			Path: "data/games.json",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
