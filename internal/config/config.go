// Package config loads engine configuration from file, environment and
// defaults, backed by viper.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Logging LoggingConfig `mapstructure:"logging"`
	Demo    DemoConfig    `mapstructure:"demo"`
}

// EngineConfig holds simulation engine settings
type EngineConfig struct {
	TicksPerSecond         float64    `mapstructure:"ticks_per_second"`
	MaxIterationsPerUpdate int        `mapstructure:"max_iterations_per_update"`
	Seed                   int64      `mapstructure:"seed"`
	Grid                   GridConfig `mapstructure:"grid"`
}

// GridConfig holds city grid dimensions
type GridConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DemoConfig holds demo scenario settings
type DemoConfig struct {
	CityName        string  `mapstructure:"city_name"`
	DurationSeconds float64 `mapstructure:"duration_seconds"`
	ReportInterval  int     `mapstructure:"report_interval"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Engine defaults
	v.SetDefault("engine.ticks_per_second", 200.0)
	v.SetDefault("engine.max_iterations_per_update", 20)
	v.SetDefault("engine.seed", 0)
	v.SetDefault("engine.grid.width", 32)
	v.SetDefault("engine.grid.height", 32)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Demo defaults
	v.SetDefault("demo.city_name", "Paris")
	v.SetDefault("demo.duration_seconds", 10.0)
	v.SetDefault("demo.report_interval", 200)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/glassbox")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("GLASSBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If we have a specific config path and it doesn't exist, that's ok - use defaults
		if configPath != "" {
			// Specific file requested but not found - that's ok, use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// For default locations, only ignore ConfigFileNotFoundError
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetFloat64 gets a float64 value from config
func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		// Re-unmarshal on change
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Engine.TicksPerSecond <= 0 {
		return fmt.Errorf("engine.ticks_per_second must be positive")
	}
	if c.Engine.MaxIterationsPerUpdate <= 0 {
		return fmt.Errorf("engine.max_iterations_per_update must be positive")
	}
	if c.Engine.Grid.Width <= 0 || c.Engine.Grid.Height <= 0 {
		return fmt.Errorf("engine.grid dimensions must be positive")
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	if c.Demo.DurationSeconds <= 0 {
		return fmt.Errorf("demo.duration_seconds must be positive")
	}
	if c.Demo.ReportInterval <= 0 {
		return fmt.Errorf("demo.report_interval must be positive")
	}
	return nil
}
