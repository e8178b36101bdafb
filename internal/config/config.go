// Package config holds the viper-backed application configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Compiler CompilerConfig `mapstructure:"compiler" yaml:"compiler"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// CompilerConfig configures the rendering-tree compiler.
type CompilerConfig struct {
	// Parallelism bounds the goroutines used for inheritance resolution.
	// Values below two keep resolution serial.
	Parallelism int `mapstructure:"parallelism" yaml:"parallelism"`
	// RoundCoordinates snaps world coordinates to integer pixels.
	RoundCoordinates bool `mapstructure:"round_coordinates" yaml:"round_coordinates"`
	// EmitReport enables the diagnostic normalization/cascade report.
	EmitReport bool `mapstructure:"emit_report" yaml:"emit_report"`
	// Viewport dimensions resolve vw/vh lengths in spacing values.
	ViewportWidth  float64 `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight float64 `mapstructure:"viewport_height" yaml:"viewport_height"`
}

// Validate checks the compiler section for values that would make a run
// nonsensical.
func (c *Config) Validate() error {
	if c.Compiler.Parallelism < 0 {
		return fmt.Errorf("compiler.parallelism must not be negative")
	}
	if c.Compiler.ViewportWidth <= 0 || c.Compiler.ViewportHeight <= 0 {
		return fmt.Errorf("compiler viewport dimensions must be positive")
	}
	return nil
}

// SetDefaults registers every default on the given viper instance.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "framecast")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "red")

	// -- Compiler --
	v.SetDefault("compiler.parallelism", 1)
	v.SetDefault("compiler.round_coordinates", true)
	v.SetDefault("compiler.emit_report", false)
	v.SetDefault("compiler.viewport_width", 1920.0)
	v.SetDefault("compiler.viewport_height", 1080.0)
}

// NewDefaultConfig returns a Config populated purely from defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with registered defaults only.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}
