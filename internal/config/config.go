// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Session  SessionConfig  `mapstructure:"session"`
	Security SecurityConfig `mapstructure:"security"`
	Reels    ReelsConfig    `mapstructure:"reels"`
	Display  DisplayConfig  `mapstructure:"display"`
	Log      LogConfig      `mapstructure:"log"`
}

// SessionConfig holds the chip rules of a session.
type SessionConfig struct {
	StartingChips    int64 `mapstructure:"starting_chips"`
	BuyCap           int64 `mapstructure:"buy_cap"`
	BuyMenuThreshold int64 `mapstructure:"buy_menu_threshold"`
}

// SecurityConfig holds the input error thresholds.
type SecurityConfig struct {
	SoftWarning  int `mapstructure:"soft_warning"`
	SternWarning int `mapstructure:"stern_warning"`
	Eject        int `mapstructure:"eject"`
}

// ReelsConfig holds random source and reel animation settings.
type ReelsConfig struct {
	Seed  uint64        `mapstructure:"seed"` // 0 means seed from the clock
	Delay time.Duration `mapstructure:"delay"`
}

// DisplayConfig holds terminal output settings.
type DisplayConfig struct {
	Color bool `mapstructure:"color"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty means stderr
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in configPath, the working directory and ./config.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variables use the SLOTS prefix, underscore separator and uppercase
	// e.g., SLOTS_SESSION_BUY_CAP, SLOTS_REELS_DELAY, SLOTS_LOG_LEVEL
	v.SetEnvPrefix("SLOTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional - defaults and env vars cover everything)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Session defaults
	v.SetDefault("session.starting_chips", 2000)
	v.SetDefault("session.buy_cap", 5000)
	v.SetDefault("session.buy_menu_threshold", 500)

	// Casino security thresholds
	v.SetDefault("security.soft_warning", 4)
	v.SetDefault("security.stern_warning", 8)
	v.SetDefault("security.eject", 10)

	// Reel defaults
	v.SetDefault("reels.seed", 0)
	v.SetDefault("reels.delay", "1s")

	// Display defaults
	v.SetDefault("display.color", true)

	// Logging stays quiet so it does not draw over the game screen
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
}

// ErrInvalidConfig is returned when a loaded configuration breaks a rule.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the configuration for values the game cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Session.StartingChips < 0:
		return fmt.Errorf("%w: session.starting_chips must not be negative", ErrInvalidConfig)
	case c.Session.BuyCap <= 0:
		return fmt.Errorf("%w: session.buy_cap must be positive", ErrInvalidConfig)
	case c.Session.BuyMenuThreshold < 0:
		return fmt.Errorf("%w: session.buy_menu_threshold must not be negative", ErrInvalidConfig)
	case c.Security.SoftWarning <= 0:
		return fmt.Errorf("%w: security.soft_warning must be positive", ErrInvalidConfig)
	case c.Security.SternWarning <= c.Security.SoftWarning:
		return fmt.Errorf("%w: security.stern_warning must exceed soft_warning", ErrInvalidConfig)
	case c.Security.Eject <= c.Security.SternWarning:
		return fmt.Errorf("%w: security.eject must exceed stern_warning", ErrInvalidConfig)
	case c.Reels.Delay < 0:
		return fmt.Errorf("%w: reels.delay must not be negative", ErrInvalidConfig)
	}
	return nil
}
