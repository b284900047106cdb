package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/settling/internal/geometry"
	"github.com/mitchelldurbincs/settling/internal/hex"
)

// Layout sources for board.layout
const (
	LayoutStandard = "standard"
	LayoutRandom   = "random"
	LayoutFile     = "file"
)

// Config holds all configuration for the application
type Config struct {
	Board  BoardConfig  `mapstructure:"board"`
	Log    LogConfig    `mapstructure:"log"`
	Events EventsConfig `mapstructure:"events"`
}

// BoardConfig holds board construction settings
type BoardConfig struct {
	Rings      int    `mapstructure:"rings"`
	Layout     string `mapstructure:"layout"`
	LayoutFile string `mapstructure:"layout_file"`
	Seed       int64  `mapstructure:"seed"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EventsConfig holds event bus settings
type EventsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	LogLevel string `mapstructure:"log_level"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("board.rings", geometry.StandardRings)
	v.SetDefault("board.layout", LayoutStandard)
	v.SetDefault("board.layout_file", "")
	v.SetDefault("board.seed", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("events.enabled", true)
	v.SetDefault("events.log_level", "debug")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("settling")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/settling")
	}

	v.SetEnvPrefix("SETTLING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only a missing file falls back to defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig merges settling.<env>.yaml over the loaded config.
// The file is looked up next to the main config file, or in the working
// directory when defaults are in use. A missing file is not an error.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	dir := "."
	if used := v.ConfigFileUsed(); used != "" {
		dir = filepath.Dir(used)
	}
	envFile := filepath.Join(dir, fmt.Sprintf("settling.%s.yaml", env))

	ev := viper.New()
	ev.SetConfigFile(envFile)
	if err := ev.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading environment config %s: %w", envFile, err)
	}
	if err := v.MergeConfigMap(ev.AllSettings()); err != nil {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	return reload()
}

// Set applies a runtime override. The override is rejected when the
// resulting config does not validate.
func Set(key string, value interface{}) error {
	v.Set(key, value)
	return reload()
}

func reload() error {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return err
	}
	cfg = next
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. Only the log and event
// settings are meant to change at runtime; a live board keeps its layout.
func WatchConfig(onChange func(*Config)) {
	watched := v
	watched.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := watched.Unmarshal(next); err != nil {
			return
		}
		if Validate(next) != nil {
			return
		}
		cfg = next
		if onChange != nil {
			onChange(next)
		}
	})
	watched.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Board.Rings < 0 {
		return fmt.Errorf("board.rings must be non-negative")
	}
	if hex.TilesWithinRing(c.Board.Rings) > hex.MaxSearch {
		return fmt.Errorf("board.rings %d exceeds the %d tile search bound", c.Board.Rings, hex.MaxSearch)
	}

	switch c.Board.Layout {
	case LayoutStandard, LayoutRandom:
		if c.Board.Rings != geometry.StandardRings {
			return fmt.Errorf("board.layout %q needs board.rings %d", c.Board.Layout, geometry.StandardRings)
		}
	case LayoutFile:
		if c.Board.LayoutFile == "" {
			return fmt.Errorf("board.layout_file must be set when board.layout is %q", LayoutFile)
		}
	default:
		return fmt.Errorf("board.layout must be one of %s, %s, %s", LayoutStandard, LayoutRandom, LayoutFile)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be console or json")
	}
	if _, err := zerolog.ParseLevel(c.Events.LogLevel); err != nil {
		return fmt.Errorf("events.log_level: %w", err)
	}

	return nil
}
