// Package config loads verbiz runtime configuration from defaults, an
// optional YAML file, a .env file and VERBIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. VERBIZ_LOG_LEVEL.
const EnvPrefix = "VERBIZ"

// Config holds all runtime configuration.
type Config struct {
	DB       string         `mapstructure:"db"`
	Log      LogConfig      `mapstructure:"log"`
	Datasets DatasetsConfig `mapstructure:"datasets"`
	UI       UIConfig       `mapstructure:"ui"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// DatasetsConfig points at extra user-supplied dataset files.
type DatasetsConfig struct {
	Dir string `mapstructure:"dir"`
}

// UIConfig holds terminal UI timing.
type UIConfig struct {
	Debounce         time.Duration `mapstructure:"debounce"`
	AutoAdvanceDelay time.Duration `mapstructure:"auto_advance_delay"`
	Splash           bool          `mapstructure:"splash"`
}

// Load reads configuration. When path is empty, verbiz.yaml is looked up in
// the user config directory and the working directory; a missing file is not
// an error. A .env file in the working directory is loaded first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("verbiz")
		v.SetConfigType("yaml")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("datasets.dir", "")

	v.SetDefault("ui.debounce", 140*time.Millisecond)
	v.SetDefault("ui.auto_advance_delay", 550*time.Millisecond)
	v.SetDefault("ui.splash", true)
}

// configDir returns $XDG_CONFIG_HOME/verbiz, falling back to ~/.config/verbiz.
func configDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "verbiz")
}

// LogFile returns the configured log file, defaulting to verbiz.log next to
// the database.
func (c *Config) LogFile(dbPath string) string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(filepath.Dir(dbPath), "verbiz.log")
}
