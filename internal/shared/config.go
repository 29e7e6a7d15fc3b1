package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API APIConfig `toml:"api"`
	Log LogConfig `toml:"log"`
}

// APIConfig contains Remote Library Service connection settings.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string `toml:"level"`
	TUIFile string `toml:"tui_file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path,
// then applies environment variable overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config,
// with environment variable overrides applied.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overlays LIBMAN_* environment variables onto the config.
// A .env file in the working directory is loaded first if present.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("LIBMAN_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("LIBMAN_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("LIBMAN_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
