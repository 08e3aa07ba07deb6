package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	// AssetDir is the root of the bundled card assets
	// (images/<id>.png and models/<id>.glb underneath it).
	AssetDir string `toml:"asset_dir"`

	// NamesFile is an optional "id,name" override table.
	NamesFile string `toml:"names_file"`

	// CacheMaxAge bounds how long a loaded asset stays warm, as a
	// duration string ("1h", "30m"). Empty means the default of 1h.
	CacheMaxAge string `toml:"cache_max_age"`

	// SimulateDelayMs adds an artificial per-read delay, matching the
	// load feel of the original bundled assets. Zero disables it.
	SimulateDelayMs int `toml:"simulate_delay_ms"`

	// PreloadBatchSize and PreloadPauseMs throttle popular-set
	// preloading. Zero values use the built-in defaults.
	PreloadBatchSize int `toml:"preload_batch_size"`
	PreloadPauseMs   int `toml:"preload_pause_ms"`
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDefaultAssetDir returns the default location of the card assets
func GetDefaultAssetDir() string {
	return filepath.Join(GetXDGDataHome(), "deckview", "assets")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "deckview", "config.toml")
}

// LoadConfig loads the config file, creating a default one if absent
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}
	config.applyDefaults()

	return &config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	configPath := GetConfigFilePath()
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %v", err)
	}

	config := &Config{
		AssetDir:    GetDefaultAssetDir(),
		CacheMaxAge: "1h",
	}
	config.applyDefaults()

	file, err := os.Create(configPath)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %v", err)
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.AssetDir == "" {
		c.AssetDir = GetDefaultAssetDir()
	}
}

// MaxAge returns the configured cache staleness bound, or 1h when the
// field is empty or unparseable.
func (c *Config) MaxAge() time.Duration {
	if c.CacheMaxAge == "" {
		return time.Hour
	}
	d, err := time.ParseDuration(c.CacheMaxAge)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// ReadDelay returns the configured simulated read delay.
func (c *Config) ReadDelay() time.Duration {
	if c.SimulateDelayMs <= 0 {
		return 0
	}
	return time.Duration(c.SimulateDelayMs) * time.Millisecond
}

// PreloadPause returns the configured inter-batch preload pause, or a
// negative value when unset so callers keep the built-in default.
func (c *Config) PreloadPause() time.Duration {
	if c.PreloadPauseMs <= 0 {
		return -1
	}
	return time.Duration(c.PreloadPauseMs) * time.Millisecond
}
