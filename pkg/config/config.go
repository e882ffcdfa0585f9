// Package config handles configuration for mcp-android-emulator.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the server configuration (config.yaml). Zero values mean
// "use the built-in default".
type Config struct {
	// Device settings
	ADBPath  string `yaml:"adb_path"`  // adb binary; PATH lookup when empty
	Serial   string `yaml:"serial"`    // device serial; auto-detect when empty
	DumpPath string `yaml:"dump_path"` // on-device hierarchy dump path

	// Polling settings
	PollIntervalMs int `yaml:"poll_interval_ms"` // wait-loop tick interval
	SettleDelayMs  int `yaml:"settle_delay_ms"`  // post-scroll settle delay
	StableTicks    int `yaml:"stable_ticks"`     // equal fingerprints for stability

	// Logging
	LogFile string `yaml:"log_file"`
}

// PollInterval returns the poll interval as a duration, 0 when unset.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// SettleDelay returns the settle delay as a duration, 0 when unset.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	// No config file found, return empty config
	return &Config{}, nil
}
