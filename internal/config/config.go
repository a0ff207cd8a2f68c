// Package config handles global xcproj configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/xcproj/internal/validate"
)

// EnvPath names the environment variable overriding the config location.
const EnvPath = "XCPROJ_CONFIG"

// Config represents the global configuration.
type Config struct {
	Paths       PathsConfig       `toml:"paths"`
	Persistence PersistenceConfig `toml:"persistence"`
	Audit       AuditConfig       `toml:"audit"`
	Profile     ProfileConfig     `toml:"profile"`
	UI          UIConfig          `toml:"ui"`
}

// PathsConfig controls path validation.
type PathsConfig struct {
	// AllowParentEscape lets paths climb one level above the project root.
	AllowParentEscape bool `toml:"allow_parent_escape"`
}

// PersistenceConfig controls how manifests are written back.
type PersistenceConfig struct {
	// KeepBackup leaves "<manifest>.bak" with the previous version after a save.
	KeepBackup bool `toml:"keep_backup"`
}

// AuditConfig controls the invocation journal.
type AuditConfig struct {
	Enabled bool `toml:"enabled"`
}

// ProfileConfig tunes --verbose instrumentation.
type ProfileConfig struct {
	// BatchThreshold is the batch size from which progress is printed.
	BatchThreshold int `toml:"batch_threshold"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0" to "255") or hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Audit:   AuditConfig{Enabled: true},
		Profile: ProfileConfig{BatchThreshold: 50},
	}
}

// PathPolicy returns the validator policy for user-supplied paths.
func (c *Config) PathPolicy() validate.PathPolicy {
	return validate.PathPolicy{AllowParentEscape: c.Paths.AllowParentEscape}
}

// Load loads the configuration from the default location.
// Returns the default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path. Keys the schema
// does not know are rejected so typos do not pass silently.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Profile.BatchThreshold < 0 {
		return nil, fmt.Errorf("config %s: profile.batch_threshold must not be negative", path)
	}
	return cfg, nil
}

// DefaultPath returns the config file path: $XCPROJ_CONFIG, then
// ~/.config/xcproj/config.toml, then the OS-specific config directory.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p
	}

	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "xcproj", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "xcproj", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
