// Package config handles global tablink configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"

	"github.com/aidanlsb/tablink/internal/atomicfile"
	"github.com/aidanlsb/tablink/internal/paths"
)

// Config represents the global tablink configuration.
//
// Values come from config.toml and are then overridden by TABLINK_* environment
// variables.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" json:"log_level" env:"TABLINK_LOG_LEVEL"`

	// LogFormat is console or json.
	LogFormat string `toml:"log_format" json:"log_format" env:"TABLINK_LOG_FORMAT"`

	// ScriptsFile is an optional YAML file adding browser scripts.
	ScriptsFile string `toml:"scripts_file" json:"scripts_file" env:"TABLINK_SCRIPTS_FILE"`

	Resolver  ResolverConfig  `toml:"resolver" json:"resolver"`
	Extension ExtensionConfig `toml:"extension" json:"extension"`
	Bridge    BridgeConfig    `toml:"bridge" json:"bridge"`
	Raindrop  RaindropConfig  `toml:"raindrop" json:"raindrop"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui" json:"ui"`
}

// ResolverConfig tunes the link resolution chain.
type ResolverConfig struct {
	// ClipboardFallback enables reading the clipboard when no browser source works.
	ClipboardFallback bool `toml:"clipboard_fallback" json:"clipboard_fallback" env:"TABLINK_CLIPBOARD_FALLBACK"`

	// ScriptTimeout bounds each AppleScript run, e.g. "5s".
	ScriptTimeout string `toml:"script_timeout" json:"script_timeout" env:"TABLINK_SCRIPT_TIMEOUT"`
}

// ExtensionConfig points at the tab bridge the browser extension feeds.
type ExtensionConfig struct {
	// Endpoint is the bridge base URL. Empty disables the extension source.
	Endpoint string `toml:"endpoint" json:"endpoint" env:"TABLINK_EXTENSION_ENDPOINT"`
	Timeout  string `toml:"timeout" json:"timeout" env:"TABLINK_EXTENSION_TIMEOUT"`
}

// BridgeConfig configures `tablink bridge`.
type BridgeConfig struct {
	Listen string `toml:"listen" json:"listen" env:"TABLINK_BRIDGE_LISTEN"`
	// MaxAge is how long a pushed snapshot stays valid.
	MaxAge string `toml:"max_age" json:"max_age" env:"TABLINK_BRIDGE_MAX_AGE"`
}

// RaindropConfig holds Raindrop.io credentials and save defaults.
type RaindropConfig struct {
	Token      string   `toml:"token" json:"token,omitempty" env:"TABLINK_RAINDROP_TOKEN"`
	Collection int      `toml:"collection" json:"collection" env:"TABLINK_RAINDROP_COLLECTION"`
	Tags       []string `toml:"tags" json:"tags" env:"TABLINK_RAINDROP_TAGS" envSeparator:","`
	BaseURL    string   `toml:"base_url" json:"base_url" env:"TABLINK_RAINDROP_BASE_URL"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent" json:"accent" env:"TABLINK_UI_ACCENT"`
}

// Default returns the configuration used when no file or environment is set.
func Default() *Config {
	return &Config{
		LogLevel:    "warn",
		LogFormat:   "console",
		ScriptsFile: "~/.config/" + paths.AppDirName + "/scripts.yaml",
		Resolver: ResolverConfig{
			ClipboardFallback: true,
			ScriptTimeout:     "5s",
		},
		Extension: ExtensionConfig{
			Endpoint: "http://127.0.0.1:7777",
			Timeout:  "1s",
		},
		Bridge: BridgeConfig{
			Listen: "127.0.0.1:7777",
			MaxAge: "2m",
		},
		Raindrop: RaindropConfig{
			Collection: -1,
			BaseURL:    "https://api.raindrop.io/rest/v1",
		},
	}
}

// Load loads the configuration from the default location.
// Returns defaults (plus environment overrides) if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := Default()
		if err := applyEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	path = paths.ExpandTilde(path)
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// Validate checks values that are parsed lazily.
func (c *Config) Validate() error {
	for key, value := range map[string]string{
		"resolver.script_timeout": c.Resolver.ScriptTimeout,
		"extension.timeout":       c.Extension.Timeout,
		"bridge.max_age":          c.Bridge.MaxAge,
	} {
		if _, err := parseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("log_format: unknown format %q (use console or json)", c.LogFormat)
	}
	return nil
}

// ScriptTimeout returns resolver.script_timeout (0 when unset).
func (c *Config) ScriptTimeout() time.Duration {
	d, _ := parseDuration(c.Resolver.ScriptTimeout)
	return d
}

// ExtensionTimeout returns extension.timeout (0 when unset).
func (c *Config) ExtensionTimeout() time.Duration {
	d, _ := parseDuration(c.Extension.Timeout)
	return d
}

// BridgeMaxAge returns bridge.max_age (0 disables expiry).
func (c *Config) BridgeMaxAge() time.Duration {
	d, _ := parseDuration(c.Bridge.MaxAge)
	return d
}

// ScriptsPath returns scripts_file with "~" expanded.
func (c *Config) ScriptsPath() string {
	return paths.ExpandTilde(c.ScriptsFile)
}

func parseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q must not be negative", value)
	}
	return d, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/tablink/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	return filepath.Join(paths.ConfigDir(), "config.toml")
}

// ResolveConfigPath returns the explicit path (tilde-expanded) or the default.
func ResolveConfigPath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return paths.ExpandTilde(explicit)
	}
	return DefaultPath()
}

const defaultConfig = `# tablink configuration
# Every key can also be set with a TABLINK_* environment variable.

# Logging: debug, info, warn, error / console, json
# log_level = "warn"
# log_format = "console"

# Extra browser scripts (YAML). See 'tablink browsers' for the built-in list.
# scripts_file = "~/.config/tablink/scripts.yaml"

[resolver]
# Read the clipboard when no browser source yields a URL.
clipboard_fallback = true
# Upper bound for each AppleScript run.
script_timeout = "5s"

[extension]
# Tab bridge fed by the browser extension. Leave empty to skip it.
endpoint = "http://127.0.0.1:7777"
timeout = "1s"

[bridge]
listen = "127.0.0.1:7777"
# Snapshots older than this are ignored.
max_age = "2m"

[raindrop]
# Test token from https://app.raindrop.io/settings/integrations
# token = ""
# -1 is the Unsorted collection.
collection = -1
# tags = ["read-later"]

# [ui]
# accent = "39"
`

// CreateDefault creates a default config file at path if it doesn't exist.
// Returns whether the file was created.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := atomicfile.WriteFile(path, []byte(defaultConfig), 0o600); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}
