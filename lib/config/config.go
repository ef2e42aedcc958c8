// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the configuration file when no --config
// flag is given.
const EnvironmentVariable = "PLAYBOOK_CONFIG"

// Config is the master configuration for playbook.
type Config struct {
	// Catalogue configures where the task catalogue comes from.
	Catalogue CatalogueConfig `yaml:"catalogue"`

	// Export configures where and how exports are written.
	Export ExportConfig `yaml:"export"`

	// Browser configures the interactive browser.
	Browser BrowserConfig `yaml:"browser"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`

	// PreferencesFile is where the browser persists the theme.
	PreferencesFile string `yaml:"preferences_file"`
}

// CatalogueConfig configures the catalogue source. At most one of Path
// and URL may be set; with neither, the built-in catalogue is used.
type CatalogueConfig struct {
	// Path is a local catalogue file. Extensions select unwrapping:
	// .zst, .lz4, .age.
	Path string `yaml:"path"`

	// URL is an http(s) catalogue location.
	URL string `yaml:"url"`

	// FetchTimeout bounds the initial load.
	// Default: 10s
	FetchTimeout string `yaml:"fetch_timeout"`

	// Watch reloads a local catalogue when the file changes.
	// Default: true
	Watch bool `yaml:"watch"`

	// IdentityFile holds age identities for encrypted catalogues.
	IdentityFile string `yaml:"identity_file"`
}

// ExportConfig configures exports.
type ExportConfig struct {
	// Directory receives files exported from the browser.
	// Default: current directory
	Directory string `yaml:"directory"`

	// Compression applied to exported files: none, zstd, or lz4.
	// Default: none
	Compression string `yaml:"compression"`

	// Recipients are age public keys (age1...) exports are encrypted
	// to. Empty means plaintext.
	Recipients []string `yaml:"recipients"`
}

// BrowserConfig configures the interactive browser.
type BrowserConfig struct {
	// Debounce delays applying a query edit until typing pauses.
	// Default: 150ms
	Debounce string `yaml:"debounce"`

	// Theme is used when no preference has been saved: dark or light.
	// Default: dark
	Theme string `yaml:"theme"`

	// NoticeDuration is how long status notices stay on screen.
	// Default: 3s
	NoticeDuration string `yaml:"notice_duration"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level"`

	// Output is a file that receives JSON log records in addition to
	// the usual destination. Empty disables it.
	Output string `yaml:"output"`
}

// Default returns the default configuration. Loaded files are merged
// over it, so any field a file omits keeps its default.
func Default() *Config {
	return &Config{
		Catalogue: CatalogueConfig{
			FetchTimeout: "10s",
			Watch:        true,
		},
		Export: ExportConfig{
			Directory:   ".",
			Compression: "none",
		},
		Browser: BrowserConfig{
			Debounce:       "150ms",
			Theme:          "dark",
			NoticeDuration: "3s",
		},
		Log: LogConfig{
			Level: "info",
		},
		PreferencesFile: "${XDG_STATE_HOME:-${HOME}/.local/state}/playbook/preferences.yaml",
	}
}

// Load loads configuration from the file named by PLAYBOOK_CONFIG. It
// fails when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your playbook.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applies
// variable expansion, and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads the file named by flagPath, else the file named by
// PLAYBOOK_CONFIG, else returns the defaults.
func Resolve(flagPath string) (*Config, error) {
	if flagPath != "" {
		return LoadFile(flagPath)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	cfg := Default()
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Catalogue.Path = expandVars(c.Catalogue.Path, vars)
	c.Catalogue.IdentityFile = expandVars(c.Catalogue.IdentityFile, vars)
	c.Export.Directory = expandVars(c.Export.Directory, vars)
	c.Log.Output = expandVars(c.Log.Output, vars)
	c.PreferencesFile = expandVars(c.PreferencesFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-((?:[^{}]|\$\{[^}]*\})*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default}; a default may itself
// hold one ${VAR} reference. Provided vars win over the environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		name := parts[1]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		if len(parts) >= 3 && parts[2] != "" {
			return expandVars(parts[2], vars)
		}
		return ""
	})
}

var (
	compressionValues = []string{"none", "zstd", "lz4"}
	themeValues       = []string{"dark", "light"}
	levelValues       = []string{"debug", "info", "warn", "error"}
)

// Validate checks the configuration and reports every problem.
func (c *Config) Validate() error {
	var errs []error

	if c.Catalogue.Path != "" && c.Catalogue.URL != "" {
		errs = append(errs, errors.New("catalogue.path and catalogue.url are mutually exclusive"))
	}
	if err := validateDuration("catalogue.fetch_timeout", c.Catalogue.FetchTimeout); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains(compressionValues, c.Export.Compression) {
		errs = append(errs, fmt.Errorf("export.compression must be one of: %v", compressionValues))
	}
	if err := validateDuration("browser.debounce", c.Browser.Debounce); err != nil {
		errs = append(errs, err)
	}
	if err := validateDuration("browser.notice_duration", c.Browser.NoticeDuration); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains(themeValues, c.Browser.Theme) {
		errs = append(errs, fmt.Errorf("browser.theme must be one of: %v", themeValues))
	}
	if !slices.Contains(levelValues, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levelValues))
	}
	if c.PreferencesFile == "" {
		errs = append(errs, errors.New("preferences_file is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateDuration(field, value string) error {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if duration < 0 {
		return fmt.Errorf("%s must not be negative", field)
	}
	return nil
}

// CatalogueLocation returns the configured path or URL, or "" for the
// built-in catalogue.
func (c *Config) CatalogueLocation() string {
	if c.Catalogue.URL != "" {
		return c.Catalogue.URL
	}
	return c.Catalogue.Path
}

// FetchTimeout returns catalogue.fetch_timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return mustDuration(c.Catalogue.FetchTimeout)
}

// Debounce returns browser.debounce as a duration.
func (c *Config) Debounce() time.Duration {
	return mustDuration(c.Browser.Debounce)
}

// NoticeDuration returns browser.notice_duration as a duration.
func (c *Config) NoticeDuration() time.Duration {
	return mustDuration(c.Browser.NoticeDuration)
}

// LogLevel returns log.level as a slog level.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ExportDirectory returns the export directory as an absolute path.
// The directory is created by the first export written into it.
func (c *Config) ExportDirectory() (string, error) {
	return filepath.Abs(c.Export.Directory)
}

// mustDuration parses a duration already checked by Validate. Invalid
// values yield zero.
func mustDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return duration
}
