// Package config provides configuration management for the gluefetch
// provisioner. It handles loading, validating, and saving the YAML
// configuration describing which packages to fetch and how the run behaves.
// The stock configuration carries the two interop packages the tool exists
// for; versions can be bumped in the file without touching any logic.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glue-tools/gluefetch/pkg/errors"
	"github.com/glue-tools/gluefetch/pkg/fsutil"
	"github.com/glue-tools/gluefetch/pkg/model"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Packages lists the packages provisioned on install, in order.
	Packages []*model.PackageRef `yaml:"packages"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// HooksConfig points at optional Tengo scripts run around each package install.
type HooksConfig struct {
	PreInstall  string `yaml:"pre_install,omitempty"`
	PostInstall string `yaml:"post_install,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// WorkDir is where artifacts are installed. Empty means the current
	// working directory.
	WorkDir string `yaml:"workdir,omitempty"`

	// Network settings
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // text, json
	LogLevel     string `yaml:"log_level"`     // error, warn, info, debug

	Hooks HooksConfig `yaml:"hooks,omitempty"`
}

// Default configuration values.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultFeedURL is the package feed the stock packages come from.
	DefaultFeedURL = "https://feed.interop.dev/packages"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults: the two stock
// interop packages against the default feed.
func DefaultConfig() *Config {
	return &Config{
		Packages: []*model.PackageRef{
			{
				Name:           "glue-cli-lib",
				Version:        "1.6.0",
				FeedURL:        DefaultFeedURL,
				VersionInQuery: true,
				ExtractPath:    "runtimes",
				Install: model.InstallRules{
					Dirs:     []string{"32bit"},
					Patterns: []string{"*.dll", "*.pdb", "*.lib", "*.h"},
				},
			},
			{
				Name:        "io.connect.net",
				Version:     "1.27.0",
				FeedURL:     DefaultFeedURL,
				ExtractPath: "lib/net462",
				Install:     model.InstallRules{All: true},
			},
		},
		Settings: Settings{
			HTTPTimeout:  DefaultHTTPTimeout,
			OutputFormat: "text",
			LogLevel:     "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig saves configuration to a file, atomically via a temp file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(err, "failed to replace config file")
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return data, nil
}

// applyDefaults fills in zero values after unmarshalling.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if len(c.Packages) == 0 {
		c.Packages = defaults.Packages
	}
	for _, pkg := range c.Packages {
		if pkg != nil && pkg.FeedURL == "" {
			pkg.FeedURL = DefaultFeedURL
		}
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validatePackages(c.Packages); err != nil {
		return err
	}
	return validateSettings(c.Settings)
}

func validatePackages(packages []*model.PackageRef) error {
	names := make(map[string]bool)
	for _, pkg := range packages {
		if pkg == nil {
			return errors.Wrap(errors.ErrConfigValidation, "package entry cannot be empty")
		}
		if err := pkg.Validate(); err != nil {
			return errors.Wrap(errors.ErrConfigValidation, err.Error())
		}
		if names[pkg.Name] {
			return errors.Wrapf(errors.ErrConfigValidation, "duplicate package %s", pkg.Name)
		}
		names[pkg.Name] = true
	}
	return nil
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "http_timeout cannot be negative")
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[s.OutputFormat] {
		return errors.Wrapf(errors.ErrConfigValidation, "invalid output format %q", s.OutputFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errors.Wrapf(errors.ErrConfigValidation, "invalid log level %q", s.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to determine user config dir")
	}
	return filepath.Join(configDir, "gluefetch", "config.yaml"), nil
}
