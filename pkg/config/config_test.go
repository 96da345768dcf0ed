package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glue-tools/gluefetch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Len(t, cfg.Packages, 2)
	assert.Equal(t, "glue-cli-lib", cfg.Packages[0].Name)
	assert.Equal(t, "1.6.0", cfg.Packages[0].Version)
	assert.True(t, cfg.Packages[0].VersionInQuery)
	assert.Equal(t, "io.connect.net", cfg.Packages[1].Name)
	assert.Equal(t, "1.27.0", cfg.Packages[1].Version)
	assert.False(t, cfg.Packages[1].VersionInQuery)

	assert.Equal(t, DefaultHTTPTimeout, cfg.Settings.HTTPTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Len(t, cfg.Packages, 2)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfigFromReader(t *testing.T) {
	yamlContent := `
packages:
  - name: glue-cli-lib
    version: 2.0.0
    extract_path: runtimes
    version_in_query: true
    install:
      dirs: [32bit]
      patterns: ["*.dll"]
settings:
  http_timeout: 5s
  log_level: debug
`
	cfg, err := LoadConfigFromReader(strings.NewReader(yamlContent))
	require.NoError(t, err)

	require.Len(t, cfg.Packages, 1)
	assert.Equal(t, "2.0.0", cfg.Packages[0].Version)
	// Feed URL defaults when omitted.
	assert.Equal(t, DefaultFeedURL, cfg.Packages[0].FeedURL)
	assert.Equal(t, 5*time.Second, cfg.Settings.HTTPTimeout)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, "text", cfg.Settings.OutputFormat)
}

func TestLoadConfigFromReader_InvalidYAML(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("packages: [this is: not yaml"))
	assert.ErrorIs(t, err, errors.ErrConfigParse)
}

func TestLoadConfigFromReader_InvalidPackage(t *testing.T) {
	yamlContent := `
packages:
  - name: broken
    version: not-a-version
    extract_path: lib
    install:
      all: true
`
	_, err := LoadConfigFromReader(strings.NewReader(yamlContent))
	assert.ErrorIs(t, err, errors.ErrConfigValidation)
}

func TestValidate_DuplicatePackages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Packages = append(cfg.Packages, cfg.Packages[0])
	assert.ErrorIs(t, cfg.Validate(), errors.ErrConfigValidation)
}

func TestValidate_BadSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.OutputFormat = "xml"
	assert.ErrorIs(t, cfg.Validate(), errors.ErrConfigValidation)

	cfg = DefaultConfig()
	cfg.Settings.LogLevel = "loud"
	assert.ErrorIs(t, cfg.Validate(), errors.ErrConfigValidation)

	cfg = DefaultConfig()
	cfg.Settings.HTTPTimeout = -time.Second
	assert.ErrorIs(t, cfg.Validate(), errors.ErrConfigValidation)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "debug"
	require.NoError(t, cfg.SaveConfig(path))

	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file should not survive a save")
	}

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", loaded.Settings.LogLevel)
	require.Len(t, loaded.Packages, 2)
	assert.Equal(t, cfg.Packages[0].Install, loaded.Packages[0].Install)
}

func TestSaveConfig_EmptyPath(t *testing.T) {
	assert.ErrorIs(t, DefaultConfig().SaveConfig(""), errors.ErrEmptyConfigPath)
}
