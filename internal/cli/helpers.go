package cli

import (
	"fmt"
	"os"

	"github.com/glue-tools/gluefetch/internal/logger"
	"github.com/glue-tools/gluefetch/pkg/archive"
	"github.com/glue-tools/gluefetch/pkg/config"
	"github.com/glue-tools/gluefetch/pkg/download"
	"github.com/glue-tools/gluefetch/pkg/feed"
	"github.com/glue-tools/gluefetch/pkg/hooks"
	"github.com/glue-tools/gluefetch/pkg/install"
	"github.com/glue-tools/gluefetch/pkg/provision"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// loadConfig loads the configuration honoring the global CLI flags.
func loadConfig() (*config.Config, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}

	if configPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
		configPath = defaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with CLI flags if provided
	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel)
	return cfg, nil
}

// buildProvisioner wires the provisioner from the configuration.
func buildProvisioner(cfg *config.Config, events provision.Hooks) (*provision.Provisioner, error) {
	hookExec, err := loadHookExecutor(cfg)
	if err != nil {
		return nil, err
	}

	dl := download.NewManager(cfg.Settings.HTTPTimeout, "gluefetch/"+Version)

	return provision.New(
		feed.NewResolver(),
		dl,
		archive.NewManager(),
		install.NewInstaller(),
		hookExec,
		events,
	), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// loadHookExecutor registers the configured hook scripts, if any.
func loadHookExecutor(cfg *config.Config) (provision.HookExecutor, error) {
	if cfg.Settings.Hooks.PreInstall == "" && cfg.Settings.Hooks.PostInstall == "" {
		return nil, nil
	}

	exec := hooks.NewTengoExecutor()
	if path := cfg.Settings.Hooks.PreInstall; path != "" {
		if err := exec.AddScriptFile(hooks.PreInstall, path); err != nil {
			return nil, err
		}
	}
	if path := cfg.Settings.Hooks.PostInstall; path != "" {
		if err := exec.AddScriptFile(hooks.PostInstall, path); err != nil {
			return nil, err
		}
	}
	return exec, nil
}
