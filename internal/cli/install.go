package cli

import (
	"fmt"
	"time"

	"github.com/glue-tools/gluefetch/pkg/provision"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var (
		workDir     string
		stagingDir  string
		keepStaging bool
		dryRun      bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Fetch and install the configured packages",
		Long: `Download the configured packages from their feed, extract the configured
subpaths and install the selected artifacts into the working directory,
overwriting existing copies. Archives and extracted trees are removed when
the run finishes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd, workDir, stagingDir, keepStaging, dryRun, timeout)
		},
	}

	cmd.Flags().StringVar(&workDir, "workdir", "", "Directory to install into (defaults to the current directory)")
	cmd.Flags().StringVar(&stagingDir, "staging-dir", "", "Directory for downloads and extraction (defaults to a temp dir)")
	cmd.Flags().BoolVar(&keepStaging, "keep-staging", false, "Keep the staging directory for inspection")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print planned steps without executing")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "HTTP timeout for downloads (defaults to config)")

	return cmd
}

func runInstall(cmd *cobra.Command, workDir, stagingDir string, keepStaging, dryRun bool, timeout time.Duration) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if timeout > 0 {
		cfg.Settings.HTTPTimeout = timeout
	}
	if workDir == "" {
		workDir = cfg.Settings.WorkDir
	}

	// Simple, human-friendly progress output
	events := provision.Hooks{OnEvent: func(e provision.Event) {
		if e.ID != "" {
			fmt.Printf("%s: %s (%s)\n", e.Phase, e.Msg, e.ID)
		} else {
			fmt.Printf("%s: %s\n", e.Phase, e.Msg)
		}
	}}

	prov, err := buildProvisioner(cfg, events)
	if err != nil {
		return err
	}

	opts := provision.Options{
		WorkDir:     workDir,
		StagingDir:  stagingDir,
		KeepStaging: keepStaging,
		DryRun:      dryRun,
	}
	if err := prov.Run(cmd.Context(), cfg.Packages, opts); err != nil {
		return fmt.Errorf("failed to provision packages: %w", err)
	}

	return nil
}
