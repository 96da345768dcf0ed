package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glue-tools/gluefetch/internal/logger"
	"github.com/glue-tools/gluefetch/pkg/model"
	"github.com/spf13/cobra"
)

// NewCleanCmd creates the clean command. It removes archives and extracted
// trees an interrupted run may have left in the working directory.
func NewCleanCmd() *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove leftover archives and extracted trees",
		Long: `Remove package archives and extracted directories that an interrupted
run left behind in the working directory. Installed artifacts are not touched.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runClean(workDir)
		},
	}

	cmd.Flags().StringVar(&workDir, "workdir", "", "Directory to clean (defaults to the current directory)")

	return cmd
}

func runClean(workDir string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if workDir == "" {
		workDir = cfg.Settings.WorkDir
	}
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
	}

	entries, err := os.ReadDir(workDir)
	if err != nil {
		return fmt.Errorf("failed to read working directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		leftoverArchive := !entry.IsDir() && strings.HasSuffix(name, model.ArchiveExtension)
		leftoverTree := entry.IsDir() && strings.HasSuffix(name, "-extracted")
		if !leftoverArchive && !leftoverTree {
			continue
		}
		path := filepath.Join(workDir, name)
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		logger.Info("removed leftover", logger.Fields{"path": name})
		removed++
	}

	logger.Successf("cleaned %d leftover(s) from %s", removed, workDir)
	return nil
}
