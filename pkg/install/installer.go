// Package install moves extracted package contents into the working directory.
package install

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/glue-tools/gluefetch/internal/logger"
	pkgerrors "github.com/glue-tools/gluefetch/pkg/errors"
	"github.com/glue-tools/gluefetch/pkg/fsutil"
	"github.com/glue-tools/gluefetch/pkg/model"
)

// Installer applies install rules to an extracted package tree. Installs
// always overwrite: running the procedure twice converges to the same
// working directory state.
type Installer struct{}

// NewInstaller creates a new Installer.
func NewInstaller() *Installer {
	return &Installer{}
}

// Install moves the parts of extractedRoot selected by rules into workDir and
// returns the workdir-relative paths it installed. Selected directories
// replace any pre-existing directory of the same name wholesale.
func (i *Installer) Install(extractedRoot, workDir string, rules model.InstallRules) ([]string, error) {
	if workDir == "" {
		return nil, fmt.Errorf("working directory cannot be empty: %w", pkgerrors.ErrInvalidPath)
	}
	if _, err := os.Stat(extractedRoot); err != nil {
		return nil, fmt.Errorf("extracted tree %s is not readable: %w", extractedRoot, pkgerrors.ErrCopyFailed)
	}
	if err := fsutil.EnsureDir(workDir); err != nil {
		return nil, fmt.Errorf("%w: %w", pkgerrors.ErrCopyFailed, err)
	}

	var installed []string

	if rules.All {
		paths, err := i.installAll(extractedRoot, workDir)
		if err != nil {
			return nil, err
		}
		return paths, nil
	}

	dirPaths, err := i.installDirs(extractedRoot, workDir, rules.Dirs)
	if err != nil {
		return nil, err
	}
	installed = append(installed, dirPaths...)

	filePaths, err := i.installPatterns(extractedRoot, workDir, rules.Patterns)
	if err != nil {
		return nil, err
	}
	installed = append(installed, filePaths...)

	return installed, nil
}

// installDirs moves named subdirectories, clearing the destination first so a
// fresh tree never merges with a stale one.
func (i *Installer) installDirs(extractedRoot, workDir string, dirs []string) ([]string, error) {
	var installed []string
	for _, dir := range dirs {
		src := filepath.Join(extractedRoot, dir)
		dst := filepath.Join(workDir, dir)

		if _, err := os.Stat(src); err != nil {
			return nil, fmt.Errorf("expected directory %s missing from extracted tree: %w", dir, pkgerrors.ErrCopyFailed)
		}
		if err := os.RemoveAll(dst); err != nil {
			return nil, fmt.Errorf("failed to clear existing %s: %w: %w", dst, pkgerrors.ErrCopyFailed, err)
		}
		if err := fsutil.Move(src, dst); err != nil {
			return nil, fmt.Errorf("%w: %w", pkgerrors.ErrCopyFailed, err)
		}
		logger.Debug("installed directory", logger.Fields{"dir": dir})
		installed = append(installed, dir)
	}
	return installed, nil
}

// installPatterns moves files matching the glob patterns at the top level of
// the extracted tree.
func (i *Installer) installPatterns(extractedRoot, workDir string, patterns []string) ([]string, error) {
	var installed []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(extractedRoot, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, pkgerrors.ErrCopyFailed)
		}
		sort.Strings(matches)
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", pkgerrors.ErrCopyFailed, err)
			}
			if info.IsDir() {
				continue // patterns select files, dirs are moved via Dirs
			}
			name := filepath.Base(match)
			if err := fsutil.Move(match, filepath.Join(workDir, name)); err != nil {
				return nil, fmt.Errorf("%w: %w", pkgerrors.ErrCopyFailed, err)
			}
			logger.Debug("installed file", logger.Fields{"file": name})
			installed = append(installed, name)
		}
	}
	return installed, nil
}

// installAll moves the entire contents of the extracted tree into workDir.
func (i *Installer) installAll(extractedRoot, workDir string) ([]string, error) {
	entries, err := os.ReadDir(extractedRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pkgerrors.ErrCopyFailed, err)
	}

	var installed []string
	for _, entry := range entries {
		src := filepath.Join(extractedRoot, entry.Name())
		dst := filepath.Join(workDir, entry.Name())
		if err := fsutil.Move(src, dst); err != nil {
			return nil, fmt.Errorf("%w: %w", pkgerrors.ErrCopyFailed, err)
		}
		logger.Debug("installed entry", logger.Fields{"entry": entry.Name()})
		installed = append(installed, entry.Name())
	}
	sort.Strings(installed)
	return installed, nil
}
