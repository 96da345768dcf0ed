// Package archive provides utilities for extracting package archives and
// building archive fixtures.
package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	pkgerrors "github.com/glue-tools/gluefetch/pkg/errors"
	"github.com/glue-tools/gluefetch/pkg/fsutil"
	"github.com/mholt/archives"
)

// Manager handles archive extraction and creation operations.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// ExtractAll extracts all files from an archive to the specified destination directory.
func (am *Manager) ExtractAll(ctx context.Context, archivePath, destDir string) error {
	return am.ExtractPath(ctx, archivePath, ".", destDir)
}

// ExtractPath extracts the named entry (a file or a directory subtree) from an
// archive into destDir, stripping the entry prefix. A missing entry is an
// error, not a silent no-op: the caller must be able to tell that nothing was
// installed.
func (am *Manager) ExtractPath(ctx context.Context, archivePath, subPath, destDir string) error {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w: %w", pkgerrors.ErrExtractionFailed, err)
	}
	// Ensure archive FS is closed after extraction
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	subPath = path.Clean(subPath)
	if _, err := fs.Stat(fsys, subPath); err != nil {
		return fmt.Errorf("archive %s has no entry %q: %w", archivePath, subPath, pkgerrors.ErrExtractionFailed)
	}

	if err := os.MkdirAll(destDir, fsutil.DirModeDefault); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	walkFn := func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return am.extractEntry(fsys, p, subPath, destDir, d)
	}

	if err := fs.WalkDir(fsys, subPath, walkFn); err != nil {
		return fmt.Errorf("%w: %w", pkgerrors.ErrExtractionFailed, err)
	}
	return nil
}

// Create creates a zip archive from the specified source directory. Package
// archives on the feed are plain zip files, so fixtures are built the same way.
func (am *Manager) Create(ctx context.Context, sourceDir, archivePath string) error {
	absolutePath, err := filepath.Abs(sourceDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for source directory: %w", err)
	}

	archiveFiles, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		absolutePath + string(os.PathSeparator): "",
	})
	if err != nil {
		return fmt.Errorf("failed to read files from disk: %w", err)
	}

	file, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", archivePath, err)
	}
	defer func() {
		_ = file.Sync()
		_ = file.Close()
	}()

	format := archives.Zip{}
	if err := format.Archive(ctx, file, archiveFiles); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	return nil
}

// extractEntry processes a single archive entry and writes it under destDir,
// relative to the extraction root.
func (am *Manager) extractEntry(fsys fs.FS, entryPath, root, destDir string, d fs.DirEntry) error {
	rel := relativeToRoot(entryPath, root)
	if rel == "." {
		if d.IsDir() {
			return nil // the root itself, already created
		}
		// Extracting a single file entry: keep its base name.
		rel = path.Base(entryPath)
	}

	targetPath := filepath.Join(destDir, filepath.FromSlash(rel))

	if d.IsDir() {
		return os.MkdirAll(targetPath, fsutil.DirModeDefault)
	}

	info, err := d.Info()
	if err != nil {
		return fmt.Errorf("failed to get file info for %s: %w", entryPath, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return am.writeSymlink(fsys, entryPath, targetPath)
	}

	return am.writeRegularFile(fsys, entryPath, targetPath, info)
}

func relativeToRoot(entryPath, root string) string {
	if root == "." {
		return entryPath
	}
	if entryPath == root {
		return "."
	}
	return strings.TrimPrefix(entryPath, root+"/")
}

// writeSymlink creates a symlink at targetPath with contents from the archive entry.
func (am *Manager) writeSymlink(fsys fs.FS, entryPath, targetPath string) error {
	linkTarget, err := fsys.Open(entryPath)
	if err != nil {
		return fmt.Errorf("failed to read symlink %s: %w", entryPath, err)
	}
	defer func() { _ = linkTarget.Close() }()

	targetBytes, err := io.ReadAll(linkTarget)
	if err != nil {
		return fmt.Errorf("failed to read symlink target %s: %w", entryPath, err)
	}

	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return fmt.Errorf("failed to create parent directory for symlink %s: %w", entryPath, err)
	}

	_ = os.Remove(targetPath)

	return os.Symlink(string(targetBytes), targetPath)
}

// writeRegularFile writes a regular file from the archive entry to targetPath and preserves metadata.
func (am *Manager) writeRegularFile(fsys fs.FS, entryPath, targetPath string, info fs.FileInfo) error {
	srcFile, err := fsys.Open(entryPath)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", entryPath, err)
	}
	defer func() { _ = srcFile.Close() }()

	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", entryPath, err)
	}

	dstFile, err := fsutil.CreateFilePerm(targetPath, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", targetPath, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file %s: %w", entryPath, err)
	}

	if err := os.Chmod(targetPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions for %s: %w", targetPath, err)
	}
	return os.Chtimes(targetPath, info.ModTime(), info.ModTime())
}
