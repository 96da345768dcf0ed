// Package model provides data structures for describing the packages the
// provisioner fetches and the artifacts it installs.
package model

import (
	"path/filepath"
	"strings"

	"github.com/glue-tools/gluefetch/pkg/errors"
	version "github.com/hashicorp/go-version"
)

// ArchiveExtension is the file extension of downloaded package archives.
const ArchiveExtension = ".nupkg"

// InstallRules select which parts of an extracted package tree end up in the
// working directory.
type InstallRules struct {
	// Dirs lists subdirectories moved into the working directory as-is.
	// A pre-existing directory of the same name is removed first so the
	// fresh tree never merges with a stale one.
	Dirs []string `yaml:"dirs,omitempty"`

	// Patterns lists file glob patterns (e.g. "*.dll") matched against the
	// top level of the extracted tree.
	Patterns []string `yaml:"patterns,omitempty"`

	// All moves the entire contents of the extracted tree.
	All bool `yaml:"all,omitempty"`
}

// PackageRef identifies one versioned package on a feed together with the
// extraction and install rules applied to its archive.
type PackageRef struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// FeedURL is the base URL of the package feed serving the archive.
	FeedURL string `yaml:"feed_url"`

	// VersionInQuery adds the requested version as an explicit query
	// parameter to the download URL. Some feed frontends require it, the
	// plain CDN path does not.
	VersionInQuery bool `yaml:"version_in_query,omitempty"`

	// ExtractPath is the entry inside the archive to extract, relative to
	// the archive root. May be a top-level directory or a nested one.
	ExtractPath string `yaml:"extract_path"`

	Install InstallRules `yaml:"install"`
}

// ArchiveFileName returns the local file name for the downloaded archive,
// e.g. "glue-cli-lib.1.6.0.nupkg".
func (p *PackageRef) ArchiveFileName() string {
	return p.Name + "." + p.Version + ArchiveExtension
}

// String returns the canonical "name@version" form.
func (p *PackageRef) String() string {
	return p.Name + "@" + p.Version
}

// Validate checks that the reference is complete enough to be fetched.
func (p *PackageRef) Validate() error {
	if p.Name == "" {
		return errors.Wrap(errors.ErrPackageInvalid, "package name cannot be empty")
	}
	if strings.ContainsAny(p.Name, "/\\") {
		return errors.Wrapf(errors.ErrPackageInvalid, "package name %q contains path separators", p.Name)
	}
	if _, err := version.NewVersion(p.Version); err != nil {
		return errors.Wrapf(errors.ErrPackageInvalid, "package %s has invalid version %q", p.Name, p.Version)
	}
	if p.FeedURL == "" {
		return errors.Wrapf(errors.ErrPackageInvalid, "package %s has no feed URL", p.Name)
	}
	if p.ExtractPath == "" {
		return errors.Wrapf(errors.ErrPackageInvalid, "package %s has no extract path", p.Name)
	}
	if filepath.IsAbs(p.ExtractPath) || strings.Contains(p.ExtractPath, "..") {
		return errors.Wrapf(errors.ErrPackageInvalid, "package %s extract path %q must be relative", p.Name, p.ExtractPath)
	}
	if !p.Install.All && len(p.Install.Dirs) == 0 && len(p.Install.Patterns) == 0 {
		return errors.Wrapf(errors.ErrPackageInvalid, "package %s has no install rules", p.Name)
	}
	return nil
}
