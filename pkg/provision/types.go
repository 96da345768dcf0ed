//go:generate mockgen -package mocks -destination=./mocks/provision.go . Resolver,Downloader,Extractor,Installer,HookExecutor

package provision

import (
	"context"
	"net/url"

	"github.com/glue-tools/gluefetch/pkg/download"
	"github.com/glue-tools/gluefetch/pkg/hooks"
	"github.com/glue-tools/gluefetch/pkg/model"
)

// Resolver builds download URLs for package references.
type Resolver interface {
	ArchiveURL(ref *model.PackageRef) (*url.URL, error)
}

// Downloader is the subset of the download manager used by the provisioner.
type Downloader interface {
	Fetch(ctx context.Context, item download.Item, opts download.Options) (string, error)
}

// Extractor extracts a named entry from an archive into a directory.
type Extractor interface {
	ExtractPath(ctx context.Context, archivePath, subPath, destDir string) error
}

// Installer moves extracted package contents into the working directory.
type Installer interface {
	Install(extractedRoot, workDir string, rules model.InstallRules) ([]string, error)
}

// HookExecutor runs user hook scripts around the procedure.
type HookExecutor interface {
	Execute(hookType hooks.HookType, ctx hooks.HookContext) error
	HasScript(hookType hooks.HookType) bool
}

// Provisioner ties Resolver, Downloader, Extractor and Installer together for
// the fetch-and-install procedure.
type Provisioner struct {
	Resolver  Resolver
	DL        Downloader
	Extractor Extractor
	Installer Installer
	HookExec  HookExecutor // optional
	Hooks     Hooks        // Hooks for progress and event notifications
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // resolving|downloading|extracting|installing|cleanup|done|error
	ID    string // package id (name@version)
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Options control a provisioning run.
type Options struct {
	// WorkDir is the directory artifacts are installed into. Defaults to
	// the current working directory.
	WorkDir string

	// StagingDir holds downloads and extracted trees for the run. A
	// temporary directory is created when empty.
	StagingDir string

	// KeepStaging leaves the staging directory behind for inspection.
	KeepStaging bool

	// DryRun emits the planned steps without touching the network or the
	// working directory.
	DryRun bool
}
