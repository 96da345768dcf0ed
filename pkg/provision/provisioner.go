package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glue-tools/gluefetch/internal/logger"
	"github.com/glue-tools/gluefetch/pkg/download"
	pkgerrors "github.com/glue-tools/gluefetch/pkg/errors"
	"github.com/glue-tools/gluefetch/pkg/hooks"
	"github.com/glue-tools/gluefetch/pkg/model"
)

// New creates a Provisioner with the given collaborators. hookExec may be nil.
func New(resolver Resolver, dl Downloader, extractor Extractor, installer Installer, hookExec HookExecutor, h Hooks) *Provisioner {
	return &Provisioner{
		Resolver:  resolver,
		DL:        dl,
		Extractor: extractor,
		Installer: installer,
		HookExec:  hookExec,
		Hooks:     h,
	}
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Run executes the fetch-and-install procedure for the given packages,
// strictly in order. Each package is downloaded, extracted and installed
// before the next one starts; the first failing step aborts the run. The
// staging directory holding archives and extracted trees is removed on every
// exit path unless Options.KeepStaging is set.
func (p *Provisioner) Run(ctx context.Context, packages []*model.PackageRef, opts Options) (err error) {
	if p.Resolver == nil {
		return fmt.Errorf("feed resolver is not configured")
	}
	if p.DL == nil {
		return fmt.Errorf("download manager is not configured")
	}
	if p.Extractor == nil {
		return fmt.Errorf("archive extractor is not configured")
	}
	if p.Installer == nil {
		return fmt.Errorf("installer is not configured")
	}

	for _, ref := range packages {
		if err := ref.Validate(); err != nil {
			return err
		}
	}

	workDir, err := resolveWorkDir(opts.WorkDir)
	if err != nil {
		return err
	}

	if opts.DryRun {
		return p.dryRun(packages, workDir)
	}

	stagingDir, cleanup, err := p.setupStaging(opts)
	if err != nil {
		return err
	}
	defer func() {
		emit(p.Hooks, Event{Phase: "cleanup", Msg: stagingDir})
		cleanup()
	}()

	for _, ref := range packages {
		if err := p.provisionOne(ctx, ref, workDir, stagingDir); err != nil {
			emit(p.Hooks, Event{Phase: "error", ID: ref.String(), Msg: err.Error()})
			return err
		}
	}

	emit(p.Hooks, Event{Phase: "done", Msg: workDir})
	return nil
}

// dryRun emits the planned steps without executing them.
func (p *Provisioner) dryRun(packages []*model.PackageRef, workDir string) error {
	for _, ref := range packages {
		u, err := p.Resolver.ArchiveURL(ref)
		if err != nil {
			return err
		}
		emit(p.Hooks, Event{Phase: "downloading", ID: ref.String(), Msg: u.String()})
		emit(p.Hooks, Event{Phase: "extracting", ID: ref.String(), Msg: ref.ExtractPath})
		emit(p.Hooks, Event{Phase: "installing", ID: ref.String(), Msg: workDir})
	}
	emit(p.Hooks, Event{Phase: "done", Msg: "dry-run"})
	return nil
}

// provisionOne runs download, extract and install for a single package.
func (p *Provisioner) provisionOne(ctx context.Context, ref *model.PackageRef, workDir, stagingDir string) error {
	id := ref.String()

	emit(p.Hooks, Event{Phase: "resolving", ID: id, Msg: ref.FeedURL})
	archiveURL, err := p.Resolver.ArchiveURL(ref)
	if err != nil {
		return err
	}

	if err := p.runHook(hooks.PreInstall, ref, workDir); err != nil {
		return err
	}

	emit(p.Hooks, Event{Phase: "downloading", ID: id, Msg: archiveURL.String()})
	archivePath, err := p.DL.Fetch(ctx, download.Item{
		ID:       id,
		URL:      archiveURL,
		Filename: ref.ArchiveFileName(),
	}, download.Options{Dir: stagingDir})
	if err != nil {
		return pkgerrors.Wrapf(err, "fetching %s", id)
	}

	extractDir := filepath.Join(stagingDir, ref.Name+"-extracted")
	emit(p.Hooks, Event{Phase: "extracting", ID: id, Msg: ref.ExtractPath})
	if err := p.Extractor.ExtractPath(ctx, archivePath, ref.ExtractPath, extractDir); err != nil {
		return pkgerrors.Wrapf(err, "extracting %s", id)
	}

	emit(p.Hooks, Event{Phase: "installing", ID: id, Msg: workDir})
	installed, err := p.Installer.Install(extractDir, workDir, ref.Install)
	if err != nil {
		return pkgerrors.Wrapf(err, "installing %s", id)
	}
	logger.Debug("installed artifacts", logger.Fields{"package": id, "count": len(installed)})

	return p.runHook(hooks.PostInstall, ref, workDir)
}

func (p *Provisioner) runHook(hookType hooks.HookType, ref *model.PackageRef, workDir string) error {
	if p.HookExec == nil || !p.HookExec.HasScript(hookType) {
		return nil
	}
	return p.HookExec.Execute(hookType, hooks.HookContext{
		PackageName:    ref.Name,
		PackageVersion: ref.Version,
		InstallPath:    workDir,
	})
}

// setupStaging resolves or creates the staging directory and returns its
// cleanup function.
func (p *Provisioner) setupStaging(opts Options) (string, func(), error) {
	stagingDir := opts.StagingDir
	if stagingDir == "" {
		dir, err := os.MkdirTemp("", "gluefetch-*")
		if err != nil {
			return "", nil, pkgerrors.Wrap(err, "could not create staging dir")
		}
		stagingDir = dir
	} else {
		abs, err := filepath.Abs(stagingDir)
		if err != nil {
			return "", nil, fmt.Errorf("staging dir %s: %w", stagingDir, pkgerrors.ErrInvalidPath)
		}
		stagingDir = abs
		if err := os.MkdirAll(stagingDir, 0o750); err != nil {
			return "", nil, pkgerrors.Wrap(err, "could not create staging dir")
		}
	}

	cleanup := func() {
		if opts.KeepStaging {
			logger.Info("keeping staging dir", logger.Fields{"dir": stagingDir})
			return
		}
		if err := os.RemoveAll(stagingDir); err != nil {
			logger.Warnf("failed to remove staging dir %s: %v", stagingDir, err)
		}
	}
	return stagingDir, cleanup, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", pkgerrors.Wrap(err, "could not determine working directory")
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("workdir %s: %w", workDir, pkgerrors.ErrInvalidPath)
	}
	return abs, nil
}
