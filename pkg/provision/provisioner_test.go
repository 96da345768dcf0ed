package provision

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/glue-tools/gluefetch/pkg/download"
	pkgerrors "github.com/glue-tools/gluefetch/pkg/errors"
	"github.com/glue-tools/gluefetch/pkg/hooks"
	"github.com/glue-tools/gluefetch/pkg/model"
	"github.com/glue-tools/gluefetch/pkg/provision/mocks"
	"go.uber.org/mock/gomock"
)

func glueRef() *model.PackageRef {
	return &model.PackageRef{
		Name:        "glue-cli-lib",
		Version:     "1.6.0",
		FeedURL:     "https://feed.example.com/packages",
		ExtractPath: "runtimes",
		Install: model.InstallRules{
			Dirs:     []string{"32bit"},
			Patterns: []string{"*.dll", "*.pdb", "*.lib", "*.h"},
		},
		VersionInQuery: true,
	}
}

func connectRef() *model.PackageRef {
	return &model.PackageRef{
		Name:        "io.connect.net",
		Version:     "1.27.0",
		FeedURL:     "https://feed.example.com/packages",
		ExtractPath: "lib/net462",
		Install:     model.InstallRules{All: true},
	}
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse url: %v", err)
	}
	return u
}

func TestRun_TwoPackagesInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tempDir := t.TempDir()
	workDir := filepath.Join(tempDir, "work")
	stagingDir := filepath.Join(tempDir, "staging")

	refA, refB := glueRef(), connectRef()
	urlA := mustURL(t, "https://feed.example.com/packages/glue-cli-lib/1.6.0/glue-cli-lib.1.6.0.nupkg?packageVersion=1.6.0")
	urlB := mustURL(t, "https://feed.example.com/packages/io.connect.net/1.27.0/io.connect.net.1.27.0.nupkg")

	resolver := mocks.NewMockResolver(ctrl)
	dl := mocks.NewMockDownloader(ctrl)
	extractor := mocks.NewMockExtractor(ctrl)
	installer := mocks.NewMockInstaller(ctrl)

	archiveA := filepath.Join(stagingDir, "glue-cli-lib.1.6.0.nupkg")
	archiveB := filepath.Join(stagingDir, "io.connect.net.1.27.0.nupkg")
	extractedA := filepath.Join(stagingDir, "glue-cli-lib-extracted")
	extractedB := filepath.Join(stagingDir, "io.connect.net-extracted")

	gomock.InOrder(
		resolver.EXPECT().ArchiveURL(refA).Return(urlA, nil),
		dl.EXPECT().Fetch(gomock.Any(), download.Item{ID: "glue-cli-lib@1.6.0", URL: urlA, Filename: "glue-cli-lib.1.6.0.nupkg"}, download.Options{Dir: stagingDir}).Return(archiveA, nil),
		extractor.EXPECT().ExtractPath(gomock.Any(), archiveA, "runtimes", extractedA).Return(nil),
		installer.EXPECT().Install(extractedA, workDir, refA.Install).Return([]string{"32bit", "GlueCLILib.dll"}, nil),

		resolver.EXPECT().ArchiveURL(refB).Return(urlB, nil),
		dl.EXPECT().Fetch(gomock.Any(), download.Item{ID: "io.connect.net@1.27.0", URL: urlB, Filename: "io.connect.net.1.27.0.nupkg"}, download.Options{Dir: stagingDir}).Return(archiveB, nil),
		extractor.EXPECT().ExtractPath(gomock.Any(), archiveB, "lib/net462", extractedB).Return(nil),
		installer.EXPECT().Install(extractedB, workDir, refB.Install).Return([]string{"Io.Connect.dll"}, nil),
	)

	var phases []string
	p := New(resolver, dl, extractor, installer, nil, Hooks{OnEvent: func(e Event) {
		phases = append(phases, e.Phase)
	}})

	opts := Options{WorkDir: workDir, StagingDir: stagingDir}
	if err := p.Run(context.Background(), []*model.PackageRef{refA, refB}, opts); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(stagingDir); !os.IsNotExist(err) {
		t.Errorf("staging dir should be removed after a successful run")
	}

	want := []string{
		"resolving", "downloading", "extracting", "installing",
		"resolving", "downloading", "extracting", "installing",
		"done", "cleanup",
	}
	if len(phases) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(phases), phases)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], phases[i])
		}
	}
}

func TestRun_AbortsOnDownloadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tempDir := t.TempDir()
	stagingDir := filepath.Join(tempDir, "staging")

	refA, refB := glueRef(), connectRef()
	urlA := mustURL(t, "https://feed.example.com/a.nupkg")

	resolver := mocks.NewMockResolver(ctrl)
	dl := mocks.NewMockDownloader(ctrl)
	extractor := mocks.NewMockExtractor(ctrl)
	installer := mocks.NewMockInstaller(ctrl)

	resolver.EXPECT().ArchiveURL(refA).Return(urlA, nil)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return("", pkgerrors.ErrDownloadFailed)
	// No extraction, no install, and package B is never touched.

	p := New(resolver, dl, extractor, installer, nil, Hooks{})
	err := p.Run(context.Background(), []*model.PackageRef{refA, refB}, Options{WorkDir: tempDir, StagingDir: stagingDir})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, pkgerrors.ErrDownloadFailed) {
		t.Errorf("expected ErrDownloadFailed, got: %v", err)
	}

	if _, statErr := os.Stat(stagingDir); !os.IsNotExist(statErr) {
		t.Errorf("staging dir should be removed even when the run fails")
	}
}

func TestRun_DryRunTouchesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	refA := glueRef()
	urlA := mustURL(t, "https://feed.example.com/a.nupkg")

	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().ArchiveURL(refA).Return(urlA, nil)
	// Downloader, extractor and installer have no expectations: any call fails the test.
	dl := mocks.NewMockDownloader(ctrl)
	extractor := mocks.NewMockExtractor(ctrl)
	installer := mocks.NewMockInstaller(ctrl)

	var events []Event
	p := New(resolver, dl, extractor, installer, nil, Hooks{OnEvent: func(e Event) {
		events = append(events, e)
	}})

	err := p.Run(context.Background(), []*model.PackageRef{refA}, Options{WorkDir: t.TempDir(), DryRun: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	last := events[len(events)-1]
	if last.Phase != "done" || last.Msg != "dry-run" {
		t.Errorf("expected dry-run done event, got %+v", last)
	}
}

func TestRun_InvalidPackageFailsBeforeAnyStep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bad := glueRef()
	bad.Version = "not-a-version"

	p := New(mocks.NewMockResolver(ctrl), mocks.NewMockDownloader(ctrl), mocks.NewMockExtractor(ctrl), mocks.NewMockInstaller(ctrl), nil, Hooks{})
	err := p.Run(context.Background(), []*model.PackageRef{bad}, Options{WorkDir: t.TempDir()})
	if !errors.Is(err, pkgerrors.ErrPackageInvalid) {
		t.Errorf("expected ErrPackageInvalid, got: %v", err)
	}
}

func TestRun_MissingCollaborators(t *testing.T) {
	p := &Provisioner{}
	if err := p.Run(context.Background(), nil, Options{}); err == nil {
		t.Error("expected error when no collaborators are configured")
	}
}

func TestRun_HooksRunAroundInstall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tempDir := t.TempDir()
	workDir := filepath.Join(tempDir, "work")
	stagingDir := filepath.Join(tempDir, "staging")

	refA := glueRef()
	urlA := mustURL(t, "https://feed.example.com/a.nupkg")

	resolver := mocks.NewMockResolver(ctrl)
	dl := mocks.NewMockDownloader(ctrl)
	extractor := mocks.NewMockExtractor(ctrl)
	installer := mocks.NewMockInstaller(ctrl)
	hookExec := mocks.NewMockHookExecutor(ctrl)

	wantCtx := hooks.HookContext{
		PackageName:    "glue-cli-lib",
		PackageVersion: "1.6.0",
		InstallPath:    workDir,
	}

	gomock.InOrder(
		resolver.EXPECT().ArchiveURL(refA).Return(urlA, nil),
		hookExec.EXPECT().HasScript(hooks.PreInstall).Return(true),
		hookExec.EXPECT().Execute(hooks.PreInstall, wantCtx).Return(nil),
		dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(filepath.Join(stagingDir, "a.nupkg"), nil),
		extractor.EXPECT().ExtractPath(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		installer.EXPECT().Install(gomock.Any(), workDir, refA.Install).Return(nil, nil),
		hookExec.EXPECT().HasScript(hooks.PostInstall).Return(true),
		hookExec.EXPECT().Execute(hooks.PostInstall, wantCtx).Return(nil),
	)

	p := New(resolver, dl, extractor, installer, hookExec, Hooks{})
	opts := Options{WorkDir: workDir, StagingDir: stagingDir}
	if err := p.Run(context.Background(), []*model.PackageRef{refA}, opts); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestRun_KeepStagingLeavesDirBehind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tempDir := t.TempDir()
	stagingDir := filepath.Join(tempDir, "staging")

	refA := glueRef()
	urlA := mustURL(t, "https://feed.example.com/a.nupkg")

	resolver := mocks.NewMockResolver(ctrl)
	dl := mocks.NewMockDownloader(ctrl)
	extractor := mocks.NewMockExtractor(ctrl)
	installer := mocks.NewMockInstaller(ctrl)

	resolver.EXPECT().ArchiveURL(refA).Return(urlA, nil)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(filepath.Join(stagingDir, "a.nupkg"), nil)
	extractor.EXPECT().ExtractPath(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	installer.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	p := New(resolver, dl, extractor, installer, nil, Hooks{})
	opts := Options{WorkDir: tempDir, StagingDir: stagingDir, KeepStaging: true}
	if err := p.Run(context.Background(), []*model.PackageRef{refA}, opts); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(stagingDir); err != nil {
		t.Errorf("staging dir should survive with KeepStaging: %v", err)
	}
}
