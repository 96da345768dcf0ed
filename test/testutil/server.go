// Package testutil provides helpers for building a fake package feed and
// serving it over HTTP in tests.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/glue-tools/gluefetch/pkg/archive"
)

// BuildPackageArchive creates a package archive for name@version under
// feedRoot, laid out the way the feed serves it:
// <feedRoot>/<name>/<version>/<name>.<version>.nupkg. The archive contains
// the given files (archive-relative path -> content).
func BuildPackageArchive(t *testing.T, feedRoot, name, version string, files map[string]string) string {
	t.Helper()

	sourceDir := filepath.Join(feedRoot, "src-"+name)
	for path, content := range files {
		fullPath := filepath.Join(sourceDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to create file %s: %v", path, err)
		}
	}

	archiveDir := filepath.Join(feedRoot, name, version)
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		t.Fatalf("Failed to create feed directory: %v", err)
	}
	archivePath := filepath.Join(archiveDir, name+"."+version+".nupkg")
	if err := archive.NewManager().Create(context.Background(), sourceDir, archivePath); err != nil {
		t.Fatalf("Failed to create package archive: %v", err)
	}

	if err := os.RemoveAll(sourceDir); err != nil {
		t.Fatalf("Failed to remove archive source: %v", err)
	}
	return archivePath
}

// StartFeedServer serves feedRoot over HTTP and returns the server and its
// base URL. The server is shut down when the test finishes.
func StartFeedServer(t *testing.T, feedRoot string) (*httptest.Server, string) {
	t.Helper()

	srv := httptest.NewServer(http.FileServer(http.Dir(feedRoot)))
	t.Cleanup(srv.Close)
	return srv, srv.URL
}

// WriteConfig writes a config file pointing both stock packages at feedURL.
func WriteConfig(t *testing.T, path, feedURL string) {
	t.Helper()

	yamlContent := `packages:
  - name: glue-cli-lib
    version: 1.6.0
    feed_url: ` + feedURL + `
    version_in_query: true
    extract_path: runtimes
    install:
      dirs: [32bit]
      patterns: ["*.dll", "*.pdb", "*.lib", "*.h"]
  - name: io.connect.net
    version: 1.27.0
    feed_url: ` + feedURL + `
    extract_path: lib/net462
    install:
      all: true
settings:
  http_timeout: 5s
  log_level: info
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
}
