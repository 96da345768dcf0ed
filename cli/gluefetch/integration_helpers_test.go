//go:build integration

package main

import (
	"path/filepath"
	"testing"

	"github.com/glue-tools/gluefetch/test/testutil"
)

// buildStockFeed populates feedRoot with the two stock packages and returns
// the feed's base URL.
func buildStockFeed(t *testing.T, feedRoot string) string {
	t.Helper()

	testutil.BuildPackageArchive(t, feedRoot, "glue-cli-lib", "1.6.0", map[string]string{
		"runtimes/GlueCLILib.dll":   "dll-bytes",
		"runtimes/GlueCLILib.pdb":   "pdb-bytes",
		"runtimes/GlueCLILib.lib":   "lib-bytes",
		"runtimes/glue.h":           "header-bytes",
		"runtimes/32bit/legacy.dll": "legacy-bytes",
		"docs/readme.txt":           "not installed",
	})
	testutil.BuildPackageArchive(t, feedRoot, "io.connect.net", "1.27.0", map[string]string{
		"lib/net462/Io.Connect.dll":  "managed-bytes",
		"lib/net462/deps/helper.dll": "helper-bytes",
		"lib/netstandard2.0/x.dll":   "wrong tfm",
	})

	_, feedURL := testutil.StartFeedServer(t, feedRoot)
	return feedURL
}

func setupInstallEnv(t *testing.T) (cfgPath, workDir string) {
	t.Helper()

	tempDir := t.TempDir()
	feedURL := buildStockFeed(t, filepath.Join(tempDir, "feed"))

	cfgPath = filepath.Join(tempDir, "config.yaml")
	testutil.WriteConfig(t, cfgPath, feedURL)

	workDir = filepath.Join(tempDir, "work")
	return cfgPath, workDir
}
