package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, level string, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	// Reinitialize logger with test output
	logger = nil
	InitLogger(level)

	fn()

	return buf.String()
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:  "info log",
			level: "info",
			logFn: func() {
				Info("fetching archive")
			},
			contains: []string{"fetching archive"},
		},
		{
			name:  "debug log with debug level",
			level: "debug",
			logFn: func() {
				Debug("resolved download url")
			},
			contains: []string{"resolved download url", "level=DEBUG"},
		},
		{
			name:  "debug log with info level",
			level: "info",
			logFn: func() {
				Debug("resolved download url")
			},
			excludes: []string{"resolved download url"},
		},
		{
			name:  "error log",
			level: "error",
			logFn: func() {
				Error("extraction blew up")
			},
			contains: []string{"extraction blew up", "level=ERROR"},
		},
		{
			name:  "warn log with fields",
			level: "warn",
			logFn: func() {
				Warn("slow download", Fields{"package": "glue-cli-lib", "seconds": 42})
			},
			contains: []string{"slow download", "level=WARN", "package=glue-cli-lib", "seconds=42"},
		},
		{
			name:  "formatted success log",
			level: "info",
			logFn: func() {
				Successf("installed %d artifacts", 7)
			},
			contains: []string{"SUCCESS: installed 7 artifacts"},
		},
		{
			name:  "unknown level falls back to info",
			level: "bogus",
			logFn: func() {
				Info("still logging")
				Debug("hidden")
			},
			contains: []string{"still logging"},
			excludes: []string{"hidden"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(t, tt.level, tt.logFn)
			for _, want := range tt.contains {
				assert.True(t, strings.Contains(output, want), "output %q should contain %q", output, want)
			}
			for _, unwanted := range tt.excludes {
				assert.False(t, strings.Contains(output, unwanted), "output %q should not contain %q", output, unwanted)
			}
		})
	}
}

func TestGetLoggerInitializesDefault(t *testing.T) {
	logger = nil
	assert.NotNil(t, GetLogger())
}
