package main

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/config"
)

const testVersion = "1.2.3"

func TestPrintVersion(t *testing.T) {
	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	defer func() {
		version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit
	}()

	version = testVersion
	buildTime = "2024-02-01_10:30:00"
	gitCommit = "abc123"

	var buf bytes.Buffer
	printVersion(&buf)
	output := buf.String()

	expectedStrings := []string{
		"CamScale MCP Server",
		"Version: " + testVersion,
		"Build Time: 2024-02-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	}
	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing expected string: %s\nActual output:\n%s", expected, output)
		}
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{args: nil, want: false},
		{args: []string{"--dir", "/tmp"}, want: false},
		{args: []string{"--version"}, want: true},
		{args: []string{"-version"}, want: true},
		{args: []string{"--dir", "/tmp", "-v"}, want: true},
	}

	for _, tt := range tests {
		if got := hasVersionFlag(tt.args); got != tt.want {
			t.Errorf("hasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestNewServer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ReportDirectory = t.TempDir()

	server, err := newServer(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("newServer() error = %v", err)
	}
	if server == nil {
		t.Fatal("newServer() returned nil server")
	}

	cfg.MaxFileSize = 0
	if _, err := newServer(cfg, zap.NewNop()); err == nil {
		t.Error("newServer() expected error for zero max file size")
	}
}
