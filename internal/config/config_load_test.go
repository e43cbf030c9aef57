package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// newFlagSet registers the configuration flags on a fresh set and parses args
func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, DefaultConfig())
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Failed to parse flags %v: %v", args, err)
	}
	return fs
}

// clearEnvVars unsets every CAMSCALE_ variable for the duration of the test
func clearEnvVars(t *testing.T) {
	for _, key := range []string{KeyDirectory, KeyPattern, KeyPolicy, KeyLayout, KeyLogLevel, KeyMaxFileSize, KeyOutput, KeyFormat, KeyConfigFile} {
		name := EnvPrefix + "_" + strings.ToUpper(key)
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoad_DefaultConfig(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load(newFlagSet(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.FilePattern != DefaultPattern {
		t.Errorf("Expected FilePattern %s, got %s", DefaultPattern, cfg.FilePattern)
	}
	if cfg.Policy != DefaultPolicy {
		t.Errorf("Expected Policy %s, got %s", DefaultPolicy, cfg.Policy)
	}
	if cfg.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("Expected MaxFileSize %d, got %d", DefaultMaxFileSize, cfg.MaxFileSize)
	}
	if !filepath.IsAbs(cfg.ReportDirectory) {
		t.Errorf("Expected absolute ReportDirectory, got %s", cfg.ReportDirectory)
	}
}

func TestLoad_Flags(t *testing.T) {
	clearEnvVars(t)
	dir := t.TempDir()

	cfg, err := Load(newFlagSet(t,
		"--dir", dir,
		"--pattern", "PVT*.txt",
		"--policy", "lenient",
		"--loglevel", "debug",
		"--maxfilesize", "2048",
		"--format", "csv",
		"--output", "table.csv",
	))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ReportDirectory != dir {
		t.Errorf("Expected ReportDirectory %s, got %s", dir, cfg.ReportDirectory)
	}
	if cfg.FilePattern != "PVT*.txt" {
		t.Errorf("Expected FilePattern PVT*.txt, got %s", cfg.FilePattern)
	}
	if cfg.Policy != "lenient" {
		t.Errorf("Expected Policy lenient, got %s", cfg.Policy)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel debug, got %s", cfg.LogLevel)
	}
	if cfg.MaxFileSize != 2048 {
		t.Errorf("Expected MaxFileSize 2048, got %d", cfg.MaxFileSize)
	}
	if cfg.OutputFormat != "csv" || cfg.OutputPath != "table.csv" {
		t.Errorf("Expected csv output to table.csv, got %s to %s", cfg.OutputFormat, cfg.OutputPath)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	clearEnvVars(t)
	dir := t.TempDir()
	t.Setenv("CAMSCALE_DIR", dir)
	t.Setenv("CAMSCALE_POLICY", "lenient")
	t.Setenv("CAMSCALE_MAXFILESIZE", "4096")

	cfg, err := Load(newFlagSet(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ReportDirectory != dir {
		t.Errorf("Expected ReportDirectory %s, got %s", dir, cfg.ReportDirectory)
	}
	if cfg.Policy != "lenient" {
		t.Errorf("Expected Policy lenient, got %s", cfg.Policy)
	}
	if cfg.MaxFileSize != 4096 {
		t.Errorf("Expected MaxFileSize 4096, got %d", cfg.MaxFileSize)
	}
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("CAMSCALE_POLICY", "lenient")

	cfg, err := Load(newFlagSet(t, "--policy", "strict"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Policy != "strict" {
		t.Errorf("Expected flag to win with strict, got %s", cfg.Policy)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnvVars(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "camscale.yaml")
	content := "dir: " + dir + "\npattern: \"*.pdf\"\nformat: json\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(newFlagSet(t, "--config", file, "--format", "csv"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ReportDirectory != dir {
		t.Errorf("Expected ReportDirectory %s, got %s", dir, cfg.ReportDirectory)
	}
	if cfg.FilePattern != "*.pdf" {
		t.Errorf("Expected FilePattern *.pdf, got %s", cfg.FilePattern)
	}
	if cfg.OutputFormat != "csv" {
		t.Errorf("Expected flag format csv to override the file, got %s", cfg.OutputFormat)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing config file", []string{"--config", "/nonexistent/camscale.yaml"}},
		{"invalid policy", []string{"--policy", "sometimes"}},
		{"invalid layout", []string{"--layout", "bravos-v0"}},
		{"missing directory", []string{"--dir", "/nonexistent/reports"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			if _, err := Load(newFlagSet(t, tt.args...)); err == nil {
				t.Errorf("Expected error for args %v", tt.args)
			}
		})
	}
}
