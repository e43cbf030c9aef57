package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPathValidator(t *testing.T) {
	if _, err := NewPathValidator(""); err == nil {
		t.Error("Expected error for empty directory")
	}

	v, err := NewPathValidator("relative/reports")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !filepath.IsAbs(v.GetConfiguredDirectory()) {
		t.Errorf("Expected absolute configured directory, got %s", v.GetConfiguredDirectory())
	}
}

func TestPathValidator_ValidatePath(t *testing.T) {
	tempDir := t.TempDir()
	reports := filepath.Join(tempDir, "reports")
	if err := os.Mkdir(reports, 0o755); err != nil {
		t.Fatalf("Failed to create reports dir: %v", err)
	}
	outside := filepath.Join(tempDir, "outside.pdf")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	link := filepath.Join(reports, "link.pdf")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	v, err := NewPathValidator(reports)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"root itself", reports, false},
		{"file inside", filepath.Join(reports, "PVT-1.pdf"), false},
		{"nested inside", filepath.Join(reports, "2023", "PVT-1.pdf"), false},
		{"sibling file", outside, true},
		{"traversal", filepath.Join(reports, "..", "outside.pdf"), true},
		{"prefix lookalike", reports + "-old/PVT-1.pdf", true},
		{"symlink escaping", link, true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePath(tt.path)
			if tt.wantErr && err == nil {
				t.Errorf("ValidatePath(%q) expected error", tt.path)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidatePath(%q) unexpected error: %v", tt.path, err)
			}
		})
	}
}

func TestPathValidator_Resolve(t *testing.T) {
	tempDir := t.TempDir()
	v, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got, err := v.Resolve("PVT-1.pdf")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != filepath.Join(v.GetConfiguredDirectory(), "PVT-1.pdf") {
		t.Errorf("Resolve() = %s", got)
	}

	if _, err := v.Resolve("../escape.pdf"); err == nil {
		t.Error("Resolve() expected error for traversal")
	}
}

func TestPathValidator_ValidateDirectory(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "file.pdf")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	v, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := v.ValidateDirectory(tempDir); err != nil {
		t.Errorf("ValidateDirectory() unexpected error: %v", err)
	}
	if err := v.ValidateDirectory(file); err == nil {
		t.Error("ValidateDirectory() expected error for a file")
	}
	if err := v.ValidateDirectory(filepath.Join(tempDir, "missing")); err == nil {
		t.Error("ValidateDirectory() expected error for a missing directory")
	}
}
