package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if !cfg.Diagnostics.Color {
		t.Errorf("expected diagnostics.color to default to true")
	}
	if cfg.Diagnostics.MaxIdentifierLength != 14 {
		t.Errorf("expected diagnostics.max_identifier_length to default to 14, got %d", cfg.Diagnostics.MaxIdentifierLength)
	}
	if cfg.IR.Destination != "stdout" {
		t.Errorf("expected ir.destination to default to stdout, got %q", cfg.IR.Destination)
	}
}

func TestLoadFromExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	path := tmpDir + "/custom.yaml"
	content := "ir:\n  destination: custom.ir\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}
	if cfg.IR.Destination != "custom.ir" {
		t.Errorf("expected ir.destination from the explicit file, got %q", cfg.IR.Destination)
	}
	if !cfg.Diagnostics.Color {
		t.Errorf("expected unset fields to keep their defaults")
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	content := `
diagnostics:
  color: false
  max_identifier_length: 20
ir:
  destination: out.ir
`
	if err := os.WriteFile(".minisoft.yaml", []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.Diagnostics.Color {
		t.Errorf("expected diagnostics.color to be overridden to false")
	}
	if cfg.Diagnostics.MaxIdentifierLength != 20 {
		t.Errorf("expected diagnostics.max_identifier_length to be overridden to 20, got %d", cfg.Diagnostics.MaxIdentifierLength)
	}
	if cfg.IR.Destination != "out.ir" {
		t.Errorf("expected ir.destination to be overridden to out.ir, got %q", cfg.IR.Destination)
	}
}
