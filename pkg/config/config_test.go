package config

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_CONFIG_NAME", "expanded")
	path := writeFile(t, "name: ${TEST_CONFIG_NAME}\nport: 9000\n")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "expanded" {
		t.Errorf("Name = %q, want %q", cfg.Name, "expanded")
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want %d", cfg.Port, 9000)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg testConfig
	if err := Load(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestLoadIfExists_MissingFileIsNoop(t *testing.T) {
	cfg := testConfig{Name: "default", Port: 8080}
	if err := LoadIfExists(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "default" || cfg.Port != 8080 {
		t.Errorf("config changed: %+v", cfg)
	}
}

func TestLoadIfExists_LoadsExistingFile(t *testing.T) {
	path := writeFile(t, "name: fromfile\n")

	cfg := testConfig{Name: "default", Port: 8080}
	if err := LoadIfExists(path, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "fromfile" {
		t.Errorf("Name = %q, want %q", cfg.Name, "fromfile")
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want untouched default", cfg.Port)
	}
}
