package config

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Name  string `envconfig:"NAME" required:"true"`
	Count int    `envconfig:"COUNT" default:"3"`
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("APP_NAME", "skillsphere")

	cfg, err := New[testConfig]("APP")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if cfg.Name != "skillsphere" {
		t.Fatalf("Name = %q, want skillsphere", cfg.Name)
	}
	if cfg.Count != 3 {
		t.Fatalf("Count = %d, want default 3", cfg.Count)
	}
}

func TestNewMissingRequired(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	os.Unsetenv("APP_NAME")

	if _, err := New[testConfig]("APP"); err == nil {
		t.Fatal("New() accepted a missing required field")
	}
}

func TestNewLoadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("APP_NAME=from-file\nAPP_COUNT=7\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)
	os.Unsetenv("APP_NAME")
	os.Unsetenv("APP_COUNT")

	cfg, err := New[testConfig]("APP")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if cfg.Name != "from-file" || cfg.Count != 7 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
