package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitLab == nil {
		t.Fatal("GitLab config is nil")
	}
	if cfg.GitLab.Host != "gitlab.com" {
		t.Errorf("GitLab.Host = %s, want gitlab.com", cfg.GitLab.Host)
	}
	if cfg.GitLab.PageSize != 100 {
		t.Errorf("GitLab.PageSize = %d, want 100", cfg.GitLab.PageSize)
	}
	if cfg.Logging == nil {
		t.Fatal("Logging config is nil")
	}
	if cfg.Browser == nil || !cfg.Browser.ShowDetails {
		t.Error("Browser.ShowDetails should default to true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() on missing file should return defaults, got error: %v", err)
	}
	if cfg.GitLab.Host != "gitlab.com" {
		t.Errorf("GitLab.Host = %s, want default gitlab.com", cfg.GitLab.Host)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
version: "1.0"
gitlab:
  host: gitlab.example.com
  page_size: 25
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.GitLab.Host != "gitlab.example.com" {
		t.Errorf("GitLab.Host = %s, want gitlab.example.com", cfg.GitLab.Host)
	}
	if cfg.GitLab.PageSize != 25 {
		t.Errorf("GitLab.PageSize = %d, want 25", cfg.GitLab.PageSize)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_GITLAB_OPS_HOST", "gitlab.corp.example.com")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "gitlab:\n  host: ${TEST_GITLAB_OPS_HOST}\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.GitLab.Host != "gitlab.corp.example.com" {
		t.Errorf("GitLab.Host = %s, env var was not expanded", cfg.GitLab.Host)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gitlab: [not a map"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}

func TestLoadClampsPageSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "gitlab:\n  host: gitlab.com\n  page_size: -5\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.GitLab.PageSize != 100 {
		t.Errorf("GitLab.PageSize = %d, want fallback 100", cfg.GitLab.PageSize)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.GitLab.Host = "gitlab.example.com"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.GitLab.Host != "gitlab.example.com" {
		t.Errorf("GitLab.Host = %s after round trip", loaded.GitLab.Host)
	}
}
