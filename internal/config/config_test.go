package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr = %q", cfg.Addr)
	}
	if cfg.StorageBackend != BackendMemory {
		t.Fatalf("StorageBackend = %q", cfg.StorageBackend)
	}
	if cfg.TokenDuration != 7*24*time.Hour {
		t.Fatalf("TokenDuration = %v", cfg.TokenDuration)
	}
	if len(cfg.Objects.PublicSearchPaths) == 0 {
		t.Fatalf("expected default public search path")
	}
	if cfg.Chat.Model != "llama3" {
		t.Fatalf("Chat.Model = %q", cfg.Chat.Model)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("STORAGE_BACKEND", BackendRemote)
	t.Setenv("REMOTE_STORAGE_URL", "http://docs.internal:8080")
	t.Setenv("PUBLIC_OBJECT_SEARCH_PATHS", "assets, uploads ,")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("Addr = %q", cfg.Addr)
	}
	if cfg.StorageBackend != BackendRemote || cfg.RemoteURL != "http://docs.internal:8080" {
		t.Fatalf("remote backend not honored: %+v", cfg)
	}
	if len(cfg.Objects.PublicSearchPaths) != 2 ||
		cfg.Objects.PublicSearchPaths[0] != "assets" ||
		cfg.Objects.PublicSearchPaths[1] != "uploads" {
		t.Fatalf("search paths = %v", cfg.Objects.PublicSearchPaths)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("addr: \":7070\"\nsession_secret: file-secret\nchat:\n  model: mistral\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.SessionSecret != "file-secret" {
		t.Fatalf("yaml overrides not applied: %+v", cfg)
	}
	if cfg.Chat.Model != "mistral" {
		t.Fatalf("Chat.Model = %q", cfg.Chat.Model)
	}
}

func TestLoadRejectsBadBackends(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "tape")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unknown backend")
	}

	t.Setenv("STORAGE_BACKEND", BackendPostgres)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_URL", "")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for postgres without DATABASE_URL")
	}

	t.Setenv("STORAGE_BACKEND", BackendRemote)
	t.Setenv("REMOTE_STORAGE_URL", "")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for remote without REMOTE_STORAGE_URL")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
