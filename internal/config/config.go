package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRemote   = "remote"
)

type Config struct {
	Addr           string        `yaml:"addr"`
	SessionSecret  string        `yaml:"session_secret"`
	TokenDuration  time.Duration `yaml:"token_duration"`
	APITimeout     time.Duration `yaml:"timeout"`
	StorageBackend string        `yaml:"storage_backend"`
	DatabaseURL    string        `yaml:"database_url"`
	RemoteURL      string        `yaml:"remote_storage_url"`
	Objects        ObjectsConfig `yaml:"objects"`
	Chat           ChatConfig    `yaml:"chat"`
}

// ObjectsConfig controls the filesystem object store.
type ObjectsConfig struct {
	// PublicSearchPaths are directories probed in order for public objects.
	PublicSearchPaths []string `yaml:"public_search_paths"`
	// PrivateDir holds uploads and the CMS document.
	PrivateDir string `yaml:"private_dir"`
}

// ChatConfig points the chat proxy at a local Ollama instance.
type ChatConfig struct {
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// Load builds the configuration from environment variables with defaults,
// optionally overlaid by a YAML file.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:           getEnv("ADDR", ":8080"),
		SessionSecret:  getEnv("SESSION_SECRET", "dev-session-secret"),
		TokenDuration:  7 * 24 * time.Hour,
		APITimeout:     15 * time.Second,
		StorageBackend: getEnv("STORAGE_BACKEND", BackendMemory),
		DatabaseURL:    databaseURLFromEnv(),
		RemoteURL:      getEnv("REMOTE_STORAGE_URL", ""),
		Objects: ObjectsConfig{
			PublicSearchPaths: splitPaths(getEnv("PUBLIC_OBJECT_SEARCH_PATHS", "public_objects")),
			PrivateDir:        getEnv("PRIVATE_OBJECT_DIR", "private_objects"),
		},
		Chat: ChatConfig{
			BaseURL: getEnv("AI_OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:   getEnv("AI_OLLAMA_MODEL", "llama3"),
			Timeout: 60 * time.Second,
		},
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendPostgres, BackendRemote:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	if cfg.StorageBackend == BackendPostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("postgres backend requires DATABASE_URL")
	}
	if cfg.StorageBackend == BackendRemote && cfg.RemoteURL == "" {
		return nil, fmt.Errorf("remote backend requires REMOTE_STORAGE_URL")
	}

	return cfg, nil
}

// databaseURLFromEnv honors both DATABASE_URL and the POSTGRES_URL alias.
func databaseURLFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	return os.Getenv("POSTGRES_URL")
}

func splitPaths(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
