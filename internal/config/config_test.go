package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	media := filepath.Join(t.TempDir(), "media")
	dir := writeConfig(t, `
server:
  mode: debug
storage:
  type: local
  local_path: `+media+`
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("port: got=%q", cfg.Server.Port)
	}
	if cfg.Catalog.SlugMaxLength != 50 || cfg.Catalog.SlugMaxAttempts != 10 {
		t.Fatalf("slug defaults: %+v", cfg.Catalog)
	}
	if cfg.Catalog.ThumbnailDir != "photos/course" {
		t.Fatalf("thumbnail dir: got=%q", cfg.Catalog.ThumbnailDir)
	}
	if cfg.Catalog.CourseCacheTTL != 10*time.Minute {
		t.Fatalf("cache ttl: got=%v", cfg.Catalog.CourseCacheTTL)
	}
	if _, err := os.Stat(media); err != nil {
		t.Fatalf("local storage dir must be created: %v", err)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: debug
storage:
  type: minio
`)
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("CATALOG_CATALOG_SLUG_MAX_ATTEMPTS", "3")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Host != "db.internal" {
		t.Fatalf("database host: got=%q", cfg.Database.Host)
	}
	if cfg.Catalog.SlugMaxAttempts != 3 {
		t.Fatalf("slug attempts: got=%d", cfg.Catalog.SlugMaxAttempts)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"short secret in release", "server:\n  mode: release\njwt:\n  secret: short\nstorage:\n  type: minio\n"},
		{"slug length", "catalog:\n  slug_max_length: 4\nstorage:\n  type: minio\n"},
		{"slug longer than column", "catalog:\n  slug_max_length: 80\nstorage:\n  type: minio\n"},
		{"slug attempts", "catalog:\n  slug_max_attempts: 0\nstorage:\n  type: minio\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Fatalf("want error")
			}
		})
	}
}
