package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/metalid/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "2m"
shutdown_timeout = "30s"

[api]
base_path = "/api"
max_upload_size = "5MB"

[api.cors]
enabled = true
origins = ["http://localhost:5173"]

[api.openapi]
title = "Test API"

[app]
base_path = "/app"
title = "Test Form"
`

const overlayConfig = `
[server]
port = 9090

[app]
title = "Staging Form"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.WriteTimeoutDuration() != 2*time.Minute {
		t.Errorf("write timeout: got %s, want 2m", cfg.Server.WriteTimeoutDuration())
	}
	if cfg.API.MaxUploadSizeBytes() != 5*1024*1024 {
		t.Errorf("max upload: got %d, want %d", cfg.API.MaxUploadSizeBytes(), 5*1024*1024)
	}
	if !cfg.API.CORS.Enabled || len(cfg.API.CORS.Origins) != 1 {
		t.Errorf("cors: got %+v", cfg.API.CORS)
	}
	if cfg.API.OpenAPI.Title != "Test API" {
		t.Errorf("openapi title: got %s, want Test API", cfg.API.OpenAPI.Title)
	}
	if cfg.API.OpenAPI.Description == "" {
		t.Error("openapi description default not applied")
	}
	if cfg.App.Title != "Test Form" {
		t.Errorf("app title: got %s, want Test Form", cfg.App.Title)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv(config.EnvMetalidEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.App.Title != "Staging Form" {
		t.Errorf("app title: got %s, want Staging Form (from overlay)", cfg.App.Title)
	}
	if cfg.API.MaxUploadSize != "5MB" {
		t.Errorf("max upload: got %s, want 5MB (from base)", cfg.API.MaxUploadSize)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	t.Setenv("METALID_VERSION", "2.0.0")
	t.Setenv("METALID_SERVER_PORT", "3000")
	t.Setenv("METALID_API_MAX_UPLOAD_SIZE", "1MB")
	t.Setenv("METALID_CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.API.MaxUploadSizeBytes() != 1024*1024 {
		t.Errorf("max upload: got %d, want %d", cfg.API.MaxUploadSizeBytes(), 1024*1024)
	}
	if diff := cmp.Diff([]string{"http://a.test", "http://b.test"}, cfg.API.CORS.Origins); diff != "" {
		t.Errorf("cors origins (-want +got):\n%s", diff)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.DotEnvFile, "METALID_APP_TITLE=From Dotenv\n")
	chdir(t, dir)

	t.Setenv(config.EnvAppTitle, "")
	os.Unsetenv(config.EnvAppTitle)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.App.Title != "From Dotenv" {
		t.Errorf("app title: got %s, want From Dotenv", cfg.App.Title)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"server port", cfg.Server.Port, 8080},
		{"api base path", cfg.API.BasePath, "/api"},
		{"max upload", cfg.API.MaxUploadSizeBytes(), int64(10 * 1024 * 1024)},
		{"app base path", cfg.App.BasePath, "/app"},
		{"app title", cfg.App.Title, "Metal Identification Tool"},
		{"shutdown timeout", cfg.ShutdownTimeoutDuration(), 30 * time.Second},
		{"idle timeout", cfg.Server.IdleTimeoutDuration(), 2 * time.Minute},
		{"addr", cfg.Server.Addr(), "0.0.0.0:8080"},
		{"env", cfg.Env(), "local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", `shutdown_timeout = `},
		{"bad shutdown timeout", `shutdown_timeout = "soon"`},
		{"bad port", "[server]\nport = 70000"},
		{"zero read timeout", "[server]\nread_timeout = \"0s\""},
		{"bad idle timeout", "[server]\nidle_timeout = \"often\""},
		{"bad upload size", "[api]\nmax_upload_size = \"lots\""},
		{"nested base path", "[api]\nbase_path = \"/v1/api\""},
		{"shared base path", "[api]\nbase_path = \"/app\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, config.BaseConfigFile, tt.content)
			chdir(t, dir)

			if _, err := config.Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestEnvFromEnvVar(t *testing.T) {
	t.Setenv(config.EnvMetalidEnv, "production")

	cfg := &config.Config{}
	if cfg.Env() != "production" {
		t.Errorf("env: got %s, want production", cfg.Env())
	}
}
