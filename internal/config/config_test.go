package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/gearrs/internal/errors"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Publish.Key != DefaultKey {
		t.Errorf("Publish.Key = %q, want %q", cfg.Publish.Key, DefaultKey)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultNamespace)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should default to true")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if !errors.Is(err, errors.New("E121")) {
		t.Fatalf("err = %v, want E121", err)
	}

	writeConfig(t, tmpDir, `{
  "document": {"title": "Docs", "text": "Welcome"},
  "server": {"port": 8080, "host": "0.0.0.0", "liveReload": true},
  "publish": {"bucket": "site", "prefix": "preview"},
  "metrics": {"enabled": false}
}
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if !cfg.Server.LiveReload {
		t.Error("Server.LiveReload should be true")
	}
	if cfg.Document.Title != "Docs" {
		t.Errorf("Document.Title = %q, want Docs", cfg.Document.Title)
	}
	if cfg.Document.Lang != "en" {
		t.Errorf("Document.Lang = %q, want default en", cfg.Document.Lang)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be false")
	}
	if cfg.Publish.Key != DefaultKey {
		t.Errorf("Publish.Key = %q, want default %q", cfg.Publish.Key, DefaultKey)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"server": `)

	_, err := Load(tmpDir)
	if !errors.Is(err, errors.New("E120")) {
		t.Fatalf("err = %v, want E120", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}

	bad := t.TempDir()
	writeConfig(t, bad, `not json`)
	if _, err := LoadOrDefault(bad); err == nil {
		t.Error("LoadOrDefault should surface parse errors")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GEARRS_PORT", "9090")
	t.Setenv("GEARRS_BUCKET", "env-bucket")
	t.Setenv("GEARRS_REGION", "eu-west-1")
	t.Setenv("GEARRS_ENDPOINT", "http://localhost:9000")

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"server": {"port": 8080}, "publish": {"bucket": "file-bucket"}}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Publish.Bucket != "env-bucket" {
		t.Errorf("Publish.Bucket = %q, want env-bucket", cfg.Publish.Bucket)
	}
	if cfg.Publish.Region != "eu-west-1" {
		t.Errorf("Publish.Region = %q", cfg.Publish.Region)
	}
	if cfg.Publish.Endpoint != "http://localhost:9000" {
		t.Errorf("Publish.Endpoint = %q", cfg.Publish.Endpoint)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	p := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	if err := cfg.Save(); err == nil {
		t.Error("Save without a path should fail")
	}

	cfg.Document.Title = "Saved"
	cfg.Metrics.Enabled = false
	if err := cfg.SaveTo(p); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if !Exists(tmpDir) {
		t.Fatal("Exists should report the saved file")
	}

	loaded, err := LoadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Document.Title != "Saved" {
		t.Errorf("Document.Title = %q, want Saved", loaded.Document.Title)
	}
	if loaded.Metrics.Enabled {
		t.Error("Metrics.Enabled should round-trip as false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, true},
		{"bad timeout", func(c *Config) { c.Server.ShutdownTimeout = "soon" }, true},
		{"absolute key", func(c *Config) { c.Publish.Key = "/index.html" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddressAndURL(t *testing.T) {
	cfg := New()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 4000

	if got := cfg.Address(); got != "127.0.0.1:4000" {
		t.Errorf("Address() = %q", got)
	}
	if got := cfg.URL(); got != "http://127.0.0.1:4000" {
		t.Errorf("URL() = %q", got)
	}
}

func TestShutdownTimeout(t *testing.T) {
	cfg := New()
	d, err := cfg.ShutdownTimeout()
	if err != nil || d != DefaultShutdownTimeout {
		t.Errorf("ShutdownTimeout() = %v, %v", d, err)
	}

	cfg.Server.ShutdownTimeout = "250ms"
	d, err = cfg.ShutdownTimeout()
	if err != nil || d != 250*time.Millisecond {
		t.Errorf("ShutdownTimeout() = %v, %v", d, err)
	}
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		prefix, key, want string
	}{
		{"", "", DefaultKey},
		{"", "page.html", "page.html"},
		{"preview", "index.html", "preview/index.html"},
		{"preview/", "a/b.html", "preview/a/b.html"},
	}
	for _, tt := range tests {
		cfg := New()
		cfg.Publish.Prefix = tt.prefix
		cfg.Publish.Key = tt.key
		if got := cfg.ObjectKey(); got != tt.want {
			t.Errorf("ObjectKey(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
		}
	}
}
