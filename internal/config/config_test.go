package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ServerURL != "http://localhost:5000/api" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.Timeout)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PARCELCTL_SERVER_URL", "https://backoffice.example.com/api")
	t.Setenv("PARCELCTL_TIMEOUT", "5s")
	t.Setenv("PARCELCTL_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ServerURL != "https://backoffice.example.com/api" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s, want 5s", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad scheme", "PARCELCTL_SERVER_URL", "ftp://example.com"},
		{"empty url", "PARCELCTL_SERVER_URL", ""},
		{"negative timeout", "PARCELCTL_TIMEOUT", "-1s"},
		{"unknown log level", "PARCELCTL_LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() should reject %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestCredentialsPath_ExplicitDir(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{ConfigDir: dir}

	path, err := cfg.CredentialsPath()
	if err != nil {
		t.Fatalf("CredentialsPath() error: %v", err)
	}
	if path != filepath.Join(dir, "credentials.json") {
		t.Errorf("path = %q", path)
	}
}

func TestCredentialsPath_Default(t *testing.T) {
	cfg := &Config{}

	path, err := cfg.CredentialsPath()
	if err != nil {
		t.Fatalf("CredentialsPath() error: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("parcelctl", "credentials.json")) {
		t.Errorf("path = %q, want parcelctl/credentials.json suffix", path)
	}
}
