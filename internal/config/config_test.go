package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("expected default port 8081, got %s", cfg.Port)
	}
	if cfg.DataBackend != "file" {
		t.Fatalf("expected default backend file, got %s", cfg.DataBackend)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("expected default level info, got %v", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9090" || cfg.DataBackend != "memory" || cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid file backend", Config{Port: "8081", DataBackend: "file", DataDir: dir}, true},
		{"valid memory backend", Config{Port: "8081", DataBackend: "memory"}, true},
		{"valid sqlite backend", Config{Port: "8081", DataBackend: "sqlite", SQLiteDBPath: filepath.Join(dir, "tally.db")}, true},
		{"bad port", Config{Port: "not-a-port", DataBackend: "memory"}, false},
		{"port out of range", Config{Port: "70000", DataBackend: "memory"}, false},
		{"unknown backend", Config{Port: "8081", DataBackend: "redis"}, false},
		{"file backend without dir", Config{Port: "8081", DataBackend: "file", DataDir: ""}, false},
		{"sqlite without path", Config{Port: "8081", DataBackend: "sqlite", SQLiteDBPath: ""}, false},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: expected ok, got %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
