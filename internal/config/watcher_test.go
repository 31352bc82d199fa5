package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcher_NoPath(t *testing.T) {
	if _, err := NewWatcher("", 0, nil, nil); err == nil {
		t.Error("NewWatcher(\"\") should fail")
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "x.log")
	path := writeEnvFile(t, tmpDir, "BACKEND_URL=http://first\nLOG_PATH="+logPath+"\n")

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, 20*time.Millisecond, func(cfg *Config) { reloaded <- cfg }, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if w.Path() != path {
		t.Errorf("Path() = %q, want %q", w.Path(), path)
	}

	if err := os.WriteFile(path, []byte("BACKEND_URL=http://second\nLOG_PATH="+logPath+"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.BackendURL != "http://second" {
			t.Errorf("BackendURL = %q, want http://second", cfg.BackendURL)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not reload")
	}
}

func TestWatcher_ReportsInvalidConfig(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "x.log")
	path := writeEnvFile(t, tmpDir, "BACKEND_URL=http://ok\nLOG_PATH="+logPath+"\n")

	errs := make(chan error, 4)
	w, err := NewWatcher(path, 20*time.Millisecond, func(*Config) {
		t.Error("onChange should not run for an invalid config")
	}, func(err error) { errs <- err })
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("BACKEND_URL=\nLOG_PATH="+logPath+"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case <-errs:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report the invalid config")
	}
}

func TestWatcher_CloseIdempotent(t *testing.T) {
	path := writeEnvFile(t, t.TempDir(), "")
	w, err := NewWatcher(path, 0, nil, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
