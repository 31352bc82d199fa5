package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configKeys = []string{
	"BACKEND_URL", "CACHE_TTL", "CACHE_PATH", "REQUEST_TIMEOUT", "LOG_PATH", "LOG_LEVEL", "DESKTOP_NOTIFICATIONS",
}

// clearEnv empties every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func writeEnvFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	t.Setenv(key, "from_env")

	src := source{file: map[string]string{key: "from_file", "FILE_ONLY": "file"}}

	if got := src.getEnvString(key, "default"); got != "from_env" {
		t.Errorf("getEnvString() = %q, want %q", got, "from_env")
	}
	if got := src.getEnvString("FILE_ONLY", "default"); got != "file" {
		t.Errorf("getEnvString() = %q, want %q", got, "file")
	}
	if got := src.getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Zero", "0", time.Second, 0},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)
			if got := (source{}).getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_ENV_BOOL"

	tests := []struct {
		envVal string
		want   bool
	}{
		{"true", true},
		{"1", true},
		{"false", false},
		{"yes", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.envVal, func(t *testing.T) {
			t.Setenv(key, tt.envVal)
			if got := (source{}).getEnvBool(key, false); got != tt.want {
				t.Errorf("getEnvBool(%q) = %v, want %v", tt.envVal, got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetDefaultLogPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Skipping test because user home dir cannot be found")
	}

	want := filepath.Join(home, ".config", "siteboard", "siteboard.log")
	if got := getDefaultLogPath(); got != want {
		t.Errorf("getDefaultLogPath() = %q, want %q", got, want)
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Fatal("getEnvPaths() returned empty list")
	}

	cwd, _ := os.Getwd()
	if paths[0] != filepath.Join(cwd, ".env") {
		t.Errorf("first search path = %q, want current directory .env", paths[0])
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	t.Setenv("BACKEND_URL", "https://api.example.com/")
	t.Setenv("LOG_PATH", filepath.Join(tmpDir, "logs", "siteboard.log"))

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if cfg.BackendURL != "https://api.example.com" {
		t.Errorf("BackendURL = %q, want trailing slash trimmed", cfg.BackendURL)
	}
	if cfg.CacheTTL != defaultCacheTTL {
		t.Errorf("CacheTTL = %v, want %v", cfg.CacheTTL, defaultCacheTTL)
	}
	if cfg.RequestTimeout != 0 {
		t.Errorf("RequestTimeout = %v, want 0", cfg.RequestTimeout)
	}
	if cfg.CachePath != "" {
		t.Errorf("CachePath = %q, want empty", cfg.CachePath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.DesktopNotifications {
		t.Error("DesktopNotifications should default to false")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "logs")); err != nil {
		t.Errorf("log directory was not created: %v", err)
	}
}

func TestLoadFrom_EnvFile(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	path := writeEnvFile(t, tmpDir, `BACKEND_URL=http://localhost:4000
CACHE_TTL=30s
CACHE_PATH=`+filepath.Join(tmpDir, "cache", "siteboard.db")+`
REQUEST_TIMEOUT=10
LOG_PATH=`+filepath.Join(tmpDir, "siteboard.log")+`
DESKTOP_NOTIFICATIONS=true
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if cfg.EnvFile != path {
		t.Errorf("EnvFile = %q, want %q", cfg.EnvFile, path)
	}
	if cfg.BackendURL != "http://localhost:4000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
	if !cfg.DesktopNotifications {
		t.Error("DesktopNotifications should be true")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "cache")); err != nil {
		t.Errorf("cache directory was not created: %v", err)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	path := writeEnvFile(t, tmpDir, "BACKEND_URL=http://from-file\nLOG_PATH=\n")
	t.Setenv("BACKEND_URL", "http://from-env")
	t.Setenv("LOG_PATH", filepath.Join(tmpDir, "x.log"))

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if cfg.BackendURL != "http://from-env" {
		t.Errorf("BackendURL = %q, want env value", cfg.BackendURL)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		timeout string
	}{
		{"MissingBackend", "", ""},
		{"NoScheme", "api.example.com", ""},
		{"BadScheme", "ftp://api.example.com", ""},
		{"NegativeTimeout", "http://api.example.com", "-5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("LOG_PATH", filepath.Join(t.TempDir(), "x.log"))
			t.Setenv("BACKEND_URL", tt.backend)
			t.Setenv("REQUEST_TIMEOUT", tt.timeout)

			if _, err := LoadFrom(""); err == nil {
				t.Error("LoadFrom() should fail")
			}
		})
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKEND_URL", "http://api.example.com")
	t.Setenv("LOG_PATH", filepath.Join(t.TempDir(), "x.log"))

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadFrom() with missing file should fall back to env, got %v", err)
	}
}

func TestLoad_WithEnvFile(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	writeEnvFile(t, tmpDir, "BACKEND_URL=http://cwd-env\nLOG_PATH="+filepath.Join(tmpDir, "x.log")+"\n")

	// Change working directory to tmpDir so Load finds .env
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.BackendURL != "http://cwd-env" {
		t.Errorf("BackendURL = %q, want http://cwd-env", cfg.BackendURL)
	}
}
