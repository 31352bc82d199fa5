// Package config contains everything related to configuration
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	BackendURL           string
	CachePath            string
	LogPath              string
	LogLevel             string
	EnvFile              string
	CacheTTL             time.Duration
	RequestTimeout       time.Duration
	DesktopNotifications bool
}

// Default values
const (
	defaultCacheTTL       = 5 * time.Minute
	defaultRequestTimeout = 0
	appDirName            = "siteboard"
)

// Load reads configuration from the first .env file found and the environment.
// Process environment variables take precedence over .env values.
func Load() (*Config, error) {
	return LoadFrom(FindEnvFile())
}

// LoadFrom reads configuration using envFile as the .env source.
// An empty or missing envFile falls back to the environment only.
func LoadFrom(envFile string) (*Config, error) {
	src := source{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		src.file = values
	}

	cfg := &Config{
		EnvFile:              envFile,
		BackendURL:           strings.TrimRight(src.getEnvString("BACKEND_URL", ""), "/"),
		CacheTTL:             src.getEnvDuration("CACHE_TTL", defaultCacheTTL),
		CachePath:            src.getEnvString("CACHE_PATH", ""),
		RequestTimeout:       src.getEnvDuration("REQUEST_TIMEOUT", defaultRequestTimeout),
		LogPath:              src.getEnvString("LOG_PATH", getDefaultLogPath()),
		LogLevel:             src.getEnvString("LOG_LEVEL", "info"),
		DesktopNotifications: src.getEnvBool("DESKTOP_NOTIFICATIONS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.CachePath != "" {
		if err := ensureDir(filepath.Dir(cfg.CachePath)); err != nil {
			return nil, err
		}
	}

	if cfg.LogPath != "" {
		if err := ensureDir(filepath.Dir(cfg.LogPath)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks required values.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is required (set via env or .env file)")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid BACKEND_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid BACKEND_URL %q: must be an http(s) URL", c.BackendURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must not be negative")
	}
	return nil
}

// FindEnvFile returns the first existing .env file, or "" when there is none.
func FindEnvFile() string {
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appDirName, ".env"))
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// getDefaultLogPath returns the default path for the log file.
func getDefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName, appDirName+".log")
}

// source resolves keys from the environment first and the .env file second.
type source struct {
	file map[string]string
}

func (s source) lookup(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return s.file[key]
}

// getEnvString retrieves a string value or returns the default.
func (s source) getEnvString(key, defaultValue string) string {
	if value := strings.TrimSpace(s.lookup(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration value or returns the default.
// Accepts values like "30s", "1m", "500ms"; bare integers are seconds.
func (s source) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := strings.TrimSpace(s.lookup(key)); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean value or returns the default.
func (s source) getEnvBool(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(s.lookup(key)); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
