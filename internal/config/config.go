// Package config loads the mgit configuration from
// ~/.config/mgit/config.toml and carries it on the command context.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the mgit configuration.
type Config struct {
	// ScanDir is the default root to search for repositories when no
	// path arguments are given. Empty means the current directory.
	ScanDir string `toml:"scan_dir"`
	// Recurse enables recursive discovery by default.
	Recurse bool `toml:"recurse"`
	// MaxDepth bounds recursive discovery. Zero means the built-in
	// default.
	MaxDepth int `toml:"max_depth"`
	// SkipDirs are directory names skipped during discovery, in
	// addition to the built-in skip list.
	SkipDirs []string `toml:"skip_dirs"`
	// Email is the default address for "mgit set-email" when no
	// argument is given.
	Email string `toml:"email"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{}
}

type cfgKey struct{}
type workDirKey struct{}

// WithConfig attaches the config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, cfgKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns defaults if none is attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(cfgKey{}).(*Config); ok {
		return cfg
	}
	d := Default()
	return &d
}

// WithWorkDir attaches the invocation working directory to the context.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext retrieves the invocation working directory.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok {
		return dir
	}
	return "."
}

// ValidatePath checks that the path is absolute or starts with ~.
// Returns an error for relative paths (like "." or "..").
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // not configured
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mgit", "config.toml"), nil
}

// Load reads config from ~/.config/mgit/config.toml.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from an explicit path. Missing file is not an
// error; defaults are returned.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidatePath(cfg.ScanDir, "scan_dir"); err != nil {
		return Default(), err
	}
	if cfg.ScanDir != "" {
		expanded, err := expandPath(cfg.ScanDir)
		if err != nil {
			return Default(), fmt.Errorf("expand scan_dir: %w", err)
		}
		cfg.ScanDir = expanded
	}

	if cfg.MaxDepth < 0 {
		return Default(), fmt.Errorf("max_depth must not be negative, got %d", cfg.MaxDepth)
	}

	return cfg, nil
}

const defaultConfig = `# mgit configuration

# Default root directory to search for git repositories when a command
# is run without path arguments.
# Must be an absolute path or start with ~ (no relative paths).
# scan_dir = "~/src"

# Search recursively by default (equivalent to always passing --recurse).
# recurse = true

# Maximum directory depth for recursive discovery (default 5).
# max_depth = 5

# Directory names to skip during discovery, in addition to the
# built-in list (node_modules, vendor, target, ...).
# skip_dirs = ["bazel-out", "tmp"]

# Default address for "mgit set-email" when no argument is given.
# email = "jane@example.com"
`

// Init creates a default config file at ~/.config/mgit/config.toml.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}
	return path, nil
}
