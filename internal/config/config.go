package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.config/gist)
	ConfigDir string

	// ConfigFile is the TOML settings file
	ConfigFile string

	// LegacyConfigFile is the JSON settings file written by older releases
	LegacyConfigFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string

	// DatabasePath is the SQLite database holding all gists
	DatabasePath string

	// LogFile receives viewer diagnostics when GIST_DEBUG is set
	LogFile string
)

// Initialize sets up the configuration directory and paths
// GIST_HOME overrides the directory, GIST_DB overrides the database file
func Initialize() error {
	dir := os.Getenv("GIST_HOME")
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".config", "gist")
	}

	dir, err := expandPath(dir)
	if err != nil {
		return err
	}

	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.toml")
	LegacyConfigFile = filepath.Join(ConfigDir, "config.json")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	DatabasePath = filepath.Join(ConfigDir, "gist.db")
	LogFile = filepath.Join(ConfigDir, "debug.log")

	if db := os.Getenv("GIST_DB"); db != "" {
		if DatabasePath, err = expandPath(db); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// DebugEnabled reports whether viewer diagnostics should be written to LogFile
func DebugEnabled() bool {
	v := strings.ToLower(os.Getenv("GIST_DEBUG"))
	return v != "" && v != "0" && v != "false"
}

func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
