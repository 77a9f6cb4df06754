// Package paths resolves configuration and output directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultConfigDirName is the CWD-relative configuration directory.
const DefaultConfigDirName = ".labelpivot"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "LABELPIVOT_CONFIG_DIR"
	EnvOutputDir = "LABELPIVOT_OUTPUT_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/labelpivot (fallback ~/.config/labelpivot)
// macOS:   ~/Library/Application Support/labelpivot
// Windows: %APPDATA%/labelpivot
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "labelpivot"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "labelpivot"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "labelpivot"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > LABELPIVOT_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveOutputDir returns the directory that receives converted_<dataset>
// trees, following the precedence chain: flag > config.yaml value >
// LABELPIVOT_OUTPUT_DIR env > current working directory.
func ResolveOutputDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvOutputDir); env != "" {
		return filepath.Abs(env)
	}
	return os.Getwd()
}
