package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/shiplog/config.yml
// - macOS: ~/Library/Application Support/shiplog/config.yml
// - Windows: %APPDATA%\shiplog\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "shiplog", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .shiplog.yml relative to the current directory.
func ProjectConfigPath() string {
	return ".shiplog.yml"
}
