package config

import (
    "errors"
    "os"
    "path/filepath"
    "strings"
)

// Dir returns the commas config directory under the user config base.
// On Linux this is usually $XDG_CONFIG_HOME/commas.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
    base, err := os.UserConfigDir()
    if err != nil || strings.TrimSpace(base) == "" {
        if home, herr := os.UserHomeDir(); herr == nil {
            base = home
        } else {
            return "", errors.New("cannot determine config directory")
        }
    }
    return filepath.Join(base, "commas"), nil
}

func file(name string) (string, error) {
    dir, err := Dir()
    if err != nil {
        return "", err
    }
    return filepath.Join(dir, name), nil
}

// SettingsPath is the settings.json location.
func SettingsPath() (string, error) { return file("settings.json") }

// SnippetsPath is the snippets.json location.
func SnippetsPath() (string, error) { return file("snippets.json") }

// LogPath is where the TUI writes logs while it owns the terminal.
func LogPath() (string, error) { return file("commas.log") }

// IntegrationDir holds generated shell rc files.
func IntegrationDir() (string, error) { return file("shell-integration") }
