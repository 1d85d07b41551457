// Package storage persists generated magic numbers so a run with a known
// seed can skip the search.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName  = "kangaroo"
	storeDir = "magics"

	// dirEnv overrides the store location.
	dirEnv = "KANGAROO_STORE"
)

// DefaultDir returns the magic store directory, creating it if needed.
// $KANGAROO_STORE wins; otherwise the store lives under the user data
// directory:
//   - macOS: ~/Library/Application Support/kangaroo/magics
//   - Windows: %APPDATA%\kangaroo\magics
//   - others: $XDG_DATA_HOME/kangaroo/magics or ~/.local/share/kangaroo/magics
func DefaultDir() (string, error) {
	dir := os.Getenv(dirEnv)
	if dir == "" {
		base, err := dataHome()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, appName, storeDir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func dataHome() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	}

	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}
