package common

import (
	"os"
	"path/filepath"
)

func CacheDir() string {
	return filepath.Join(cacheHome(), "audix")
}

// LogPath is where the player writes its log while the UI owns the terminal.
func LogPath() string {
	return filepath.Join(CacheDir(), "audix.log")
}

// ConfigDir returns the audix config directory (~/.audix).
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".audix")
}

// ConfigPath returns the path to the config file (~/.audix/config.json).
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// https://specifications.freedesktop.org/basedir/latest/#variables
func cacheHome() string {
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".cache")
	}
	return dir
}
