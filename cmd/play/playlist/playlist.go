// Package playlist finds playable audio files below a directory.
package playlist

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrDirectoryNotFound   = errors.New("directory not found")
	ErrNotADirectory       = errors.New("not a directory")
	ErrNoTracksFound       = errors.New("no supported audio files found")
	ErrDirectoryUnreadable = errors.New("directory unreadable")
)

// SupportedExtensions lists the lower-case extensions the scanner keeps.
var SupportedExtensions = []string{"mp3", "wav", "flac", "ogg", "m4a"}

// Track references a playable file. Immutable once scanned.
type Track struct {
	Path string
}

// Name is the file name without its extension.
func (t Track) Name() string {
	base := filepath.Base(t.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Ext is the lower-case extension without the leading dot.
func (t Track) Ext() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(t.Path), "."))
}

func (t Track) String() string {
	return t.Path
}

// IsSupported reports whether path has a supported extension (case-insensitive).
func IsSupported(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return ext != "" && lo.Contains(SupportedExtensions, ext)
}

// CheckDir verifies root exists and is a directory.
func CheckDir(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: '%s'", ErrDirectoryNotFound, root)
		}
		return fmt.Errorf("%w: '%s': %v", ErrDirectoryUnreadable, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: '%s'", ErrNotADirectory, root)
	}
	return nil
}

// Scan recursively collects supported audio files below root, sorted by full
// path. Unreadable entries below root are logged and skipped; only failing
// to read root itself is fatal.
func Scan(root string) ([]Track, error) {
	if err := CheckDir(root); err != nil {
		return nil, err
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("%w: '%s': %v", ErrDirectoryUnreadable, root, err)
			}
			slog.Warn("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() && !isRegularViaStat(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	paths = lo.Filter(paths, func(path string, _ int) bool {
		return IsSupported(path)
	})
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in '%s'", ErrNoTracksFound, root)
	}

	slices.Sort(paths)
	return lo.Map(paths, func(path string, _ int) Track {
		return Track{Path: path}
	}), nil
}

// isRegularViaStat follows symlinks so linked audio files are still played.
func isRegularViaStat(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
