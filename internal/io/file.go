package ioutils

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	repeatedSpace    = regexp.MustCompile(`\s+`)
)

// WriteFile writes data to a file with mode 0644, truncating it if it exists.
//
// Example:
//
//	err := WriteFile(ctx, "/music/playlist.m3u", []byte("#EXTM3U\n..."))
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SanitizeFileName replaces characters that are invalid in file names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2")     // Returns "Song_ Part 1_2"
//	SanitizeFileName("Track...")           // Returns "Track"
func SanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// EnsureDir creates a directory and all parents with mode 0755. An existing
// directory is not an error, an existing regular file is.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileState is what Snapshot records for one file.
type FileState struct {
	Size    int64
	ModTime int64
}

// Snapshot records the regular files directly inside dir. A directory that
// does not exist yet yields an empty snapshot.
func Snapshot(dir string) (map[string]FileState, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]FileState{}, nil
		}
		return nil, err
	}

	snap := make(map[string]FileState, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		snap[filepath.Join(dir, e.Name())] = FileState{
			Size:    info.Size(),
			ModTime: info.ModTime().UnixNano(),
		}
	}

	return snap, nil
}

// NewFiles returns the paths in after that are absent from before or were
// rewritten since, sorted by name. Files with extensions in exclude (".part",
// ".ytdl") are skipped.
func NewFiles(before, after map[string]FileState, exclude ...string) []string {
	var paths []string
	for path, state := range after {
		if hasExt(path, exclude) {
			continue
		}
		if old, ok := before[path]; ok && old == state {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
