package config

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	ioutils "github.com/handiism/youtube-downloader/internal/io"
)

// FileName is the config file name used beside the executable.
const FileName = "config.json"

// FallbackDirName is the folder used under the base directory when no
// download directory is configured or chosen.
const FallbackDirName = "playlist"

// Store persists Settings in a JSON file.
//
// Loading never fails: unreadable or malformed files are logged and treated
// as if no settings had been saved.
type Store struct {
	path   string
	logger *zap.Logger

	mu       sync.Mutex
	settings *Settings
}

// NewStore creates a Store for path. An empty path uses DefaultPath().
func NewStore(path string, logger *zap.Logger) *Store {
	if path == "" {
		path = DefaultPath()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// ExecutableDir returns the directory of the running executable, or the
// working directory if it cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// DefaultPath returns the config file path beside the executable.
func DefaultPath() string {
	return filepath.Join(ExecutableDir(), FileName)
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.path
}

// BaseDir is the directory holding the config file.
func (s *Store) BaseDir() string {
	return filepath.Dir(s.path)
}

// FallbackDirectory is where downloads go when no folder was chosen.
func (s *Store) FallbackDirectory() string {
	return filepath.Join(s.BaseDir(), FallbackDirName)
}

// Load reads the settings file and caches the result.
func (s *Store) Load() *Settings {
	settings, err := Load(s.path)
	if err != nil {
		s.logger.Warn("failed to read config, using defaults", zap.String("path", s.path), zap.Error(err))
		settings = DefaultSettings()
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	return settings
}

// Settings returns the cached settings, loading them on first use.
func (s *Store) Settings() *Settings {
	s.mu.Lock()
	settings := s.settings
	s.mu.Unlock()

	if settings == nil {
		return s.Load()
	}
	return settings
}

// SavedDownloadDirectory returns the download directory as recorded in the
// settings file, whether or not it still exists. The file is reread.
func (s *Store) SavedDownloadDirectory() string {
	return s.Load().DownloadDirectory
}

// ExistingDownloadDirectory returns the saved download directory if one is
// saved and still exists on disk. The file is reread on every call.
func (s *Store) ExistingDownloadDirectory() (string, bool) {
	dir := s.SavedDownloadDirectory()
	if dir == "" {
		return "", false
	}
	if !ioutils.DirExists(dir) {
		s.logger.Info("saved download directory no longer exists", zap.String("dir", dir))
		return "", false
	}
	return dir, true
}

// SaveDownloadDirectory records dir as the download directory and rewrites
// the settings file.
func (s *Store) SaveDownloadDirectory(dir string) error {
	settings := *s.Settings()
	settings.DownloadDirectory = dir

	if err := settings.Save(s.path); err != nil {
		s.logger.Error("failed to save config", zap.String("path", s.path), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.settings = &settings
	s.mu.Unlock()

	s.logger.Info("saved download directory", zap.String("dir", dir))
	return nil
}
