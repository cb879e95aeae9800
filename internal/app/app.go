// Package app wires the configuration, logger and services shared by the
// command line front ends.
package app

import (
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/handiism/youtube-downloader/internal/config"
	"github.com/handiism/youtube-downloader/internal/download"
	"github.com/handiism/youtube-downloader/internal/extract"
	"github.com/handiism/youtube-downloader/internal/logging"
	"github.com/handiism/youtube-downloader/internal/system"
)

// Version is reported in the window title and headers.
var Version = "5.0"

// Options are the command line overrides.
type Options struct {
	ConfigPath string
	LogPath    string
	Verbose    bool
	YTDLP      string
	FFmpeg     string
	Extractor  string
}

// Flags returns the flags shared by every front end.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "read settings from `FILE` (default: config.json beside the executable)",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "append logs to `FILE` (default: " + logging.FileName + " beside the executable)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "show and log detailed progress",
		},
		&cli.StringFlag{
			Name:  "yt-dlp",
			Usage: "path to the yt-dlp `BINARY`",
		},
		&cli.StringFlag{
			Name:  "ffmpeg",
			Usage: "path to the ffmpeg `BINARY`",
		},
		&cli.StringFlag{
			Name:  "extractor",
			Usage: "metadata backend: ytdlp or native",
		},
	}
}

// OptionsFrom reads Options from parsed flags.
func OptionsFrom(c *cli.Context) Options {
	return Options{
		ConfigPath: c.String("config"),
		LogPath:    c.String("log-file"),
		Verbose:    c.Bool("verbose"),
		YTDLP:      c.String("yt-dlp"),
		FFmpeg:     c.String("ffmpeg"),
		Extractor:  c.String("extractor"),
	}
}

// App holds the wired services.
type App struct {
	Logger   *zap.Logger
	Store    *config.Store
	Settings *config.Settings
	Analyzer *extract.Service
	Manager  *download.Manager
}

// New loads settings, builds the logger and wires the services. Download
// events are passed to onProgress.
func New(opts Options, onProgress func(download.ProgressEvent)) (*App, error) {
	logPath := opts.LogPath
	if logPath == "" {
		logPath = filepath.Join(config.ExecutableDir(), logging.FileName)
	}
	logger, err := logging.New(logPath, opts.Verbose)
	if err != nil {
		return nil, err
	}

	store := config.NewStore(opts.ConfigPath, logger)
	settings := store.Settings()
	applyOverrides(settings, opts)

	analyzer := extract.NewService(newExtractor(settings), logger)
	manager := download.NewManager(
		settings,
		&download.YTDLPExecutor{Executable: settings.YTDLPPath},
		system.FFmpeg{Path: settings.FFmpegPath},
		logger,
		onProgress,
	)

	logger.Info("starting",
		zap.String("version", Version),
		zap.String("config", store.Path()),
		zap.String("extractor", settings.Extractor),
	)

	return &App{
		Logger:   logger,
		Store:    store,
		Settings: settings,
		Analyzer: analyzer,
		Manager:  manager,
	}, nil
}

// Picker returns the folder dialog, starting in the saved directory.
func (a *App) Picker() system.FolderPicker {
	start, _ := a.Store.ExistingDownloadDirectory()
	return system.DialogPicker{Start: start}
}

// Close flushes the logger.
func (a *App) Close() {
	_ = a.Logger.Sync()
}

func applyOverrides(s *config.Settings, opts Options) {
	if opts.YTDLP != "" {
		s.YTDLPPath = opts.YTDLP
	}
	if opts.FFmpeg != "" {
		s.FFmpegPath = opts.FFmpeg
	}
	if opts.Extractor != "" {
		s.Extractor = strings.ToLower(opts.Extractor)
	}
}

func newExtractor(s *config.Settings) extract.Extractor {
	if s.Extractor == config.ExtractorNative {
		return extract.NewNative()
	}
	return extract.NewYTDLP(s.YTDLPPath)
}
