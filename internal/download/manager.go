package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/youtube-downloader/internal/audio"
	"github.com/handiism/youtube-downloader/internal/config"
	"github.com/handiism/youtube-downloader/internal/http"
	ioutils "github.com/handiism/youtube-downloader/internal/io"
	"github.com/handiism/youtube-downloader/internal/model"
	"github.com/handiism/youtube-downloader/internal/system"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
	LevelProgress
)

// ProgressEvent represents a download progress update.
//
// Events with LevelProgress carry Progress and an empty Message.
type ProgressEvent struct {
	Message  string
	Level    ProgressLevel
	Progress Progress
}

// Fetcher downloads small remote files such as thumbnails.
type Fetcher interface {
	DownloadBytes(ctx context.Context, url string) ([]byte, error)
}

// partialExts are leftovers of an interrupted or in-flight download.
var partialExts = []string{".part", ".ytdl", ".temp"}

// mediaExts are the files that can appear in a playlist file.
var mediaExts = map[string]bool{
	".mp3": true, ".opus": true, ".m4a": true, ".ogg": true, ".webm": true,
	".mp4": true, ".mkv": true,
}

// Manager coordinates a download and its post-processing.
type Manager struct {
	settings   *config.Settings
	executor   Executor
	transcoder system.Transcoder
	fetcher    Fetcher
	logger     *zap.Logger

	tagger       *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, executor Executor, transcoder system.Transcoder, logger *zap.Logger, onProgress func(ProgressEvent)) *Manager {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		settings:     settings,
		executor:     executor,
		transcoder:   transcoder,
		fetcher:      http.NewClient(),
		logger:       logger,
		tagger:       audio.NewTagger(audio.DefaultTagConfig()),
		playlist:     audio.NewPlaylistCreator(settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// WithFetcher replaces the thumbnail fetcher.
func (m *Manager) WithFetcher(f Fetcher) *Manager {
	m.fetcher = f
	return m
}

// Download performs one download described by opts.
//
// The destination directory is created if needed and ffmpeg availability is
// checked before yt-dlp runs. Failures are reported as LevelError events and
// returned; the caller decides whether to go on. A run where only some items
// failed is a success with a warning, as long as files were saved.
func (m *Manager) Download(ctx context.Context, opts Options) error {
	log := m.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("url", opts.URL),
		zap.Stringer("media", opts.Media),
	)

	if opts.AudioQuality == "" {
		opts.AudioQuality = m.settings.AudioQuality
	}

	if err := ioutils.EnsureDir(opts.Directory); err != nil {
		log.Error("failed to create download directory", zap.String("dir", opts.Directory), zap.Error(err))
		m.progress(opts, ProgressEvent{Message: fmt.Sprintf("Error creating directory %s: %v", opts.Directory, err), Level: LevelError})
		return fmt.Errorf("create directory: %w", err)
	}

	transcoderOK := m.transcoder != nil && m.transcoder.Available(ctx)
	log.Debug("checked transcoder", zap.Bool("available", transcoderOK))

	req, warnings := BuildRequest(opts, transcoderOK)
	if transcoderOK {
		req.FFmpegLocation = m.transcoder.Location()
	}
	for _, w := range warnings {
		log.Warn(string(w))
		m.progress(opts, ProgressEvent{Message: string(w), Level: LevelWarning})
	}

	before, err := ioutils.Snapshot(opts.Directory)
	if err != nil {
		log.Warn("failed to list download directory", zap.Error(err))
	}

	m.progress(opts, ProgressEvent{Message: fmt.Sprintf("Saving to: %s", opts.Directory), Level: LevelInfo})
	log.Info("starting download", zap.String("format", req.Format), zap.String("dir", opts.Directory))

	runErr := m.executor.Run(ctx, req, func(p Progress) {
		m.progress(opts, ProgressEvent{Level: LevelProgress, Progress: p})
	})

	after, err := ioutils.Snapshot(opts.Directory)
	if err != nil {
		log.Warn("failed to list download directory", zap.Error(err))
	}
	created := NewMediaFiles(before, after)

	if runErr != nil {
		// With --ignore-errors a failed playlist item makes yt-dlp exit
		// non-zero; whatever did arrive still gets post-processed.
		if !errors.Is(runErr, ErrItemsFailed) || ctx.Err() != nil || len(created) == 0 {
			log.Error("download failed", zap.Error(runErr))
			m.progress(opts, ProgressEvent{Message: fmt.Sprintf("Error during download: %v", runErr), Level: LevelError})
			return runErr
		}
		log.Warn("download finished with failed items", zap.Strings("files", created), zap.Error(runErr))
		m.progress(opts, ProgressEvent{Message: fmt.Sprintf("Some items could not be downloaded (%d file(s) saved)", len(created)), Level: LevelWarning})
	} else {
		log.Info("download finished", zap.Strings("files", created))
	}

	if opts.Media == model.MediaAudio && transcoderOK && m.settings.TagAudio {
		m.tagFiles(ctx, log, opts, created)
	}

	if opts.IsPlaylist && m.settings.CreatePlaylist {
		m.writePlaylist(ctx, log, opts, created)
	}

	m.progress(opts, ProgressEvent{Message: "Download completed!", Level: LevelSuccess})
	return nil
}

// NewMediaFiles lists the finished files that appeared between two
// snapshots.
func NewMediaFiles(before, after map[string]ioutils.FileState) []string {
	var media []string
	for _, path := range ioutils.NewFiles(before, after, partialExts...) {
		if mediaExts[strings.ToLower(filepath.Ext(path))] {
			media = append(media, path)
		}
	}
	return media
}

// tagFiles writes ID3 tags to the new MP3 files. Failures are warnings.
func (m *Manager) tagFiles(ctx context.Context, log *zap.Logger, opts Options, files []string) {
	var mp3s []string
	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f), ".mp3") {
			mp3s = append(mp3s, f)
		}
	}
	if len(mp3s) == 0 {
		return
	}

	var artwork []byte
	if !opts.IsPlaylist && opts.Thumbnail != "" {
		artwork = m.coverArt(ctx, log, opts)
	}

	var (
		mu     sync.Mutex
		failed error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxTagging)

	for _, path := range mp3s {
		path := path // capture
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			meta := audio.Metadata{
				Title:  fileTitle(path),
				Artist: opts.Uploader,
				Album:  opts.PlaylistTitle,
			}
			if !opts.IsPlaylist && opts.Title != "" {
				meta.Title = opts.Title
			}
			if opts.IsPlaylist {
				meta.Artist = ""
			}

			if err := m.tagger.SaveTags(path, meta, artwork); err != nil {
				mu.Lock()
				failed = multierror.Append(failed, multierror.Prefix(err, filepath.Base(path)+":"))
				mu.Unlock()
				m.progress(opts, ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", filepath.Base(path), err), Level: LevelWarning})
				return nil // Continue with other files
			}
			m.progress(opts, ProgressEvent{Message: fmt.Sprintf("Tagged: %s", filepath.Base(path)), Level: LevelVerbose})
			return nil
		})
	}

	_ = g.Wait()

	if failed != nil {
		log.Warn("failed to tag files", zap.Error(failed))
	}
}

// coverArt downloads the thumbnail and prepares it for embedding. It returns
// nil if any step fails.
func (m *Manager) coverArt(ctx context.Context, log *zap.Logger, opts Options) []byte {
	data, err := m.fetcher.DownloadBytes(ctx, opts.Thumbnail)
	if err != nil {
		log.Warn("failed to download thumbnail", zap.String("thumbnail", opts.Thumbnail), zap.Error(err))
		m.progress(opts, ProgressEvent{Message: fmt.Sprintf("Error downloading thumbnail: %v", err), Level: LevelWarning})
		return nil
	}

	size := m.settings.CoverArtSize
	cover, err := m.imageService.ResizeImage(ctx, data, size, size)
	if err != nil {
		log.Warn("failed to convert thumbnail", zap.Error(err))
		m.progress(opts, ProgressEvent{Message: fmt.Sprintf("Error converting thumbnail: %v", err), Level: LevelWarning})
		return nil
	}

	return cover
}

// writePlaylist saves a playlist file listing files.
func (m *Manager) writePlaylist(ctx context.Context, log *zap.Logger, opts Options, files []string) {
	if len(files) == 0 {
		return
	}

	title := opts.PlaylistTitle
	if title == "" {
		title = opts.Title
	}

	pl := model.NewPlaylist(title, opts.Directory, m.settings.Playlist())
	for _, f := range files {
		pl.Items = append(pl.Items, &model.PlaylistItem{Title: fileTitle(f), Path: f})
	}

	content := m.playlist.CreatePlaylist(pl)
	if err := ioutils.WriteFile(ctx, pl.Path, []byte(content)); err != nil {
		log.Warn("failed to write playlist", zap.String("file", pl.Path), zap.Error(err))
		m.progress(opts, ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}

	log.Info("created playlist", zap.String("file", pl.Path), zap.Int("items", len(pl.Items)))
	m.progress(opts, ProgressEvent{Message: fmt.Sprintf("Created playlist %s", filepath.Base(pl.Path)), Level: LevelSuccess})
}

// fileTitle is the file name without directory and extension.
func fileTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// progress reports event to the handler of the download described by opts.
func (m *Manager) progress(opts Options, event ProgressEvent) {
	switch {
	case opts.OnProgress != nil:
		opts.OnProgress(event)
	case m.onProgress != nil:
		m.onProgress(event)
	}
}
