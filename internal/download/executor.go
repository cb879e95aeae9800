package download

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// progressInterval is how often yt-dlp progress is reported.
const progressInterval = 250 * time.Millisecond

// Progress is a snapshot of a running download.
type Progress struct {
	Title      string
	Downloaded int64
	Total      int64
	ETA        time.Duration
	Speed      float64 // bytes per second
}

// Fraction returns the completed share in [0, 1], or 0 when the total is
// unknown.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Downloaded) / float64(p.Total)
	if f > 1 {
		return 1
	}
	return f
}

// ErrItemsFailed is returned when yt-dlp exits non-zero while told to ignore
// errors. Some items of a playlist may still have been downloaded.
var ErrItemsFailed = errors.New("some items failed to download")

// Executor performs a resolved Request.
type Executor interface {
	Run(ctx context.Context, req Request, onProgress func(Progress)) error
}

// YTDLPExecutor runs requests with the yt-dlp binary.
type YTDLPExecutor struct {
	// Executable is the yt-dlp binary. Empty means yt-dlp on PATH.
	Executable string
}

// Run executes req and blocks until yt-dlp exits.
func (e *YTDLPExecutor) Run(ctx context.Context, req Request, onProgress func(Progress)) error {
	cmd := e.command(req)

	if onProgress != nil {
		cmd.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			onProgress(convertProgress(update))
		})
	}

	if _, err := cmd.Run(ctx, req.URL); err != nil {
		if _, ok := ytdlp.IsExitCodeError(err); ok && req.IgnoreErrors {
			return fmt.Errorf("%w: %w", ErrItemsFailed, err)
		}
		return fmt.Errorf("yt-dlp download failed: %w", err)
	}
	return nil
}

func (e *YTDLPExecutor) command(req Request) *ytdlp.Command {
	cmd := ytdlp.New().
		Format(req.Format).
		Output(req.OutputTemplate)

	if req.ExtractorArgs != "" {
		cmd.ExtractorArgs(req.ExtractorArgs)
	}
	if req.IgnoreErrors {
		cmd.IgnoreErrors()
	}
	if req.NoCheckCertificates {
		cmd.NoCheckCertificates()
	}
	if req.ExtractAudio {
		cmd.ExtractAudio().
			AudioFormat(req.AudioFormat).
			AudioQuality(req.AudioQuality)
	}
	if req.MergeOutputFormat != "" {
		cmd.MergeOutputFormat(req.MergeOutputFormat)
	}
	if req.FFmpegLocation != "" {
		cmd.FFmpegLocation(req.FFmpegLocation)
	}
	if e.Executable != "" {
		cmd.SetExecutable(e.Executable)
	}

	return cmd
}

func convertProgress(update ytdlp.ProgressUpdate) Progress {
	p := Progress{
		Downloaded: int64(update.DownloadedBytes),
		Total:      int64(update.TotalBytes),
	}

	if eta := update.ETA(); eta > 0 {
		p.ETA = eta
	}
	if !update.Started.IsZero() {
		if elapsed := time.Since(update.Started).Seconds(); elapsed > 0 {
			p.Speed = float64(p.Downloaded) / elapsed
		}
	}
	if update.Info != nil && update.Info.Title != nil {
		p.Title = *update.Info.Title
	}

	return p
}
