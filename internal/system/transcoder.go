package system

import (
	"context"
	"os/exec"
	"time"
)

// ProbeTimeout bounds the ffmpeg availability check.
const ProbeTimeout = 3 * time.Second

// Transcoder reports whether audio extraction and stream merging can be
// performed, and where the binary lives.
type Transcoder interface {
	Available(ctx context.Context) bool
	Location() string
}

// FFmpeg checks for an ffmpeg binary by running "ffmpeg -version".
type FFmpeg struct {
	// Path is the binary to run. Empty means "ffmpeg" on PATH.
	Path string
}

// Available reports whether ffmpeg starts and exits with status 0 within
// ProbeTimeout. A missing binary, a timeout or any other failure means
// unavailable.
func (f FFmpeg) Available(ctx context.Context) bool {
	path := f.Path
	if path == "" {
		path = "ffmpeg"
	}

	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	return exec.CommandContext(ctx, path, "-version").Run() == nil
}

// Location returns the binary to hand to yt-dlp as --ffmpeg-location, or ""
// to let yt-dlp search PATH.
func (f FFmpeg) Location() string {
	return f.Path
}
