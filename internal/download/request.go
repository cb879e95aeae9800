package download

import (
	"fmt"
	"path/filepath"

	"github.com/handiism/youtube-downloader/internal/extract"
	"github.com/handiism/youtube-downloader/internal/model"
)

// OutputTemplate names downloaded files after the video title.
const OutputTemplate = "%(title)s.%(ext)s"

// DefaultAudioQuality is the ffmpeg quality used when none is configured.
const DefaultAudioQuality = "192"

// Format expressions understood by yt-dlp.
const (
	FormatBestAudio     = "bestaudio/best"
	FormatBestVideo     = "bestvideo+bestaudio/best"
	FormatBestVP9       = "bestvideo[vcodec*=vp9]+bestaudio/best"
	formatWithBestAudio = "%s+bestaudio/best"
)

// Warning is a non-fatal condition found while building a request.
type Warning string

// WarningNoTranscoder is reported for audio downloads when ffmpeg is missing.
const WarningNoTranscoder Warning = "FFmpeg not detected. The original audio will be downloaded without conversion."

// Options describes one download as chosen in a front end.
type Options struct {
	URL string

	// Media selects audio extraction or video download.
	Media model.MediaKind

	// FormatID pins a video format. Empty means automatic selection.
	FormatID string

	// AudioCodec is the target codec for audio downloads (mp3, opus).
	AudioCodec string

	// AudioQuality is the ffmpeg quality for audio conversion.
	AudioQuality string

	// Directory is where files are written. It is created if absent.
	Directory string

	// Container is the video container (mp4, webm).
	Container string

	// Metadata used by the audio post-steps.
	Title         string
	Uploader      string
	Thumbnail     string
	PlaylistTitle string
	IsPlaylist    bool

	// OnProgress, when set, receives the events of this download in place
	// of the Manager's handler.
	OnProgress func(ProgressEvent)
}

// Request is the fully resolved set of yt-dlp options for a download.
type Request struct {
	URL                 string
	OutputTemplate      string
	Format              string
	ExtractAudio        bool
	AudioFormat         string
	AudioQuality        string
	MergeOutputFormat   string
	IgnoreErrors        bool
	NoCheckCertificates bool
	ExtractorArgs       string
	FFmpegLocation      string
}

// BuildRequest turns opts into a Request. transcoderOK tells whether ffmpeg
// is available for post-processing.
//
// Audio downloads take the best audio stream and, with ffmpeg, convert it to
// opts.AudioCodec. Video downloads pair the chosen (or best) video stream
// with the best audio stream and, with ffmpeg, merge them into
// opts.Container.
func BuildRequest(opts Options, transcoderOK bool) (Request, []Warning) {
	req := Request{
		URL:                 opts.URL,
		OutputTemplate:      filepath.Join(opts.Directory, OutputTemplate),
		IgnoreErrors:        true,
		NoCheckCertificates: true,
		ExtractorArgs:       extract.PlayerClientArgs,
	}

	var warnings []Warning

	switch opts.Media {
	case model.MediaAudio:
		req.Format = FormatBestAudio
		if !transcoderOK {
			warnings = append(warnings, WarningNoTranscoder)
			break
		}
		req.ExtractAudio = true
		req.AudioFormat = opts.AudioCodec
		req.AudioQuality = opts.AudioQuality
		if req.AudioQuality == "" {
			req.AudioQuality = DefaultAudioQuality
		}

	case model.MediaVideo:
		switch {
		case opts.FormatID != "":
			req.Format = fmt.Sprintf(formatWithBestAudio, opts.FormatID)
		case opts.Container == "webm":
			req.Format = FormatBestVP9
		default:
			req.Format = FormatBestVideo
		}
		if transcoderOK {
			req.MergeOutputFormat = opts.Container
		}
	}

	return req, warnings
}
