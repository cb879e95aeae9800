package extract

import (
	"context"
	"fmt"
	"mime"
	"strconv"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/handiism/youtube-downloader/internal/model"
)

// Native extracts metadata without yt-dlp using kkdai/youtube.
//
// Format ids are YouTube itags, the same ids yt-dlp uses, so a quality picked
// from Native metadata can still be downloaded by the yt-dlp executor.
type Native struct {
	client *youtube.Client
}

// NewNative creates a Native extractor with a default client.
func NewNative() *Native {
	return &Native{client: &youtube.Client{}}
}

// Extract fetches video or playlist metadata for url.
//
// URLs carrying a list parameter are treated as playlists first. Video formats
// are always resolved, so flat only matters to the yt-dlp backend. A watch URL
// whose playlist cannot be loaded falls back to the single video.
func (n *Native) Extract(ctx context.Context, url string, flat bool) (*model.MediaInfo, error) {
	if strings.Contains(url, "list=") {
		playlist, err := n.client.GetPlaylistContext(ctx, url)
		if err == nil {
			return playlistInfo(playlist), nil
		}
		if !strings.Contains(url, "v=") {
			return nil, fmt.Errorf("failed to fetch playlist: %w", err)
		}
	}

	video, err := n.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video: %w", err)
	}

	return videoInfo(video), nil
}

func playlistInfo(p *youtube.Playlist) *model.MediaInfo {
	info := &model.MediaInfo{
		ID:         p.ID,
		Title:      p.Title,
		Uploader:   p.Author,
		EntryCount: len(p.Videos),
		HasEntries: true,
	}

	for _, v := range p.Videos {
		if v == nil {
			continue
		}
		info.Entries = append(info.Entries, model.Entry{
			ID:       v.ID,
			Title:    v.Title,
			URL:      "https://www.youtube.com/watch?v=" + v.ID,
			Duration: v.Duration.Seconds(),
		})
	}

	return info
}

func videoInfo(v *youtube.Video) *model.MediaInfo {
	info := &model.MediaInfo{
		ID:         v.ID,
		Title:      v.Title,
		Uploader:   v.Author,
		Duration:   v.Duration.Seconds(),
		WebpageURL: "https://www.youtube.com/watch?v=" + v.ID,
	}

	// Thumbnails are listed smallest first
	if n := len(v.Thumbnails); n > 0 {
		info.Thumbnail = v.Thumbnails[n-1].URL
	}

	for i := range v.Formats {
		info.Formats = append(info.Formats, convertFormat(&v.Formats[i]))
	}

	return info
}

// convertFormat maps a kkdai format to model.Format. Codec ids come from the
// mime type, e.g. `video/mp4; codecs="avc1.640028"`.
func convertFormat(f *youtube.Format) model.Format {
	ext, codecs := parseMimeType(f.MimeType)

	format := model.Format{
		FormatID: strconv.Itoa(f.ItagNo),
		Ext:      ext,
		Width:    f.Width,
		Height:   f.Height,
		FPS:      float64(f.FPS),
		FileSize: f.ContentLength,
	}

	switch {
	case strings.HasPrefix(f.MimeType, "audio/"):
		format.VCodec = "none"
		if len(codecs) > 0 {
			format.ACodec = codecs[0]
		}
	case len(codecs) > 1:
		format.VCodec = codecs[0]
		format.ACodec = codecs[1]
	case len(codecs) == 1:
		format.VCodec = codecs[0]
		if f.AudioChannels == 0 {
			format.ACodec = "none"
		}
	}

	bitrate := f.AverageBitrate
	if bitrate == 0 {
		bitrate = f.Bitrate
	}
	format.TBR = float64(bitrate) / 1000

	return format
}

// parseMimeType returns the container extension and codec list of a mime
// type string.
func parseMimeType(mimeType string) (string, []string) {
	mediaType, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return "", nil
	}

	var ext string
	if _, sub, ok := strings.Cut(mediaType, "/"); ok {
		ext = sub
	}
	if ext == "mp4" && strings.HasPrefix(mediaType, "audio/") {
		ext = "m4a"
	}

	var codecs []string
	for _, c := range strings.Split(params["codecs"], ",") {
		if c = strings.TrimSpace(c); c != "" {
			codecs = append(codecs, c)
		}
	}

	return ext, codecs
}
