package download

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/handiism/youtube-downloader/internal/model"
)

func TestBuildRequest(t *testing.T) {
	dir := filepath.Join("downloads", "music")

	tests := []struct {
		name         string
		opts         Options
		transcoderOK bool
		want         Request
		wantWarnings []Warning
	}{
		{
			name:         "mp3 with ffmpeg",
			opts:         Options{URL: "u", Media: model.MediaAudio, AudioCodec: "mp3", Directory: dir},
			transcoderOK: true,
			want: Request{
				Format:       FormatBestAudio,
				ExtractAudio: true,
				AudioFormat:  "mp3",
				AudioQuality: "192",
			},
		},
		{
			name:         "opus with custom quality",
			opts:         Options{URL: "u", Media: model.MediaAudio, AudioCodec: "opus", AudioQuality: "0", Directory: dir},
			transcoderOK: true,
			want: Request{
				Format:       FormatBestAudio,
				ExtractAudio: true,
				AudioFormat:  "opus",
				AudioQuality: "0",
			},
		},
		{
			name:         "audio without ffmpeg",
			opts:         Options{URL: "u", Media: model.MediaAudio, AudioCodec: "mp3", Directory: dir},
			transcoderOK: false,
			want:         Request{Format: FormatBestAudio},
			wantWarnings: []Warning{WarningNoTranscoder},
		},
		{
			name:         "explicit format id",
			opts:         Options{URL: "u", Media: model.MediaVideo, FormatID: "137", Container: "mp4", Directory: dir},
			transcoderOK: true,
			want:         Request{Format: "137+bestaudio/best", MergeOutputFormat: "mp4"},
		},
		{
			name:         "automatic webm",
			opts:         Options{URL: "u", Media: model.MediaVideo, Container: "webm", Directory: dir},
			transcoderOK: true,
			want:         Request{Format: "bestvideo[vcodec*=vp9]+bestaudio/best", MergeOutputFormat: "webm"},
		},
		{
			name:         "automatic mp4",
			opts:         Options{URL: "u", Media: model.MediaVideo, Container: "mp4", Directory: dir},
			transcoderOK: true,
			want:         Request{Format: "bestvideo+bestaudio/best", MergeOutputFormat: "mp4"},
		},
		{
			name:         "video without ffmpeg is not merged",
			opts:         Options{URL: "u", Media: model.MediaVideo, FormatID: "248", Container: "webm", Directory: dir},
			transcoderOK: false,
			want:         Request{Format: "248+bestaudio/best"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := BuildRequest(tt.opts, tt.transcoderOK)

			want := tt.want
			want.URL = "u"
			want.OutputTemplate = filepath.Join(dir, "%(title)s.%(ext)s")
			want.IgnoreErrors = true
			want.NoCheckCertificates = true
			want.ExtractorArgs = "youtube:player_client=android,web"

			assert.Equal(t, want, got)
			assert.Equal(t, tt.wantWarnings, warnings)
		})
	}
}

func TestProgress_Fraction(t *testing.T) {
	assert.Zero(t, Progress{Downloaded: 10}.Fraction())
	assert.Equal(t, 0.5, Progress{Downloaded: 5, Total: 10}.Fraction())
	assert.Equal(t, 1.0, Progress{Downloaded: 20, Total: 10}.Fraction())
}
