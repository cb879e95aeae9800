package extract

import (
	"testing"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/handiism/youtube-downloader/internal/model"
)

func TestConvertFormat(t *testing.T) {
	tests := []struct {
		name   string
		format youtube.Format
		want   model.Format
	}{
		{
			name: "video only",
			format: youtube.Format{
				ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`,
				Width: 1920, Height: 1080, FPS: 30, ContentLength: 1000, AverageBitrate: 4000000,
			},
			want: model.Format{
				FormatID: "137", Ext: "mp4", VCodec: "avc1.640028", ACodec: "none",
				Width: 1920, Height: 1080, FPS: 30, FileSize: 1000, TBR: 4000,
			},
		},
		{
			name: "audio only",
			format: youtube.Format{
				ItagNo: 251, MimeType: `audio/webm; codecs="opus"`, AudioChannels: 2, Bitrate: 160000,
			},
			want: model.Format{
				FormatID: "251", Ext: "webm", VCodec: "none", ACodec: "opus", TBR: 160,
			},
		},
		{
			name: "muxed",
			format: youtube.Format{
				ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`,
				Width: 640, Height: 360, FPS: 30, AudioChannels: 2,
			},
			want: model.Format{
				FormatID: "18", Ext: "mp4", VCodec: "avc1.42001E", ACodec: "mp4a.40.2",
				Width: 640, Height: 360, FPS: 30,
			},
		},
		{
			name:   "m4a audio",
			format: youtube.Format{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`},
			want:   model.Format{FormatID: "140", Ext: "m4a", VCodec: "none", ACodec: "mp4a.40.2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertFormat(&tt.format)
			if got != tt.want {
				t.Errorf("convertFormat() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlaylistInfo(t *testing.T) {
	p := &youtube.Playlist{
		ID:    "PL1",
		Title: "Mix",
		Videos: []*youtube.PlaylistEntry{
			{ID: "a", Title: "A", Duration: 90 * time.Second},
			nil,
			{ID: "b", Title: "B"},
		},
	}

	info := playlistInfo(p)

	if !info.HasEntries {
		t.Fatal("HasEntries = false")
	}
	if len(info.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(info.Entries))
	}
	if info.EntryCount != 3 {
		t.Errorf("EntryCount = %d, want 3", info.EntryCount)
	}
	if info.Entries[0].Duration != 90 {
		t.Errorf("Duration = %v, want 90", info.Entries[0].Duration)
	}
	if info.Entries[1].URL != "https://www.youtube.com/watch?v=b" {
		t.Errorf("URL = %q", info.Entries[1].URL)
	}
}
