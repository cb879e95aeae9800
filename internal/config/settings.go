package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/youtube-downloader/internal/model"
)

// Extractor backends selectable in settings.
const (
	ExtractorYTDLP  = "ytdlp"
	ExtractorNative = "native"
)

// Settings holds all configuration options.
//
// Only DownloadDirectory is written by the program itself; the other keys
// are optional and may be added by hand. Absent keys keep their defaults.
type Settings struct {
	// DownloadDirectory is the last download folder chosen by the user.
	DownloadDirectory string `json:"download_directory,omitempty"`

	// Audio settings
	AudioQuality string `json:"audio_quality,omitempty"` // ffmpeg audio quality passed to yt-dlp
	TagAudio     bool   `json:"tag_audio"`
	CoverArtSize int    `json:"cover_art_max_size,omitempty"`
	MaxTagging   int    `json:"max_concurrent_tagging,omitempty"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format,omitempty"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended"`

	// External tools
	YTDLPPath  string `json:"ytdlp_path,omitempty"`
	FFmpegPath string `json:"ffmpeg_path,omitempty"`
	Extractor  string `json:"extractor,omitempty"` // ytdlp or native
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		AudioQuality:   "192",
		TagAudio:       true,
		CoverArtSize:   1000,
		MaxTagging:     4,
		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,
		Extractor:      ExtractorYTDLP,
	}
}

// Load reads settings from a JSON file, overlaying the defaults.
// A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}
	settings.normalize()

	return settings, nil
}

// Save writes settings to a JSON file, replacing its contents.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Playlist returns the configured playlist file format.
func (s *Settings) Playlist() model.PlaylistFormat {
	return model.ParsePlaylistFormat(s.PlaylistFormat)
}

// normalize repairs values that would break downstream components.
func (s *Settings) normalize() {
	def := DefaultSettings()
	if strings.TrimSpace(s.AudioQuality) == "" {
		s.AudioQuality = def.AudioQuality
	}
	if s.CoverArtSize <= 0 {
		s.CoverArtSize = def.CoverArtSize
	}
	if s.MaxTagging <= 0 {
		s.MaxTagging = def.MaxTagging
	}
	switch strings.ToLower(s.Extractor) {
	case ExtractorNative:
		s.Extractor = ExtractorNative
	default:
		s.Extractor = ExtractorYTDLP
	}
}
