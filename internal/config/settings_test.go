package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/youtube-downloader/internal/model"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"download_directory": "/videos", "playlist_format": "pls", "unknown": 1}`), 0644))

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/videos", settings.DownloadDirectory)
	assert.Equal(t, model.PlaylistFormatPLS, settings.Playlist())
	assert.Equal(t, "192", settings.AudioQuality)
	assert.True(t, settings.TagAudio)
}

func TestLoad_Normalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"audio_quality": " ", "cover_art_max_size": -1, "extractor": "NATIVE"}`), 0644))

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "192", settings.AudioQuality)
	assert.Equal(t, 1000, settings.CoverArtSize)
	assert.Equal(t, ExtractorNative, settings.Extractor)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	settings := DefaultSettings()
	settings.DownloadDirectory = "/downloads"
	settings.CreatePlaylist = true

	require.NoError(t, settings.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}
