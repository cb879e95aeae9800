package model

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Playlist describes the files written by a playlist download.
//
// Path is computed by NewPlaylist from the playlist title, the directory the
// files were downloaded into and the playlist file format.
//
// Example:
//
//	pl := NewPlaylist("Road Trip", "/music", PlaylistFormatPLS)
//	pl.Items = append(pl.Items, &PlaylistItem{Title: "Song", Path: "/music/Song.mp3"})
//	// pl.Path = "/music/Road Trip.pls"
type Playlist struct {
	// Title is the playlist title as reported by the extractor.
	Title string

	// Directory is where the downloaded files live.
	Directory string

	// Path is the computed playlist file path inside Directory.
	Path string

	// Format is the playlist file type.
	Format PlaylistFormat

	// Items are the downloaded files in playlist order.
	Items []*PlaylistItem
}

// PlaylistItem is one downloaded file referenced by a playlist.
type PlaylistItem struct {
	// Title is the display title used in extended playlist formats.
	Title string

	// Artist is the uploader of the source video, if known.
	Artist string

	// Path is the local file path of the downloaded media.
	Path string

	// Duration is the media length in seconds, 0 when unknown.
	Duration float64
}

// NewPlaylist creates a Playlist with its file path computed.
//
// Invalid filename characters in the title are replaced with underscores and
// an empty title falls back to "playlist". Paths are truncated if they exceed
// the Windows path length limit (260).
func NewPlaylist(title, directory string, format PlaylistFormat) *Playlist {
	p := &Playlist{
		Title:     title,
		Directory: directory,
		Format:    format,
	}
	p.Path = p.parsePath()
	return p
}

// parsePath computes the full playlist file path.
func (p *Playlist) parsePath() string {
	fileName := sanitizeFileName(p.Title)
	if fileName == "" {
		fileName = "playlist"
	}
	ext := p.Format.Extension()
	filePath := filepath.Join(p.Directory, fileName+ext)

	// Limit total path length for Windows compatibility
	if len(filePath) >= 260 {
		maxLen := 259 - len(filepath.Join(p.Directory, ext))
		if maxLen > 0 && maxLen < len(fileName) {
			filePath = filepath.Join(p.Directory, fileName[:maxLen]+ext)
		}
	}

	return filePath
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// ParsePlaylistFormat maps a config value ("m3u", "pls", "wpl", "zpl") to a
// PlaylistFormat. Unknown values fall back to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pls":
		return PlaylistFormatPLS
	case "wpl":
		return PlaylistFormatWPL
	case "zpl":
		return PlaylistFormatZPL
	default:
		return PlaylistFormatM3U
	}
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	repeatedSpace    = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
func sanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
