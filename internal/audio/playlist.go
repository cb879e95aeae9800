package audio

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/handiism/youtube-downloader/internal/model"
)

// PlaylistCreator generates playlist files in various formats.
//
// Item paths are written relative to the playlist (just the file name), since
// the playlist file is saved in the same directory as the downloads.
//
// Example:
//
//	creator := NewPlaylistCreator(true)
//	content := creator.CreatePlaylist(pl)
//	os.WriteFile(pl.Path, []byte(content), 0644)
//
//	// Result for an extended M3U:
//	// #EXTM3U
//	// #EXTINF:180,Uploader - Video Title
//	// Video Title.mp3
type PlaylistCreator struct {
	extended bool // For M3U: include EXTINF lines with duration/title
}

// NewPlaylistCreator creates a new PlaylistCreator. extended only affects M3U
// output.
func NewPlaylistCreator(extended bool) *PlaylistCreator {
	return &PlaylistCreator{extended: extended}
}

// CreatePlaylist renders pl in pl.Format.
func (p *PlaylistCreator) CreatePlaylist(pl *model.Playlist) string {
	switch pl.Format {
	case model.PlaylistFormatPLS:
		return p.createPLS(pl)
	case model.PlaylistFormatWPL:
		return p.createWPL(pl)
	case model.PlaylistFormatZPL:
		return p.createZPL(pl)
	default:
		return p.createM3U(pl)
	}
}

// createM3U generates an M3U playlist, with #EXTINF lines when extended.
func (p *PlaylistCreator) createM3U(pl *model.Playlist) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, item := range pl.Items {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s\n", int(item.Duration), displayTitle(item)))
		}
		sb.WriteString(filepath.Base(item.Path) + "\n")
	}

	return sb.String()
}

// createPLS generates an INI-style PLS playlist.
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Song Title
//	Length1=180
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(pl *model.Playlist) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, item := range pl.Items {
		idx := i + 1
		length := int(item.Duration)
		if length == 0 {
			length = -1
		}
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, filepath.Base(item.Path)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, item.Title))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, length))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(pl.Items)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(pl *model.Playlist) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(pl.Title)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, item := range pl.Items {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(filepath.Base(item.Path))))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune playlist. It is WPL with extra per-item
// attributes.
func (p *PlaylistCreator) createZPL(pl *model.Playlist) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(pl.Title)))
	sb.WriteString("    <meta name=\"Generator\" content=\"youtube-downloader\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(pl.Items)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, item := range pl.Items {
		duration := time.Duration(item.Duration * float64(time.Second))
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" albumTitle=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\" duration=\"%d\"/>\n",
			escapeXML(filepath.Base(item.Path)),
			escapeXML(pl.Title),
			escapeXML(item.Title),
			escapeXML(item.Artist),
			duration.Milliseconds()))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

func displayTitle(item *model.PlaylistItem) string {
	if item.Artist == "" {
		return item.Title
	}
	return item.Artist + " - " + item.Title
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

// escapeXML escapes & < > " and ' for use in XML text and attributes.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
