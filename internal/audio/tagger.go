package audio

import (
	"errors"
	"os"
	"strconv"

	"github.com/bogem/id3v2"
)

// TagEditAction defines how to handle an individual ID3 tag.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value taken from the video.
	TagModify

	// TagDoNotModify leaves whatever yt-dlp or ffmpeg wrote unchanged.
	TagDoNotModify
)

// TagConfig holds the action applied to each ID3 field.
type TagConfig struct {
	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// Album controls the TALB (Album title) frame.
	Album TagEditAction

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// TrackNumber controls the TRCK (Track number) frame.
	TrackNumber TagEditAction

	// Comments controls the COMM (Comments) frame.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration: every field is
// updated except comments, which are cleared.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		Artist:      TagModify,
		Album:       TagModify,
		Title:       TagModify,
		TrackNumber: TagModify,
		Comments:    TagEmpty,
	}
}

// Metadata is the information written to an audio file.
//
// Artist is the uploader of the video, Album the playlist title (empty for
// single videos) and TrackNumber the 1-based position in the playlist, 0 when
// not part of one.
type Metadata struct {
	Title       string
	Artist      string
	Album       string
	TrackNumber int
}

// Tagger writes ID3 tags to MP3 files produced by audio downloads.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.SaveTags("/music/Song.mp3", Metadata{Title: "Song", Artist: "Uploader"}, jpegBytes)
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger. If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes meta and, when artwork is not nil, a front cover picture to
// the MP3 file at path.
func (t *Tagger) SaveTags(path string, meta Metadata, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}
		tag = id3v2.NewEmptyTag()
	}
	defer tag.Close()

	t.updateStringTags(tag, meta)

	if artwork != nil {
		updateArtwork(tag, artwork)
	}

	return tag.Save()
}

func (t *Tagger) updateStringTags(tag *id3v2.Tag, meta Metadata) {
	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		if meta.Artist != "" {
			tag.SetArtist(meta.Artist)
		}
	}

	switch t.config.Album {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		if meta.Album != "" {
			tag.SetAlbum(meta.Album)
		}
	}

	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		if meta.Title != "" {
			tag.SetTitle(meta.Title)
		}
	}

	switch t.config.TrackNumber {
	case TagEmpty:
		tag.DeleteFrames("TRCK")
	case TagModify:
		if meta.TrackNumber > 0 {
			tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, strconv.Itoa(meta.TrackNumber))
		}
	}

	if t.config.Comments == TagEmpty {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
}

// updateArtwork replaces any cover pictures with artwork.
func updateArtwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	})
}
