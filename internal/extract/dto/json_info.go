package dto

import (
	"encoding/json"
	"fmt"

	"github.com/handiism/youtube-downloader/internal/model"
)

// JSONInfo is the info dictionary yt-dlp prints with --dump-single-json.
//
// Most numeric fields are nullable in yt-dlp output, hence the pointers.
// Entries is a pointer so that "the key was present" can be told apart from
// "the key was absent".
type JSONInfo struct {
	ID         string        `json:"id"`
	Title      *string       `json:"title"`
	Uploader   *string       `json:"uploader"`
	Channel    *string       `json:"channel"`
	Duration   *float64      `json:"duration"`
	Thumbnail  *string       `json:"thumbnail"`
	WebpageURL *string       `json:"webpage_url"`
	Type       string        `json:"_type"`
	Formats    []JSONFormat  `json:"formats"`
	Entries    *[]*JSONEntry `json:"entries"`
}

// JSONFormat is one entry of the formats list.
type JSONFormat struct {
	FormatID       string   `json:"format_id"`
	Ext            *string  `json:"ext"`
	VCodec         *string  `json:"vcodec"`
	ACodec         *string  `json:"acodec"`
	Width          *float64 `json:"width"`
	Height         *float64 `json:"height"`
	FPS            *float64 `json:"fps"`
	FileSize       *float64 `json:"filesize"`
	FileSizeApprox *float64 `json:"filesize_approx"`
	TBR            *float64 `json:"tbr"`
}

// JSONEntry is a playlist entry as returned by --flat-playlist.
type JSONEntry struct {
	ID       string   `json:"id"`
	Title    *string  `json:"title"`
	URL      *string  `json:"url"`
	Duration *float64 `json:"duration"`
}

// ParseInfo decodes yt-dlp JSON output into a model.MediaInfo.
func ParseInfo(data []byte) (*model.MediaInfo, error) {
	var info JSONInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to decode yt-dlp output: %w", err)
	}
	return info.ToMediaInfo(), nil
}

// ToMediaInfo converts JSONInfo to a model.MediaInfo.
func (ji *JSONInfo) ToMediaInfo() *model.MediaInfo {
	mi := &model.MediaInfo{
		ID:         ji.ID,
		Title:      str(ji.Title),
		Uploader:   str(ji.Uploader),
		Duration:   num(ji.Duration),
		Thumbnail:  str(ji.Thumbnail),
		WebpageURL: str(ji.WebpageURL),
	}
	if mi.Uploader == "" {
		mi.Uploader = str(ji.Channel)
	}

	for _, jf := range ji.Formats {
		mi.Formats = append(mi.Formats, jf.ToFormat())
	}

	if ji.Entries != nil {
		mi.HasEntries = true
		mi.EntryCount = len(*ji.Entries)
		for _, je := range *ji.Entries {
			// Unavailable items come back as null
			if je == nil {
				continue
			}
			mi.Entries = append(mi.Entries, je.ToEntry())
		}
	}

	return mi
}

// ToFormat converts JSONFormat to a model.Format.
func (jf *JSONFormat) ToFormat() model.Format {
	return model.Format{
		FormatID:       jf.FormatID,
		Ext:            str(jf.Ext),
		VCodec:         str(jf.VCodec),
		ACodec:         str(jf.ACodec),
		Width:          int(num(jf.Width)),
		Height:         int(num(jf.Height)),
		FPS:            num(jf.FPS),
		FileSize:       int64(num(jf.FileSize)),
		FileSizeApprox: int64(num(jf.FileSizeApprox)),
		TBR:            num(jf.TBR),
	}
}

// ToEntry converts JSONEntry to a model.Entry.
func (je *JSONEntry) ToEntry() model.Entry {
	return model.Entry{
		ID:       je.ID,
		Title:    str(je.Title),
		URL:      str(je.URL),
		Duration: num(je.Duration),
	}
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
