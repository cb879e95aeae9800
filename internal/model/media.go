package model

// ContentKind tells a single video apart from a playlist.
type ContentKind int

const (
	KindVideo ContentKind = iota
	KindPlaylist
)

func (k ContentKind) String() string {
	if k == KindPlaylist {
		return "playlist"
	}
	return "video"
}

// MediaKind selects what a download produces.
type MediaKind int

const (
	MediaAudio MediaKind = iota
	MediaVideo
)

func (k MediaKind) String() string {
	if k == MediaVideo {
		return "video"
	}
	return "audio"
}

// MediaInfo is the metadata extracted for a URL.
//
// HasEntries is set when the extractor returned an entries list at all,
// even an empty one. Entries holds the usable items; EntryCount is the raw
// length of the list, unavailable (null) items included.
type MediaInfo struct {
	ID         string
	Title      string
	Uploader   string
	Duration   float64
	Thumbnail  string
	WebpageURL string
	Formats    []Format
	Entries    []Entry
	EntryCount int
	HasEntries bool
}

// Entry is one flattened playlist item.
type Entry struct {
	ID       string
	Title    string
	URL      string
	Duration float64
}

// Classification is the result of analyzing a URL.
type Classification struct {
	Kind  ContentKind
	Title string
	Count int
}
