package menu

import "github.com/handiism/youtube-downloader/internal/model"

// option is one entry of the action menu.
type option struct {
	label string

	media      model.MediaKind
	audioCodec string
	container  string
	filter     model.CodecFilter

	qualityHeading    string
	automaticLabel    string
	noQualitiesNotice string

	cancel       bool
	changeFolder bool
}

var optionKeys = []string{"1", "2", "3", "4", "5", "6"}

var options = map[string]option{
	"1": {
		label:      "Download Music (MP3)",
		media:      model.MediaAudio,
		audioCodec: "mp3",
	},
	"2": {
		label:      "Download Music (Opus) HQ",
		media:      model.MediaAudio,
		audioCodec: "opus",
	},
	"3": {
		label:          "Download Video (MP4)",
		media:          model.MediaVideo,
		container:      "mp4",
		filter:         model.CodecAVC,
		qualityHeading: "--- QUALITIES (MP4/H264) ---",
		automaticLabel: "Automatic (Best MP4)",
	},
	"4": {
		label:             "Download Video (VP9/WebM) HQ",
		media:             model.MediaVideo,
		container:         "webm",
		filter:            model.CodecVP9,
		qualityHeading:    "--- QUALITIES (VP9/WebM) ---",
		automaticLabel:    "Automatic (Best VP9)",
		noQualitiesNotice: "No specific VP9 qualities found, trying automatic...",
	},
	"5": {label: "Cancel", cancel: true},
	"6": {label: "Change download folder", changeFolder: true},
}
