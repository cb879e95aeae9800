package model

import "strings"

// codecNone is the codec id the extractor reports for an absent stream.
const codecNone = "none"

// Format describes one stream variant offered for a video.
//
// Zero values mean "not reported". Sizes are in bytes, TBR is the average
// total bitrate in kbps and FPS is frames per second.
type Format struct {
	FormatID       string
	Ext            string
	VCodec         string
	ACodec         string
	Width          int
	Height         int
	FPS            float64
	FileSize       int64
	FileSizeApprox int64
	TBR            float64
}

// HasVideo reports whether the format carries a video stream.
func (f Format) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != codecNone
}

// IsAudioOnly reports whether the format is an audio-only stream.
func (f Format) IsAudioOnly() bool {
	return f.VCodec == codecNone && f.ACodec != codecNone
}

// HasNoAudio reports whether the extractor explicitly marked the format as
// having no audio track. An unreported audio codec is not treated as silent.
func (f Format) HasNoAudio() bool {
	return f.ACodec == codecNone
}

// ReportedSize returns the exact file size if known, otherwise the
// approximate one.
func (f Format) ReportedSize() int64 {
	if f.FileSize > 0 {
		return f.FileSize
	}
	return f.FileSizeApprox
}

// CodecFilter restricts quality enumeration to a codec family.
type CodecFilter int

const (
	// CodecAny accepts every video codec.
	CodecAny CodecFilter = iota

	// CodecVP9 accepts codec ids containing "vp9" (WebM high quality).
	CodecVP9

	// CodecAVC accepts codec ids containing "avc" or "h264" (MP4 compatible).
	CodecAVC
)

// Matches reports whether a video codec id belongs to the filter's family.
func (c CodecFilter) Matches(vcodec string) bool {
	switch c {
	case CodecVP9:
		return strings.Contains(vcodec, "vp9")
	case CodecAVC:
		return strings.Contains(vcodec, "avc") || strings.Contains(vcodec, "h264")
	default:
		return true
	}
}

func (c CodecFilter) String() string {
	switch c {
	case CodecVP9:
		return "vp9"
	case CodecAVC:
		return "avc"
	default:
		return "any"
	}
}
