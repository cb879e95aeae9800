package quality

import (
	"fmt"
	"sort"
	"strings"

	"github.com/handiism/youtube-downloader/internal/model"
)

// MinHeight is the smallest vertical resolution offered in the menu.
const MinHeight = 144

// standardNames holds the canonical labels for common heights.
var standardNames = map[int]string{
	144:  "144p",
	240:  "240p",
	360:  "360p",
	480:  "480p",
	720:  "720p HD",
	1080: "1080p Full HD",
	1440: "1440p 2K",
	2160: "2160p 4K",
	4320: "4320p 8K",
}

// Entry is the best stream variant found at one height.
type Entry struct {
	Name       string
	Resolution string
	Size       int64
	FormatID   string
	Ext        string
	FPS        float64
	VCodec     string
	Height     int
}

// Select filters formats by codec family and folds them into one Entry per
// height. duration is the video length in seconds (0 when unknown) and is
// only used for the bitrate size estimate.
func Select(formats []model.Format, filter model.CodecFilter, duration float64) map[int]Entry {
	entries := make(map[int]Entry)
	bestAudio := bestAudioSize(formats)

	for _, f := range formats {
		if !f.HasVideo() {
			continue
		}
		if !filter.Matches(f.VCodec) {
			continue
		}
		if f.Height < MinHeight {
			continue
		}

		candidate := Entry{
			Name:       DisplayName(f.Height, f.FPS, f.VCodec),
			Resolution: fmt.Sprintf("%dx%d", f.Width, f.Height),
			Size:       EstimateSize(f, bestAudio, duration),
			FormatID:   f.FormatID,
			Ext:        f.Ext,
			FPS:        f.FPS,
			VCodec:     f.VCodec,
			Height:     f.Height,
		}
		if candidate.Ext == "" {
			candidate.Ext = "mp4"
		}

		existing, ok := entries[f.Height]
		if !ok || Better(candidate, existing) {
			entries[f.Height] = candidate
		}
	}

	return entries
}

// Better reports whether candidate should replace existing at the same
// height: higher frame rate first, then larger estimated size.
func Better(candidate, existing Entry) bool {
	if candidate.FPS != existing.FPS {
		return candidate.FPS > existing.FPS
	}
	return candidate.Size > existing.Size
}

// EstimateSize returns the expected download size of a video format in bytes.
//
// The format's own size is used, plus bestAudio when the format has no audio
// track. If that is still zero and both duration and bitrate are known, the
// size is approximated as tbr * duration * 1024 / 8. The formula mixes
// kilo/kibi conventions and is kept as an approximation only.
func EstimateSize(f model.Format, bestAudio int64, duration float64) int64 {
	size := f.ReportedSize()
	if f.HasNoAudio() && bestAudio > 0 {
		size += bestAudio
	}
	if size == 0 && duration > 0 && f.TBR > 0 {
		size = int64((f.TBR * duration * 1024) / 8)
	}
	return size
}

// bestAudioSize returns the largest reported size among audio-only formats.
func bestAudioSize(formats []model.Format) int64 {
	var best int64
	for _, f := range formats {
		if !f.IsAudioOnly() {
			continue
		}
		if size := f.ReportedSize(); size > best {
			best = size
		}
	}
	return best
}

// DisplayName builds the menu label for a height, e.g. "1080p Full HD 60fps (VP9)".
func DisplayName(height int, fps float64, vcodec string) string {
	name, ok := standardNames[height]
	if !ok {
		name = fmt.Sprintf("%dp", height)
	}
	if fps > 30 {
		name += fmt.Sprintf(" %dfps", int(fps))
	}
	if strings.Contains(vcodec, "vp9") {
		name += " (VP9)"
	}
	return name
}

// Sorted returns the entries ordered from the highest to the lowest height.
func Sorted(entries map[int]Entry) []Entry {
	sorted := make([]Entry, 0, len(entries))
	for _, e := range entries {
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Height > sorted[j].Height
	})
	return sorted
}

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders a byte count with two decimals in 1024-based units.
func FormatSize(bytes float64) string {
	for _, unit := range sizeUnits {
		if bytes < 1024.0 {
			return fmt.Sprintf("%.2f %s", bytes, unit)
		}
		bytes /= 1024.0
	}
	return fmt.Sprintf("%.2f TB", bytes)
}
