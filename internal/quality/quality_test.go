package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/youtube-downloader/internal/model"
)

func videoOnly(id string, height int, fps float64, vcodec string, size int64) model.Format {
	return model.Format{
		FormatID: id,
		Ext:      "mp4",
		VCodec:   vcodec,
		ACodec:   "none",
		Width:    height * 16 / 9,
		Height:   height,
		FPS:      fps,
		FileSize: size,
	}
}

func TestSelect_HigherFrameRateWins(t *testing.T) {
	formats := []model.Format{
		videoOnly("137", 1080, 24, "avc1.640028", 900),
		videoOnly("299", 1080, 60, "avc1.64002a", 100),
	}

	entries := Select(formats, model.CodecAny, 0)

	require.Len(t, entries, 1)
	assert.Equal(t, "299", entries[1080].FormatID)
	assert.Equal(t, 60.0, entries[1080].FPS)
}

func TestSelect_FrameRateIsCheckedBeforeOrder(t *testing.T) {
	formats := []model.Format{
		videoOnly("299", 1080, 60, "avc1.64002a", 100),
		videoOnly("137", 1080, 24, "avc1.640028", 900),
	}

	entries := Select(formats, model.CodecAny, 0)

	assert.Equal(t, "299", entries[1080].FormatID)
}

func TestSelect_EqualFrameRateLargerSizeWins(t *testing.T) {
	formats := []model.Format{
		videoOnly("a", 720, 30, "avc1", 100),
		videoOnly("b", 720, 30, "avc1", 200),
		videoOnly("c", 720, 30, "avc1", 150),
	}

	entries := Select(formats, model.CodecAny, 0)

	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[720].FormatID)
	assert.EqualValues(t, 200, entries[720].Size)
}

func TestSelect_DropsMissingAndLowHeights(t *testing.T) {
	formats := []model.Format{
		videoOnly("zero", 0, 30, "vp9", 10),
		videoOnly("low", 90, 30, "vp9", 10),
		videoOnly("ok", 144, 30, "vp9", 10),
	}

	for _, filter := range []model.CodecFilter{model.CodecAny, model.CodecVP9, model.CodecAVC} {
		t.Run(filter.String(), func(t *testing.T) {
			entries := Select(formats, filter, 0)
			assert.NotContains(t, entries, 0)
			assert.NotContains(t, entries, 90)
		})
	}
}

func TestSelect_SkipsFormatsWithoutVideo(t *testing.T) {
	formats := []model.Format{
		{FormatID: "140", VCodec: "none", ACodec: "mp4a.40.2", Height: 0, FileSize: 5},
		{FormatID: "sb0", VCodec: "none", ACodec: "none", Height: 180},
		{FormatID: "x", VCodec: "", ACodec: "opus", Height: 360},
	}

	assert.Empty(t, Select(formats, model.CodecAny, 100))
}

func TestSelect_CodecFilters(t *testing.T) {
	formats := []model.Format{
		videoOnly("vp9-1080", 1080, 30, "vp9", 10),
		videoOnly("avc-720", 720, 30, "avc1.4d401f", 10),
		videoOnly("h264-480", 480, 30, "h264", 10),
		videoOnly("av1-360", 360, 30, "av01.0.01M.08", 10),
	}

	vp9 := Select(formats, model.CodecVP9, 0)
	require.Len(t, vp9, 1)
	for _, e := range vp9 {
		assert.Contains(t, e.VCodec, "vp9")
	}

	avc := Select(formats, model.CodecAVC, 0)
	require.Len(t, avc, 2)
	for _, e := range avc {
		assert.True(t, strings.Contains(e.VCodec, "avc") || strings.Contains(e.VCodec, "h264"), e.VCodec)
	}

	assert.Len(t, Select(formats, model.CodecAny, 0), 4)
}

func TestSelect_AddsBestAudioToVideoOnly(t *testing.T) {
	formats := []model.Format{
		{FormatID: "249", VCodec: "none", ACodec: "opus", FileSize: 30},
		{FormatID: "251", VCodec: "none", ACodec: "opus", FileSizeApprox: 70},
		videoOnly("137", 1080, 30, "avc1", 1000),
		{FormatID: "18", VCodec: "avc1.42001E", ACodec: "mp4a.40.2", Height: 360, FileSize: 500},
	}

	entries := Select(formats, model.CodecAny, 0)

	assert.EqualValues(t, 1070, entries[1080].Size)
	assert.EqualValues(t, 500, entries[360].Size, "muxed formats already include audio")
}

func TestSelect_BitrateFallback(t *testing.T) {
	f := videoOnly("137", 1080, 30, "avc1", 0)
	f.TBR = 1000

	entries := Select([]model.Format{f}, model.CodecAny, 60)

	assert.EqualValues(t, 1000*60*1024/8, entries[1080].Size)
}

func TestSelect_BitrateFallbackNeedsDuration(t *testing.T) {
	f := videoOnly("137", 1080, 30, "avc1", 0)
	f.TBR = 1000

	entries := Select([]model.Format{f}, model.CodecAny, 0)

	assert.Zero(t, entries[1080].Size)
}

func TestSelect_EmptyInput(t *testing.T) {
	assert.Empty(t, Select(nil, model.CodecAny, 0))
	assert.Empty(t, Select([]model.Format{}, model.CodecVP9, 10))
}

func TestSelect_EntryFields(t *testing.T) {
	f := videoOnly("303", 1080, 60, "vp9", 10)
	f.Width = 1920
	f.Ext = "webm"

	e := Select([]model.Format{f}, model.CodecVP9, 0)[1080]

	assert.Equal(t, Entry{
		Name:       "1080p Full HD 60fps (VP9)",
		Resolution: "1920x1080",
		Size:       10,
		FormatID:   "303",
		Ext:        "webm",
		FPS:        60,
		VCodec:     "vp9",
		Height:     1080,
	}, e)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		height int
		fps    float64
		vcodec string
		want   string
	}{
		{1080, 30, "avc1", "1080p Full HD"},
		{1080, 25, "avc1", "1080p Full HD"},
		{1080, 60, "avc1", "1080p Full HD 60fps"},
		{999, 30, "avc1", "999p"},
		{2160, 59.94, "vp9", "2160p 4K 59fps (VP9)"},
		{144, 0, "vp9", "144p (VP9)"},
		{4320, 30, "av01", "4320p 8K"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.height, tt.fps, tt.vcodec))
		})
	}
}

func TestSorted(t *testing.T) {
	entries := map[int]Entry{
		360:  {Height: 360},
		2160: {Height: 2160},
		720:  {Height: 720},
	}

	sorted := Sorted(entries)

	require.Len(t, sorted, 3)
	assert.Equal(t, []int{2160, 720, 360}, []int{sorted[0].Height, sorted[1].Height, sorted[2].Height})
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes float64
		want  string
	}{
		{0, "0.00 B"},
		{512, "512.00 B"},
		{1536, "1.50 KB"},
		{7680000, "7.32 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
		{2 * 1024 * 1024 * 1024 * 1024, "2.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSize(tt.bytes))
		})
	}
}
