package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/youtube-downloader/internal/config"
	"github.com/handiism/youtube-downloader/internal/download"
	"github.com/handiism/youtube-downloader/internal/model"
	"github.com/handiism/youtube-downloader/internal/quality"
	"github.com/handiism/youtube-downloader/internal/system"
)

type fakeAnalyzer struct {
	content   *model.Classification
	err       error
	qualities map[int]quality.Entry
}

func (f *fakeAnalyzer) Classify(context.Context, string) (*model.Classification, error) {
	return f.content, f.err
}

func (f *fakeAnalyzer) Inspect(context.Context, string) (*model.MediaInfo, error) {
	return &model.MediaInfo{Uploader: "Channel", Thumbnail: "https://i.ytimg.com/t.jpg"}, nil
}

func (f *fakeAnalyzer) Qualities(context.Context, string, model.CodecFilter) map[int]quality.Entry {
	return f.qualities
}

type fakeDownloader struct {
	calls []download.Options
	err   error
}

func (f *fakeDownloader) Download(_ context.Context, opts download.Options) error {
	f.calls = append(f.calls, opts)
	return f.err
}

type fakeStore struct {
	dir      string
	recorded string // saved but missing on disk
	saved    []string
}

func (f *fakeStore) SavedDownloadDirectory() string {
	if f.recorded != "" {
		return f.recorded
	}
	return f.dir
}

func (f *fakeStore) ExistingDownloadDirectory() (string, bool) { return f.dir, f.dir != "" }

func (f *fakeStore) SaveDownloadDirectory(dir string) error {
	f.saved = append(f.saved, dir)
	f.dir, f.recorded = dir, ""
	return nil
}

func (f *fakeStore) FallbackDirectory() string { return "/base/playlist" }

func (f *fakeStore) Settings() *config.Settings { return config.DefaultSettings() }

type fakePicker struct {
	dir string
	ok  bool
	err error
}

func (f fakePicker) PickFolder(string) (string, bool, error) { return f.dir, f.ok, f.err }

type fixture struct {
	analyzer   *fakeAnalyzer
	downloader *fakeDownloader
	store      *fakeStore
	cfg        Config
}

func newFixture(picker system.FolderPicker) *fixture {
	f := &fixture{
		analyzer: &fakeAnalyzer{
			content: &model.Classification{Kind: model.KindVideo, Title: "Clip", Count: 1},
			qualities: map[int]quality.Entry{
				1080: {Name: "1080p Full HD", Height: 1080, FormatID: "137", Size: 1024},
				720:  {Name: "720p HD", Height: 720, FormatID: "136"},
			},
		},
		downloader: &fakeDownloader{},
		store:      &fakeStore{dir: "/saved"},
	}
	f.cfg = Config{
		Analyzer:   f.analyzer,
		Downloader: f.downloader,
		Store:      f.store,
		Picker:     picker,
		Version:    "1.0",
	}
	return f
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok)
	return got, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and any batched commands and returns their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func find[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	for _, msg := range collect(cmd) {
		if found, ok := msg.(T); ok {
			return found
		}
	}
	var zero T
	t.Fatalf("no %T produced", zero)
	return zero
}

// analyzed drives a model to the action list for url.
func analyzed(t *testing.T, f *fixture, url string) Model {
	t.Helper()
	m := NewModel(f.cfg)
	m.textInput.SetValue(url)

	m, cmd := update(t, m, key("enter"))
	require.Equal(t, StateAnalyzing, m.State())

	m, _ = update(t, m, find[AnalyzedMsg](t, cmd))
	require.Equal(t, StateChoosingAction, m.State())
	return m
}

func TestModel_SubmitCommands(t *testing.T) {
	f := newFixture(nil)
	m := NewModel(f.cfg)

	m, cmd := update(t, m, key("enter"))
	assert.Equal(t, StateInput, m.State())
	assert.Nil(t, cmd)

	m.textInput.SetValue("QUIT")
	_, cmd = update(t, m, key("enter"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m.textInput.SetValue("change")
	m, _ = update(t, m, key("enter"))
	assert.Equal(t, StateFolderInput, m.State(), "without a picker the folder is typed")
}

func TestModel_AnalyzeError(t *testing.T) {
	f := newFixture(nil)
	f.analyzer.err = errors.New("unsupported url")

	m := NewModel(f.cfg)
	m.textInput.SetValue("nope")
	m, cmd := update(t, m, key("enter"))
	m, _ = update(t, m, find[AnalyzedMsg](t, cmd))

	assert.Equal(t, StateError, m.State())
	assert.Contains(t, m.View(), "unsupported url")

	m, _ = update(t, m, key("r"))
	assert.Equal(t, StateInput, m.State())
}

func TestModel_AudioDownload(t *testing.T) {
	f := newFixture(nil)
	m := analyzed(t, f, "https://youtu.be/abc")
	assert.Contains(t, m.View(), "VIDEO: Clip (1 items)")

	m, cmd := update(t, m, key("1"))
	require.Equal(t, StateDownloading, m.State())

	done := find[DownloadDoneMsg](t, cmd)
	require.NoError(t, done.Err)
	require.Len(t, f.downloader.calls, 1)
	opts := f.downloader.calls[0]
	assert.Equal(t, model.MediaAudio, opts.Media)
	assert.Equal(t, "mp3", opts.AudioCodec)
	assert.Equal(t, "/saved", opts.Directory)
	assert.Equal(t, "Clip", opts.Title)
	assert.Equal(t, "Channel", opts.Uploader)

	m, _ = update(t, m, done)
	assert.Equal(t, StateComplete, m.State())
	assert.Contains(t, m.View(), "Download complete!")

	m, _ = update(t, m, key("enter"))
	assert.Equal(t, StateInput, m.State())
}

func TestModel_VideoQualitySelection(t *testing.T) {
	f := newFixture(nil)
	m := analyzed(t, f, "https://youtu.be/abc")

	m, cmd := update(t, m, key("3"))
	require.Equal(t, StateLoadingQualities, m.State())

	m, _ = update(t, m, find[QualitiesMsg](t, cmd))
	require.Equal(t, StateChoosingQuality, m.State())
	view := m.View()
	assert.Contains(t, view, "1080p Full HD")
	assert.Contains(t, view, "3. Automatic (Best MP4)")

	m, _ = update(t, m, key("down"))
	m, cmd = update(t, m, key("enter"))
	require.Equal(t, StateDownloading, m.State())

	find[DownloadDoneMsg](t, cmd)
	require.Len(t, f.downloader.calls, 1)
	assert.Equal(t, "136", f.downloader.calls[0].FormatID)
	assert.Equal(t, "mp4", f.downloader.calls[0].Container)
}

func TestModel_AutomaticQuality(t *testing.T) {
	f := newFixture(nil)
	m := analyzed(t, f, "https://youtu.be/abc")

	m, cmd := update(t, m, key("3"))
	m, _ = update(t, m, find[QualitiesMsg](t, cmd))
	_, cmd = update(t, m, key("a"))

	find[DownloadDoneMsg](t, cmd)
	require.Len(t, f.downloader.calls, 1)
	assert.Empty(t, f.downloader.calls[0].FormatID)
}

func TestModel_NoVP9Qualities(t *testing.T) {
	f := newFixture(nil)
	f.analyzer.qualities = nil
	m := analyzed(t, f, "https://youtu.be/abc")

	m, cmd := update(t, m, key("4"))
	m, _ = update(t, m, find[QualitiesMsg](t, cmd))

	assert.Equal(t, StateDownloading, m.State())
	assert.Contains(t, m.View(), "No specific VP9 qualities found")
}

func TestModel_PlaylistSkipsQualities(t *testing.T) {
	f := newFixture(nil)
	f.analyzer.content = &model.Classification{Kind: model.KindPlaylist, Title: "Mix", Count: 4}
	m := analyzed(t, f, "https://www.youtube.com/playlist?list=PL1")

	m, cmd := update(t, m, key("3"))
	require.Equal(t, StateDownloading, m.State())

	find[DownloadDoneMsg](t, cmd)
	require.Len(t, f.downloader.calls, 1)
	assert.True(t, f.downloader.calls[0].IsPlaylist)
	assert.Equal(t, "Mix", f.downloader.calls[0].PlaylistTitle)
}

func TestModel_CancelAction(t *testing.T) {
	f := newFixture(nil)
	m := analyzed(t, f, "https://youtu.be/abc")

	m, _ = update(t, m, key("5"))
	assert.Equal(t, StateInput, m.State())
	assert.Empty(t, f.downloader.calls)
}

func TestModel_PickerCancelledUsesFallback(t *testing.T) {
	f := newFixture(fakePicker{})
	f.store.dir = ""
	m := analyzed(t, f, "https://youtu.be/abc")

	m, cmd := update(t, m, key("2"))
	require.Equal(t, StatePickingFolder, m.State())

	m, cmd = update(t, m, find[FolderPickedMsg](t, cmd))
	require.Equal(t, StateDownloading, m.State())

	find[DownloadDoneMsg](t, cmd)
	require.Len(t, f.downloader.calls, 1)
	assert.Equal(t, "/base/playlist", f.downloader.calls[0].Directory)
	assert.Empty(t, f.store.saved)
}

func TestModel_PickerChoiceIsSaved(t *testing.T) {
	f := newFixture(fakePicker{dir: "/picked", ok: true})
	f.store.dir = ""
	m := analyzed(t, f, "https://youtu.be/abc")

	m, cmd := update(t, m, key("1"))
	m, cmd = update(t, m, find[FolderPickedMsg](t, cmd))

	find[DownloadDoneMsg](t, cmd)
	assert.Equal(t, []string{"/picked"}, f.store.saved)
	assert.Equal(t, "/picked", f.downloader.calls[0].Directory)
	assert.Equal(t, StateDownloading, m.State())
}

func TestModel_PickerErrorFallsBackToTyping(t *testing.T) {
	f := newFixture(fakePicker{err: system.ErrNoPicker})
	m := analyzed(t, f, "https://youtu.be/abc")

	m, cmd := update(t, m, key("6"))
	m, _ = update(t, m, find[FolderPickedMsg](t, cmd))
	require.Equal(t, StateFolderInput, m.State())

	m.folderInput.SetValue("/typed")
	m, _ = update(t, m, key("enter"))

	assert.Equal(t, StateInput, m.State())
	assert.Equal(t, []string{"/typed"}, f.store.saved)
	assert.Contains(t, m.View(), "Folder changed to: /typed")
}

func TestModel_HeaderShowsSavedFolder(t *testing.T) {
	f := newFixture(nil)
	f.store.dir, f.store.recorded = "", "/gone/music"
	assert.Contains(t, NewModel(f.cfg).View(), "Current folder: /gone/music")

	f.store.recorded = ""
	assert.Contains(t, NewModel(f.cfg).View(), "Current folder: Not configured")
}

func TestModel_ProgressEvents(t *testing.T) {
	f := newFixture(nil)
	m := NewModel(f.cfg)

	m, _ = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "hidden", Level: download.LevelVerbose}})
	assert.Empty(t, m.logs)

	for i := 0; i < 15; i++ {
		m, _ = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "line", Level: download.LevelInfo}})
	}
	assert.Len(t, m.logs, maxLogs)

	m, _ = update(t, m, ProgressMsg{Event: download.ProgressEvent{
		Level:    download.LevelProgress,
		Progress: download.Progress{Title: "Clip", Downloaded: 512, Total: 1024},
	}})
	assert.Equal(t, "Clip", m.current.Title)
	assert.Len(t, m.logs, maxLogs)
	assert.Equal(t, "512.00 B / 1.00 KB", progressLine(m.current))
}

func TestModel_EscCancelsDownload(t *testing.T) {
	f := newFixture(nil)
	m := analyzed(t, f, "https://youtu.be/abc")

	m, _ = update(t, m, key("1"))
	require.Equal(t, StateDownloading, m.State())

	m, _ = update(t, m, key("esc"))
	assert.Equal(t, StateError, m.State())
	assert.ErrorIs(t, m.err, errCancelled)

	m, _ = update(t, m, DownloadDoneMsg{})
	assert.Equal(t, StateError, m.State(), "late results are ignored")
}

func TestModel_StaleDownloadResultsIgnored(t *testing.T) {
	f := newFixture(nil)
	f.cfg.Relay = &Relay{}
	m := analyzed(t, f, "https://youtu.be/abc")

	m, first := update(t, m, key("1"))
	require.Equal(t, StateDownloading, m.State())

	m, _ = update(t, m, key("esc"))
	m, _ = update(t, m, key("r"))
	require.Equal(t, StateInput, m.State())

	m.textInput.SetValue("https://youtu.be/def")
	m, cmd := update(t, m, key("enter"))
	m, _ = update(t, m, find[AnalyzedMsg](t, cmd))
	m, second := update(t, m, key("2"))
	require.Equal(t, StateDownloading, m.State())

	stale := find[DownloadDoneMsg](t, first)
	m, _ = update(t, m, ProgressMsg{Seq: stale.Seq, Event: download.ProgressEvent{Message: "old clip", Level: download.LevelError}})
	m, _ = update(t, m, stale)
	assert.Equal(t, StateDownloading, m.State(), "the cancelled download does not finish the new one")
	assert.NotContains(t, m.View(), "old clip")

	done := find[DownloadDoneMsg](t, second)
	m, _ = update(t, m, ProgressMsg{Seq: done.Seq, Event: download.ProgressEvent{Message: "new clip", Level: download.LevelInfo}})
	m, _ = update(t, m, done)
	assert.Equal(t, StateComplete, m.State())
	assert.Contains(t, m.View(), "new clip")

	require.Len(t, f.downloader.calls, 2)
	assert.NotNil(t, f.downloader.calls[1].OnProgress, "downloads report through the relay")
}

func TestRelay_DropsEventsBeforeStart(t *testing.T) {
	r := &Relay{}
	assert.NotPanics(t, func() {
		r.For(1)(download.ProgressEvent{Message: "early", Level: download.LevelInfo})
	})
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := NewModel(newFixture(nil).cfg)

	_, cmd := update(t, m, key("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestProgressLine(t *testing.T) {
	assert.Equal(t, "Starting...", progressLine(download.Progress{}))
	assert.Equal(t, "Downloaded: 2.00 KB", progressLine(download.Progress{Downloaded: 2048}))
	assert.True(t, strings.HasPrefix(progressLine(download.Progress{Downloaded: 1, Total: 2, Speed: 1024}), "1.00 B / 2.00 B | 1.00 KB/s"))
}
