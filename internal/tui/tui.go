// Package tui provides a Bubble Tea terminal user interface for youtube-downloader.
package tui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/handiism/youtube-downloader/internal/config"
	"github.com/handiism/youtube-downloader/internal/download"
	"github.com/handiism/youtube-downloader/internal/model"
	"github.com/handiism/youtube-downloader/internal/quality"
	"github.com/handiism/youtube-downloader/internal/system"
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateAnalyzing
	StateChoosingAction
	StatePickingFolder
	StateFolderInput
	StateLoadingQualities
	StateChoosingQuality
	StateDownloading
	StateComplete
	StateError
)

const (
	maxLogs     = 10
	pickerTitle = "Select where to save music and videos"
)

var errCancelled = errors.New("cancelled by user")

// Analyzer answers questions about a URL.
type Analyzer interface {
	Classify(ctx context.Context, url string) (*model.Classification, error)
	Inspect(ctx context.Context, url string) (*model.MediaInfo, error)
	Qualities(ctx context.Context, url string, filter model.CodecFilter) map[int]quality.Entry
}

// Downloader performs downloads.
type Downloader interface {
	Download(ctx context.Context, opts download.Options) error
}

// DirectoryStore persists the download directory.
type DirectoryStore interface {
	SavedDownloadDirectory() string
	ExistingDownloadDirectory() (string, bool)
	SaveDownloadDirectory(dir string) error
	FallbackDirectory() string
	Settings() *config.Settings
}

// Config holds the collaborators of the TUI.
type Config struct {
	Analyzer   Analyzer
	Downloader Downloader
	Store      DirectoryStore
	Picker     system.FolderPicker
	Logger     *zap.Logger
	Version    string
	Verbose    bool

	// Relay carries download events into the program. Nil drops them.
	Relay *Relay
}

// action is one entry of the action list.
type action struct {
	label      string
	media      model.MediaKind
	audioCodec string
	container  string
	filter     model.CodecFilter

	cancel       bool
	changeFolder bool
}

var actions = []action{
	{label: "Download Music (MP3)", media: model.MediaAudio, audioCodec: "mp3"},
	{label: "Download Music (Opus) HQ", media: model.MediaAudio, audioCodec: "opus"},
	{label: "Download Video (MP4)", media: model.MediaVideo, container: "mp4", filter: model.CodecAVC},
	{label: "Download Video (VP9/WebM) HQ", media: model.MediaVideo, container: "webm", filter: model.CodecVP9},
	{label: "Cancel", cancel: true},
	{label: "Change download folder", changeFolder: true},
}

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	cfg Config

	state       State
	textInput   textinput.Model
	folderInput textinput.Model
	spinner     spinner.Model
	progress    progress.Model
	logs        []LogEntry
	err         error
	notice      string

	// Current download
	url       string
	content   *model.Classification
	action    action
	directory string
	qualities []quality.Entry
	cursor    int
	current   download.Progress

	// forDownload marks a folder prompt that a download is waiting on.
	forDownload bool

	ctx    context.Context
	cancel context.CancelFunc
	// seq numbers downloads so results of a cancelled one are told apart.
	seq int

	width int
}

// NewModel creates a new TUI model.
func NewModel(cfg Config) Model {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	ti := textinput.New()
	ti.Placeholder = "https://www.youtube.com/watch?v=..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	fi := textinput.New()
	fi.Placeholder = "/path/to/folder"
	fi.CharLimit = 1000
	fi.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		cfg:         cfg,
		state:       StateInput,
		textInput:   ti,
		folderInput: fi,
		spinner:     sp,
		progress:    prog,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when the download manager reports an event.
	ProgressMsg struct {
		Seq   int
		Event download.ProgressEvent
	}

	// AnalyzedMsg is sent when URL classification completes.
	AnalyzedMsg struct {
		Content *model.Classification
		Err     error
	}

	// FolderPickedMsg is sent when the folder dialog closes.
	FolderPickedMsg struct {
		Dir string
		OK  bool
		Err error
	}

	// QualitiesMsg is sent when the quality list is ready.
	QualitiesMsg struct {
		Entries []quality.Entry
	}

	// DownloadDoneMsg is sent when a download finishes.
	DownloadDoneMsg struct {
		Seq int
		Err error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case AnalyzedMsg:
		if m.state != StateAnalyzing {
			return m, nil
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			return m, nil
		}
		m.content = msg.Content
		m.cursor = 0
		m.state = StateChoosingAction

	case FolderPickedMsg:
		return m.folderPicked(msg)

	case QualitiesMsg:
		if m.state != StateLoadingQualities {
			return m, nil
		}
		if len(msg.Entries) == 0 {
			if m.action.filter == model.CodecVP9 {
				m.notice = "No specific VP9 qualities found, trying automatic..."
			}
			return m.startDownload("")
		}
		m.qualities = msg.Entries
		m.cursor = 0
		m.state = StateChoosingQuality

	case ProgressMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		cmds = append(cmds, m.handleProgress(msg.Event))

	case DownloadDoneMsg:
		if m.state != StateDownloading || msg.Seq != m.seq {
			return m, nil
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	switch m.state {
	case StateInput:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	case StateFolderInput:
		var cmd tea.Cmd
		m.folderInput, cmd = m.folderInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes key presses. handled reports whether the key was fully
// consumed; otherwise it is passed on to the focused text input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	key := msg.String()
	if key == "ctrl+c" {
		m.cancel()
		return m, tea.Quit, true
	}

	switch m.state {
	case StateInput:
		switch key {
		case "esc":
			return m, tea.Quit, true
		case "enter":
			next, cmd := m.submitURL(m.textInput.Value())
			return next, cmd, true
		}

	case StateFolderInput:
		switch key {
		case "esc":
			next, cmd := m.folderEntered("")
			return next, cmd, true
		case "enter":
			next, cmd := m.folderEntered(strings.TrimSpace(m.folderInput.Value()))
			return next, cmd, true
		}

	case StateChoosingAction:
		switch key {
		case "esc":
			m.reset()
			return m, nil, true
		case "up", "k":
			m.cursor = (m.cursor + len(actions) - 1) % len(actions)
		case "down", "j":
			m.cursor = (m.cursor + 1) % len(actions)
		case "enter":
			next, cmd := m.chooseAction(m.cursor)
			return next, cmd, true
		case "1", "2", "3", "4", "5", "6":
			next, cmd := m.chooseAction(int(key[0] - '1'))
			return next, cmd, true
		}
		return m, nil, true

	case StateChoosingQuality:
		n := len(m.qualities) + 1
		switch key {
		case "esc":
			m.reset()
			return m, nil, true
		case "up", "k":
			m.cursor = (m.cursor + n - 1) % n
		case "down", "j":
			m.cursor = (m.cursor + 1) % n
		case "enter", "a":
			formatID := ""
			if key == "enter" && m.cursor < len(m.qualities) {
				formatID = m.qualities[m.cursor].FormatID
			}
			next, cmd := m.startDownload(formatID)
			return next, cmd, true
		}
		return m, nil, true

	case StateAnalyzing, StateLoadingQualities, StateDownloading:
		if key == "esc" {
			m.cancel()
			m.state = StateError
			m.err = errCancelled
		}
		return m, nil, true

	case StateComplete, StateError:
		switch key {
		case "q":
			return m, tea.Quit, true
		case "r", "enter":
			m.reset()
		}
		return m, nil, true
	}

	return m, nil, false
}

// submitURL handles the top-level input: a URL or the change/quit commands.
func (m Model) submitURL(value string) (Model, tea.Cmd) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "":
		return m, nil
	case "quit":
		return m, tea.Quit
	case "change":
		m.textInput.SetValue("")
		return m.askFolder(false)
	}

	m.url = value
	m.notice = ""
	m.state = StateAnalyzing
	return m, tea.Batch(analyzeCmd(m.ctx, m.cfg.Analyzer, value), m.spinner.Tick)
}

func (m Model) chooseAction(idx int) (Model, tea.Cmd) {
	if idx < 0 || idx >= len(actions) {
		return m, nil
	}
	a := actions[idx]

	switch {
	case a.cancel:
		m.reset()
		return m, nil
	case a.changeFolder:
		return m.askFolder(false)
	}

	m.action = a
	if dir, ok := m.cfg.Store.ExistingDownloadDirectory(); ok {
		m.directory = dir
		return m.afterDirectory()
	}
	m.notice = "No download folder configured."
	return m.askFolder(true)
}

// askFolder opens the folder dialog, or the typed prompt without one.
func (m Model) askFolder(forDownload bool) (Model, tea.Cmd) {
	m.forDownload = forDownload
	if m.cfg.Picker == nil {
		return m.typeFolder()
	}
	m.state = StatePickingFolder
	return m, tea.Batch(pickFolderCmd(m.cfg.Picker), m.spinner.Tick)
}

func (m Model) typeFolder() (Model, tea.Cmd) {
	m.state = StateFolderInput
	m.textInput.Blur()
	m.folderInput.SetValue("")
	m.folderInput.Focus()
	return m, textinput.Blink
}

func (m Model) folderPicked(msg FolderPickedMsg) (Model, tea.Cmd) {
	if m.state != StatePickingFolder {
		return m, nil
	}
	if msg.Err != nil {
		m.cfg.Logger.Warn("folder picker unavailable", zap.Error(msg.Err))
		return m.typeFolder()
	}
	if !msg.OK {
		return m.folderChosen("")
	}
	return m.folderChosen(msg.Dir)
}

func (m Model) folderEntered(dir string) (Model, tea.Cmd) {
	m.folderInput.Blur()
	m.textInput.Focus()
	return m.folderChosen(dir)
}

// folderChosen applies a folder choice. An empty dir means the user declined.
func (m Model) folderChosen(dir string) (Model, tea.Cmd) {
	if dir != "" {
		if err := m.cfg.Store.SaveDownloadDirectory(dir); err != nil {
			m.cfg.Logger.Error("failed to save download directory", zap.Error(err))
			m.logs = appendLog(m.logs, LogEntry{Message: "Could not save folder: " + err.Error(), Level: download.LevelError})
		}
	}

	if !m.forDownload {
		if dir != "" {
			m.notice = "Folder changed to: " + dir
		}
		m.state = StateInput
		m.textInput.Focus()
		return m, textinput.Blink
	}

	if dir == "" {
		dir = m.cfg.Store.FallbackDirectory()
		m.cfg.Logger.Info("using fallback download directory", zap.String("dir", dir))
	}
	m.directory = dir
	m.forDownload = false
	m.notice = ""
	return m.afterDirectory()
}

// afterDirectory continues with quality listing or the download itself.
func (m Model) afterDirectory() (Model, tea.Cmd) {
	isPlaylist := m.content != nil && m.content.Kind == model.KindPlaylist
	if m.action.media == model.MediaVideo && !isPlaylist {
		m.state = StateLoadingQualities
		return m, tea.Batch(qualitiesCmd(m.ctx, m.cfg.Analyzer, m.url, m.action.filter), m.spinner.Tick)
	}
	return m.startDownload("")
}

func (m Model) startDownload(formatID string) (Model, tea.Cmd) {
	opts := m.options(formatID)
	m.state = StateDownloading
	m.current = download.Progress{}
	m.seq++
	return m, tea.Batch(downloadCmd(m.ctx, m.cfg, opts, m.seq), m.spinner.Tick, m.progress.SetPercent(0))
}

// options builds the download options of the current selection.
func (m Model) options(formatID string) download.Options {
	settings := m.cfg.Store.Settings()
	opts := download.Options{
		URL:          m.url,
		Media:        m.action.media,
		FormatID:     formatID,
		AudioCodec:   m.action.audioCodec,
		AudioQuality: settings.AudioQuality,
		Container:    m.action.container,
		Directory:    m.directory,
	}
	if m.content != nil {
		opts.IsPlaylist = m.content.Kind == model.KindPlaylist
		if opts.IsPlaylist {
			opts.PlaylistTitle = m.content.Title
		} else {
			opts.Title = m.content.Title
		}
	}
	return opts
}

func (m *Model) handleProgress(e download.ProgressEvent) tea.Cmd {
	if e.Level == download.LevelProgress {
		m.current = e.Progress
		return m.progress.SetPercent(e.Progress.Fraction())
	}
	if e.Level == download.LevelVerbose && !m.cfg.Verbose {
		return nil
	}
	m.logs = appendLog(m.logs, LogEntry{Message: e.Message, Level: e.Level})
	return nil
}

func appendLog(logs []LogEntry, entry LogEntry) []LogEntry {
	logs = append(logs, entry)
	if len(logs) > maxLogs {
		logs = logs[len(logs)-maxLogs:]
	}
	return logs
}

// reset prepares the model for a new URL.
func (m *Model) reset() {
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.state = StateInput
	m.url = ""
	m.content = nil
	m.action = action{}
	m.directory = ""
	m.qualities = nil
	m.cursor = 0
	m.current = download.Progress{}
	m.logs = nil
	m.err = nil
	m.notice = ""
	m.forDownload = false
	m.textInput.SetValue("")
	m.textInput.Focus()
}

func analyzeCmd(ctx context.Context, analyzer Analyzer, url string) tea.Cmd {
	return func() tea.Msg {
		content, err := analyzer.Classify(ctx, url)
		return AnalyzedMsg{Content: content, Err: err}
	}
}

func pickFolderCmd(picker system.FolderPicker) tea.Cmd {
	return func() tea.Msg {
		dir, ok, err := picker.PickFolder(pickerTitle)
		return FolderPickedMsg{Dir: dir, OK: ok, Err: err}
	}
}

func qualitiesCmd(ctx context.Context, analyzer Analyzer, url string, filter model.CodecFilter) tea.Cmd {
	return func() tea.Msg {
		return QualitiesMsg{Entries: quality.Sorted(analyzer.Qualities(ctx, url, filter))}
	}
}

// downloadCmd runs download number seq. Single audio downloads are inspected
// first so the files can be tagged with the uploader and thumbnail.
func downloadCmd(ctx context.Context, cfg Config, opts download.Options, seq int) tea.Cmd {
	if cfg.Relay != nil {
		opts.OnProgress = cfg.Relay.For(seq)
	}
	return func() tea.Msg {
		if opts.Media == model.MediaAudio && !opts.IsPlaylist && cfg.Store.Settings().TagAudio {
			if info, err := cfg.Analyzer.Inspect(ctx, opts.URL); err == nil {
				opts.Uploader = info.Uploader
				opts.Thumbnail = info.Thumbnail
			} else {
				cfg.Logger.Warn("failed to fetch metadata for tagging", zap.String("url", opts.URL), zap.Error(err))
			}
		}
		return DownloadDoneMsg{Seq: seq, Err: cfg.Downloader.Download(ctx, opts)}
	}
}

// Relay forwards download events into a running program. Events sent before
// the program starts are dropped.
type Relay struct {
	mu      sync.Mutex
	program *tea.Program
}

// For returns a download.Options.OnProgress handler for download seq.
func (r *Relay) For(seq int) func(download.ProgressEvent) {
	return func(e download.ProgressEvent) {
		r.mu.Lock()
		p := r.program
		r.mu.Unlock()
		if p != nil {
			p.Send(ProgressMsg{Seq: seq, Event: e})
		}
	}
}

func (r *Relay) attach(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Run starts the TUI application. cfg.Relay, if not nil, is connected to the
// program so that download events reach the UI.
func Run(cfg Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	if cfg.Relay != nil {
		cfg.Relay.attach(p)
	}
	_, err := p.Run()
	return err
}
