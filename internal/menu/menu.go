package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/handiism/youtube-downloader/internal/config"
	"github.com/handiism/youtube-downloader/internal/download"
	"github.com/handiism/youtube-downloader/internal/model"
	"github.com/handiism/youtube-downloader/internal/quality"
	"github.com/handiism/youtube-downloader/internal/system"
)

// State is a node of the menu state machine.
type State int

const (
	StateAwaitingURL State = iota
	StateAnalyzing
	StateAwaitingChoice
	StateChoosingQuality
	StateDownloading
	StateConfiguringFolder
	StateExit
)

func (s State) String() string {
	switch s {
	case StateAwaitingURL:
		return "awaiting-url"
	case StateAnalyzing:
		return "analyzing"
	case StateAwaitingChoice:
		return "awaiting-choice"
	case StateChoosingQuality:
		return "choosing-quality"
	case StateDownloading:
		return "downloading"
	case StateConfiguringFolder:
		return "configuring-folder"
	case StateExit:
		return "exit"
	}
	return "unknown"
}

const (
	commandChange = "change"
	commandQuit   = "quit"

	pickerTitle = "Select where to save music and videos"
	ruleWidth   = 60
)

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

// Config holds the collaborators of a Menu.
type Config struct {
	In         io.Reader
	Out        io.Writer
	Analyzer   Analyzer
	Downloader Downloader
	Store      DirectoryStore
	Picker     system.FolderPicker
	Console    system.Console
	Events     *EventPrinter
	Logger     *zap.Logger
	Version    string
}

// Menu is the interactive download loop.
type Menu struct {
	in         *bufio.Reader
	out        io.Writer
	styles     styles
	analyzer   Analyzer
	downloader Downloader
	store      DirectoryStore
	picker     system.FolderPicker
	console    system.Console
	events     *EventPrinter
	logger     *zap.Logger
	version    string

	// State of the current iteration
	url       string
	content   *model.Classification
	choice    option
	directory string
	formatID  string
}

// New creates a Menu. In, Out, Analyzer, Downloader and Store are required.
func New(cfg Config) *Menu {
	m := &Menu{
		in:         bufio.NewReader(cfg.In),
		out:        cfg.Out,
		styles:     newStyles(cfg.Out),
		analyzer:   cfg.Analyzer,
		downloader: cfg.Downloader,
		store:      cfg.Store,
		picker:     cfg.Picker,
		console:    cfg.Console,
		events:     cfg.Events,
		logger:     cfg.Logger,
		version:    cfg.Version,
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.version == "" {
		m.version = "dev"
	}
	return m
}

// Run drives the state machine until the user quits, input ends or ctx is
// cancelled.
func (m *Menu) Run(ctx context.Context) error {
	if m.console != nil {
		m.console.SetTitle("YouTube Downloader v" + m.version)
	}

	state := StateAwaitingURL
	for state != StateExit {
		if err := ctx.Err(); err != nil {
			return err
		}
		next := m.Step(ctx, state)
		m.logger.Debug("menu transition", zap.Stringer("from", state), zap.Stringer("to", next))
		state = next
	}
	return nil
}

// Step runs one state and returns the next.
func (m *Menu) Step(ctx context.Context, state State) State {
	switch state {
	case StateAwaitingURL:
		return m.awaitURL()
	case StateAnalyzing:
		return m.analyze(ctx)
	case StateAwaitingChoice:
		return m.awaitChoice()
	case StateChoosingQuality:
		return m.chooseQuality(ctx)
	case StateDownloading:
		return m.download(ctx)
	case StateConfiguringFolder:
		m.configureFolder()
		return StateAwaitingURL
	}
	return StateExit
}

func (m *Menu) awaitURL() State {
	m.reset()
	if m.console != nil {
		m.console.Clear()
	}

	// Shown as saved; a folder deleted since is caught when downloading.
	current := m.store.SavedDownloadDirectory()
	if current == "" {
		current = "Not configured (you will be asked when downloading)"
	}

	rule := m.styles.rule.Render(strings.Repeat("=", ruleWidth))
	m.println(rule)
	m.println(m.styles.title.Render(fmt.Sprintf("   YOUTUBE DOWNLOADER  |  v%s", m.version)))
	m.println(rule)
	m.println(m.styles.label.Render(" Current folder: ") + current)
	m.println(m.styles.rule.Render(strings.Repeat("-", ruleWidth)))

	line, ok := m.prompt("\n Enter URL (or type 'change' or 'quit'): ")
	if !ok {
		return StateExit
	}

	switch strings.ToLower(line) {
	case commandQuit:
		return StateExit
	case commandChange:
		if dir, ok := m.pickFolder(); ok {
			m.println(m.styles.success.Render("✓ Folder changed to: " + dir))
		}
		return StateAwaitingURL
	case "":
		return StateAwaitingURL
	}

	m.url = line
	return StateAnalyzing
}

func (m *Menu) analyze(ctx context.Context) State {
	m.println("\n Analyzing...")

	content, err := m.analyzer.Classify(ctx, m.url)
	if err != nil {
		m.println(m.styles.err.Render(" " + err.Error()))
		if _, ok := m.prompt(" Error reading URL. Press Enter to continue..."); !ok {
			return StateExit
		}
		return StateAwaitingURL
	}

	m.content = content
	m.println(fmt.Sprintf("\n %s: %s (%d items)", strings.ToUpper(content.Kind.String()), content.Title, content.Count))
	return StateAwaitingChoice
}

func (m *Menu) awaitChoice() State {
	m.println("\nWhat do you want to do?")
	for _, key := range optionKeys {
		m.println(m.styles.option.Render(key+".") + " " + options[key].label)
	}

	line, ok := m.prompt("\nOption: ")
	if !ok {
		return StateExit
	}

	opt, found := options[line]
	switch {
	case !found:
		return StateAwaitingURL
	case opt.cancel:
		return StateAwaitingURL
	case opt.changeFolder:
		return StateConfiguringFolder
	}

	m.choice = opt
	m.directory = m.resolveDirectory()

	if opt.media == model.MediaVideo {
		return StateChoosingQuality
	}
	return StateDownloading
}

func (m *Menu) chooseQuality(ctx context.Context) State {
	// Playlist items differ in available formats; let yt-dlp choose per item
	if m.content != nil && m.content.Kind == model.KindPlaylist {
		return StateDownloading
	}

	entries := quality.Sorted(m.analyzer.Qualities(ctx, m.url, m.choice.filter))
	if len(entries) == 0 {
		if m.choice.noQualitiesNotice != "" {
			m.println(m.styles.warning.Render("\n " + m.choice.noQualitiesNotice))
		}
		return StateDownloading
	}

	m.println(m.styles.label.Render("\n" + m.choice.qualityHeading))
	for i, e := range entries {
		size := "~"
		if e.Size > 0 {
			size = quality.FormatSize(float64(e.Size))
		}
		m.println(fmt.Sprintf("%s %-20s - %s", m.styles.option.Render(fmt.Sprintf("%d.", i+1)), e.Name, size))
	}
	auto := len(entries) + 1
	m.println(fmt.Sprintf("%s %s", m.styles.option.Render(fmt.Sprintf("%d.", auto)), m.choice.automaticLabel))

	line, ok := m.prompt(fmt.Sprintf("\nChoose (1-%d): ", auto))
	if !ok {
		return StateExit
	}

	m.formatID = selectFormat(entries, line)
	return StateDownloading
}

// selectFormat maps a 1-based selection to a format id. Anything that is not
// a listed quality means automatic selection ("").
func selectFormat(entries []quality.Entry, selection string) string {
	idx, err := strconv.Atoi(strings.TrimSpace(selection))
	if err != nil || idx < 1 || idx > len(entries) {
		return ""
	}
	return entries[idx-1].FormatID
}

func (m *Menu) download(ctx context.Context) State {
	opts := download.Options{
		URL:        m.url,
		Media:      m.choice.media,
		FormatID:   m.formatID,
		AudioCodec: m.choice.audioCodec,
		Container:  m.choice.container,
		Directory:  m.directory,
	}

	settings := m.store.Settings()
	opts.AudioQuality = settings.AudioQuality

	if m.content != nil {
		opts.IsPlaylist = m.content.Kind == model.KindPlaylist
		if opts.IsPlaylist {
			opts.PlaylistTitle = m.content.Title
		} else {
			opts.Title = m.content.Title
		}
	}

	if opts.Media == model.MediaAudio && !opts.IsPlaylist && settings.TagAudio {
		if info, err := m.analyzer.Inspect(ctx, m.url); err == nil {
			opts.Uploader = info.Uploader
			opts.Thumbnail = info.Thumbnail
		} else {
			m.logger.Warn("failed to fetch metadata for tagging", zap.String("url", m.url), zap.Error(err))
		}
	}

	m.println("")
	if err := m.downloader.Download(ctx, opts); err != nil {
		m.logger.Error("download failed", zap.String("url", m.url), zap.Error(err))
	}
	if m.events != nil {
		m.events.Finish()
	}

	if _, ok := m.prompt("\nPress Enter to continue..."); !ok {
		return StateExit
	}
	return StateAwaitingURL
}

func (m *Menu) configureFolder() {
	if dir, ok := m.pickFolder(); ok {
		m.println(m.styles.success.Render("✓ Folder changed to: " + dir))
	}
}

// resolveDirectory returns the saved directory if it still exists. Otherwise
// the user is asked for one, and the fallback is used if they decline.
func (m *Menu) resolveDirectory() string {
	if dir, ok := m.store.ExistingDownloadDirectory(); ok {
		return dir
	}

	m.println(m.styles.warning.Render("\n No download folder configured."))
	if dir, ok := m.pickFolder(); ok {
		return dir
	}

	fallback := m.store.FallbackDirectory()
	m.logger.Info("using fallback download directory", zap.String("dir", fallback))
	return fallback
}

// pickFolder asks for a folder and saves it. Without a graphical dialog the
// path is typed instead.
func (m *Menu) pickFolder() (string, bool) {
	var (
		dir string
		ok  bool
		err = system.ErrNoPicker
	)
	if m.picker != nil {
		m.println("\n Opening folder selection...")
		dir, ok, err = m.picker.PickFolder(pickerTitle)
	}

	if err != nil {
		m.logger.Warn("folder picker unavailable", zap.Error(err))
		line, read := m.prompt(" Type a folder path (blank to cancel): ")
		dir, ok = line, read && line != ""
	}
	if !ok {
		return "", false
	}

	if err := m.store.SaveDownloadDirectory(dir); err != nil {
		m.println(m.styles.err.Render(" Could not save folder: " + err.Error()))
	}
	return dir, true
}

func (m *Menu) reset() {
	m.url = ""
	m.content = nil
	m.choice = option{}
	m.directory = ""
	m.formatID = ""
}

// prompt writes text and reads one trimmed line. ok is false at end of input.
func (m *Menu) prompt(text string) (string, bool) {
	fmt.Fprint(m.out, text)

	line, err := m.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}
