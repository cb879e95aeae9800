package menu

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/handiism/youtube-downloader/internal/download"
)

// EventPrinter renders download events as styled lines and a progress bar.
// It is safe for concurrent use.
type EventPrinter struct {
	out     io.Writer
	styles  styles
	verbose bool

	mu    sync.Mutex
	bar   *progressbar.ProgressBar
	total int64
	title string
}

// NewEventPrinter creates an EventPrinter writing to out. Verbose events are
// shown only when verbose is set.
func NewEventPrinter(out io.Writer, verbose bool) *EventPrinter {
	return &EventPrinter{out: out, styles: newStyles(out), verbose: verbose}
}

// Handle prints one download event. It matches the download.Manager
// callback signature.
func (p *EventPrinter) Handle(e download.ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e.Level == download.LevelProgress {
		p.updateBar(e.Progress)
		return
	}
	if e.Level == download.LevelVerbose && !p.verbose {
		return
	}

	p.finishBar()

	var line string
	switch e.Level {
	case download.LevelError:
		line = p.styles.err.Render("✗ " + e.Message)
	case download.LevelWarning:
		line = p.styles.warning.Render("! " + e.Message)
	case download.LevelSuccess:
		line = p.styles.success.Render("✓ " + e.Message)
	case download.LevelInfo:
		line = p.styles.info.Render("› " + e.Message)
	default:
		line = p.styles.dim.Render("• " + e.Message)
	}
	fmt.Fprintln(p.out, line)
}

// Finish completes the current progress bar, if any.
func (p *EventPrinter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finishBar()
}

// updateBar starts a new bar whenever yt-dlp moves on to another stream.
func (p *EventPrinter) updateBar(pr download.Progress) {
	total := pr.Total
	if total <= 0 {
		total = -1
	}

	if p.bar == nil || total != p.total || pr.Title != p.title {
		p.finishBar()
		p.total, p.title = total, pr.Title
		p.bar = progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(pr.Title),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
	}

	_ = p.bar.Set64(pr.Downloaded)
}

func (p *EventPrinter) finishBar() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	fmt.Fprintln(p.out)
	p.bar = nil
	p.total, p.title = 0, ""
}
