package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/youtube-downloader/internal/download"
	"github.com/handiism/youtube-downloader/internal/quality"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)
)

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("YouTube Downloader v" + m.cfg.Version))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download music and videos from YouTube"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateAnalyzing:
		b.WriteString(m.viewBusy("Analyzing..."))
	case StateChoosingAction:
		b.WriteString(m.viewActions())
	case StatePickingFolder:
		b.WriteString(m.viewBusy("Waiting for folder selection..."))
	case StateFolderInput:
		b.WriteString(m.viewFolderInput())
	case StateLoadingQualities:
		b.WriteString(m.viewBusy("Looking up qualities..."))
	case StateChoosingQuality:
		b.WriteString(m.viewQualities())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter URL (or type 'change' or 'quit'):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	current := m.cfg.Store.SavedDownloadDirectory()
	if current == "" {
		current = "Not configured (you will be asked when downloading)"
	}
	b.WriteString(dimStyle.Render("Current folder: " + current))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(successStyle.Render("✓ " + m.notice))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewBusy(label string) string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(label))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewActions() string {
	var b strings.Builder

	b.WriteString(m.renderContent())
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render("What do you want to do?"))
	b.WriteString("\n")
	for i, a := range actions {
		b.WriteString(renderItem(i == m.cursor, fmt.Sprintf("%d. %s", i+1, a.label)))
	}

	return b.String()
}

func (m Model) viewFolderInput() string {
	var b strings.Builder

	if m.notice != "" {
		b.WriteString(warningStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(subtitleStyle.Render("Type a folder path (blank to cancel):"))
	b.WriteString("\n\n")
	b.WriteString(m.folderInput.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewQualities() string {
	var b strings.Builder

	b.WriteString(m.renderContent())
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render("Choose a quality:"))
	b.WriteString("\n")
	for i, e := range m.qualities {
		size := "~"
		if e.Size > 0 {
			size = quality.FormatSize(float64(e.Size))
		}
		b.WriteString(renderItem(i == m.cursor, fmt.Sprintf("%d. %-20s - %s", i+1, e.Name, size)))
	}
	b.WriteString(renderItem(m.cursor == len(m.qualities), fmt.Sprintf("%d. Automatic (Best %s)", len(m.qualities)+1, strings.ToUpper(m.action.container))))

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Saving to " + m.directory))
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(warningStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	if m.current.Title != "" {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render(m.current.Title))
		b.WriteString("\n")
	}
	b.WriteString(m.progress.View())
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(progressLine(m.current)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	b.WriteString(boxStyle.Render(fmt.Sprintf("Download complete!\n\n%s\nSaved to: %s", m.contentLine(), m.directory)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderContent() string {
	return selectedStyle.Render(m.contentLine())
}

func (m Model) contentLine() string {
	if m.content == nil {
		return m.url
	}
	return fmt.Sprintf("%s: %s (%d items)", strings.ToUpper(m.content.Kind.String()), m.content.Title, m.content.Count)
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • esc: quit"
	case StateChoosingAction, StateChoosingQuality:
		return "↑/↓: move • enter: select • esc: back"
	case StateFolderInput:
		return "enter: confirm • esc: skip"
	case StateAnalyzing, StateLoadingQualities, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

func renderItem(selected bool, text string) string {
	if selected {
		return selectedStyle.Render("> "+text) + "\n"
	}
	return "  " + text + "\n"
}

func progressLine(p download.Progress) string {
	if p.Total <= 0 {
		if p.Downloaded > 0 {
			return "Downloaded: " + quality.FormatSize(float64(p.Downloaded))
		}
		return "Starting..."
	}
	line := fmt.Sprintf("%s / %s", quality.FormatSize(float64(p.Downloaded)), quality.FormatSize(float64(p.Total)))
	if p.Speed > 0 {
		line += fmt.Sprintf(" | %s/s", quality.FormatSize(p.Speed))
	}
	if p.ETA > 0 {
		line += " | ETA " + p.ETA.Round(time.Second).String()
	}
	return line
}
