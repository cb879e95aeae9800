package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/handiism/youtube-downloader/internal/extract/dto"
	"github.com/handiism/youtube-downloader/internal/model"
)

// YTDLP extracts metadata by running yt-dlp with --dump-single-json.
type YTDLP struct {
	executable string
}

// NewYTDLP creates a YTDLP extractor. An empty executable uses the yt-dlp
// found on PATH.
func NewYTDLP(executable string) *YTDLP {
	return &YTDLP{executable: executable}
}

// Extract runs yt-dlp for url and decodes the resulting info dictionary.
func (y *YTDLP) Extract(ctx context.Context, url string, flat bool) (*model.MediaInfo, error) {
	result, err := y.command(flat).Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp extraction failed: %w", err)
	}

	out := strings.TrimSpace(result.Stdout)
	if out == "" || out == "null" {
		return nil, ErrNoInfo
	}

	return dto.ParseInfo([]byte(out))
}

func (y *YTDLP) command(flat bool) *ytdlp.Command {
	cmd := ytdlp.New().
		DumpSingleJSON().
		Quiet().
		NoWarnings().
		ExtractorArgs(PlayerClientArgs)

	if flat {
		cmd.FlatPlaylist()
	}
	if y.executable != "" {
		cmd.SetExecutable(y.executable)
	}

	return cmd
}
