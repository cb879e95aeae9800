package extract

import (
	"context"
	"errors"

	"github.com/handiism/youtube-downloader/internal/model"
)

// PlayerClientArgs asks the YouTube extractor to query the android and web
// player clients, which expose more formats than the default.
const PlayerClientArgs = "youtube:player_client=android,web"

// ErrNoInfo is returned when extraction succeeded but produced nothing.
var ErrNoInfo = errors.New("no information could be extracted")

// Extractor fetches metadata for a URL.
//
// With flat set, playlist entries are listed without resolving each item,
// which is enough for classification and much faster.
type Extractor interface {
	Extract(ctx context.Context, url string, flat bool) (*model.MediaInfo, error)
}
