package extract

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/handiism/youtube-downloader/internal/model"
	"github.com/handiism/youtube-downloader/internal/quality"
)

// DefaultTitle is used when the extractor reports no title.
const DefaultTitle = "Untitled"

// Service answers URL classification and quality questions on top of an
// Extractor. It is safe for concurrent use.
type Service struct {
	extractor Extractor
	logger    *zap.Logger

	mu      sync.Mutex
	lastURL string
	last    *model.MediaInfo
}

// NewService creates a Service. A nil logger discards log output.
func NewService(extractor Extractor, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{extractor: extractor, logger: logger}
}

// Classify determines whether url is a single video or a playlist.
//
// A flat extraction is used. The content is a playlist when the extractor
// returned an entries list or when the URL carries a list= parameter; the
// count is then the length of the entries list, unavailable items included,
// or 1 when none were listed. Errors are
// logged and returned, never fatal.
func (s *Service) Classify(ctx context.Context, url string) (*model.Classification, error) {
	info, err := s.extractor.Extract(ctx, url, true)
	if err == nil && info == nil {
		err = ErrNoInfo
	}
	if err != nil {
		s.logger.Error("failed to analyze url", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("analyze %s: %w", url, err)
	}

	c := &model.Classification{
		Kind:  model.KindVideo,
		Title: info.Title,
		Count: 1,
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if info.HasEntries || strings.Contains(url, "list=") {
		c.Kind = model.KindPlaylist
		if info.HasEntries {
			c.Count = max(info.EntryCount, len(info.Entries))
		}
	}

	s.logger.Debug("classified url",
		zap.String("url", url),
		zap.Stringer("kind", c.Kind),
		zap.Int("count", c.Count),
	)

	return c, nil
}

// Inspect runs a full extraction of url. The result of the most recent call
// is cached so that quality listing and download metadata share one run.
func (s *Service) Inspect(ctx context.Context, url string) (*model.MediaInfo, error) {
	s.mu.Lock()
	if s.last != nil && s.lastURL == url {
		info := s.last
		s.mu.Unlock()
		return info, nil
	}
	s.mu.Unlock()

	info, err := s.extractor.Extract(ctx, url, false)
	if err == nil && info == nil {
		err = ErrNoInfo
	}
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", url, err)
	}

	s.mu.Lock()
	s.lastURL, s.last = url, info
	s.mu.Unlock()

	return info, nil
}

// Qualities lists the best variant per height for url matching filter.
//
// Extraction failures are logged and produce an empty map, which callers
// treat as "automatic selection only".
func (s *Service) Qualities(ctx context.Context, url string, filter model.CodecFilter) map[int]quality.Entry {
	info, err := s.Inspect(ctx, url)
	if err != nil {
		s.logger.Error("failed to list qualities", zap.String("url", url), zap.Error(err))
		return map[int]quality.Entry{}
	}

	entries := quality.Select(info.Formats, filter, info.Duration)
	s.logger.Debug("listed qualities",
		zap.String("url", url),
		zap.Stringer("codec", filter),
		zap.Int("count", len(entries)),
	)

	return entries
}
