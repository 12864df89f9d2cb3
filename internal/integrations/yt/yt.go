package yt

import (
	"context"
	"net/http"

	"github.com/vlatan/transcript-store/internal/config"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// CaptionEntry is one caption line as served by YouTube,
// timed in fractional seconds.
type CaptionEntry struct {
	Text     string
	Start    float64
	Duration float64
}

// Captions holds the caption entries of a single video
type Captions struct {
	VideoID  string
	Language string
	Entries  []CaptionEntry
}

type Service struct {
	config  *config.Config
	client  *http.Client
	youtube *youtube.Service

	// Overridable in tests
	watchBaseURL string
}

// Create new YouTube service.
// The Data API client is created only when an API key is configured;
// caption retrieval itself needs no API key.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {

	s := &Service{
		config:       cfg,
		client:       &http.Client{Timeout: cfg.HTTPTimeout},
		watchBaseURL: cfg.WatchBaseURL,
	}

	if cfg.YouTubeAPIKey == "" {
		return s, nil
	}

	var co option.ClientOption = option.WithAPIKey(cfg.YouTubeAPIKey)
	yts, err := youtube.NewService(ctx, co)
	if err != nil {
		return nil, err
	}

	s.youtube = yts
	return s, nil
}

// HasMetadataAPI reports whether the Data API client is configured
func (s *Service) HasMetadataAPI() bool {
	return s.youtube != nil
}
