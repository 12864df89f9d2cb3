package yt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// A single caption track as listed in the watch page player response
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated tracks
	Name         struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

// The player verdict on whether the video can be played at all
type playabilityStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// GetVideoCaptions retrieves the caption entries for a video by
// scraping the watch page for its caption track list and fetching
// the timedtext document of the best matching track.
func (s *Service) GetVideoCaptions(ctx context.Context, videoID string) (*Captions, error) {

	body, err := s.getWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	// An unplayable video has no captions to offer
	var playability playabilityStatus
	if err := extractJSON(body, `"playabilityStatus":`, &playability); err == nil {
		switch playability.Status {
		case "ERROR", "UNPLAYABLE", "LOGIN_REQUIRED":
			if playability.Reason != "" {
				return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, playability.Reason)
			}
			return nil, ErrVideoUnavailable
		}
	}

	// No caption tracks listed means captions are turned off
	var tracks []captionTrack
	if err := extractJSON(body, `"captionTracks":`, &tracks); err != nil {
		return nil, ErrTranscriptsDisabled
	}

	track, err := selectTrack(tracks, s.config.TranscriptLanguages)
	if err != nil {
		return nil, err
	}

	entries, err := s.getTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}

	return &Captions{
		VideoID:  videoID,
		Language: track.LanguageCode,
		Entries:  entries,
	}, nil
}

// Fetch the raw watch page for a video
func (s *Service) getWatchPage(ctx context.Context, videoID string) ([]byte, error) {

	pageURL := fmt.Sprintf("%s?v=%s", s.watchBaseURL, url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create watch page request: %w", err)
	}

	// YouTube serves a degraded page to unknown agents
	req.Header.Set("User-Agent", s.config.UserAgent)
	req.Header.Set("Accept-Language", "en-US")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch the watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read the watch page: %w", err)
	}

	return body, nil
}

// Pick a caption track honoring the preferred languages in order,
// preferring manually created tracks over auto-generated ones.
// Falls back to the first track when no language matches.
func selectTrack(tracks []captionTrack, languages []string) (*captionTrack, error) {

	// Discard tracks we cannot fetch
	tracks = slices.DeleteFunc(slices.Clone(tracks), func(t captionTrack) bool {
		return t.BaseURL == ""
	})

	if len(tracks) == 0 {
		return nil, ErrNoTranscript
	}

	for _, lang := range languages {
		var asrMatch *captionTrack
		for i, track := range tracks {
			if !strings.EqualFold(track.LanguageCode, lang) {
				continue
			}
			if track.Kind != "asr" {
				return &tracks[i], nil
			}
			if asrMatch == nil {
				asrMatch = &tracks[i]
			}
		}
		if asrMatch != nil {
			return asrMatch, nil
		}
	}

	return &tracks[0], nil
}
