// Package transcripts implements the transcript fetch operation:
// retrieval through a caption source, millisecond normalization
// and the success/error result envelope.
package transcripts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vlatan/transcript-store/internal/config"
	"github.com/vlatan/transcript-store/internal/drivers/rdb"
	"github.com/vlatan/transcript-store/internal/integrations/yt"
	"github.com/vlatan/transcript-store/internal/models"
	repo "github.com/vlatan/transcript-store/internal/repositories/transcripts"
)

// Retriever is the caption retrieval capability
type Retriever interface {
	GetVideoCaptions(ctx context.Context, videoID string) (*yt.Captions, error)
}

type Service struct {
	config *config.Config
	source Retriever
	rdb    *rdb.Service     // optional, nil disables caching
	repo   *repo.Repository // optional, nil disables persistence
}

func New(cfg *config.Config, source Retriever, rdb *rdb.Service, repo *repo.Repository) *Service {
	return &Service{
		config: cfg,
		source: source,
		rdb:    rdb,
		repo:   repo,
	}
}

// Fetch retrieves a transcript and wraps it in a result envelope.
// Every retrieval or transformation error is downgraded to an error
// payload; no error propagates out of this operation.
func (s *Service) Fetch(ctx context.Context, videoID string) models.Result {

	transcript, err := s.retrieve(ctx, videoID)
	if err != nil {
		return models.Fail(err.Error())
	}

	return models.Ok(transcript.Segments)
}

// FetchCached is Fetch behind the read-through Redis cache.
// Only successful retrievals are cached.
func (s *Service) FetchCached(ctx context.Context, videoID string) models.Result {

	if s.rdb == nil {
		return s.Fetch(ctx, videoID)
	}

	transcript, err := rdb.GetCachedData(
		ctx, s.rdb, cacheKey(videoID), s.config.CacheTimeout,
		func() (models.Transcript, error) { return s.retrieve(ctx, videoID) },
	)

	if err != nil {
		return models.Fail(err.Error())
	}

	return models.Ok(transcript.Segments)
}

// FetchStored consults the database first, falls back to retrieval
// and persists what it fetched. The whole operation sits behind the
// Redis cache when one is configured.
func (s *Service) FetchStored(ctx context.Context, videoID string) models.Result {

	if s.repo == nil {
		return s.FetchCached(ctx, videoID)
	}

	callable := func() (models.Transcript, error) {

		stored, err := s.repo.GetTranscript(ctx, videoID)
		if err == nil {
			return *stored, nil
		}

		if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Failed to read transcript '%s' from DB: %v", videoID, err)
		}

		transcript, err := s.retrieve(ctx, videoID)
		if err != nil {
			return models.Transcript{}, err
		}

		// A failed write should not fail the fetch
		if _, err := s.repo.UpsertTranscript(ctx, &transcript); err != nil {
			log.Printf("Failed to store transcript '%s': %v", videoID, err)
		}

		return transcript, nil
	}

	var transcript models.Transcript
	var err error

	if s.rdb != nil {
		transcript, err = rdb.GetCachedData(
			ctx, s.rdb, cacheKey(videoID), s.config.CacheTimeout, callable,
		)
	} else {
		transcript, err = callable()
	}

	if err != nil {
		return models.Fail(err.Error())
	}

	return models.Ok(transcript.Segments)
}

// Refresh re-retrieves a transcript, overwrites the stored copy
// and evicts the cache entry. Used by the refresh worker.
func (s *Service) Refresh(ctx context.Context, videoID string) (models.Transcript, error) {

	transcript, err := s.retrieve(ctx, videoID)
	if err != nil {
		return models.Transcript{}, err
	}

	if s.repo != nil {
		if _, err := s.repo.UpsertTranscript(ctx, &transcript); err != nil {
			return models.Transcript{}, fmt.Errorf("failed to store transcript '%s': %w", videoID, err)
		}
	}

	s.evictCache(ctx, videoID)
	return transcript, nil
}

// Evict removes a transcript from the store and the cache
func (s *Service) Evict(ctx context.Context, videoID string) error {

	s.evictCache(ctx, videoID)

	if s.repo == nil {
		return nil
	}

	rowsAffected, err := s.repo.DeleteTranscript(ctx, videoID)
	if err != nil {
		return fmt.Errorf("failed to delete transcript '%s': %w", videoID, err)
	}

	if rowsAffected == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// retrieve invokes the caption source and normalizes its entries
// to integer millisecond segments, preserving the source order
func (s *Service) retrieve(ctx context.Context, videoID string) (models.Transcript, error) {

	captions, err := s.source.GetVideoCaptions(ctx, videoID)
	if err != nil {
		return models.Transcript{}, err
	}

	segments := make(models.Segments, 0, len(captions.Entries))
	for _, entry := range captions.Entries {
		segments = append(segments, models.Segment{
			Text: entry.Text,
			// Truncating cast, matching the source units contract
			Offset:   int(entry.Start * 1000),
			Duration: int(entry.Duration * 1000),
		})
	}

	now := time.Now().UTC()
	return models.Transcript{
		VideoID:   captions.VideoID,
		Language:  captions.Language,
		Segments:  segments,
		FetchedAt: &now,
	}, nil
}

func (s *Service) evictCache(ctx context.Context, videoID string) {
	if s.rdb == nil {
		return
	}
	if err := rdb.DeleteCachedData(ctx, s.rdb, cacheKey(videoID)); err != nil {
		log.Printf("Failed to evict cache for '%s': %v", videoID, err)
	}
}

func cacheKey(videoID string) string {
	return "transcript:" + videoID
}
