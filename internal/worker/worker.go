// Package worker refreshes stale stored transcripts on a schedule.
// A Redis lock guarantees a single worker run at a time.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"time"

	"github.com/vlatan/transcript-store/internal/config"
	"github.com/vlatan/transcript-store/internal/drivers/database"
	"github.com/vlatan/transcript-store/internal/drivers/rdb"
	"github.com/vlatan/transcript-store/internal/integrations/yt"
	"github.com/vlatan/transcript-store/internal/models"
	transcriptsRepo "github.com/vlatan/transcript-store/internal/repositories/transcripts"
	"github.com/vlatan/transcript-store/internal/transcripts"
	"github.com/vlatan/transcript-store/internal/utils"
)

const lockKey = "worker:transcripts:refresh"

type Service struct {
	config      *config.Config
	rdb         *rdb.Service
	yt          *yt.Service
	repo        *transcriptsRepo.Repository
	transcripts *transcripts.Service
}

func New() *Service {

	// Create essential services
	cfg := config.New()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("couldn't create DB service; %v", err)
	}

	rdb, err := rdb.New(cfg)
	if err != nil {
		log.Fatalf("couldn't create Redis service; %v", err)
	}

	// Create YouTube service
	yt, err := yt.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("couldn't create YouTube service: %v", err)
	}

	// Create DB repository and the fetch service
	repo := transcriptsRepo.New(db, cfg)

	return &Service{
		config:      cfg,
		rdb:         rdb,
		yt:          yt,
		repo:        repo,
		transcripts: transcripts.New(cfg, yt, rdb, repo),
	}
}

// Run refreshes every stale transcript in the store
func (s *Service) Run(ctx context.Context) error {

	// Only one worker may refresh at a time
	lock := s.rdb.NewRedisLock(lockKey, lockValue(), s.config.WorkerLockExpiry)
	acquired, err := lock.TryLock(ctx)
	if err != nil {
		return fmt.Errorf("could not acquire the worker lock: %w", err)
	}

	if !acquired {
		log.Println("Another worker holds the lock, exiting...")
		return nil
	}

	defer func() {
		if err := lock.Unlock(context.WithoutCancel(ctx)); err != nil {
			log.Printf("Failed to release the worker lock: %v", err)
		}
	}()

	log.Println("Worker running...")

	// Fetch the stale video IDs from DB
	log.Println("Fetching stale transcripts from DB...")
	stale, err := s.repo.ListStale(ctx, s.config.RefreshInterval)
	if err != nil {
		return fmt.Errorf("could not fetch the stale transcripts from DB: %w", err)
	}

	if len(stale) == 0 {
		log.Println("No stale transcripts, nothing to do.")
		return nil
	}

	log.Printf("Found %d stale %s", len(stale), utils.Plural(len(stale), "transcript"))

	// Drop transcripts of videos that no longer exist,
	// when the Data API is available to tell us
	if s.yt.HasMetadataAPI() {
		stale = s.pruneGoneVideos(ctx, stale)
	}

	rc := &utils.RetryConfig{
		MaxRetries: s.config.MaxRetries,
		Delay:      time.Second,
		MaxJitter:  2 * time.Second,
	}

	var refreshed, removed, failed int
	for _, videoID := range stale {

		// Bail out if we lost the lock mid-run
		if err := lock.CheckLock(ctx); err != nil {
			return fmt.Errorf("aborting the refresh: %w", err)
		}

		_, err := utils.Retry(ctx, rc, func() (models.Transcript, error) {
			return s.transcripts.Refresh(ctx, videoID)
		})

		switch {
		case err == nil:
			refreshed++
		case errors.Is(err, yt.ErrVideoUnavailable),
			errors.Is(err, yt.ErrTranscriptsDisabled):
			// The transcript is not coming back, drop it
			if _, dErr := s.repo.DeleteTranscript(ctx, videoID); dErr != nil {
				log.Printf("Failed to delete transcript '%s': %v", videoID, dErr)
				failed++
				continue
			}
			removed++
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			log.Printf("Failed to refresh transcript '%s': %v", videoID, err)
			failed++
		}
	}

	log.Printf(
		"Worker done: %d refreshed, %d removed, %d failed",
		refreshed, removed, failed,
	)

	return nil
}

// pruneGoneVideos removes stored transcripts whose videos the
// Data API no longer reports, returning the surviving IDs
func (s *Service) pruneGoneVideos(ctx context.Context, videoIDs []string) []string {

	// The Data API accepts at most 50 IDs per call
	existing := make(map[string]bool, len(videoIDs))
	for chunk := range slices.Chunk(videoIDs, 50) {
		videos, err := s.yt.GetVideos(chunk...)
		if err != nil {
			// Metadata is advisory, keep everything on error
			log.Printf("Skipping the prune pass: %v", err)
			return videoIDs
		}
		for _, video := range videos {
			existing[video.Id] = true
		}
	}

	var survivors []string
	for _, videoID := range videoIDs {
		if existing[videoID] {
			survivors = append(survivors, videoID)
			continue
		}
		if _, err := s.repo.DeleteTranscript(ctx, videoID); err != nil {
			log.Printf("Failed to delete transcript '%s': %v", videoID, err)
			continue
		}
		log.Printf("Removed transcript of gone video '%s'", videoID)
	}

	return survivors
}

// lockValue produces a value unique to this worker process
func lockValue() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return fmt.Sprintf("%s-%d", hostname, os.Getpid())
}
