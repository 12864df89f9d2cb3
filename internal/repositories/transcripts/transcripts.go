package transcripts

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/vlatan/transcript-store/internal/config"
	"github.com/vlatan/transcript-store/internal/drivers/database"
	"github.com/vlatan/transcript-store/internal/models"
	"github.com/vlatan/transcript-store/internal/utils"
)

type Repository struct {
	db     database.Service
	config *config.Config
}

func New(db database.Service, config *config.Config) *Repository {
	return &Repository{
		db:     db,
		config: config,
	}
}

// Check if a transcript exists
func (r *Repository) TranscriptExists(ctx context.Context, videoID string) bool {
	var result int
	err := r.db.QueryRow(ctx, transcriptExistsQuery, videoID).Scan(&result)
	return err == nil
}

// Get a single transcript from DB based on a video ID
func (r *Repository) GetTranscript(ctx context.Context, videoID string) (*models.Transcript, error) {

	var transcript models.Transcript
	var language sql.NullString
	var segments []byte
	var fetchedAt time.Time

	err := r.db.QueryRow(ctx, getTranscriptQuery, videoID).Scan(
		&transcript.VideoID,
		&language,
		&segments,
		&fetchedAt,
	)

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(segments, &transcript.Segments); err != nil {
		return nil, err
	}

	transcript.Language = language.String
	transcript.FetchedAt = &fetchedAt
	return &transcript, nil
}

// Insert or update a transcript in DB
func (r *Repository) UpsertTranscript(ctx context.Context, t *models.Transcript) (int64, error) {

	// Marshal the segments to store as jsonb
	segments, err := json.Marshal(t.Segments)
	if err != nil {
		return 0, err
	}

	fetchedAt := time.Now().UTC()
	if t.FetchedAt != nil {
		fetchedAt = *t.FetchedAt
	}

	return r.db.Exec(
		ctx,
		upsertTranscriptQuery,
		t.VideoID,
		utils.NullString(&t.Language),
		segments,
		fetchedAt,
	)
}

// Delete a transcript from DB
func (r *Repository) DeleteTranscript(ctx context.Context, videoID string) (int64, error) {
	return r.db.Exec(ctx, deleteTranscriptQuery, videoID)
}

// ListStale returns the video IDs of transcripts fetched
// before the given cutoff, oldest first
func (r *Repository) ListStale(ctx context.Context, olderThan time.Duration) ([]string, error) {

	cutoff := time.Now().UTC().Add(-olderThan)
	rows, err := r.db.Query(ctx, listStaleQuery, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videoIDs []string
	for rows.Next() {
		var videoID string
		if err := rows.Scan(&videoID); err != nil {
			return nil, err
		}
		videoIDs = append(videoIDs, videoID)
	}

	return videoIDs, rows.Err()
}

// Count the stored transcripts
func (r *Repository) CountTranscripts(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, countTranscriptsQuery).Scan(&count)
	return count, err
}
