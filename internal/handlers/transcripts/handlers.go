package transcripts

import (
	"errors"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/vlatan/transcript-store/internal/utils"
)

// GetTranscriptHandler serves a transcript result envelope.
// Failure is communicated through the payload, not the status code,
// mirroring the CLI contract.
func (s *Service) GetTranscriptHandler(w http.ResponseWriter, r *http.Request) {

	videoID := r.PathValue("video")
	if !utils.ValidVideoID(videoID) {
		http.NotFound(w, r)
		return
	}

	result := s.transcripts.FetchStored(r.Context(), videoID)
	utils.WriteJSON(w, r, result)
}

// DeleteTranscriptHandler evicts a transcript from the store and cache
func (s *Service) DeleteTranscriptHandler(w http.ResponseWriter, r *http.Request) {

	videoID := r.PathValue("video")
	if !utils.ValidVideoID(videoID) {
		http.NotFound(w, r)
		return
	}

	if err := s.transcripts.Evict(r.Context(), videoID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		log.Printf("Failed to evict transcript '%s': %v", videoID, err)
		utils.HttpError(w, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
