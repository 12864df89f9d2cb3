package utils

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
)

// YouTube video IDs are 11 chars of base64url alphabet
var validVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ValidVideoID reports whether s looks like a YouTube video ID
func ValidVideoID(s string) bool {
	return validVideoID.MatchString(s)
}

// Helper function to convert string pointer or empty string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func Plural(num int, word string) string {
	if num == 1 {
		return word
	}
	return word + "s"
}

// WriteJSON writes a value as a JSON response
func WriteJSON(w http.ResponseWriter, r *http.Request, v any) {

	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal JSON response for %q: %v", r.URL.Path, err)
		HttpError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if _, err := w.Write(data); err != nil {
		log.Printf("Failed to write response to %q: %v", r.URL.Path, err)
	}
}

// HttpError writes a plain status text error response
func HttpError(w http.ResponseWriter, code int) {
	http.Error(w, http.StatusText(code), code)
}
