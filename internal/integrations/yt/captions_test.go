package yt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/vlatan/transcript-store/internal/config"
)

const timedTextXML = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
	<text start="0.5" dur="2.25">Hello</text>
	<text start="2.75" dur="1.5">it&amp;#39;s a test &amp;amp; more</text>
	<text start="4.25" dur="0.75">   </text>
	<text start="5" dur="2">goodbye</text>
</transcript>`

// Fake watch page embedding a caption track list pointing at base
func watchPage(base string) string {
	return fmt.Sprintf(`<html><script>var ytInitialPlayerResponse = {`+
		`"playabilityStatus":{"status":"OK"},`+
		`"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[`+
		`{"baseUrl":"%s/api/timedtext?lang=de","name":{"simpleText":"German"},"languageCode":"de"},`+
		`{"baseUrl":"%s/api/timedtext?lang=en-asr","name":{"simpleText":"English (auto-generated)"},"languageCode":"en","kind":"asr"},`+
		`{"baseUrl":"%s/api/timedtext?lang=en","name":{"simpleText":"English"},"languageCode":"en"}`+
		`]}}};</script></html>`, base, base, base)
}

const unavailablePage = `<html><script>var ytInitialPlayerResponse = {` +
	`"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}};</script></html>`

const disabledPage = `<html><script>var ytInitialPlayerResponse = {` +
	`"playabilityStatus":{"status":"OK"},"captions":{}};</script></html>`

// newTestService spins up a fake YouTube and a service pointed at it
func newTestService(t *testing.T, page func(base string) string) *Service {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("GET /watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page(server.URL))
	})
	mux.HandleFunc("GET /api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		fmt.Fprint(w, timedTextXML)
	})

	cfg := &config.Config{
		TranscriptLanguages: []string{"en"},
		WatchBaseURL:        server.URL + "/watch",
		HTTPTimeout:         5 * time.Second,
		UserAgent:           "test-agent",
	}

	service, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to create YouTube service; %v", err)
	}

	return service
}

func TestGetVideoCaptions(t *testing.T) {

	service := newTestService(t, watchPage)

	captions, err := service.GetVideoCaptions(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("failed to get the captions; %v", err)
	}

	if captions.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("got video ID %q, want %q", captions.VideoID, "dQw4w9WgXcQ")
	}

	// The manually created English track should win over the ASR one
	if captions.Language != "en" {
		t.Errorf("got language %q, want %q", captions.Language, "en")
	}

	want := []CaptionEntry{
		{Text: "Hello", Start: 0.5, Duration: 2.25},
		{Text: "it's a test & more", Start: 2.75, Duration: 1.5},
		{Text: "goodbye", Start: 5, Duration: 2},
	}

	if diff := cmp.Diff(want, captions.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestGetVideoCaptionsErrors(t *testing.T) {

	tests := []struct {
		name    string
		page    func(base string) string
		wantErr error
	}{
		{"unavailable video", func(string) string { return unavailablePage }, ErrVideoUnavailable},
		{"captions disabled", func(string) string { return disabledPage }, ErrTranscriptsDisabled},
		{"empty track list", func(string) string {
			return `{"playabilityStatus":{"status":"OK"},"captionTracks":[]}`
		}, ErrNoTranscript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(t, tt.page)
			_, err := service.GetVideoCaptions(context.Background(), "dQw4w9WgXcQ")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSelectTrack(t *testing.T) {

	manualEN := captionTrack{BaseURL: "http://x/en", LanguageCode: "en"}
	asrEN := captionTrack{BaseURL: "http://x/en-asr", LanguageCode: "en", Kind: "asr"}
	manualDE := captionTrack{BaseURL: "http://x/de", LanguageCode: "de"}
	noURL := captionTrack{LanguageCode: "en"}

	tests := []struct {
		name      string
		tracks    []captionTrack
		languages []string
		want      *captionTrack
		wantErr   bool
	}{
		{"no tracks", nil, []string{"en"}, nil, true},
		{"only unusable tracks", []captionTrack{noURL}, []string{"en"}, nil, true},
		{"manual beats asr", []captionTrack{asrEN, manualEN}, []string{"en"}, &manualEN, false},
		{"asr when only option", []captionTrack{manualDE, asrEN}, []string{"en"}, &asrEN, false},
		{"language preference order", []captionTrack{manualEN, manualDE}, []string{"de", "en"}, &manualDE, false},
		{"fallback to first", []captionTrack{manualDE, manualEN}, []string{"fr"}, &manualDE, false},
		{"case insensitive match", []captionTrack{manualDE, manualEN}, []string{"EN"}, &manualEN, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectTrack(tt.tracks, tt.languages)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Fatalf("got error = %v, want error = %t", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("track mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTimedText(t *testing.T) {

	t.Run("valid document", func(t *testing.T) {
		entries, err := parseTimedText([]byte(timedTextXML))
		if err != nil {
			t.Fatalf("failed to parse the document; %v", err)
		}
		// The blank entry is dropped
		if len(entries) != 3 {
			t.Errorf("got %d entries, want 3", len(entries))
		}
	})

	t.Run("invalid document", func(t *testing.T) {
		if _, err := parseTimedText([]byte("not xml at all <")); err == nil {
			t.Error("got nil error, want parse error")
		}
	})
}
