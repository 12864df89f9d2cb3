package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const timedTextXML = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
	<text start="0.5" dur="2.25">Hello</text>
</transcript>`

// fakeYouTube serves a watch page whose caption track points back
// at the same server's timedtext endpoint
func fakeYouTube(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("GET /watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><script>var ytInitialPlayerResponse = {`+
			`"playabilityStatus":{"status":"OK"},`+
			`"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[`+
			`{"baseUrl":"%s/api/timedtext","name":{"simpleText":"English"},"languageCode":"en"}`+
			`]}}};</script></html>`, server.URL)
	})
	mux.HandleFunc("GET /api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		fmt.Fprint(w, timedTextXML)
	})

	return server
}

func TestRunNoArguments(t *testing.T) {

	var out bytes.Buffer
	exitCode := run(nil, &out)

	if exitCode != 1 {
		t.Errorf("got exit code = %d, want 1", exitCode)
	}

	want := `{"success":false,"error":"No video ID provided"}` + "\n"
	if got := out.String(); got != want {
		t.Errorf("got output %q, want %q", got, want)
	}
}

func TestRunFetchesTranscript(t *testing.T) {

	server := fakeYouTube(t)
	t.Setenv("TARGET", "fetch")
	t.Setenv("WATCH_BASE_URL", server.URL+"/watch")
	t.Setenv("HTTP_TIMEOUT", "5s")

	var out bytes.Buffer
	exitCode := run([]string{"dQw4w9WgXcQ"}, &out)

	if exitCode != 0 {
		t.Errorf("got exit code = %d, want 0", exitCode)
	}

	want := `{"success":true,"segments":[{"text":"Hello","offset":500,"duration":2250}]}` + "\n"
	if got := out.String(); got != want {
		t.Errorf("got output %q, want %q", got, want)
	}
}

func TestRunRetrievalFailure(t *testing.T) {

	// A dead endpoint, the retrieval cannot succeed
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	t.Setenv("TARGET", "fetch")
	t.Setenv("WATCH_BASE_URL", server.URL+"/watch")
	t.Setenv("HTTP_TIMEOUT", "5s")

	var out bytes.Buffer
	exitCode := run([]string{"dQw4w9WgXcQ"}, &out)

	// Failure travels through the payload, not the exit code
	if exitCode != 0 {
		t.Errorf("got exit code = %d, want 0", exitCode)
	}

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal the output %q; %v", out.String(), err)
	}

	if result.Success || result.Error == "" {
		t.Errorf("got %+v, want a failure with a message", result)
	}
}
