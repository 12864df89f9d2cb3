package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vlatan/transcript-store/internal/config"
	"github.com/vlatan/transcript-store/internal/integrations/yt"
	"github.com/vlatan/transcript-store/internal/models"
	"github.com/vlatan/transcript-store/internal/transcripts"
)

// Usage: fetch <video_id>
// Prints a single JSON result line on stdout. Only the missing
// argument path exits non-zero; a failed retrieval is reported
// through the payload with a zero exit status.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run carries the whole process behavior, returning the exit status
func run(args []string, w io.Writer) int {

	if len(args) < 1 {
		emit(w, models.Fail("No video ID provided"))
		return 1
	}

	videoID := args[0]
	ctx := context.Background()
	cfg := config.New()

	ytService, err := yt.New(ctx, cfg)
	if err != nil {
		emit(w, models.Fail(err.Error()))
		return 0
	}

	service := transcripts.New(cfg, ytService, nil, nil)
	emit(w, service.Fetch(ctx, videoID))
	return 0
}

// emit writes a result as one JSON line
func emit(w io.Writer, result models.Result) {
	out, err := json.Marshal(result)
	if err != nil {
		out = []byte(`{"success":false,"error":"failed to encode the result"}`)
	}
	fmt.Fprintln(w, string(out))
}
