package transcripts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/vlatan/transcript-store/internal/config"
	"github.com/vlatan/transcript-store/internal/integrations/yt"
	"github.com/vlatan/transcript-store/internal/models"
)

// fakeRetriever serves canned captions or a canned error
type fakeRetriever struct {
	captions *yt.Captions
	err      error
	calls    int
}

func (f *fakeRetriever) GetVideoCaptions(ctx context.Context, videoID string) (*yt.Captions, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	captions := *f.captions
	captions.VideoID = videoID
	return &captions, nil
}

func testConfig() *config.Config {
	return &config.Config{
		TranscriptLanguages: []string{"en"},
		CacheTimeout:        time.Minute,
	}
}

func TestFetch(t *testing.T) {

	baseCtx := context.Background()

	t.Run("converts seconds to truncated milliseconds", func(t *testing.T) {

		source := &fakeRetriever{captions: &yt.Captions{
			Language: "en",
			Entries: []yt.CaptionEntry{
				{Text: "Hello", Start: 0.5, Duration: 2.25},
				{Text: "World", Start: 2.999, Duration: 0.0011},
			},
		}}

		service := New(testConfig(), source, nil, nil)
		result := service.Fetch(baseCtx, "abc123xyz-_")

		want := models.Ok(models.Segments{
			{Text: "Hello", Offset: 500, Duration: 2250},
			{Text: "World", Offset: 2998, Duration: 1},
		})

		if diff := cmp.Diff(want, result); diff != "" {
			t.Errorf("result mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("preserves source order", func(t *testing.T) {

		entries := []yt.CaptionEntry{
			{Text: "one", Start: 0, Duration: 1},
			{Text: "two", Start: 1, Duration: 1},
			{Text: "three", Start: 2, Duration: 1},
		}

		source := &fakeRetriever{captions: &yt.Captions{Entries: entries}}
		service := New(testConfig(), source, nil, nil)
		result := service.Fetch(baseCtx, "abc123xyz-_")

		if len(result.Segments) != len(entries) {
			t.Fatalf("got %d segments, want %d", len(result.Segments), len(entries))
		}

		for i, segment := range result.Segments {
			if segment.Text != entries[i].Text {
				t.Errorf("segment %d got text %q, want %q", i, segment.Text, entries[i].Text)
			}
		}
	})

	t.Run("empty transcript is still a success", func(t *testing.T) {

		source := &fakeRetriever{captions: &yt.Captions{}}
		service := New(testConfig(), source, nil, nil)
		result := service.Fetch(baseCtx, "abc123xyz-_")

		if !result.Success {
			t.Errorf("got failure %q, want success", result.Error)
		}
	})

	t.Run("downgrades every retrieval error", func(t *testing.T) {

		tests := []error{
			yt.ErrTranscriptsDisabled,
			yt.ErrVideoUnavailable,
			yt.ErrNoTranscript,
			errors.New("connection refused"),
		}

		for _, wantErr := range tests {
			source := &fakeRetriever{err: wantErr}
			service := New(testConfig(), source, nil, nil)
			result := service.Fetch(baseCtx, "abc123xyz-_")

			if result.Success {
				t.Errorf("got success, want failure for %v", wantErr)
			}
			if result.Error == "" {
				t.Errorf("got empty error message for %v", wantErr)
			}
		}
	})

	t.Run("deterministic source yields identical results", func(t *testing.T) {

		source := &fakeRetriever{captions: &yt.Captions{
			Entries: []yt.CaptionEntry{{Text: "Hello", Start: 0.5, Duration: 2.25}},
		}}

		service := New(testConfig(), source, nil, nil)
		first := service.Fetch(baseCtx, "abc123xyz-_")
		second := service.Fetch(baseCtx, "abc123xyz-_")

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("repeated fetch mismatch (-first +second):\n%s", diff)
		}
	})
}

func TestFetchStoredWithoutBackends(t *testing.T) {

	// With no repo and no cache FetchStored degrades to a plain fetch
	source := &fakeRetriever{captions: &yt.Captions{
		Entries: []yt.CaptionEntry{{Text: "Hello", Start: 0.5, Duration: 2.25}},
	}}

	service := New(testConfig(), source, nil, nil)
	result := service.FetchStored(context.Background(), "abc123xyz-_")

	if !result.Success || len(result.Segments) != 1 {
		t.Errorf("got %+v, want one-segment success", result)
	}
	if source.calls != 1 {
		t.Errorf("got %d source calls, want 1", source.calls)
	}
}
