package yt

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
)

// The timedtext XML document of a caption track
type timedTextDoc struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

// Fetch and parse a caption track's timedtext document
// into caption entries, preserving the source order
func (s *Service) getTimedText(ctx context.Context, baseURL string) ([]CaptionEntry, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create timedtext request: %w", err)
	}

	req.Header.Set("User-Agent", s.config.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch the timedtext document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read the timedtext document: %w", err)
	}

	return parseTimedText(body)
}

// Parse a timedtext XML document into caption entries
func parseTimedText(data []byte) ([]CaptionEntry, error) {

	var doc timedTextDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse the timedtext document: %w", err)
	}

	entries := make([]CaptionEntry, 0, len(doc.Texts))
	for _, text := range doc.Texts {

		// The XML decoder unescapes once, YouTube escapes twice
		line := html.UnescapeString(text.Body)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		entries = append(entries, CaptionEntry{
			Text:     line,
			Start:    text.Start,
			Duration: text.Dur,
		})
	}

	return entries, nil
}
