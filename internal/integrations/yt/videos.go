package yt

import (
	"errors"
	"log"

	"google.golang.org/api/youtube/v3"
)

// Get YouTube videos metadata, provided video IDs.
// Returns client facing error messages if any.
// Needs a configured Data API key.
func (s *Service) GetVideos(videoIDs ...string) ([]*youtube.Video, error) {

	if s.youtube == nil {
		return nil, errors.New("YouTube Data API is not configured")
	}

	part := []string{"status", "snippet", "contentDetails"}
	response, err := s.youtube.Videos.List(part).Id(videoIDs...).Do()
	if err != nil {
		msg := "unable to get a response from YouTube"
		log.Printf("%s: %v", msg, err)
		return nil, errors.New(msg)
	}

	return response.Items, nil
}

// Validate that a YouTube video can still carry a transcript.
// Returns client facing error messages if any.
func (s *Service) ValidateVideo(video *youtube.Video) error {

	if video.Status.PrivacyStatus == "private" {
		return errors.New("this video is not public")
	}

	var broadcast string = video.Snippet.LiveBroadcastContent
	if broadcast != "" && broadcast != "none" {
		return errors.New("this video is not fully broadcasted")
	}

	return nil
}
