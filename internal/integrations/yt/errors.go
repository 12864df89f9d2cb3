package yt

import "errors"

var (
	// ErrVideoUnavailable means the video is private, deleted or otherwise unplayable
	ErrVideoUnavailable = errors.New("video unavailable")

	// ErrTranscriptsDisabled means the video exposes no caption tracks at all
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")

	// ErrNoTranscript means no usable caption track was found
	ErrNoTranscript = errors.New("no transcript found for this video")
)
