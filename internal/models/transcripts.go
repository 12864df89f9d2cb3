package models

import (
	"encoding/json"
	"time"
)

// Segment is one timed span of transcript text.
// Offset and Duration are integer milliseconds.
type Segment struct {
	Text     string `json:"text"`
	Offset   int    `json:"offset"`
	Duration int    `json:"duration"`
}

type Segments []Segment

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (s Segments) MarshalBinary() (data []byte, err error) {
	return json.Marshal(s)
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (s *Segments) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}

// Transcript is an ordered sequence of segments
// covering a video's captioned content.
type Transcript struct {
	VideoID   string     `json:"video_id,omitempty"`
	Language  string     `json:"language,omitempty"`
	Segments  Segments   `json:"segments"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"` // needs pointer to omit the date
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (t Transcript) MarshalBinary() (data []byte, err error) {
	return json.Marshal(t)
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (t *Transcript) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, t)
}

// Result is the success/error envelope produced by a fetch.
// It marshals to exactly one of two JSON shapes, keyed on Success.
type Result struct {
	Success  bool
	Segments Segments
	Error    string
}

// Ok wraps transcript segments in a success result
func Ok(segments Segments) Result {
	return Result{Success: true, Segments: segments}
}

// Fail wraps an error message in a failure result
func Fail(message string) Result {
	return Result{Success: false, Error: message}
}

// MarshalJSON implements the json.Marshaler interface.
// A success result carries the segments only, a failure
// result carries the error message only.
func (r Result) MarshalJSON() ([]byte, error) {

	if !r.Success {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}{false, r.Error})
	}

	// An empty transcript still serializes as a list
	segments := r.Segments
	if segments == nil {
		segments = Segments{}
	}

	return json.Marshal(struct {
		Success  bool     `json:"success"`
		Segments Segments `json:"segments"`
	}{true, segments})
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (r *Result) UnmarshalJSON(data []byte) error {

	var aux struct {
		Success  bool     `json:"success"`
		Segments Segments `json:"segments"`
		Error    string   `json:"error"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Success = aux.Success
	r.Segments = aux.Segments
	r.Error = aux.Error
	return nil
}
