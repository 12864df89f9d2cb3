package yt

import (
	"bytes"
	"encoding/json"
	"errors"
)

// extractJSON finds a `"key":` marker in a raw HTML/JS document and
// decodes the single JSON value that follows it into v. The decoder
// consumes exactly one balanced value, so nested objects are handled
// without regexp gymnastics.
func extractJSON(body []byte, marker string, v any) error {

	idx := bytes.Index(body, []byte(marker))
	if idx == -1 {
		return errors.New("marker not found: " + marker)
	}

	dec := json.NewDecoder(bytes.NewReader(body[idx+len(marker):]))
	if err := dec.Decode(v); err != nil {
		return errors.New("failed to decode value for marker: " + marker)
	}

	return nil
}
