package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// GraphTimeLayout is the timestamp format returned by the Graph API
// (numeric zone offset without a colon).
const GraphTimeLayout = "2006-01-02T15:04:05-0700"

// Story is an ephemeral Instagram post. Its engagement metrics are only
// retrievable from the Graph API for 24 hours after publish.
type Story struct {
	ID        string
	Timestamp time.Time
	MediaType string
	Permalink string
	MediaURL  string
}

type storyJSON struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	MediaType string `json:"media_type"`
	Permalink string `json:"permalink"`
	MediaURL  string `json:"media_url"`
}

func (s *Story) UnmarshalJSON(b []byte) error {
	var raw storyJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	ts, err := ParseGraphTime(raw.Timestamp)
	if err != nil {
		return fmt.Errorf("parse story timestamp %q: %w", raw.Timestamp, err)
	}

	*s = Story{
		ID:        raw.ID,
		Timestamp: ts,
		MediaType: raw.MediaType,
		Permalink: raw.Permalink,
		MediaURL:  raw.MediaURL,
	}
	return nil
}

// ParseGraphTime parses a Graph API timestamp. Local story dumps sometimes
// carry RFC 3339 timestamps instead, so both forms are accepted.
func ParseGraphTime(value string) (time.Time, error) {
	ts, err := time.Parse(GraphTimeLayout, value)
	if err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}
