package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGraphTime(t *testing.T) {
	t.Run("graph api format", func(t *testing.T) {
		ts, err := ParseGraphTime("2025-08-04T18:30:00-0700")
		require.NoError(t, err)
		assert.Equal(t, 2025, ts.Year())
		assert.Equal(t, time.August, ts.Month())
		assert.Equal(t, 4, ts.Day())
		_, offset := ts.Zone()
		assert.Equal(t, -7*60*60, offset)
	})

	t.Run("rfc3339 fallback", func(t *testing.T) {
		ts, err := ParseGraphTime("2025-08-04T18:30:00-07:00")
		require.NoError(t, err)
		assert.Equal(t, 4, ts.Day())
	})

	t.Run("invalid timestamp", func(t *testing.T) {
		_, err := ParseGraphTime("not-a-timestamp")
		assert.Error(t, err)
	})
}

func TestStoryUnmarshalJSON(t *testing.T) {
	payload := `{
		"id": "17900001",
		"timestamp": "2025-08-04T18:30:00-0700",
		"media_type": "IMAGE",
		"permalink": "https://instagram.com/stories/npi/17900001",
		"media_url": "https://cdn.example.com/17900001.jpg"
	}`

	var story Story
	require.NoError(t, json.Unmarshal([]byte(payload), &story))

	assert.Equal(t, "17900001", story.ID)
	assert.Equal(t, "IMAGE", story.MediaType)
	assert.Equal(t, "https://instagram.com/stories/npi/17900001", story.Permalink)
	assert.False(t, story.Timestamp.IsZero())
}

func TestStoryUnmarshalJSONBadTimestamp(t *testing.T) {
	var story Story
	err := json.Unmarshal([]byte(`{"id": "1", "timestamp": "yesterday"}`), &story)
	assert.Error(t, err)
}

func TestDateIn(t *testing.T) {
	loc := ReportingZone()

	// 11:30pm UTC on Aug 5 is still Aug 5 afternoon in Pacific time.
	ts := time.Date(2025, 8, 5, 23, 30, 0, 0, time.UTC)
	date := DateIn(ts, loc)

	assert.Equal(t, time.Date(2025, 8, 5, 0, 0, 0, 0, loc), date)

	// 2:00am UTC on Aug 6 is still Aug 5 in Pacific time.
	ts = time.Date(2025, 8, 6, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 8, 5, 0, 0, 0, 0, loc), DateIn(ts, loc))
}
