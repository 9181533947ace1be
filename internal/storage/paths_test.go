package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectPaths(t *testing.T) {
	date := time.Date(2025, 8, 4, 15, 30, 0, 0, time.UTC)

	dataKey, schemaKey := ObjectPaths("NPI", date)

	assert.Equal(t, "Instagram/NPI/insights/stories/2025-08-04/instagram_story_metrics_2025-08-04.parquet", dataKey)
	assert.Equal(t, "Instagram/NPI/schemas/stories/2025-08-04/instagram_story_metrics_2025-08-04_schema.json", schemaKey)
}

func TestObjectPathsUppercasesAccount(t *testing.T) {
	date := time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)

	dataKey, _ := ObjectPaths("sml", date)
	assert.Contains(t, dataKey, "Instagram/SML/")
}
