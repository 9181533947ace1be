package exporterimpl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapala/instagram-story-metrics/internal/domain"
)

func TestScheduleDailyExportDisabled(t *testing.T) {
	called := false
	exp := newTestExporter(testDeps{
		instagram: &stubInstagram{
			fetchStories: func(string) ([]domain.Story, error) {
				called = true
				return nil, nil
			},
		},
	})

	require.NoError(t, exp.ScheduleDailyExport(context.Background()))
	assert.False(t, called)
}

func TestScheduleDailyExportRegistersAndShutsDown(t *testing.T) {
	cfg := testConfig()
	cfg.Exporter.ScheduleEnabled = true
	cfg.Exporter.ScheduleHour = 23
	cfg.Exporter.ScheduleMinute = 30

	exp := newTestExporter(testDeps{config: cfg})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, exp.ScheduleDailyExport(ctx))

	// Cancelling the context tears the scheduler down.
	cancel()
}
