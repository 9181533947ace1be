package exporterimpl

import (
	"context"
	"fmt"

	"github.com/chapala/instagram-story-metrics/internal/domain"
	"github.com/go-co-op/gocron/v2"
)

// ScheduleDailyExport registers a daily batch export for every supported
// account, running at the configured hour and minute in the reporting
// timezone. The scheduler shuts down when ctx is cancelled.
func (e *ExporterImpl) ScheduleDailyExport(ctx context.Context) error {
	if !e.Config.Exporter.ScheduleEnabled {
		e.Logger.Info("Daily export schedule is disabled")
		return nil
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(domain.ReportingZone()))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	hour := e.Config.Exporter.ScheduleHour
	minute := e.Config.Exporter.ScheduleMinute

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(hour, minute, 0))),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				e.Logger.Info("Context cancelled, skipping scheduled export")
				return
			}

			e.Logger.Info("Starting scheduled daily export", "accounts", domain.SupportedAccounts)
			batch := e.RunBatch(ctx, domain.SupportedAccounts, "")
			e.Logger.Info("Scheduled daily export finished",
				"status", batch.Status,
				"accounts_processed", batch.AccountsProcessed,
				"total_stories", batch.TotalStories,
				"failed_accounts", batch.FailedAccounts,
			)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule daily export: %w", err)
	}

	scheduler.Start()
	e.Logger.Info("Daily export scheduled", "hour", hour, "minute", minute, "timezone", domain.ReportingZone().String())

	go func() {
		<-ctx.Done()
		e.Logger.Info("Stopping export scheduler")
		if err := scheduler.Shutdown(); err != nil {
			e.Logger.Error("Failed to shut down scheduler", "error", err)
		}
	}()

	return nil
}
