package exporterimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chapala/instagram-story-metrics/internal/domain"
	"github.com/chapala/instagram-story-metrics/internal/table"
	errs "github.com/chapala/instagram-story-metrics/pkg/errors"
)

// Run executes the full pipeline for one account. All failures, including
// panics, are converted to an error result at this boundary; callers always
// receive a structured RunResult.
func (e *ExporterImpl) Run(ctx context.Context, account string) (res domain.RunResult) {
	started := time.Now()
	account = strings.ToUpper(account)

	defer func() {
		if r := recover(); r != nil {
			e.Logger.Error("Panic during export", "account", account, "panic", r)
			res = e.errorResult(account, started, fmt.Errorf("panic during export: %v", r))
		}
		e.recordRun(ctx, res)
	}()

	res = e.runPipeline(ctx, account, started)
	return res
}

func (e *ExporterImpl) runPipeline(ctx context.Context, account string, started time.Time) domain.RunResult {
	e.Logger.Info("Starting story metrics export", "account", account)

	creds, err := e.credentials(ctx, account)
	if err != nil {
		return e.errorResult(account, started, err)
	}

	if !e.Instagram.VerifyTokenScopes(ctx, creds) {
		return e.errorResult(account, started, errs.ErrTokenScopes)
	}

	since, until := EligibleWindow(time.Now())
	dateRange := formatDateRange(since, until)

	stories, err := e.Instagram.FetchStories(ctx, creds, since, until)
	if err != nil {
		return e.errorResult(account, started, err)
	}

	if len(stories) == 0 {
		e.Logger.Warn("No stories found in date range", "account", account, "date_range", dateRange)
		return domain.RunResult{
			Status:          domain.RunStatusSuccess,
			Account:         account,
			Stories:         0,
			DateRange:       dateRange,
			DurationSeconds: time.Since(started).Seconds(),
		}
	}

	now := time.Now()
	tbl := table.Build(stories, func(storyID string) domain.MetricsRecord {
		return e.Instagram.FetchStoryMetrics(ctx, creds, storyID)
	}, now)

	if err := e.Writer.WriteTable(ctx, tbl, account, now); err != nil {
		return e.errorResult(account, started, err)
	}

	e.Logger.Info("Export completed", "account", account, "stories", tbl.Len())
	return domain.RunResult{
		Status:          domain.RunStatusSuccess,
		Account:         account,
		Stories:         tbl.Len(),
		DateRange:       dateRange,
		DurationSeconds: time.Since(started).Seconds(),
	}
}
