package exporterimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chapala/instagram-story-metrics/internal/domain"
	"github.com/chapala/instagram-story-metrics/internal/table"
)

// RunFromFile processes stories from a local JSON dump instead of the story
// listing endpoint. Metrics are still fetched per story and the table is still
// uploaded; the token scope check is skipped since no listing call is made.
func (e *ExporterImpl) RunFromFile(ctx context.Context, account, path string) (res domain.RunResult) {
	started := time.Now()
	account = strings.ToUpper(account)

	defer func() {
		if r := recover(); r != nil {
			e.Logger.Error("Panic during local file export", "account", account, "panic", r)
			res = e.errorResult(account, started, fmt.Errorf("panic during export: %v", r))
		}
		res.Source = "local_file"
		e.recordRun(ctx, res)
	}()

	e.Logger.Info("Processing stories from local file", "account", account, "path", path)

	stories, err := loadStoriesFile(path)
	if err != nil {
		res = e.errorResult(account, started, err)
		return res
	}

	creds, err := e.credentials(ctx, account)
	if err != nil {
		res = e.errorResult(account, started, err)
		return res
	}

	now := time.Now()
	tbl := table.Build(stories, func(storyID string) domain.MetricsRecord {
		return e.Instagram.FetchStoryMetrics(ctx, creds, storyID)
	}, now)

	if err := e.Writer.WriteTable(ctx, tbl, account, now); err != nil {
		res = e.errorResult(account, started, err)
		return res
	}

	res = domain.RunResult{
		Status:          domain.RunStatusSuccess,
		Account:         account,
		Stories:         tbl.Len(),
		DurationSeconds: time.Since(started).Seconds(),
	}
	return res
}

// loadStoriesFile reads a story dump: either a bare JSON list of stories or an
// object with a "data" key holding that list.
func loadStoriesFile(path string) ([]domain.Story, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read story file: %w", err)
	}

	var stories []domain.Story
	if err := json.Unmarshal(raw, &stories); err == nil {
		return stories, nil
	}

	var wrapped struct {
		Data []domain.Story `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}

	return nil, fmt.Errorf("invalid story file format: expected a list or an object with a data key")
}
