package exporterimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chapala/instagram-story-metrics/internal/domain"
	"github.com/chapala/instagram-story-metrics/internal/exporter"
	"github.com/chapala/instagram-story-metrics/internal/instagram"
	"github.com/chapala/instagram-story-metrics/internal/notifier"
	"github.com/chapala/instagram-story-metrics/internal/repositories/runs"
	"github.com/chapala/instagram-story-metrics/internal/secrets"
	"github.com/chapala/instagram-story-metrics/internal/storage"
	"github.com/chapala/instagram-story-metrics/pkg/config"
	"github.com/chapala/instagram-story-metrics/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Secrets   secrets.Resolver
	Instagram instagram.Client
	Writer    *storage.Writer
	Runs      runs.Repository `optional:"true"`
	Notifier  notifier.Client `optional:"true"`
	Logger    logger.Logger
	Config    *config.Config
}

type ExporterImpl struct {
	Secrets   secrets.Resolver
	Instagram instagram.Client
	Writer    *storage.Writer
	Runs      runs.Repository
	Notifier  notifier.Client
	Logger    logger.Logger
	Config    *config.Config
}

func New(opts Opts) *ExporterImpl {
	return &ExporterImpl{
		Secrets:   opts.Secrets,
		Instagram: opts.Instagram,
		Writer:    opts.Writer,
		Runs:      opts.Runs,
		Notifier:  opts.Notifier,
		Logger:    opts.Logger.WithComponent("Exporter"),
		Config:    opts.Config,
	}
}

var _ exporter.Client = (*ExporterImpl)(nil)

// credentials resolves the shared access token and the account's business ID.
func (e *ExporterImpl) credentials(ctx context.Context, account string) (instagram.Credentials, error) {
	token, err := e.Secrets.Get(ctx, e.Config.Secrets.AccessTokenName)
	if err != nil {
		return instagram.Credentials{}, err
	}

	businessID, err := e.Secrets.Get(ctx, e.Config.Secrets.BusinessIDPrefix+strings.ToLower(account))
	if err != nil {
		return instagram.Credentials{}, err
	}

	return instagram.Credentials{
		Account:     account,
		AccessToken: token,
		BusinessID:  businessID,
	}, nil
}

func (e *ExporterImpl) errorResult(account string, started time.Time, err error) domain.RunResult {
	return domain.RunResult{
		Status:          domain.RunStatusError,
		Account:         account,
		Error:           err.Error(),
		DurationSeconds: time.Since(started).Seconds(),
	}
}

// recordRun persists the result for the run-history endpoint. Best-effort: a
// storage problem here must not fail an otherwise successful export.
func (e *ExporterImpl) recordRun(ctx context.Context, res domain.RunResult) {
	if e.Runs == nil {
		return
	}

	rec := runs.Record{
		Account:         res.Account,
		Status:          string(res.Status),
		Stories:         res.Stories,
		DateRange:       res.DateRange,
		Source:          res.Source,
		Error:           res.Error,
		DurationSeconds: res.DurationSeconds,
	}
	if err := e.Runs.Create(ctx, rec); err != nil {
		e.Logger.Warn("Failed to record run history", "account", res.Account, "error", err)
	}
}

func formatDateRange(since, until time.Time) string {
	return fmt.Sprintf("%s to %s", since.Format("2006-01-02"), until.Format("2006-01-02"))
}
