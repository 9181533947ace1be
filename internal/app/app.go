package app

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"

	"github.com/chapala/instagram-story-metrics/internal/exporter"
	"github.com/chapala/instagram-story-metrics/internal/exporter/exporterimpl"
	"github.com/chapala/instagram-story-metrics/internal/instagram"
	"github.com/chapala/instagram-story-metrics/internal/instagram/instagramimpl"
	_ "github.com/chapala/instagram-story-metrics/internal/migrations"
	"github.com/chapala/instagram-story-metrics/internal/notifier"
	"github.com/chapala/instagram-story-metrics/internal/notifier/notifierimpl"
	"github.com/chapala/instagram-story-metrics/internal/pgx"
	"github.com/chapala/instagram-story-metrics/internal/ratelimit"
	"github.com/chapala/instagram-story-metrics/internal/repositories/runs"
	"github.com/chapala/instagram-story-metrics/internal/secrets"
	"github.com/chapala/instagram-story-metrics/internal/secrets/secretsimpl"
	"github.com/chapala/instagram-story-metrics/internal/server"
	"github.com/chapala/instagram-story-metrics/internal/storage"
	"github.com/chapala/instagram-story-metrics/internal/storage/s3impl"
	"github.com/chapala/instagram-story-metrics/pkg/config"
	"github.com/chapala/instagram-story-metrics/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		newLimiter,
	),
	fx.Provide(
		fx.Annotate(
			secretsimpl.New,
			fx.As(new(secrets.Resolver)),
		), fx.Annotate(
			instagramimpl.New,
			fx.As(new(instagram.Client)),
		), fx.Annotate(
			s3impl.New,
			fx.As(new(storage.Uploader)),
		), fx.Annotate(
			notifierimpl.New,
			fx.As(new(notifier.Client)),
		), fx.Annotate(
			exporterimpl.New,
			fx.As(new(exporter.Client)),
		),
		newWriter,
		server.New,
	),
	runs.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

// Graph API allows 200 insights calls per hour per account.
func newLimiter() ratelimit.Limiter {
	return ratelimit.NewInMemoryLimiter(200, time.Hour, 10)
}

func newWriter(uploader storage.Uploader, log logger.Logger) *storage.Writer {
	return storage.NewWriter(uploader, log)
}

func migrate(c *config.Config) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", c.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	// Migrations are registered in code, there is no migrations directory.
	return goose.Up(db, ".")
}

func run(lc fx.Lifecycle, log logger.Logger, srv *server.Server, expClient exporter.Client) {
	appCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			srv.Start()

			if err := expClient.ScheduleDailyExport(appCtx); err != nil {
				log.Error("Failed to schedule daily export", "error", err)
				return err
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return srv.Stop(ctx)
		},
	})
}
