package pgx

import (
	"context"
	"fmt"

	"github.com/chapala/instagram-story-metrics/pkg/config"
	"github.com/chapala/instagram-story-metrics/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Opts holds dependencies for creating a pgx pool.
type Opts struct {
	fx.In
	LC fx.Lifecycle

	Logger logger.Logger
	Config *config.Config
}

// New creates a new pgxpool.Pool and manages its lifecycle.
func New(opts Opts) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(
		context.Background(),
		fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			opts.Config.Postgres.User,
			opts.Config.Postgres.Pass,
			opts.Config.Postgres.Host,
			opts.Config.Postgres.Port,
			opts.Config.Postgres.Name,
			opts.Config.Postgres.SslMode,
		),
	)
	if err != nil {
		return nil, err
	}

	opts.LC.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := pool.Ping(ctx); err != nil {
					return err
				}

				opts.Logger.Info("Connected to postgres")
				return nil
			},
			OnStop: func(ctx context.Context) error {
				pool.Close()
				return nil
			},
		},
	)

	return pool, nil
}
