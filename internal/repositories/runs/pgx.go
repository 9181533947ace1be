package runs

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	sq "github.com/Masterminds/squirrel"
	"github.com/chapala/instagram-story-metrics/internal/repositories"
	"github.com/chapala/instagram-story-metrics/pkg/logger"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("RunHistoryRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Create inserts a new run history entry
func (p *Pgx) Create(ctx context.Context, rec Record) error {
	query, args, err := repositories.SqBuilder.
		Insert("run_history").
		Columns("account", "status", "stories_processed", "date_range", "source", "error", "duration_seconds", "created_at").
		Values(rec.Account, rec.Status, rec.Stories, rec.DateRange, rec.Source, rec.Error, rec.DurationSeconds, time.Now()).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		p.logger.Error("Failed to insert run record", "account", rec.Account, "error", err)
		return ErrCannotCreate
	}
	return nil
}

// ListRecent returns the most recent run records, optionally filtered by
// account, newest first.
func (p *Pgx) ListRecent(ctx context.Context, account string, limit int) ([]*Record, error) {
	builder := repositories.SqBuilder.
		Select("id", "account", "status", "stories_processed", "date_range", "source", "error", "duration_seconds", "created_at").
		From("run_history").
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	if account != "" {
		builder = builder.Where(sq.Eq{"account": account})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Account, &rec.Status, &rec.Stories, &rec.DateRange, &rec.Source, &rec.Error, &rec.DurationSeconds, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
