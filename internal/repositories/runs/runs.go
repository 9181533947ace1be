package runs

import (
	"context"
	"errors"
	"time"
)

// Record is one persisted run outcome, kept for the run-history endpoint and
// for operators auditing past exports.
type Record struct {
	ID              int64     `json:"id"`
	Account         string    `json:"account"`
	Status          string    `json:"status"`
	Stories         int       `json:"stories_processed"`
	DateRange       string    `json:"date_range,omitempty"`
	Source          string    `json:"source,omitempty"`
	Error           string    `json:"error,omitempty"`
	DurationSeconds float64   `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

var ErrNotFound = errors.New("run record not found")
var ErrCannotCreate = errors.New("error create run record")

type Repository interface {
	Create(ctx context.Context, rec Record) error
	ListRecent(ctx context.Context, account string, limit int) ([]*Record, error)
}
